package importer

import (
	"strings"
	"testing"
	"time"

	"farmbook/internal/core"
)

func fixedNow() time.Time {
	return time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
}

func newTestNormalizer() *Normalizer {
	n := NewNormalizer()
	n.Now = fixedNow
	return n
}

func TestNormalizeScenario(t *testing.T) {
	input := "Date,Type,Description,Amount\n" +
		"2024-01-15,Income,Goat Sale,15000\n" +
		"2024-01-10,Expense,Vet Visit,2500"

	rows, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	got := newTestNormalizer().Normalize(rows)

	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].Kind != core.Income || got[1].Kind != core.Expense {
		t.Errorf("kinds = %q, %q", got[0].Kind, got[1].Kind)
	}
	for i, r := range got {
		if r.Category != core.DefaultCategory {
			t.Errorf("record %d: category = %q, want %q", i, r.Category, core.DefaultCategory)
		}
		if r.SubCategory != core.DefaultSubCategory {
			t.Errorf("record %d: subCategory = %q, want %q", i, r.SubCategory, core.DefaultSubCategory)
		}
	}
	if got[0].Description != "Goat Sale" || got[0].Amount != 15000 || got[0].Date != "2024-01-15" {
		t.Errorf("first record = %+v", got[0])
	}
}

func TestNormalizeDefaults(t *testing.T) {
	got := newTestNormalizer().Normalize([]Row{{}})
	if len(got) != 1 {
		t.Fatal("expected one record")
	}
	r := got[0]
	if r.Date != "2024-05-01" {
		t.Errorf("date default = %q", r.Date)
	}
	if r.Kind != core.Expense {
		t.Errorf("kind default = %q", r.Kind)
	}
	if r.Description != core.PlaceholderDescription {
		t.Errorf("description default = %q", r.Description)
	}
	if r.Amount != 0 {
		t.Errorf("amount default = %v", r.Amount)
	}
	if r.Payer != "Unknown" || r.Category != "Other" || r.SubCategory != "General" || r.Source != "Unknown" {
		t.Errorf("defaults = %+v", r)
	}
	if r.Notes != "" {
		t.Errorf("notes default = %q", r.Notes)
	}
	if !r.WellFormed() {
		t.Error("normalized records must be well-formed")
	}
}

func TestNormalizeBatchIDsUnique(t *testing.T) {
	rows := []Row{{}, {}, {}}
	got := newTestNormalizer().Normalize(rows)
	seen := map[string]bool{}
	for _, r := range got {
		if r.ID == "" {
			t.Fatal("empty generated id")
		}
		if seen[r.ID] {
			t.Fatalf("duplicate id %q within batch", r.ID)
		}
		seen[r.ID] = true
	}
}

func TestNormalizeHeaderVariants(t *testing.T) {
	rows := []Row{{
		"transaction date": "15/01/2024",
		"kind":             "income",
		"Details":          "Wool sale",
		"Value":            "$1,250.50",
		"Payer":            "Co-op",
		"Payment Method":   "Bank Transfer",
	}}
	got := newTestNormalizer().Normalize(rows)[0]

	if got.Date != "2024-01-15" {
		t.Errorf("date = %q", got.Date)
	}
	if got.Kind != core.Income {
		t.Errorf("kind = %q", got.Kind)
	}
	if got.Description != "Wool sale" {
		t.Errorf("description = %q", got.Description)
	}
	if got.Amount != 1250.50 {
		t.Errorf("amount = %v", got.Amount)
	}
	if got.Payer != "Co-op" || got.Source != "Bank Transfer" {
		t.Errorf("payer/source = %q/%q", got.Payer, got.Source)
	}
}

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-01-15", "2024-01-15", true},
		{"2024/01/15", "2024-01-15", true},
		{"15/01/2024", "2024-01-15", true},
		{"5/1/2024", "2024-01-05", true},
		{"01/25/2024", "2024-01-25", true}, // month-first fallback
		{"Jan 15, 2024", "2024-01-15", true},
		{"15 Jan 2024", "2024-01-15", true},
		{"2024-01-15T08:00:00Z", "2024-01-15", true},
		{"soon", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := NormalizeDate(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("NormalizeDate(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNormalizeUnparseableFieldsDefaulted(t *testing.T) {
	rows := []Row{{
		"Date":   "someday",
		"Amount": "a lot",
	}}
	got := newTestNormalizer().Normalize(rows)[0]
	if got.Date != "2024-05-01" {
		t.Errorf("unparseable date should fall back to today, got %q", got.Date)
	}
	if got.Amount != 0 {
		t.Errorf("unparseable amount should default to 0, got %v", got.Amount)
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"100", 100},
		{"99.95", 99.95},
		{"$1,500.00", 1500},
		{"-42.50", 42.50},
		{"€30", 30},
		{"", 0},
		{"n/a", 0},
	}
	for _, tc := range cases {
		if got := parseAmount(tc.in); got != tc.want {
			t.Errorf("parseAmount(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLoadHeaderTableOverride(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/mapping.yml"
	content := "amount:\n  - Spend\ndate:\n  - When\n"
	if err := writeFile(path, content); err != nil {
		t.Fatal(err)
	}

	table, err := LoadHeaderTable(path)
	if err != nil {
		t.Fatal(err)
	}
	row := Row{"Spend": "12.50", "When": "2024-02-01"}
	if v, ok := table.Resolve(row, FieldAmount); !ok || v != "12.50" {
		t.Errorf("amount resolve = %q, %v", v, ok)
	}
	// Built-in candidates still work after an override.
	if v, ok := table.Resolve(Row{"Amount": "7"}, FieldAmount); !ok || v != "7" {
		t.Errorf("default candidate lost: %q, %v", v, ok)
	}
}

func TestLoadHeaderTableUnknownField(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/mapping.yml"
	if err := writeFile(path, "amout:\n  - Spend\n"); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadHeaderTable(path); err == nil {
		t.Error("expected error for unknown field key")
	}
}
