package exporter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"farmbook/internal/core"
	"farmbook/internal/importer"
)

func sample() []core.Transaction {
	return []core.Transaction{
		{
			ID: "t1", Date: "2024-01-15", Kind: core.Income,
			Description: "Goat Sale", Amount: 15000, Payer: "Buyer Co",
			Category: "Livestock", SubCategory: "Goats", Source: "Bank", Notes: "8 head",
		},
		{
			ID: "t2", Date: "2024-01-10", Kind: core.Expense,
			Description: `Vet, "emergency" call`, Amount: 2500.50, Payer: "Farm",
			Category: "Vet", SubCategory: "Medicine", Source: "Cash", Notes: "",
		},
	}
}

func TestWriteCSVHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatal(err)
	}
	want := "Date,Type,Description,Amount,Paid By,Category,Sub-Category,Source,Notes"
	first := strings.SplitN(buf.String(), "\n", 2)[0]
	if strings.TrimRight(first, "\r") != want {
		t.Errorf("header = %q, want %q", first, want)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	records := sample()

	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		t.Fatal(err)
	}

	rows, err := importer.ParseCSV(&buf)
	if err != nil {
		t.Fatal(err)
	}
	n := importer.NewNormalizer()
	n.Now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }
	got := n.Normalize(rows)

	if len(got) != len(records) {
		t.Fatalf("round-trip produced %d records, want %d", len(got), len(records))
	}
	for i := range records {
		want, have := records[i], got[i]
		if have.Date != want.Date || have.Kind != want.Kind ||
			have.Description != want.Description || have.Amount != want.Amount ||
			have.Payer != want.Payer || have.Category != want.Category ||
			have.SubCategory != want.SubCategory || have.Source != want.Source ||
			have.Notes != want.Notes {
			t.Errorf("record %d mismatch:\nexported: %+v\nimported: %+v", i, want, have)
		}
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 3, 7, 14, 0, 0, 0, time.UTC)
	if got := Filename("transactions", "csv", now); got != "transactions_2024-03-07.csv" {
		t.Errorf("Filename = %q", got)
	}
	if got := Filename("animals", "xlsx", now); got != "animals_2024-03-07.xlsx" {
		t.Errorf("Filename = %q", got)
	}
}
