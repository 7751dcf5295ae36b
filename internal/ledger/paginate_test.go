package ledger

import (
	"fmt"
	"testing"

	"farmbook/internal/core"
)

func makeRecords(n int) []core.Transaction {
	out := make([]core.Transaction, n)
	for i := range out {
		out[i] = tx(fmt.Sprintf("r%02d", i), "2024-01-01", core.Expense, float64(i))
	}
	return out
}

func TestPaginateBounds(t *testing.T) {
	records := makeRecords(23)

	cases := []struct {
		page, pageSize int
		wantLen        int
		wantPage       int
		wantFirst      string
	}{
		{1, 10, 10, 1, "r00"},
		{2, 10, 10, 2, "r10"},
		{3, 10, 3, 3, "r20"},
		{5, 10, 3, 3, "r20"}, // clamps to last page, never empty
		{0, 10, 10, 1, "r00"},
		{1, 100, 23, 1, "r00"},
	}
	for _, tc := range cases {
		res, err := Paginate(records, PageRequest{Page: tc.page, PageSize: tc.pageSize})
		if err != nil {
			t.Fatalf("page=%d size=%d: %v", tc.page, tc.pageSize, err)
		}
		if len(res.Items) != tc.wantLen || res.Page != tc.wantPage {
			t.Errorf("page=%d size=%d: got len=%d page=%d, want len=%d page=%d",
				tc.page, tc.pageSize, len(res.Items), res.Page, tc.wantLen, tc.wantPage)
			continue
		}
		if res.Items[0].ID != tc.wantFirst {
			t.Errorf("page=%d size=%d: first item %q, want %q", tc.page, tc.pageSize, res.Items[0].ID, tc.wantFirst)
		}
	}
}

func TestPaginatePartition(t *testing.T) {
	records := makeRecords(23)
	res, _ := Paginate(records, PageRequest{Page: 1, PageSize: 10})

	var rebuilt []core.Transaction
	for p := 1; p <= res.TotalPages; p++ {
		page, err := Paginate(records, PageRequest{Page: p, PageSize: 10})
		if err != nil {
			t.Fatal(err)
		}
		rebuilt = append(rebuilt, page.Items...)
	}
	if len(rebuilt) != len(records) {
		t.Fatalf("concatenated pages have %d records, want %d", len(rebuilt), len(records))
	}
	for i := range records {
		if rebuilt[i].ID != records[i].ID {
			t.Fatalf("gap or overlap at %d: %q != %q", i, rebuilt[i].ID, records[i].ID)
		}
	}
}

func TestPaginateEmpty(t *testing.T) {
	res, err := Paginate(nil, PageRequest{Page: 3, PageSize: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Items) != 0 || res.Total != 0 || res.TotalPages != 0 {
		t.Errorf("unexpected result for empty input: %+v", res)
	}
}

func TestPaginateInvalidPageSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := Paginate(makeRecords(3), PageRequest{Page: 1, PageSize: size}); err != ErrInvalidPageSize {
			t.Errorf("size=%d: expected ErrInvalidPageSize, got %v", size, err)
		}
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct{ total, size, want int }{
		{23, 10, 3},
		{20, 10, 2},
		{1, 10, 1},
		{0, 10, 0},
		{5, 5, 1},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.size); got != tc.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tc.total, tc.size, got, tc.want)
		}
	}
}
