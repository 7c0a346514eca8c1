package utils

import "testing"

func TestSkip(t *testing.T) {
	tests := []struct {
		page, limit int
		want        int64
	}{
		{1, 10, 0},
		{2, 10, 10},
		{5, 7, 28},
		{0, 10, 0},
	}
	for _, tt := range tests {
		if got := Skip(tt.page, tt.limit); got != tt.want {
			t.Errorf("Skip(%d, %d) = %d, want %d", tt.page, tt.limit, got, tt.want)
		}
	}
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		total     int64
		wantPages int
		wantNext  bool
		wantPrev  bool
	}{
		{"empty", 1, 10, 0, 0, false, false},
		{"single partial page", 1, 10, 3, 1, false, false},
		{"exact fit", 1, 10, 10, 1, false, false},
		{"one over", 1, 10, 11, 2, true, false},
		{"last page", 2, 10, 11, 2, false, true},
		{"past the end", 4, 10, 11, 2, false, true},
		{"middle", 2, 5, 23, 5, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(tt.page, tt.limit, tt.total)
			if p.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.wantPages)
			}
			if p.HasNextPage != tt.wantNext {
				t.Errorf("HasNextPage = %v, want %v", p.HasNextPage, tt.wantNext)
			}
			if p.HasPrevPage != tt.wantPrev {
				t.Errorf("HasPrevPage = %v, want %v", p.HasPrevPage, tt.wantPrev)
			}
			if p.CurrentPage != tt.page || p.Limit != tt.limit {
				t.Errorf("CurrentPage/Limit = %d/%d", p.CurrentPage, p.Limit)
			}
		})
	}
}

func TestPaginateInvariant(t *testing.T) {
	for total := int64(0); total <= 60; total++ {
		for limit := 1; limit <= 12; limit++ {
			for page := 1; page <= 8; page++ {
				p := Paginate(page, limit, total)
				wantNext := int64((page-1)*limit+limit) < total
				if p.HasNextPage != wantNext {
					t.Fatalf("T=%d L=%d P=%d: HasNextPage = %v, want %v", total, limit, page, p.HasNextPage, wantNext)
				}
				if p.HasPrevPage != (page > 1) {
					t.Fatalf("T=%d L=%d P=%d: HasPrevPage = %v", total, limit, page, p.HasPrevPage)
				}
				covers := int64(p.TotalPages)*int64(limit) >= total
				tight := p.TotalPages == 0 || int64(p.TotalPages-1)*int64(limit) < total
				if !covers || !tight {
					t.Fatalf("T=%d L=%d: TotalPages = %d is not ceil(T/L)", total, limit, p.TotalPages)
				}
			}
		}
	}
}
