package paging

import (
	"net/http/httptest"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want Params
	}{
		{
			name: "defaults",
			url:  "/reports",
			want: Params{Page: DefaultPage, Limit: DefaultLimit},
		},
		{
			name: "explicit page and limit",
			url:  "/reports?page=3&limit=25",
			want: Params{Page: 3, Limit: 25},
		},
		{
			name: "invalid page falls back",
			url:  "/reports?page=abc&limit=25",
			want: Params{Page: DefaultPage, Limit: 25},
		},
		{
			name: "zero page falls back",
			url:  "/reports?page=0",
			want: Params{Page: DefaultPage, Limit: DefaultLimit},
		},
		{
			name: "negative limit falls back",
			url:  "/reports?limit=-5",
			want: Params{Page: DefaultPage, Limit: DefaultLimit},
		},
		{
			name: "limit clamped to max",
			url:  "/reports?limit=5000",
			want: Params{Page: DefaultPage, Limit: MaxLimit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			got := Parse(r)
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.url, got, tt.want)
			}
		})
	}
}

func TestSkip(t *testing.T) {
	p := Params{Page: 4, Limit: 10}
	if got := p.Skip(); got != 30 {
		t.Errorf("Skip() = %d, want 30", got)
	}
	p = Params{Page: 1, Limit: 10}
	if got := p.Skip(); got != 0 {
		t.Errorf("Skip() = %d, want 0", got)
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		params   Params
		total    int64
		wantNext *PageRef
		wantPrev *PageRef
	}{
		{
			name:     "single page",
			params:   Params{Page: 1, Limit: 10},
			total:    5,
			wantNext: nil,
			wantPrev: nil,
		},
		{
			name:     "first of many",
			params:   Params{Page: 1, Limit: 10},
			total:    25,
			wantNext: &PageRef{Page: 2, Limit: 10},
			wantPrev: nil,
		},
		{
			name:     "middle page",
			params:   Params{Page: 2, Limit: 10},
			total:    25,
			wantNext: &PageRef{Page: 3, Limit: 10},
			wantPrev: &PageRef{Page: 1, Limit: 10},
		},
		{
			name:     "last page",
			params:   Params{Page: 3, Limit: 10},
			total:    25,
			wantNext: nil,
			wantPrev: &PageRef{Page: 2, Limit: 10},
		},
		{
			name:     "exact page boundary has no next",
			params:   Params{Page: 2, Limit: 10},
			total:    20,
			wantNext: nil,
			wantPrev: &PageRef{Page: 1, Limit: 10},
		},
		{
			name:     "empty collection",
			params:   Params{Page: 1, Limit: 10},
			total:    0,
			wantNext: nil,
			wantPrev: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(tt.params, tt.total)
			if !refEqual(got.Next, tt.wantNext) {
				t.Errorf("Next = %+v, want %+v", got.Next, tt.wantNext)
			}
			if !refEqual(got.Prev, tt.wantPrev) {
				t.Errorf("Prev = %+v, want %+v", got.Prev, tt.wantPrev)
			}
		})
	}
}

func refEqual(a, b *PageRef) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
