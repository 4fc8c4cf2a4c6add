package service

import "testing"

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, 50},
		{-3, -1, 1, 50},
		{1, 25, 1, 25},
		{4, 200, 4, 200},
		{2, 201, 2, 50}, // over the cap falls back to the default
	}
	for _, c := range cases {
		page, limit := normalizePage(c.page, c.limit)
		if page != c.wantPage || limit != c.wantLimit {
			t.Errorf("normalizePage(%d, %d) = (%d, %d), want (%d, %d)",
				c.page, c.limit, page, limit, c.wantPage, c.wantLimit)
		}
	}
}
