package queryparams

import (
	"errors"
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	p := ListParams{Page: 0, PerPage: 500, SortBy: "password", OrderBy: "ASC", Search: "  ada "}
	p.Normalize("created_at", "id")

	want := ListParams{Page: 1, PerPage: MaxPerPage, SortBy: "created_at", OrderBy: "asc", Search: "ada"}
	if p != want {
		t.Errorf("Normalize = %+v, beklenen %+v", p, want)
	}
	if p.Offset() != 0 {
		t.Errorf("Offset = %d", p.Offset())
	}

	p = ListParams{Page: 3, PerPage: 10, SortBy: "id", OrderBy: "drop table"}
	p.Normalize("created_at", "id")
	if p.OrderClause() != "id desc" || p.Offset() != 20 {
		t.Errorf("OrderClause = %q, Offset = %d", p.OrderClause(), p.Offset())
	}
}

func TestNewPaginatedResult(t *testing.T) {
	r := NewPaginatedResult([]int{1, 2}, 21, ListParams{Page: 2, PerPage: 10})
	if r.Meta.TotalPages != 3 || r.Meta.TotalItems != 21 || r.Meta.CurrentPage != 2 {
		t.Errorf("Meta = %+v", r.Meta)
	}
}

type inner struct {
	Color string `query:"color"`
}

type outer struct {
	inner
	FontSize float64 `query:"font_size"`
	Version  int     `query:"-"`
	hidden   bool
}

func TestKeysFlattensEmbedded(t *testing.T) {
	got := Keys(&outer{})
	want := map[string]struct{}{"color": {}, "font_size": {}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Keys = %v, beklenen %v", got, want)
	}
}

func TestRejectUnknown(t *testing.T) {
	sentinel := errors.New("geçersiz")
	allowed := Keys(outer{})
	extra := map[string]struct{}{"mode": {}}

	if err := RejectUnknown(sentinel, map[string]string{"color": "#000000", "mode": "preview"}, allowed, extra); err != nil {
		t.Errorf("izinli anahtarlar reddedildi: %v", err)
	}

	err := RejectUnknown(sentinel, map[string]string{"zzz": "1", "aaa": "2", "color": "x"}, allowed, extra)
	if !errors.Is(err, sentinel) {
		t.Fatalf("sentinel sarılmalı, gelen %v", err)
	}
	if got := UnknownKeys(map[string]string{"zzz": "1", "aaa": "2"}, allowed); !reflect.DeepEqual(got, []string{"aaa", "zzz"}) {
		t.Errorf("UnknownKeys = %v", got)
	}
}
