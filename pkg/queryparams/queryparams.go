// Package queryparams liste sorgusu parametreleri ve sorgu anahtarı doğrulaması.
package queryparams

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// ListParams sayfalı liste uç noktalarının ortak sorgu parametreleri.
type ListParams struct {
	Page    int    `query:"page"`
	PerPage int    `query:"per_page"`
	Search  string `query:"search"`
	SortBy  string `query:"sort_by"`
	OrderBy string `query:"order_by"`
}

// DefaultListParams varsayılan sıralama alanıyla parametreler.
func DefaultListParams(sortBy string) ListParams {
	return ListParams{Page: DefaultPage, PerPage: DefaultPerPage, SortBy: sortBy, OrderBy: "desc"}
}

// Normalize aralık dışı değerleri varsayılanlara çeker. sortBy izinli alanlar dışındaysa ilk alan kullanılır.
func (p *ListParams) Normalize(allowedSort ...string) {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	p.OrderBy = strings.ToLower(p.OrderBy)
	if p.OrderBy != "asc" {
		p.OrderBy = "desc"
	}
	if len(allowedSort) > 0 {
		ok := false
		for _, s := range allowedSort {
			if s == p.SortBy {
				ok = true
				break
			}
		}
		if !ok {
			p.SortBy = allowedSort[0]
		}
	}
	p.Search = strings.TrimSpace(p.Search)
}

// Offset SQL OFFSET değeri.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// OrderClause "sort_by asc|desc".
func (p ListParams) OrderClause() string {
	return p.SortBy + " " + p.OrderBy
}

type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
}

type PaginatedResult struct {
	Data any            `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// NewPaginatedResult meta alanlarını hesaplar.
func NewPaginatedResult(data any, total int64, p ListParams) *PaginatedResult {
	pages := 0
	if p.PerPage > 0 {
		pages = int(math.Ceil(float64(total) / float64(p.PerPage)))
	}
	return &PaginatedResult{
		Data: data,
		Meta: PaginationMeta{CurrentPage: p.Page, PerPage: p.PerPage, TotalItems: total, TotalPages: pages},
	}
}

// Keys bir yapının `query` etiketlerinden kabul edilen anahtar kümesini çıkarır.
// Gömülü yapılar düzleştirilir, "-" etiketli alanlar atlanır.
func Keys(v any) map[string]struct{} {
	keys := make(map[string]struct{})
	collectKeys(reflect.TypeOf(v), keys)
	return keys
}

func collectKeys(t reflect.Type, keys map[string]struct{}) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("query")
		if f.Anonymous && tag == "" {
			collectKeys(f.Type, keys)
			continue
		}
		if tag == "-" || !f.IsExported() {
			continue
		}
		name := strings.Split(tag, ",")[0]
		if name == "" {
			name = f.Name
		}
		keys[name] = struct{}{}
	}
}

// UnknownKeys gelen sorgu anahtarlarından izinli olmayanları sıralı döndürür.
func UnknownKeys(query map[string]string, allowed ...map[string]struct{}) []string {
	var unknown []string
	for k := range query {
		found := false
		for _, set := range allowed {
			if _, ok := set[k]; ok {
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// RejectUnknown bilinmeyen anahtar varsa sentinel'i saran bir hata döndürür.
func RejectUnknown(sentinel error, query map[string]string, allowed ...map[string]struct{}) error {
	if unknown := UnknownKeys(query, allowed...); len(unknown) > 0 {
		return fmt.Errorf("%w: bilinmeyen parametre(ler): %s", sentinel, strings.Join(unknown, ", "))
	}
	return nil
}
