package swiftype

import (
	"encoding/json"
	"slices"
	"strconv"
)

// ResultSet wraps the response of a search or suggest call. Lookups never
// modify the underlying body, and a lookup for a collection that is not in
// the response returns an empty slice.
//
//	results, _ := client.Search(ctx, "engine-1", "glass", swiftype.SearchOptions{})
//	results.Records("videos") // => [{"external_id": "v1", "title": "..."}]
//	results.Records("images") // => []
type ResultSet struct {
	raw     map[string]any
	records map[string][]Record
	info    map[string]any
	counts  map[string]any
	errors  any
}

// reserved top-level keys that never hold a collection.
var reservedKeys = map[string]bool{
	"records":      true,
	"info":         true,
	"errors":       true,
	"record_count": true,
}

// NewResultSet wraps a decoded response body. Collections are read from a
// nested "records" object when present, otherwise from every top-level key
// holding an array.
func NewResultSet(body map[string]any) *ResultSet {
	rs := &ResultSet{
		raw:     body,
		records: make(map[string][]Record),
	}
	rs.info, _ = body["info"].(map[string]any)
	rs.counts, _ = body["record_count"].(map[string]any)
	rs.errors = body["errors"]

	if nested, ok := body["records"].(map[string]any); ok {
		for name, v := range nested {
			if items, ok := v.([]any); ok {
				rs.records[name] = toRecords(items)
			}
		}
		return rs
	}

	for name, v := range body {
		if reservedKeys[name] {
			continue
		}
		if items, ok := v.([]any); ok {
			rs.records[name] = toRecords(items)
		}
	}
	return rs
}

func toRecords(items []any) []Record {
	out := make([]Record, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Record(m))
		}
	}
	return out
}

// Records returns the records of a collection in response order.
func (rs *ResultSet) Records(name string) []Record {
	records, ok := rs.records[name]
	if !ok {
		return []Record{}
	}
	return slices.Clone(records)
}

// Collections returns the names of the collections in the response, sorted.
func (rs *ResultSet) Collections() []string {
	return sortedKeys(rs.records)
}

// Len returns the number of records returned for a collection.
func (rs *ResultSet) Len(name string) int {
	return len(rs.records[name])
}

// RecordCount returns the service-reported record count for a collection.
func (rs *ResultSet) RecordCount(name string) (int, bool) {
	return toInt(rs.counts[name])
}

// Info returns the per-collection metadata block, or nil.
func (rs *ResultSet) Info(name string) map[string]any {
	m, _ := rs.info[name].(map[string]any)
	return m
}

// TotalResultCount returns the total number of matches for a collection.
func (rs *ResultSet) TotalResultCount(name string) (int, bool) {
	return toInt(rs.Info(name)["total_result_count"])
}

// CurrentPage returns the page number reported for a collection.
func (rs *ResultSet) CurrentPage(name string) (int, bool) {
	return toInt(rs.Info(name)["current_page"])
}

// NumPages returns the number of pages reported for a collection.
func (rs *ResultSet) NumPages(name string) (int, bool) {
	return toInt(rs.Info(name)["num_pages"])
}

// PerPage returns the page size reported for a collection.
func (rs *ResultSet) PerPage(name string) (int, bool) {
	return toInt(rs.Info(name)["per_page"])
}

// Facets returns the facet counts reported for a collection, or nil.
func (rs *ResultSet) Facets(name string) map[string]any {
	m, _ := rs.Info(name)["facets"].(map[string]any)
	return m
}

// Errors returns the "errors" value of the response as is, usually a mapping
// of collection name to error but any shape the service sends, or nil. These
// are data, not failures: other collections may still hold results.
func (rs *ResultSet) Errors() any {
	return rs.errors
}

// Error returns the error reported for one collection.
func (rs *ResultSet) Error(name string) (any, bool) {
	m, _ := rs.errors.(map[string]any)
	v, ok := m[name]
	return v, ok
}

// Raw returns the decoded response body.
func (rs *ResultSet) Raw() map[string]any {
	return rs.raw
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		if f, err := n.Float64(); err == nil {
			return int(f), true
		}
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i, true
		}
	}
	return 0, false
}
