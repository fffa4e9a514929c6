package swiftype

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeQuery(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   string
	}{
		{
			name:   "nil params",
			params: nil,
			want:   "",
		},
		{
			name:   "scalars sorted by key",
			params: Params{"per_page": 10, "page": 2, "q": "glass"},
			want:   "page=2&per_page=10&q=glass",
		},
		{
			name:   "sequence uses empty brackets",
			params: Params{"document_types": []string{"books", "videos"}},
			want:   "document_types[]=books&document_types[]=videos",
		},
		{
			name:   "empty sequence and mapping are omitted",
			params: Params{"document_types": []string{}, "filters": map[string]any{}, "q": "glass"},
			want:   "q=glass",
		},
		{
			name: "nested mapping",
			params: Params{"filters": map[string]any{
				"videos": map[string]any{"category_id": []any{"23", "25"}},
			}},
			want: "filters[videos][category_id][]=23&filters[videos][category_id][]=25",
		},
		{
			name:   "typed nested map",
			params: Params{"fetch_fields": map[string][]string{"books": {"title", "author"}}},
			want:   "fetch_fields[books][]=title&fetch_fields[books][]=author",
		},
		{
			name:   "nil values are skipped",
			params: Params{"a": nil, "b": "x"},
			want:   "b=x",
		},
		{
			name:   "booleans and numbers",
			params: Params{"flag": true, "n": json.Number("1.5"), "f": 0.25},
			want:   "f=0.25&flag=true&n=1.5",
		},
		{
			name:   "time",
			params: Params{"at": time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
			want:   "at=2024-01-02T03:04:05Z",
		},
		{
			name:   "values are escaped",
			params: Params{"q": "a&b c"},
			want:   "q=a%26b+c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := encodeQuery(tt.params)
			decoded, err := url.QueryUnescape(got)
			assert.NoError(t, err)
			if tt.name == "values are escaped" {
				assert.Equal(t, tt.want, got)
				return
			}
			assert.Equal(t, tt.want, decoded)
		})
	}
}

func TestEncodeQueryParsesBack(t *testing.T) {
	params := Params{
		"start_date": "2024-01-01",
		"filters":    Params{"books": Params{"genre": []string{"sci-fi", "fantasy"}}},
	}

	values, err := url.ParseQuery(encodeQuery(params))
	assert.NoError(t, err)
	assert.Equal(t, []string{"sci-fi", "fantasy"}, values["filters[books][genre][]"])
	assert.Equal(t, "2024-01-01", values.Get("start_date"))
}

func TestParamsMerge(t *testing.T) {
	base := Params{"a": 1, "b": 2}
	override := Params{"b": 3, "c": 4}

	merged := base.merge(override)

	assert.Equal(t, Params{"a": 1, "b": 3, "c": 4}, merged)
	assert.Equal(t, Params{"a": 1, "b": 2}, base)
	assert.Equal(t, Params{"b": 3, "c": 4}, override)
	assert.Equal(t, Params{"a": 1}, Params{"a": 1}.merge(nil))
}

func TestSearchOptionsParams(t *testing.T) {
	assert.Empty(t, SearchOptions{}.Params())

	opts := SearchOptions{
		Page:          2,
		PerPage:       20,
		DocumentTypes: []string{"books"},
		Filters:       map[string]any{"books": map[string]any{"in_stock": true}},
		SortField:     map[string]string{"books": "published_on"},
		SortDirection: map[string]string{"books": "desc"},
		Extra:         Params{"spelling": "strict", "page": 3},
	}
	p := opts.Params()

	assert.Equal(t, 3, p["page"], "Extra is merged last")
	assert.Equal(t, 20, p["per_page"])
	assert.Equal(t, []string{"books"}, p["document_types"])
	assert.Equal(t, "strict", p["spelling"])
	assert.Equal(t, map[string]string{"books": "desc"}, p["sort_direction"])
	assert.NotContains(t, p, "facets")
	assert.NotContains(t, p, "fetch_fields")
}
