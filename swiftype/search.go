package swiftype

import (
	"context"
	"fmt"
)

// SearchOptions are the optional parameters of search and suggest queries.
// Maps are keyed by document type slug. Extra is merged last and may carry
// any parameter the service accepts that has no field here.
type SearchOptions struct {
	Page             int
	PerPage          int
	DocumentTypes    []string
	FetchFields      map[string][]string
	SearchFields     map[string][]string
	Filters          map[string]any
	FunctionalBoosts map[string]any
	Facets           map[string][]string
	SortField        map[string]string
	SortDirection    map[string]string
	Extra            Params
}

// Params converts the options to a request parameter mapping. Unset fields
// are omitted.
func (o SearchOptions) Params() Params {
	p := Params{}
	if o.Page > 0 {
		p["page"] = o.Page
	}
	if o.PerPage > 0 {
		p["per_page"] = o.PerPage
	}
	if len(o.DocumentTypes) > 0 {
		p["document_types"] = o.DocumentTypes
	}
	if len(o.FetchFields) > 0 {
		p["fetch_fields"] = o.FetchFields
	}
	if len(o.SearchFields) > 0 {
		p["search_fields"] = o.SearchFields
	}
	if len(o.Filters) > 0 {
		p["filters"] = o.Filters
	}
	if len(o.FunctionalBoosts) > 0 {
		p["functional_boosts"] = o.FunctionalBoosts
	}
	if len(o.Facets) > 0 {
		p["facets"] = o.Facets
	}
	if len(o.SortField) > 0 {
		p["sort_field"] = o.SortField
	}
	if len(o.SortDirection) > 0 {
		p["sort_direction"] = o.SortDirection
	}
	return p.merge(o.Extra)
}

// searchParams places query under the reserved "q" key; it wins over any "q"
// supplied through the options.
func searchParams(query string, opts SearchOptions) Params {
	return opts.Params().merge(Params{"q": query})
}

// query posts a search or suggest request and wraps the response.
func (c *Client) query(ctx context.Context, path, query string, opts SearchOptions, callOpts []CallOption) (*ResultSet, error) {
	var body map[string]any
	if err := c.post(ctx, path, searchParams(query, opts), &body, callOpts); err != nil {
		return nil, err
	}
	if body == nil {
		body = map[string]any{}
	}
	return NewResultSet(body), nil
}

// Search performs a full-text search over all document types of an engine.
func (c *Client) Search(ctx context.Context, engineID, query string, opts SearchOptions, callOpts ...CallOption) (*ResultSet, error) {
	return c.query(ctx, enginePath(engineID, "search"), query, opts, callOpts)
}

// Suggest performs a prefix (autocomplete) search over all document types of
// an engine.
func (c *Client) Suggest(ctx context.Context, engineID, query string, opts SearchOptions, callOpts ...CallOption) (*ResultSet, error) {
	return c.query(ctx, enginePath(engineID, "suggest"), query, opts, callOpts)
}

// SearchDocumentType performs a full-text search over a single document type.
func (c *Client) SearchDocumentType(ctx context.Context, engineID, documentTypeID, query string, opts SearchOptions, callOpts ...CallOption) (*ResultSet, error) {
	return c.query(ctx, documentTypePath(engineID, documentTypeID, "search"), query, opts, callOpts)
}

// SuggestDocumentType performs a prefix search over a single document type.
func (c *Client) SuggestDocumentType(ctx context.Context, engineID, documentTypeID, query string, opts SearchOptions, callOpts ...CallOption) (*ResultSet, error) {
	return c.query(ctx, documentTypePath(engineID, documentTypeID, "suggest"), query, opts, callOpts)
}

// enginePath builds engines/{id}[/{sub}...].json.
func enginePath(engineID string, sub ...string) string {
	p := "engines/" + segment(engineID)
	for _, s := range sub {
		p += "/" + s
	}
	return p + ".json"
}

// documentTypePath builds engines/{id}/document_types/{dt}[/{sub}...].json.
func documentTypePath(engineID, documentTypeID string, sub ...string) string {
	p := fmt.Sprintf("engines/%s/document_types/%s", segment(engineID), segment(documentTypeID))
	for _, s := range sub {
		p += "/" + s
	}
	return p + ".json"
}
