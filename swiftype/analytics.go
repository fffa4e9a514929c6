package swiftype

import (
	"context"
	"time"
)

// DateFormat is the layout of analytics date parameters.
const DateFormat = "2006-01-02"

// AnalyticsOptions narrows the top-queries reports. Page is 0-based on the
// service side; zero values are omitted.
type AnalyticsOptions struct {
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PerPage   int
}

func (o AnalyticsOptions) params() Params {
	p := dateRange(o.StartDate, o.EndDate)
	if o.Page > 0 {
		p["page"] = o.Page
	}
	if o.PerPage > 0 {
		p["per_page"] = o.PerPage
	}
	return p
}

// dateRange omits a bound entirely when it is nil.
func dateRange(from, to *time.Time) Params {
	p := Params{}
	if from != nil {
		p["start_date"] = from.Format(DateFormat)
	}
	if to != nil {
		p["end_date"] = to.Format(DateFormat)
	}
	return p
}

// AnalyticsSearches returns daily search counts for an engine. Nil bounds
// leave the server default range.
func (c *Client) AnalyticsSearches(ctx context.Context, engineID string, from, to *time.Time, opts ...CallOption) (any, error) {
	return c.analytics(ctx, engineID, "searches", dateRange(from, to), opts)
}

// AnalyticsAutoselects returns daily autoselect counts for an engine.
func (c *Client) AnalyticsAutoselects(ctx context.Context, engineID string, from, to *time.Time, opts ...CallOption) (any, error) {
	return c.analytics(ctx, engineID, "autoselects", dateRange(from, to), opts)
}

// AnalyticsTopQueries returns the most frequent queries for an engine.
func (c *Client) AnalyticsTopQueries(ctx context.Context, engineID string, options AnalyticsOptions, opts ...CallOption) (any, error) {
	return c.analytics(ctx, engineID, "top_queries", options.params(), opts)
}

// AnalyticsTopNoResultQueries returns the most frequent queries that matched
// nothing.
func (c *Client) AnalyticsTopNoResultQueries(ctx context.Context, engineID string, options AnalyticsOptions, opts ...CallOption) (any, error) {
	return c.analytics(ctx, engineID, "top_no_result_queries", options.params(), opts)
}

func (c *Client) analytics(ctx context.Context, engineID, report string, params Params, opts []CallOption) (any, error) {
	var out any
	if err := c.get(ctx, enginePath(engineID, "analytics", report), params, &out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
