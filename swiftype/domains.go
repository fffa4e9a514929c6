package swiftype

import "context"

func domainPath(engineID, domainID string, sub ...string) string {
	return enginePath(engineID, append([]string{"domains", segment(domainID)}, sub...)...)
}

// Domains lists the crawled domains of an engine.
func (c *Client) Domains(ctx context.Context, engineID string, opts ...CallOption) ([]Record, error) {
	var domains []Record
	if err := c.get(ctx, enginePath(engineID, "domains"), nil, &domains, opts); err != nil {
		return nil, err
	}
	return domains, nil
}

// Domain fetches a crawled domain.
func (c *Client) Domain(ctx context.Context, engineID, domainID string, opts ...CallOption) (Record, error) {
	var domain Record
	if err := c.get(ctx, domainPath(engineID, domainID), nil, &domain, opts); err != nil {
		return nil, err
	}
	return domain, nil
}

// CreateDomain adds a domain to crawl, starting from url.
func (c *Client) CreateDomain(ctx context.Context, engineID, url string, opts ...CallOption) (Record, error) {
	var domain Record
	params := Params{"domain": Params{"submitted_url": url}}
	if err := c.post(ctx, enginePath(engineID, "domains"), params, &domain, opts); err != nil {
		return nil, err
	}
	return domain, nil
}

// DestroyDomain removes a domain and its crawled documents.
func (c *Client) DestroyDomain(ctx context.Context, engineID, domainID string, opts ...CallOption) error {
	return c.delete(ctx, domainPath(engineID, domainID), nil, nil, opts)
}

// RecrawlDomain asks the service to crawl a domain again.
func (c *Client) RecrawlDomain(ctx context.Context, engineID, domainID string, opts ...CallOption) (Record, error) {
	var domain Record
	if err := c.put(ctx, domainPath(engineID, domainID, "recrawl"), nil, &domain, opts); err != nil {
		return nil, err
	}
	return domain, nil
}

// CrawlURL adds or refreshes a single URL of a domain.
func (c *Client) CrawlURL(ctx context.Context, engineID, domainID, url string, opts ...CallOption) (Record, error) {
	var doc Record
	if err := c.put(ctx, domainPath(engineID, domainID, "crawl_url"), Params{"url": url}, &doc, opts); err != nil {
		return nil, err
	}
	return doc, nil
}
