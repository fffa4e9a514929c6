package swiftype

import "context"

// Engines lists the engines of the account.
func (c *Client) Engines(ctx context.Context, opts ...CallOption) ([]Record, error) {
	var engines []Record
	if err := c.get(ctx, "engines.json", nil, &engines, opts); err != nil {
		return nil, err
	}
	return engines, nil
}

// Engine fetches an engine by slug or ID.
func (c *Client) Engine(ctx context.Context, engineID string, opts ...CallOption) (Record, error) {
	var engine Record
	if err := c.get(ctx, enginePath(engineID), nil, &engine, opts); err != nil {
		return nil, err
	}
	return engine, nil
}

// CreateEngine creates an engine named name.
func (c *Client) CreateEngine(ctx context.Context, name string, opts ...CallOption) (Record, error) {
	var engine Record
	params := Params{"engine": Params{"name": name}}
	if err := c.post(ctx, "engines.json", params, &engine, opts); err != nil {
		return nil, err
	}
	return engine, nil
}

// DestroyEngine deletes an engine and everything in it.
func (c *Client) DestroyEngine(ctx context.Context, engineID string, opts ...CallOption) error {
	return c.delete(ctx, enginePath(engineID), nil, nil, opts)
}
