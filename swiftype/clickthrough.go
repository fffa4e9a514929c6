package swiftype

import "context"

// LogClickthrough records that a user who searched for query selected the
// document with external ID documentID.
func (c *Client) LogClickthrough(ctx context.Context, engineID, documentTypeID, query, documentID string, opts ...CallOption) error {
	path := documentTypePath(engineID, documentTypeID, "analytics", "log_clickthrough")
	return c.post(ctx, path, Params{"q": query, "id": documentID}, nil, opts)
}
