package swiftype

import "context"

// DocumentTypes lists the document types of an engine.
func (c *Client) DocumentTypes(ctx context.Context, engineID string, opts ...CallOption) ([]Record, error) {
	var types []Record
	if err := c.get(ctx, enginePath(engineID, "document_types"), nil, &types, opts); err != nil {
		return nil, err
	}
	return types, nil
}

// DocumentType fetches a document type by slug or ID.
func (c *Client) DocumentType(ctx context.Context, engineID, documentTypeID string, opts ...CallOption) (Record, error) {
	var dt Record
	if err := c.get(ctx, documentTypePath(engineID, documentTypeID), nil, &dt, opts); err != nil {
		return nil, err
	}
	return dt, nil
}

// CreateDocumentType creates a document type named name in an engine.
func (c *Client) CreateDocumentType(ctx context.Context, engineID, name string, opts ...CallOption) (Record, error) {
	var dt Record
	params := Params{"document_type": Params{"name": name}}
	if err := c.post(ctx, enginePath(engineID, "document_types"), params, &dt, opts); err != nil {
		return nil, err
	}
	return dt, nil
}

// DestroyDocumentType deletes a document type and its documents.
func (c *Client) DestroyDocumentType(ctx context.Context, engineID, documentTypeID string, opts ...CallOption) error {
	return c.delete(ctx, documentTypePath(engineID, documentTypeID), nil, nil, opts)
}
