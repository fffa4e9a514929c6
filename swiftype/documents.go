package swiftype

import (
	"context"
	"net/http"
)

// documentsPath builds engines/{e}/document_types/{dt}/documents[/{sub}...].json.
func documentsPath(engineID, documentTypeID string, sub ...string) string {
	return documentTypePath(engineID, documentTypeID, append([]string{"documents"}, sub...)...)
}

// Documents lists one page of the documents of a document type. Zero page or
// perPage leaves the server default.
func (c *Client) Documents(ctx context.Context, engineID, documentTypeID string, page, perPage int, opts ...CallOption) ([]Record, error) {
	params := Params{}
	if page > 0 {
		params["page"] = page
	}
	if perPage > 0 {
		params["per_page"] = perPage
	}

	var docs []Record
	if err := c.get(ctx, documentsPath(engineID, documentTypeID), params, &docs, opts); err != nil {
		return nil, err
	}
	return docs, nil
}

// Document fetches a document by external ID.
func (c *Client) Document(ctx context.Context, engineID, documentTypeID, documentID string, opts ...CallOption) (Record, error) {
	var doc Record
	if err := c.get(ctx, documentsPath(engineID, documentTypeID, segment(documentID)), nil, &doc, opts); err != nil {
		return nil, err
	}
	return doc, nil
}

// CreateDocument indexes a single document.
func (c *Client) CreateDocument(ctx context.Context, engineID, documentTypeID string, document Record, opts ...CallOption) (Record, error) {
	var doc Record
	if err := c.post(ctx, documentsPath(engineID, documentTypeID), Params{"document": document}, &doc, opts); err != nil {
		return nil, err
	}
	return doc, nil
}

// CreateDocuments indexes documents in one request. The result holds one
// entry per document, in order.
func (c *Client) CreateDocuments(ctx context.Context, engineID, documentTypeID string, documents []Record, opts ...CallOption) ([]any, error) {
	return c.bulk(ctx, http.MethodPost, documentsPath(engineID, documentTypeID, "bulk_create"), documents, opts)
}

// DestroyDocument deletes a document by external ID.
func (c *Client) DestroyDocument(ctx context.Context, engineID, documentTypeID, documentID string, opts ...CallOption) error {
	return c.delete(ctx, documentsPath(engineID, documentTypeID, segment(documentID)), nil, nil, opts)
}

// DestroyDocuments deletes documents by external ID in one request.
func (c *Client) DestroyDocuments(ctx context.Context, engineID, documentTypeID string, documentIDs []string, opts ...CallOption) ([]any, error) {
	if documentIDs == nil {
		documentIDs = []string{}
	}
	return c.bulk(ctx, http.MethodPost, documentsPath(engineID, documentTypeID, "bulk_destroy"), documentIDs, opts)
}

// CreateOrUpdateDocument indexes a document, replacing any document with the
// same external ID.
func (c *Client) CreateOrUpdateDocument(ctx context.Context, engineID, documentTypeID string, document Record, opts ...CallOption) (Record, error) {
	var doc Record
	if err := c.post(ctx, documentsPath(engineID, documentTypeID, "create_or_update"), Params{"document": document}, &doc, opts); err != nil {
		return nil, err
	}
	return doc, nil
}

// CreateOrUpdateDocuments indexes or replaces documents in one request.
func (c *Client) CreateOrUpdateDocuments(ctx context.Context, engineID, documentTypeID string, documents []Record, opts ...CallOption) ([]any, error) {
	return c.bulk(ctx, http.MethodPost, documentsPath(engineID, documentTypeID, "bulk_create_or_update"), documents, opts)
}

// UpdateDocument changes the given fields of an existing document.
func (c *Client) UpdateDocument(ctx context.Context, engineID, documentTypeID, documentID string, fields Record, opts ...CallOption) (Record, error) {
	var doc Record
	path := documentsPath(engineID, documentTypeID, segment(documentID), "update_fields")
	if err := c.put(ctx, path, Params{"fields": fields}, &doc, opts); err != nil {
		return nil, err
	}
	return doc, nil
}

// UpdateDocuments changes fields of several documents in one request. Each
// entry carries an "external_id" and a "fields" object.
func (c *Client) UpdateDocuments(ctx context.Context, engineID, documentTypeID string, documents []Record, opts ...CallOption) ([]any, error) {
	return c.bulk(ctx, http.MethodPut, documentsPath(engineID, documentTypeID, "bulk_update"), documents, opts)
}

// bulk sends the whole batch under "documents" in a single request.
func (c *Client) bulk(ctx context.Context, method, path string, documents any, opts []CallOption) ([]any, error) {
	if records, ok := documents.([]Record); ok && records == nil {
		documents = []Record{}
	}

	var results []any
	r := request{method: method, path: path, params: Params{"documents": documents}}
	if err := c.do(ctx, r, &results, opts); err != nil {
		return nil, err
	}
	return results, nil
}
