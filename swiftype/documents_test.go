package swiftype

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkIsOneRequest(t *testing.T) {
	client, captured := newTestClient(t, http.StatusOK, `[true,true,true,false]`)

	docs := make([]Record, 4)
	for i := range docs {
		docs[i] = Record{"external_id": i, "fields": []any{}}
	}

	results, err := client.CreateDocuments(context.Background(), "e1", "books", docs)
	require.NoError(t, err)

	require.Len(t, *captured, 1)
	assert.Len(t, (*captured)[0].Body["documents"], 4)
	assert.Equal(t, []any{true, true, true, false}, results)
}

func TestDocumentEndpoints(t *testing.T) {
	ctx := context.Background()
	base := "/api/v1/engines/e1/document_types/books/documents"

	tests := []struct {
		name       string
		call       func(c *Client) error
		wantMethod string
		wantPath   string
		wantBody   map[string]any
		response   string
	}{
		{
			name: "get",
			call: func(c *Client) error {
				_, err := c.Document(ctx, "e1", "books", "b1")
				return err
			},
			wantMethod: http.MethodGet,
			wantPath:   base + "/b1.json",
		},
		{
			name: "create",
			call: func(c *Client) error {
				_, err := c.CreateDocument(ctx, "e1", "books", Record{"external_id": "b1"})
				return err
			},
			wantMethod: http.MethodPost,
			wantPath:   base + ".json",
			wantBody:   map[string]any{"document": map[string]any{"external_id": "b1"}},
		},
		{
			name: "create or update",
			call: func(c *Client) error {
				_, err := c.CreateOrUpdateDocument(ctx, "e1", "books", Record{"external_id": "b1"})
				return err
			},
			wantMethod: http.MethodPost,
			wantPath:   base + "/create_or_update.json",
			wantBody:   map[string]any{"document": map[string]any{"external_id": "b1"}},
		},
		{
			name:     "bulk create or update",
			response: `[]`,
			call: func(c *Client) error {
				_, err := c.CreateOrUpdateDocuments(ctx, "e1", "books", nil)
				return err
			},
			wantMethod: http.MethodPost,
			wantPath:   base + "/bulk_create_or_update.json",
			wantBody:   map[string]any{"documents": []any{}},
		},
		{
			name: "update fields",
			call: func(c *Client) error {
				_, err := c.UpdateDocument(ctx, "e1", "books", "b1", Record{"title": "Dune"})
				return err
			},
			wantMethod: http.MethodPut,
			wantPath:   base + "/b1/update_fields.json",
			wantBody:   map[string]any{"fields": map[string]any{"title": "Dune"}},
		},
		{
			name:     "bulk update",
			response: `[]`,
			call: func(c *Client) error {
				_, err := c.UpdateDocuments(ctx, "e1", "books", []Record{{"external_id": "b1", "fields": Record{"title": "Dune"}}})
				return err
			},
			wantMethod: http.MethodPut,
			wantPath:   base + "/bulk_update.json",
			wantBody: map[string]any{"documents": []any{
				map[string]any{"external_id": "b1", "fields": map[string]any{"title": "Dune"}},
			}},
		},
		{
			name: "destroy",
			call: func(c *Client) error {
				return c.DestroyDocument(ctx, "e1", "books", "b1")
			},
			wantMethod: http.MethodDelete,
			wantPath:   base + "/b1.json",
		},
		{
			name:     "bulk destroy",
			response: `[]`,
			call: func(c *Client) error {
				_, err := c.DestroyDocuments(ctx, "e1", "books", []string{"b1", "b2"})
				return err
			},
			wantMethod: http.MethodPost,
			wantPath:   base + "/bulk_destroy.json",
			wantBody:   map[string]any{"documents": []any{"b1", "b2"}},
		},
		{
			name:     "bulk destroy nothing",
			response: `[]`,
			call: func(c *Client) error {
				_, err := c.DestroyDocuments(ctx, "e1", "books", nil)
				return err
			},
			wantMethod: http.MethodPost,
			wantPath:   base + "/bulk_destroy.json",
			wantBody:   map[string]any{"documents": []any{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := tt.response
			if response == "" {
				response = `{}`
			}
			client, captured := newTestClient(t, http.StatusOK, response)

			require.NoError(t, tt.call(client))
			require.Len(t, *captured, 1)

			req := (*captured)[0]
			assert.Equal(t, tt.wantMethod, req.Method)
			assert.Equal(t, tt.wantPath, req.Path)
			if tt.wantBody != nil {
				assert.Equal(t, tt.wantBody, req.Body)
			}
		})
	}
}

func TestEngineAndDocumentTypeEndpoints(t *testing.T) {
	ctx := context.Background()

	t.Run("create engine", func(t *testing.T) {
		client, captured := newTestClient(t, http.StatusOK, `{"id":"e1","name":"bookstore","slug":"bookstore"}`)

		engine, err := client.CreateEngine(ctx, "bookstore")
		require.NoError(t, err)
		assert.Equal(t, "bookstore", engine.StringField("slug"))

		req := (*captured)[0]
		assert.Equal(t, "/api/v1/engines.json", req.Path)
		assert.Equal(t, map[string]any{"engine": map[string]any{"name": "bookstore"}}, req.Body)
	})

	t.Run("list engines", func(t *testing.T) {
		client, captured := newTestClient(t, http.StatusOK, `[{"id":"e1"},{"id":"e2"}]`)

		engines, err := client.Engines(ctx)
		require.NoError(t, err)
		require.Len(t, engines, 2)
		assert.Equal(t, "e2", engines[1].ID())
		assert.Equal(t, "/api/v1/engines.json", (*captured)[0].Path)
	})

	t.Run("create document type", func(t *testing.T) {
		client, captured := newTestClient(t, http.StatusOK, `{"id":"dt1","name":"books"}`)

		_, err := client.CreateDocumentType(ctx, "e1", "books")
		require.NoError(t, err)

		req := (*captured)[0]
		assert.Equal(t, "/api/v1/engines/e1/document_types.json", req.Path)
		assert.Equal(t, map[string]any{"document_type": map[string]any{"name": "books"}}, req.Body)
	})

	t.Run("document type search", func(t *testing.T) {
		client, captured := newTestClient(t, http.StatusOK, `{"records":{"books":[]}}`)

		rs, err := client.SearchDocumentType(ctx, "e1", "books", "dune", SearchOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"books"}, rs.Collections())
		assert.Equal(t, "/api/v1/engines/e1/document_types/books/search.json", (*captured)[0].Path)
	})

	t.Run("destroy document type", func(t *testing.T) {
		client, captured := newTestClient(t, http.StatusNoContent, ``)

		require.NoError(t, client.DestroyDocumentType(ctx, "e1", "books"))
		assert.Equal(t, http.MethodDelete, (*captured)[0].Method)
		assert.Equal(t, "/api/v1/engines/e1/document_types/books.json", (*captured)[0].Path)
	})
}
