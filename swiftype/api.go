package swiftype

import (
	"context"
	"time"
)

// API defines the Swiftype operations implemented by Client.
type API interface {
	// Engines
	Engines(ctx context.Context, opts ...CallOption) ([]Record, error)
	Engine(ctx context.Context, engineID string, opts ...CallOption) (Record, error)
	CreateEngine(ctx context.Context, name string, opts ...CallOption) (Record, error)
	DestroyEngine(ctx context.Context, engineID string, opts ...CallOption) error

	// Search
	Search(ctx context.Context, engineID, query string, opts SearchOptions, callOpts ...CallOption) (*ResultSet, error)
	Suggest(ctx context.Context, engineID, query string, opts SearchOptions, callOpts ...CallOption) (*ResultSet, error)
	SearchDocumentType(ctx context.Context, engineID, documentTypeID, query string, opts SearchOptions, callOpts ...CallOption) (*ResultSet, error)
	SuggestDocumentType(ctx context.Context, engineID, documentTypeID, query string, opts SearchOptions, callOpts ...CallOption) (*ResultSet, error)

	// Document types
	DocumentTypes(ctx context.Context, engineID string, opts ...CallOption) ([]Record, error)
	DocumentType(ctx context.Context, engineID, documentTypeID string, opts ...CallOption) (Record, error)
	CreateDocumentType(ctx context.Context, engineID, name string, opts ...CallOption) (Record, error)
	DestroyDocumentType(ctx context.Context, engineID, documentTypeID string, opts ...CallOption) error

	// Documents
	Documents(ctx context.Context, engineID, documentTypeID string, page, perPage int, opts ...CallOption) ([]Record, error)
	Document(ctx context.Context, engineID, documentTypeID, documentID string, opts ...CallOption) (Record, error)
	CreateDocument(ctx context.Context, engineID, documentTypeID string, document Record, opts ...CallOption) (Record, error)
	CreateDocuments(ctx context.Context, engineID, documentTypeID string, documents []Record, opts ...CallOption) ([]any, error)
	DestroyDocument(ctx context.Context, engineID, documentTypeID, documentID string, opts ...CallOption) error
	DestroyDocuments(ctx context.Context, engineID, documentTypeID string, documentIDs []string, opts ...CallOption) ([]any, error)
	CreateOrUpdateDocument(ctx context.Context, engineID, documentTypeID string, document Record, opts ...CallOption) (Record, error)
	CreateOrUpdateDocuments(ctx context.Context, engineID, documentTypeID string, documents []Record, opts ...CallOption) ([]any, error)
	UpdateDocument(ctx context.Context, engineID, documentTypeID, documentID string, fields Record, opts ...CallOption) (Record, error)
	UpdateDocuments(ctx context.Context, engineID, documentTypeID string, documents []Record, opts ...CallOption) ([]any, error)

	// Domains
	Domains(ctx context.Context, engineID string, opts ...CallOption) ([]Record, error)
	Domain(ctx context.Context, engineID, domainID string, opts ...CallOption) (Record, error)
	CreateDomain(ctx context.Context, engineID, url string, opts ...CallOption) (Record, error)
	DestroyDomain(ctx context.Context, engineID, domainID string, opts ...CallOption) error
	RecrawlDomain(ctx context.Context, engineID, domainID string, opts ...CallOption) (Record, error)
	CrawlURL(ctx context.Context, engineID, domainID, url string, opts ...CallOption) (Record, error)

	// Analytics
	AnalyticsSearches(ctx context.Context, engineID string, from, to *time.Time, opts ...CallOption) (any, error)
	AnalyticsAutoselects(ctx context.Context, engineID string, from, to *time.Time, opts ...CallOption) (any, error)
	AnalyticsTopQueries(ctx context.Context, engineID string, options AnalyticsOptions, opts ...CallOption) (any, error)
	AnalyticsTopNoResultQueries(ctx context.Context, engineID string, options AnalyticsOptions, opts ...CallOption) (any, error)

	// Platform users
	Users(ctx context.Context, page PageOptions, opts ...CallOption) ([]Record, error)
	CreateUser(ctx context.Context, opts ...CallOption) (Record, error)
	User(ctx context.Context, userID string, opts ...CallOption) (Record, error)

	LogClickthrough(ctx context.Context, engineID, documentTypeID, query, documentID string, opts ...CallOption) error
}

var _ API = (*Client)(nil)
