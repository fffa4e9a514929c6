// Package swiftype provides a client for the Swiftype search API.
//
// The client manages engines, document types, documents and crawled domains,
// runs search and suggest queries, reads analytics and manages platform users.
// Every operation builds one HTTP request against the versioned API base URL
// and decodes the JSON response into generic values: Record for single
// objects, []Record for listings and *ResultSet for search responses.
//
// # Usage
//
//	cfg := swiftype.DefaultConfig()
//	cfg.APIKey = os.Getenv("SWIFTYPE_API_KEY")
//
//	client, err := swiftype.New(cfg,
//		swiftype.WithLogger(logger),
//		swiftype.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	rs, err := client.Search(ctx, "bookstore", "glass", swiftype.SearchOptions{
//		PerPage: 20,
//		Filters: map[string]any{"books": map[string]any{"in_stock": true}},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, book := range rs.Records("books") {
//		fmt.Println(book.StringField("title"))
//	}
//
// # Authentication
//
// Credentials resolve per request: a CallOption wins over the client options,
// which win over Config. Within one level a platform access token wins over
// an API key. API keys travel as the auth_token query parameter, access
// tokens as an Authorization bearer header.
//
// # Error Handling
//
// Failures are reported as:
//
//   - *ConfigError: no credential could be resolved (matches ErrNoCredentials)
//   - *TransportError: the request never produced a response (matches ErrTransport)
//   - *APIError: the service answered with a non-2xx status
//   - *DecodeError: a 2xx response was not valid JSON (matches ErrDecode)
//
// APIError classifies the status code:
//
//	if errors.Is(err, swiftype.ErrNotFound) {
//		// engine or document does not exist
//	}
//
// The client never retries. IsRetryable reports whether a caller may.
package swiftype
