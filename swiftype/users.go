package swiftype

import (
	"context"
	"net/http"
)

// PageOptions selects one page of a listing. Zero values are omitted.
type PageOptions struct {
	Page    int
	PerPage int
}

// platformParams returns the platform application credentials, or a
// ConfigError when they are not configured.
func (c *Client) platformParams() (Params, error) {
	if c.cfg.PlatformClientID == "" || c.cfg.PlatformClientSecret == "" {
		return nil, &ConfigError{Reason: "platform client id and secret are required for user operations"}
	}
	return Params{
		"client_id":     c.cfg.PlatformClientID,
		"client_secret": c.cfg.PlatformClientSecret,
	}, nil
}

// Users lists the users created by the platform application.
func (c *Client) Users(ctx context.Context, page PageOptions, opts ...CallOption) ([]Record, error) {
	params, err := c.platformParams()
	if err != nil {
		return nil, err
	}
	if page.Page > 0 {
		params["page"] = page.Page
	}
	if page.PerPage > 0 {
		params["per_page"] = page.PerPage
	}

	var users []Record
	r := request{method: http.MethodGet, path: "users.json", params: params, platform: true}
	if err := c.do(ctx, r, &users, opts); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser creates a new user for the platform application.
func (c *Client) CreateUser(ctx context.Context, opts ...CallOption) (Record, error) {
	params, err := c.platformParams()
	if err != nil {
		return nil, err
	}

	var user Record
	r := request{method: http.MethodPost, path: "users.json", params: params, platform: true}
	if err := c.do(ctx, r, &user, opts); err != nil {
		return nil, err
	}
	return user, nil
}

// User fetches a user created by the platform application.
func (c *Client) User(ctx context.Context, userID string, opts ...CallOption) (Record, error) {
	params, err := c.platformParams()
	if err != nil {
		return nil, err
	}

	var user Record
	r := request{method: http.MethodGet, path: "users/" + segment(userID) + ".json", params: params, platform: true}
	if err := c.do(ctx, r, &user, opts); err != nil {
		return nil, err
	}
	return user, nil
}
