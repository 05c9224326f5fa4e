package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"fintrack/internal/session"
)

func (c *Client) send(ctx context.Context, method, path string, sess session.Session, in any) (Body, error) {
	opts := RequestOptions{Method: method}
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return Body{}, fmt.Errorf("encode request: %w", err)
		}
		opts.Body = b
	}
	return c.Do(ctx, path, sess, opts)
}

// decodeList treats a missing or null body as an empty list.
func decodeList[T any](b Body) ([]T, error) {
	if b.IsNull() {
		return []T{}, nil
	}
	var out []T
	if err := b.Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// decodeObject treats a missing or null body as the zero value.
func decodeObject[T any](b Body) (T, error) {
	var out T
	if b.IsNull() {
		return out, nil
	}
	if err := b.Decode(&out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return out, nil
}

func itemPath(collection, id string) string {
	return collection + "/" + url.PathEscape(id)
}

// getList fetches a collection endpoint.
func getList[T any](ctx context.Context, c *Client, path string, sess session.Session) ([]T, error) {
	body, err := c.send(ctx, http.MethodGet, path, sess, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[T](body)
}
