package partner

import (
	"context"
	"net/http"
	"net/url"
)

// Get выполняет GET path с query params и возвращает развёрнутый ответ.
func Get[T any](ctx context.Context, c *Client, path string, params url.Values) (T, error) {
	var out T
	err := c.Do(ctx, http.MethodGet, path, params, nil, &out)
	return out, err
}

// Post отправляет body как JSON. body == nil — запрос без тела.
func Post[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	var out T
	err := c.Do(ctx, http.MethodPost, path, nil, body, &out)
	return out, err
}

func Put[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	var out T
	err := c.Do(ctx, http.MethodPut, path, nil, body, &out)
	return out, err
}

func Delete[T any](ctx context.Context, c *Client, path string) (T, error) {
	var out T
	err := c.Do(ctx, http.MethodDelete, path, nil, nil, &out)
	return out, err
}
