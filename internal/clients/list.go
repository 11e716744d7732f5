package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// decodeList accepts both list shapes the backend serves: a bare JSON array
// or a paginated object with a "results" array.
func decodeList[T any](data []byte, out *[]T) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*out = []T{}
		return nil
	}

	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, out); err != nil {
			return fmt.Errorf("decode list: %w", err)
		}
		return nil
	}

	var page map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return fmt.Errorf("decode list page: %w", err)
	}
	results, ok := page["results"]
	if !ok {
		return fmt.Errorf("decode list: response is neither an array nor a results page")
	}
	if bytes.Equal(bytes.TrimSpace(results), []byte("null")) {
		*out = []T{}
		return nil
	}
	if err := json.Unmarshal(results, out); err != nil {
		return fmt.Errorf("decode list results: %w", err)
	}
	if *out == nil {
		*out = []T{}
	}
	return nil
}

func getList[T any](ctx context.Context, c *APIClient, path string, query url.Values) ([]T, error) {
	var raw json.RawMessage
	if err := c.Do(ctx, http.MethodGet, path, nil, query, &raw); err != nil {
		return nil, err
	}
	var items []T
	if err := decodeList(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func getOne[T any](ctx context.Context, c *APIClient, path string, query url.Values) (*T, error) {
	var item T
	if err := c.Do(ctx, http.MethodGet, path, nil, query, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func sendJSON[T any](ctx context.Context, c *APIClient, method, path string, body interface{}) (*T, error) {
	var item T
	if err := c.Do(ctx, method, path, body, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func entityPath(base string, id int64) string {
	return fmt.Sprintf("%s%d/", base, id)
}

func daysQuery(days int) url.Values {
	q := url.Values{}
	if days > 0 {
		q.Set("days", fmt.Sprint(days))
	}
	return q
}
