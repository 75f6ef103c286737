package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/gpahal/randengine/http/client"
	"github.com/gpahal/randengine/random"
	"github.com/gpahal/randengine/web"
)

// StatusError is returned by Client for non-2xx responses. A 400 response
// matches random.ErrInvalidArgument under errors.Is.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("randengine: status %d: %s", e.StatusCode, e.Message)
}

func (e *StatusError) Is(target error) bool {
	return target == random.ErrInvalidArgument && e.StatusCode == http.StatusBadRequest
}

// Client calls a randengine server.
type Client struct {
	c *client.Client
}

func NewClient(baseUrl string) (*Client, error) {
	return NewClientWithOptions(client.Options{BaseUrlString: baseUrl})
}

func NewClientWithOptions(opts client.Options) (*Client, error) {
	c, err := client.NewWithOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Client{c: c}, nil
}

func (c *Client) Number(ctx context.Context, min, max int) (int, error) {
	q := url.Values{}
	q.Set("min", strconv.Itoa(min))
	q.Set("max", strconv.Itoa(max))

	var resp NumberResponse
	if err := c.do(ctx, http.MethodGet, "/v1/number", q, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Number, nil
}

func (c *Client) Numbers(ctx context.Context, count, min, max int, shuffle bool) ([]int, error) {
	q := url.Values{}
	q.Set("count", strconv.Itoa(count))
	q.Set("min", strconv.Itoa(min))
	q.Set("max", strconv.Itoa(max))
	q.Set("shuffle", strconv.FormatBool(shuffle))

	var resp NumbersResponse
	if err := c.do(ctx, http.MethodGet, "/v1/numbers", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Numbers, nil
}

func (c *Client) Char(ctx context.Context, classes random.Class) (byte, error) {
	q := url.Values{}
	q.Set("classes", classes.String())

	var resp CharResponse
	if err := c.do(ctx, http.MethodGet, "/v1/char", q, nil, &resp); err != nil {
		return 0, err
	}
	if len(resp.Char) != 1 {
		return 0, errors.Errorf("randengine: expected a single character, got %q", resp.Char)
	}
	return resp.Char[0], nil
}

func (c *Client) String(ctx context.Context, classes random.Class, length int) (string, error) {
	q := url.Values{}
	q.Set("classes", classes.String())
	q.Set("length", strconv.Itoa(length))

	var resp StringResponse
	if err := c.do(ctx, http.MethodGet, "/v1/string", q, nil, &resp); err != nil {
		return "", err
	}
	return resp.String, nil
}

func (c *Client) Shuffle(ctx context.Context, items []json.RawMessage) ([]json.RawMessage, error) {
	var resp ShuffleResponse
	if err := c.do(ctx, http.MethodPost, "/v1/shuffle", nil, ShuffleRequest{Items: items}, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// ShuffleAs shuffles items on the server, encoding each element as JSON.
func ShuffleAs[T any](ctx context.Context, c *Client, items []T) ([]T, error) {
	raw := make([]json.RawMessage, len(items))
	for i, item := range items {
		bs, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		raw[i] = bs
	}

	shuffled, err := c.Shuffle(ctx, raw)
	if err != nil {
		return nil, err
	}

	out := make([]T, len(shuffled))
	for i, bs := range shuffled {
		if err := json.Unmarshal(bs, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	req, err := c.c.NewRequestWithContext(ctx, method, path)
	if err != nil {
		return err
	}
	req.Header.Set(web.HeaderAccept, web.MIMEApplicationJSON)
	if body != nil {
		if err := req.SetBodyJson(body); err != nil {
			return err
		}
	}

	resp, err := c.c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
			errResp.Error = http.StatusText(resp.StatusCode)
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: errResp.Error}
	}
	return resp.BindBodyJson(out)
}
