package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/net/publicsuffix"

	"github.com/gpahal/randengine/retry"
	"github.com/gpahal/randengine/web"
)

const (
	defaultTimeout = 30 * time.Second
)

type Client struct {
	client    *http.Client
	baseUrl   *url.URL
	header    http.Header
	retryOpts retry.Options
	logger    zerolog.Logger
}

type Options struct {
	BaseUrl          *url.URL
	BaseUrlString    string
	Timeout          time.Duration
	Header           http.Header
	RetryOpts        retry.Options
	IncludeCookieJar bool
	Transport        http.RoundTripper
	Logger           *zerolog.Logger
}

func New() (*Client, error) {
	return NewWithOptions(Options{})
}

func NewWithOptions(opts Options) (*Client, error) {
	baseUrl := opts.BaseUrl
	if baseUrl == nil && opts.BaseUrlString != "" {
		var err error
		baseUrl, err = url.Parse(opts.BaseUrlString)
		if err != nil {
			return nil, err
		}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	var cookieJar http.CookieJar
	if opts.IncludeCookieJar {
		cookieJar, _ = cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	}

	transport := opts.Transport
	if transport == nil {
		transport = &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: 10 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout: 10 * time.Second,
		}
	}

	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: transport,
		Jar:       cookieJar,
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	retryOpts := opts.RetryOpts
	if retryOpts.Stopper != nil {
		retryOpts.Stopper = retry.AnyStopper(retry.ContextStopper(), retryOpts.Stopper)
	}
	if retryOpts.OnRetry == nil {
		retryOpts.OnRetry = func(attempts int, delay time.Duration, err error) {
			logger.Warn().Err(err).Int("attempts", attempts).Dur("delay", delay).Msg("retrying request")
		}
	}

	return &Client{client: httpClient, baseUrl: baseUrl, header: opts.Header, retryOpts: retryOpts, logger: logger}, nil
}

type Request struct {
	*http.Request
}

func (c Client) NewRequest(method, urlString string) (*Request, error) {
	return c.NewRequestWithContext(context.Background(), method, urlString)
}

func (c Client) NewRequestWithContext(ctx context.Context, method, urlString string) (*Request, error) {
	url, err := url.Parse(urlString)
	if err != nil {
		return nil, err
	}

	fullURL := url.String()
	if c.baseUrl != nil {
		fullURL = c.baseUrl.ResolveReference(url).String()
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, err
	}

	if c.header != nil {
		httpReq.Header = c.header.Clone()
	}
	return &Request{Request: httpReq}, nil
}

// SetBody replaces the request body. Bodies backed by a bytes.Buffer,
// bytes.Reader or strings.Reader can be replayed when the request is retried.
func (req *Request) SetBody(body io.Reader) error {
	r, err := http.NewRequestWithContext(req.Context(), req.Method, req.URL.String(), body)
	if err != nil {
		return err
	}

	req.Body = r.Body
	req.GetBody = r.GetBody
	req.ContentLength = r.ContentLength
	return nil
}

func (req *Request) SetBodyJson(body any) error {
	req.Header.Set(web.HeaderContentType, web.MIMEApplicationJSON)
	bs, err := json.Marshal(body)
	if err != nil {
		return err
	}

	return req.SetBody(bytes.NewReader(bs))
}

type Response struct {
	*http.Response
}

func (resp Response) GetBodyString() (string, error) {
	bs, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(bs), nil
}

func (resp Response) BindBodyJson(v any) error {
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(err, "decode response body")
	}
	return nil
}

// Do sends req, retrying transport failures per the client's retry options.
// Requests with a body are only retried when the body can be replayed.
func (c Client) Do(req *Request) (*Response, error) {
	var resp *Response
	var lastErr error
	attempt := 0
	err := retry.DoWithContext(req.Context(), func() error {
		attempt++
		if attempt > 1 && req.Body != nil && req.Body != http.NoBody {
			if req.GetBody == nil {
				return retry.ErrStop
			}
			body, err := req.GetBody()
			if err != nil {
				return err
			}
			req.Body = body
		}

		httpResp, err := c.client.Do(req.Request)
		if err != nil {
			lastErr = err
			return err
		}

		resp = &Response{Response: httpResp}
		return nil
	}, c.retryOpts)
	if err == retry.ErrStop && lastErr != nil {
		err = lastErr
	}

	if err != nil {
		c.logger.Debug().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("request failed")
	}
	return resp, err
}
