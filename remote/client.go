// Package remote implements the console's Store over the organization REST API
// using fasthttp.
package remote

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/b2b-console/orgconsole/console"
	"github.com/b2b-console/orgconsole/model"
	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const (
	defaultTimeout = 10 * time.Second
	jsonType       = "application/json"
)

// Client talks to the organization store
type Client struct {
	baseURL     string
	http        *fasthttp.Client
	timeout     time.Duration
	readRetries uint64
	logger      *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the fasthttp client, e.g. to dial an in-memory listener
func WithHTTPClient(hc *fasthttp.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout bounds every request that has no earlier context deadline
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithReadRetries retries failed GET requests up to n times with exponential
// backoff. 4xx responses are not retried and mutations never are.
func WithReadRetries(n uint64) Option {
	return func(c *Client) {
		c.readRetries = n
	}
}

// WithLogger sets the request logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New returns a client for the store at baseURL, e.g. http://localhost:8000
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &fasthttp.Client{
			Name:                "orgconsole",
			MaxIdleConnDuration: 90 * time.Second,
		},
		timeout: defaultTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListOrganizations returns the list rows in store order
func (c *Client) ListOrganizations(ctx context.Context) ([]model.OrgSummary, error) {
	var orgs []model.OrgSummary
	if err := c.read(ctx, "list organizations", "/organisations", &orgs); err != nil {
		return nil, err
	}
	if orgs == nil {
		orgs = []model.OrgSummary{}
	}
	return orgs, nil
}

// GetOrganization returns the full document of orgID including its users
func (c *Client) GetOrganization(ctx context.Context, orgID string) (*model.Organization, error) {
	var org model.Organization
	if err := c.read(ctx, "get organization", orgPath(orgID), &org); err != nil {
		return nil, err
	}
	if org.Users == nil {
		org.Users = []model.User{}
	}
	return &org, nil
}

// CreateOrganization creates an organization and returns its org_id
func (c *Client) CreateOrganization(ctx context.Context, in model.OrganizationCreate) (string, error) {
	var created struct {
		OrgID string `json:"org_id"`
	}
	if err := c.do(ctx, "create organization", fasthttp.MethodPost, "/organisations", in, &created); err != nil {
		return "", err
	}
	return created.OrgID, nil
}

// UpdateOrganization sends the set fields of doc
func (c *Client) UpdateOrganization(ctx context.Context, orgID string, doc model.OrganizationUpdate) error {
	return c.do(ctx, "update organization", fasthttp.MethodPut, orgPath(orgID), doc, nil)
}

// UpdateOrganizationStatus moves orgID to status
func (c *Client) UpdateOrganizationStatus(ctx context.Context, orgID string, status model.Status) error {
	path := orgPath(orgID) + "/status?status=" + url.QueryEscape(string(status))
	return c.do(ctx, "update organization status", fasthttp.MethodPut, path, nil, nil)
}

// DeleteOrganization deletes orgID and its users
func (c *Client) DeleteOrganization(ctx context.Context, orgID string) error {
	return c.do(ctx, "delete organization", fasthttp.MethodDelete, orgPath(orgID), nil, nil)
}

// CreateUser creates a user of orgID and returns its user_id
func (c *Client) CreateUser(ctx context.Context, orgID string, in model.UserInput) (string, error) {
	var created struct {
		UserID string `json:"user_id"`
	}
	if err := c.do(ctx, "create user", fasthttp.MethodPost, orgPath(orgID)+"/users", in, &created); err != nil {
		return "", err
	}
	return created.UserID, nil
}

// UpdateUser replaces the name and role of a user of orgID
func (c *Client) UpdateUser(ctx context.Context, orgID, userID string, in model.UserInput) error {
	return c.do(ctx, "update user", fasthttp.MethodPut, userPath(orgID, userID), in, nil)
}

// DeleteUser deletes a user of orgID
func (c *Client) DeleteUser(ctx context.Context, orgID, userID string) error {
	return c.do(ctx, "delete user", fasthttp.MethodDelete, userPath(orgID, userID), nil, nil)
}

func orgPath(orgID string) string {
	return "/organisations/" + url.PathEscape(orgID)
}

func userPath(orgID, userID string) string {
	return orgPath(orgID) + "/users/" + url.PathEscape(userID)
}

// read issues a GET, retrying transport errors and 5xx responses when configured
func (c *Client) read(ctx context.Context, op, path string, out interface{}) error {
	if c.readRetries == 0 {
		return c.do(ctx, op, fasthttp.MethodGet, path, nil, out)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 100 * time.Millisecond
	bo.MaxInterval = 2 * time.Second

	return backoff.RetryNotify(func() error {
		err := c.do(ctx, op, fasthttp.MethodGet, path, nil, out)
		var reqErr *RequestError
		if errors.As(err, &reqErr) && !reqErr.retryable() {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(bo, c.readRetries), ctx), func(err error, next time.Duration) {
		c.logger.Warn("retrying read", zap.String("op", op), zap.Duration("in", next), zap.Error(err))
	})
}

// do sends one request. Every failure is returned as a *RequestError.
func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	fail := func(status int, detail string, err error) error {
		return &RequestError{Op: op, Method: method, Path: path, Status: status, Detail: detail, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return fail(0, "", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderAccept, jsonType)
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fail(0, "", errors.Wrap(err, "encode request body"))
		}
		req.Header.SetContentType(jsonType)
		req.SetBody(data)
	}

	start := time.Now()
	if err := c.send(ctx, req, resp); err != nil {
		return fail(0, "", err)
	}
	status := resp.StatusCode()
	c.logger.Debug("store request",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("took", time.Since(start)),
	)

	if status < 200 || status > 299 {
		return fail(status, errorDetail(resp.Body()), errors.Errorf("unexpected status %d", status))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fail(status, "", errors.Wrap(err, "decode response body"))
	}
	return nil
}

// send uses the context deadline when it is earlier than the client timeout
func (c *Client) send(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	deadline, ok := ctx.Deadline()
	if c.timeout > 0 {
		if byTimeout := time.Now().Add(c.timeout); !ok || byTimeout.Before(deadline) {
			deadline, ok = byTimeout, true
		}
	}
	if ok {
		return c.http.DoDeadline(req, resp, deadline)
	}
	return c.http.Do(req, resp)
}

// errorDetail extracts the "detail" message of an error body
func errorDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return strings.TrimSpace(string(body))
}

var _ console.Store = (*Client)(nil)
