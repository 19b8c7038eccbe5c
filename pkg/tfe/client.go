package tfe

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"
)

const (
	apiBasePath = "/api/v2"
	mediaType   = "application/vnd.api+json"

	// listPageSize is the page size requested from list endpoints.
	listPageSize = 100
)

// ClientConfig is the per-invocation connection configuration. It is
// consumed once by NewClient; the resulting client never mutates it, so
// concurrent invocations can each build their own client safely.
type ClientConfig struct {
	// Address is the Terraform Enterprise base URL.
	Address string

	// Token is the bearer token used for every request.
	Token string

	// SkipVerify disables TLS certificate validation.
	SkipVerify bool

	// UseProxy honors proxy settings from the environment.
	UseProxy bool

	// Retry bounds the retry loop around each API call.
	Retry RetryPolicy

	// Logger receives debug-level request logging. Optional.
	Logger hclog.Logger
}

// Validate checks the configuration before any remote call is made.
func (c ClientConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Address, validation.Required, is.URL),
		validation.Field(&c.Token, validation.Required),
	)
}

// Client talks to the Terraform Enterprise v2 API. All methods follow the
// same envelope convention: list endpoints return a Collection, everything
// else a Document. Each call is retried per the client's RetryPolicy.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	retry   RetryPolicy
	logger  hclog.Logger

	Organizations *Organizations
	Workspaces    *Workspaces
	Teams         *Teams
	TeamAccess    *TeamAccess
	OAuthClients  *OAuthClients
	SSHKeys       *SSHKeys
	Variables     *Variables
	Runs          *Runs
	Memberships   *OrganizationMemberships
}

// NewClient validates cfg and returns a ready client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid client configuration: %w", err)
	}

	baseURL, err := url.Parse(strings.TrimSuffix(cfg.Address, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid address %q: %w", cfg.Address, err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	retry := cfg.Retry
	if retry.Retries == 0 && retry.Sleep == 0 {
		retry = DefaultRetryPolicy()
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: cfg.SkipVerify},
	}
	if cfg.UseProxy {
		transport.Proxy = http.ProxyFromEnvironment
	}

	c := &Client{
		baseURL: baseURL,
		http: &http.Client{
			Transport: &oauth2.Transport{
				Base:   transport,
				Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}),
			},
		},
		retry:  retry,
		logger: logger.Named("tfe"),
	}

	c.Organizations = &Organizations{client: c}
	c.Workspaces = &Workspaces{client: c}
	c.Teams = &Teams{client: c}
	c.TeamAccess = &TeamAccess{client: c}
	c.OAuthClients = &OAuthClients{client: c}
	c.SSHKeys = &SSHKeys{client: c}
	c.Variables = &Variables{client: c}
	c.Runs = &Runs{client: c}
	c.Memberships = &OrganizationMemberships{client: c}
	return c, nil
}

// do performs one API call with retries, decoding the response into out
// when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	_, err := Call(ctx, c.retry, func() (struct{}, error) {
		return struct{}{}, c.roundTrip(ctx, method, path, query, body, out)
	})
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	op := method + " " + path

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	req.Header.Set("Accept", mediaType)
	if body != nil {
		req.Header.Set("Content-Type", mediaType)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	c.logger.Debug("calling api", "method", method, "path", path, "request_id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Op: op, Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode >= 400 {
		return errorFromResponse(op, resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// listAll walks every page of a list endpoint and returns the merged
// collection. Each page fetch is an individual retried call; pages are
// fetched sequentially in program order.
func (c *Client) listAll(ctx context.Context, path string, query url.Values) (*Collection, error) {
	all := &Collection{}
	page := 1
	for {
		q := url.Values{}
		for k, vs := range query {
			q[k] = vs
		}
		q.Set("page[number]", strconv.Itoa(page))
		q.Set("page[size]", strconv.Itoa(listPageSize))

		var col Collection
		if err := c.do(ctx, http.MethodGet, path, q, nil, &col); err != nil {
			return nil, err
		}
		all.Data = append(all.Data, col.Data...)
		all.Included = append(all.Included, col.Included...)

		if col.Meta == nil || col.Meta.Pagination == nil || col.Meta.Pagination.NextPage == nil {
			return all, nil
		}
		page = *col.Meta.Pagination.NextPage
	}
}

// includeQuery builds the standard ?include= query, nil when empty.
func includeQuery(include []string) url.Values {
	if len(include) == 0 {
		return nil
	}
	q := url.Values{}
	q.Set("include", strings.Join(include, ","))
	return q
}
