package hubstaff

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/oauth2"

	"github.com/Tiliavir/hubstaff-activity-report/internal/config"
	"github.com/Tiliavir/hubstaff-activity-report/internal/model"
	"github.com/Tiliavir/hubstaff-activity-report/internal/timecalc"
)

// AppTokenHeader carries the application token on every request.
const AppTokenHeader = "AppToken"

const (
	connectTimeout = 30 * time.Second
	requestTimeout = 60 * time.Second
)

// Client is a Hubstaff API client. Unless WithTokenSource is given it logs
// in again before every top-level call; a Client must not be shared between
// concurrent jobs.
type Client struct {
	baseURL    string
	appToken   string
	creds      model.Credentials
	httpClient *http.Client
	logger     *log.Logger
	tokens     oauth2.TokenSource

	session *oauth2.Token
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenSource makes data calls take their auth_token from ts instead of
// logging in.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the account described by cfg.
func NewClient(cfg config.HubstaffConfig, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(cfg.APIURL, "/"),
		appToken: cfg.AppToken,
		creds:    model.Credentials{Email: cfg.Username, Password: cfg.Password},
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				DialContext:         (&net.Dialer{Timeout: connectTimeout}).DialContext,
				TLSHandshakeTimeout: connectTimeout,
			},
		},
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the token of the most recent login, or nil.
func (c *Client) Session() *oauth2.Token {
	return c.session
}

// Token logs in and returns a fresh session token, so a Client is an
// oauth2.TokenSource that never reuses a session.
func (c *Client) Token() (*oauth2.Token, error) {
	return loginSource{ctx: context.Background(), c: c}.Token()
}

// loginSource is a TokenSource bound to the context of one call.
type loginSource struct {
	ctx context.Context
	c   *Client
}

func (s loginSource) Token() (*oauth2.Token, error) {
	return s.c.Authenticate(s.ctx)
}

// tokenSource returns the configured source, or a login bound to ctx.
func (c *Client) tokenSource(ctx context.Context) oauth2.TokenSource {
	if c.tokens != nil {
		return c.tokens
	}
	return loginSource{ctx: ctx, c: c}
}

// authToken obtains the token for one data call.
func (c *Client) authToken(ctx context.Context) (*oauth2.Token, error) {
	tok, err := c.tokenSource(ctx).Token()
	if err != nil {
		var authErr *AuthenticationError
		if errors.As(err, &authErr) {
			return nil, err
		}
		return nil, &AuthenticationError{Err: err}
	}
	if !tok.Valid() {
		return nil, &AuthenticationError{Err: errors.New("session token is empty or expired")}
	}
	return tok, nil
}

// Organizations lists the organizations visible to the account.
func (c *Client) Organizations(ctx context.Context, page model.Pagination) ([]model.Organization, error) {
	tok, err := c.authToken(ctx)
	if err != nil {
		return nil, err
	}

	var out struct {
		Organizations []model.Organization `json:"organizations"`
	}
	if err := c.getJSON(ctx, "companies", pageParams(tok, page), organizationsSchema, &out); err != nil {
		return nil, err
	}
	return out.Organizations, nil
}

// WorkByDay fetches the daily activities of orgID for the inclusive range
// [start, stop]. Only the page described by page is requested.
func (c *Client) WorkByDay(ctx context.Context, orgID int64, start, stop time.Time, page model.Pagination) ([]model.DailyActivity, error) {
	tok, err := c.authToken(ctx)
	if err != nil {
		return nil, err
	}

	params := pageParams(tok, page)
	params.Set("date[start]", timecalc.FormatDate(start))
	params.Set("date[stop]", timecalc.FormatDate(stop))

	var out struct {
		DailyActivities []model.DailyActivity `json:"daily_activities"`
	}
	endpoint := fmt.Sprintf("companies/%d/work/by_day", orgID)
	if err := c.getJSON(ctx, endpoint, params, workByDaySchema, &out); err != nil {
		return nil, err
	}
	return out.DailyActivities, nil
}

func pageParams(tok *oauth2.Token, page model.Pagination) url.Values {
	if page.PageLimit <= 0 {
		page.PageLimit = model.DefaultPageLimit
	}
	return url.Values{
		"auth_token":    {tok.AccessToken},
		"page_start_id": {strconv.FormatInt(page.PageStartID, 10)},
		"page_limit":    {strconv.Itoa(page.PageLimit)},
	}
}

// getJSON issues an authenticated GET and decodes the schema-checked body.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, schema *gojsonschema.Schema, v any) error {
	reqURL := c.baseURL + "/" + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(AppTokenHeader, c.appToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{Endpoint: endpoint, Err: err}
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &UpstreamError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: string(body)}
	}
	return decodeValidated(endpoint, schema, body, v)
}
