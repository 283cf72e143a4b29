package hubstaff

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
)

// authResp accepts the token either at the top level or nested under user.
type authResp struct {
	AuthToken string `json:"auth_token"`
	User      struct {
		AuthToken string `json:"auth_token"`
	} `json:"user"`
}

// Authenticate posts the credentials to people/auth and keeps the returned
// session token. Nothing is cached: each call performs a fresh login.
func (c *Client) Authenticate(ctx context.Context) (*oauth2.Token, error) {
	c.logger.Printf("Logging in to Hubstaff as %s", c.creds.Email)

	form := url.Values{
		"email":    {c.creds.Email},
		"password": {c.creds.Password},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/people/auth", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(AppTokenHeader, c.appToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &AuthenticationError{Err: fmt.Errorf("auth request: %w", err)}
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, &AuthenticationError{StatusCode: resp.StatusCode, Err: fmt.Errorf("reading auth response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &AuthenticationError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var ar authResp
	if err := json.Unmarshal(body, &ar); err != nil {
		return nil, &AuthenticationError{StatusCode: resp.StatusCode, Body: string(body), Err: fmt.Errorf("decoding auth response: %w", err)}
	}
	token := ar.AuthToken
	if token == "" {
		token = ar.User.AuthToken
	}
	if token == "" {
		return nil, &AuthenticationError{StatusCode: resp.StatusCode, Body: string(body), Err: fmt.Errorf("no auth_token in response")}
	}

	// Sent as the auth_token query parameter, not as an Authorization header.
	c.session = &oauth2.Token{AccessToken: token}
	return c.session, nil
}
