package airtable

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// UpstreamError is returned when the platform rejects a call. The body is
// best-effort diagnostic text for operators and must never be surfaced to
// end users beyond a generic category.
type UpstreamError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("airtable %s failed: status %d: %s", e.Operation, e.StatusCode, e.Body)
}

// Client talks to the Airtable OAuth and REST APIs.
type Client struct {
	h            *http.Client
	clientID     string
	clientSecret string
	tokenURL     string
	apiURL       string
}

// ClientArgs configures a Client. TokenURL and APIURL default to the public
// Airtable endpoints and are overridable for tests.
type ClientArgs struct {
	H            *http.Client
	ClientID     string
	ClientSecret string
	TokenURL     string
	APIURL       string
}

// NewClient creates an Airtable API client.
func NewClient(args ClientArgs) *Client {
	if args.H == nil {
		args.H = &http.Client{Timeout: 10 * time.Second}
	}
	if args.TokenURL == "" {
		args.TokenURL = "https://airtable.com/oauth2/v1/token"
	}
	if args.APIURL == "" {
		args.APIURL = "https://api.airtable.com"
	}

	return &Client{
		h:            args.H,
		clientID:     args.ClientID,
		clientSecret: args.ClientSecret,
		tokenURL:     args.TokenURL,
		apiURL:       strings.TrimSuffix(args.APIURL, "/"),
	}
}

// ExchangeCode exchanges an authorization code plus PKCE verifier for tokens.
// The call is authenticated with the client credentials via Basic auth.
func (c *Client) ExchangeCode(ctx context.Context, code, redirectURI, codeVerifier string) (*TokenResponse, error) {
	params := url.Values{
		"code":          {code},
		"grant_type":    {"authorization_code"},
		"redirect_uri":  {redirectURI},
		"code_verifier": {codeVerifier},
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.tokenURL, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("error creating token request: %w", err)
	}

	credentials := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+credentials)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.h.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not get response from token endpoint: %w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read token response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Operation: "token exchange", StatusCode: resp.StatusCode, Body: string(b)}
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(b, &tokenResp); err != nil {
		return nil, fmt.Errorf("could not unmarshal token response: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return nil, &UpstreamError{Operation: "token exchange", StatusCode: resp.StatusCode, Body: "no access token in response"}
	}

	return &tokenResp, nil
}

// WhoAmI fetches the external identity bound to an access token.
func (c *Client) WhoAmI(ctx context.Context, accessToken string) (*Identity, error) {
	var identity Identity
	if err := c.getJSON(ctx, accessToken, "/v0/meta/whoami", "whoami", &identity); err != nil {
		return nil, err
	}

	if identity.ID == "" {
		return nil, fmt.Errorf("whoami response carried no identity id")
	}

	return &identity, nil
}

// ListBases lists the bases visible to the access token.
func (c *Client) ListBases(ctx context.Context, accessToken string) ([]Base, error) {
	var out basesResponse
	if err := c.getJSON(ctx, accessToken, "/v0/meta/bases", "list bases", &out); err != nil {
		return nil, err
	}
	return out.Bases, nil
}

// ListTables lists the tables of a base.
func (c *Client) ListTables(ctx context.Context, accessToken, baseID string) ([]Table, error) {
	var out tablesResponse
	path := fmt.Sprintf("/v0/meta/bases/%s/tables", url.PathEscape(baseID))
	if err := c.getJSON(ctx, accessToken, path, "list tables", &out); err != nil {
		return nil, err
	}
	return out.Tables, nil
}

// ListFields lists the field definitions of a table.
func (c *Client) ListFields(ctx context.Context, accessToken, baseID, tableID string) ([]Field, error) {
	tables, err := c.ListTables(ctx, accessToken, baseID)
	if err != nil {
		return nil, err
	}

	for _, table := range tables {
		if table.ID == tableID || table.Name == tableID {
			return table.Fields, nil
		}
	}

	return nil, &UpstreamError{Operation: "list fields", StatusCode: http.StatusNotFound, Body: fmt.Sprintf("table %s not found in base %s", tableID, baseID)}
}

// CreateRecord creates a single record in a table using the given token.
func (c *Client) CreateRecord(ctx context.Context, accessToken, baseID, tableID string, fields map[string]any) (*Record, error) {
	body, err := json.Marshal(recordsRequest{Records: []recordFields{{Fields: fields}}})
	if err != nil {
		return nil, fmt.Errorf("could not marshal record payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v0/%s/%s", c.apiURL, url.PathEscape(baseID), url.PathEscape(tableID))
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error creating record request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.h.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not get response for record create: %w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read record create body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, &UpstreamError{Operation: "create record", StatusCode: resp.StatusCode, Body: string(b)}
	}

	var out recordsResponse
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("could not unmarshal record create response: %w", err)
	}

	if len(out.Records) == 0 {
		return nil, &UpstreamError{Operation: "create record", StatusCode: resp.StatusCode, Body: "response carried no records"}
	}

	return &out.Records[0], nil
}

func (c *Client) getJSON(ctx context.Context, accessToken, path, operation string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.apiURL+path, nil)
	if err != nil {
		return fmt.Errorf("error creating %s request: %w", operation, err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.h.Do(req)
	if err != nil {
		return fmt.Errorf("could not get response for %s: %w", operation, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read %s body: %w", operation, err)
	}

	if resp.StatusCode != http.StatusOK {
		return &UpstreamError{Operation: operation, StatusCode: resp.StatusCode, Body: string(b)}
	}

	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("could not unmarshal %s response: %w", operation, err)
	}

	return nil
}
