// Package sourcing fetches candidate profiles from a ScrapingDog-compatible
// LinkedIn scraping API and converts them into candidate records.
package sourcing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/daniel/talent-ranker/internal/types"
)

const defaultBaseURL = "https://api.scrapingdog.com/linkedin"

// Profile is the subset of the scraping API's profile payload the system
// consumes. Field names follow the provider's JSON.
type Profile struct {
	FullName    string              `json:"fullName"`
	Headline    string              `json:"headline"`
	Location    string              `json:"location"`
	Email       string              `json:"email"`
	Skills      []string            `json:"skills"`
	Experiences []ProfileExperience `json:"experience"`
}

// ProfileExperience is one work-history entry in the scraped payload.
type ProfileExperience struct {
	Position    string `json:"position"`
	CompanyName string `json:"company_name"`
	StartsAt    string `json:"starts_at"`
	EndsAt      string `json:"ends_at"`
	Summary     string `json:"summary"`
}

// Client calls the scraping API over plain HTTP. The provider is a fallible
// external collaborator: every error is surfaced as a FetchError and the
// caller decides whether sourcing failure is fatal.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the provider endpoint, used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a sourcing client with a 30 second request timeout.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchProfile retrieves a public profile by its LinkedIn URL. The provider
// keys profiles by the trailing path segment of the URL.
func (c *Client) FetchProfile(ctx context.Context, profileURL string) (*Profile, error) {
	linkID, err := linkIDFromURL(profileURL)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("type", "profile")
	q.Set("linkId", linkID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, &FetchError{URL: profileURL, Message: "failed to build request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: profileURL, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &FetchError{
			URL:     profileURL,
			Message: fmt.Sprintf("provider returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	// The provider wraps single-profile lookups in a one-element array.
	var profiles []Profile
	if err := json.NewDecoder(resp.Body).Decode(&profiles); err != nil {
		return nil, &FetchError{URL: profileURL, Message: "failed to decode profile payload", Cause: err}
	}
	if len(profiles) == 0 {
		return nil, &FetchError{URL: profileURL, Message: "provider returned no profile"}
	}
	return &profiles[0], nil
}

// linkIDFromURL extracts the provider's profile key, the last non-empty path
// segment of the LinkedIn URL.
func linkIDFromURL(profileURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(profileURL))
	if err != nil || u.Host == "" {
		return "", &FetchError{URL: profileURL, Message: "invalid profile URL", Cause: err}
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	linkID := segments[len(segments)-1]
	if linkID == "" || linkID == "in" {
		return "", &FetchError{URL: profileURL, Message: "profile URL has no profile segment"}
	}
	return linkID, nil
}

// WorkHistory converts the scraped experience list into candidate
// experiences. Dates the provider formats loosely ("Jan 2020", "2019") parse
// through the lenient date layer; unparseable values become absent dates.
func (p *Profile) WorkHistory() []types.Experience {
	out := make([]types.Experience, 0, len(p.Experiences))
	for _, e := range p.Experiences {
		out = append(out, types.Experience{
			Role:        e.Position,
			Company:     e.CompanyName,
			StartDate:   types.ParseDate(e.StartsAt),
			EndDate:     types.ParseDate(e.EndsAt),
			Description: e.Summary,
		})
	}
	return out
}
