// Package updates checks GitHub releases for newer versions of
// spicetify and of this app.
package updates

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	spicetifyReleaseURL = "https://api.github.com/repos/spicetify/cli/releases/latest"
	appReleaseURL       = "https://api.github.com/repos/spiceman/spiceman/releases/latest"
)

// Limiter gates outbound API calls.
type Limiter interface {
	Acquire()
}

// Check is the outcome of one update check.
type Check struct {
	Name      string
	Installed string
	Latest    string
	URL       string
}

// Outdated reports whether the latest release differs from the
// installed version. Versions are compared after stripping a leading
// "v"; an unknown installed version never reports outdated.
func (c Check) Outdated() bool {
	installed := strings.TrimPrefix(c.Installed, "v")
	latest := strings.TrimPrefix(c.Latest, "v")
	return installed != "" && latest != "" && installed != latest
}

// Notice renders the one-line notification for the log pane.
func (c Check) Notice() string {
	if !c.Outdated() {
		return fmt.Sprintf("%s %s is up to date", c.Name, c.Installed)
	}
	return fmt.Sprintf("%s %s available (installed %s): %s", c.Name, c.Latest, c.Installed, c.URL)
}

// release is the subset of the GitHub releases API response we read.
type release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Checker queries the releases API through the shared rate limiter.
type Checker struct {
	httpClient *http.Client
	limiter    Limiter
	token      string

	spicetifyURL string
	appURL       string
}

// NewChecker creates a Checker using limiter for all outbound calls.
func NewChecker(limiter Limiter) *Checker {
	return &Checker{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		limiter:      limiter,
		spicetifyURL: spicetifyReleaseURL,
		appURL:       appReleaseURL,
	}
}

// SetToken sets the GitHub personal access token used for
// authenticated requests.
func (c *Checker) SetToken(tok string) {
	c.token = tok
}

// Spicetify compares the installed spicetify version against the
// latest CLI release.
func (c *Checker) Spicetify(installed string) (Check, error) {
	return c.check("spicetify", installed, c.spicetifyURL)
}

// App compares this app's build version against its latest release.
func (c *Checker) App(installed string) (Check, error) {
	return c.check("spiceman", installed, c.appURL)
}

func (c *Checker) check(name, installed, url string) (Check, error) {
	rel, err := c.latest(url)
	if err != nil {
		return Check{}, fmt.Errorf("check %s updates: %w", name, err)
	}

	return Check{
		Name:      name,
		Installed: installed,
		Latest:    rel.TagName,
		URL:       rel.HTMLURL,
	}, nil
}

// latest fetches one releases/latest document, rate-limited.
func (c *Checker) latest(url string) (*release, error) {
	c.limiter.Acquire()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var rel release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	return &rel, nil
}
