// Package marketplace browses remote extension repositories through
// the GitHub contents API.
package marketplace

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Limiter gates outbound API calls. Acquire blocks until a call is
// admitted.
type Limiter interface {
	Acquire()
}

// Listing is one installable extension found in a repository.
type Listing struct {
	Name        string
	DownloadURL string
	Source      string
}

// contentsEntry is the subset of the GitHub contents API response the
// marketplace needs.
type contentsEntry struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// Client fetches extension listings. All requests pass through the
// rate limiter; a token, when set, lifts GitHub's unauthenticated
// quota.
type Client struct {
	httpClient *http.Client
	limiter    Limiter
	token      string
}

// NewClient creates a marketplace client using limiter for all
// outbound calls.
func NewClient(limiter Limiter) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    limiter,
	}
}

// SetToken sets the GitHub personal access token used for
// authenticated requests. An empty token clears it.
func (c *Client) SetToken(tok string) {
	c.token = tok
}

// Search queries each source for .js entries whose name contains
// query, case-insensitively. Source order is preserved in the results.
func (c *Client) Search(sources []string, query string) ([]Listing, error) {
	query = strings.ToLower(query)

	var listings []Listing
	for _, source := range sources {
		entries, err := c.fetchContents(source)
		if err != nil {
			return listings, err
		}

		for _, entry := range entries {
			if entry.Type == "dir" {
				continue
			}
			if !strings.HasSuffix(entry.Name, ".js") {
				continue
			}
			if query != "" && !strings.Contains(strings.ToLower(entry.Name), query) {
				continue
			}
			listings = append(listings, Listing{
				Name:        entry.Name,
				DownloadURL: entry.DownloadURL,
				Source:      source,
			})
		}
	}

	return listings, nil
}

// Download fetches a listing into destDir and returns the written
// path.
func (c *Client) Download(listing Listing, destDir string) (string, error) {
	body, err := c.get(listing.DownloadURL)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", listing.Name, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", listing.Name, err)
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("create %s: %w", destDir, err)
	}

	dest := filepath.Join(destDir, listing.Name)
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return "", fmt.Errorf("install %s: %w", listing.Name, err)
	}
	return dest, nil
}

// fetchContents retrieves and decodes one contents API listing.
func (c *Client) fetchContents(source string) ([]contentsEntry, error) {
	body, err := c.get(source)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", source, err)
	}
	defer body.Close()

	var entries []contentsEntry
	if err := json.NewDecoder(body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}
	return entries, nil
}

// get performs a rate-limited GET, attaching the token when present.
func (c *Client) get(url string) (io.ReadCloser, error) {
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
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}
