// Package youtrack fetches issues from a YouTrack instance and maps them
// to gtd boards.
package youtrack

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
)

// issueFields is the projection requested for every issue fetch. Link
// traversal needs nested idReadable values; everything else feeds the
// board mapping.
const issueFields = "idReadable,summary,description,resolved,created,updated," +
	"tags(name),customFields(name,value(name,presentation))," +
	"links(direction,linkType(name,sourceToTarget,targetToSource)," +
	"issues(idReadable,summary,resolved,created,customFields(name,value(name,presentation))))"

// Fetcher retrieves one issue by its readable id. Within a run repeated
// fetches of the same id must return the same issue without a second
// network call.
type Fetcher interface {
	Fetch(ctx context.Context, id string) (*Issue, error)
}

// Client is a Fetcher over the YouTrack REST API with an on-disk response
// cache. Construct it with NewClient; the zero value is not usable.
type Client struct {
	baseURL  string
	token    string
	cacheDir string
	http     *http.Client
	memo     map[string]*Issue
}

// NewClient creates a Client. baseURL is the instance root, e.g.
// "https://example.youtrack.cloud". cacheDir is created if missing; cached
// responses survive across runs so re-renders do not refetch.
func NewClient(baseURL, token, cacheDir string) (*Client, error) {
	if cacheDir != "" {
		if err := os.MkdirAll(cacheDir, 0755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}
	return &Client{
		baseURL:  baseURL,
		token:    token,
		cacheDir: cacheDir,
		http:     &http.Client{Timeout: 30 * time.Second},
		memo:     make(map[string]*Issue),
	}, nil
}

// Fetch returns the issue for id, consulting the in-memory and on-disk
// caches before the network.
func (c *Client) Fetch(ctx context.Context, id string) (*Issue, error) {
	if issue, ok := c.memo[id]; ok {
		return issue, nil
	}

	if issue, ok := c.readCache(id); ok {
		log.WithField("issue", id).Debug("cache hit")
		c.memo[id] = issue
		return issue, nil
	}

	issue, err := c.get(ctx, id)
	if err != nil {
		return nil, err
	}
	c.writeCache(id, issue)
	c.memo[id] = issue
	return issue, nil
}

func (c *Client) get(ctx context.Context, id string) (*Issue, error) {
	u := fmt.Sprintf("%s/api/issues/%s?fields=%s", c.baseURL, url.PathEscape(id), url.QueryEscape(issueFields))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", id, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	log.WithField("issue", id).Info("fetching issue")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch issue %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch issue %s: %s\n%s", id, resp.Status, body)
	}

	var issue Issue
	if err := json.NewDecoder(resp.Body).Decode(&issue); err != nil {
		return nil, fmt.Errorf("parse issue %s: %w", id, err)
	}
	return &issue, nil
}

func (c *Client) cachePath(id string) string {
	return filepath.Join(c.cacheDir, id+".json")
}

func (c *Client) readCache(id string) (*Issue, bool) {
	if c.cacheDir == "" {
		return nil, false
	}
	data, err := os.ReadFile(c.cachePath(id))
	if err != nil {
		return nil, false
	}
	var issue Issue
	if err := json.Unmarshal(data, &issue); err != nil {
		// A corrupt cache entry falls through to a refetch.
		log.WithField("issue", id).WithError(err).Warn("discarding unreadable cache entry")
		return nil, false
	}
	return &issue, true
}

func (c *Client) writeCache(id string, issue *Issue) {
	if c.cacheDir == "" {
		return
	}
	data, err := json.MarshalIndent(issue, "", "  ")
	if err != nil {
		return
	}
	if err := os.WriteFile(c.cachePath(id), data, 0644); err != nil {
		log.WithField("issue", id).WithError(err).Warn("write cache entry")
	}
}
