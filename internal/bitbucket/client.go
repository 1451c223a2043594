package bitbucket

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Deymos01/pr-auto-reviewer/internal/config"
	"github.com/Deymos01/pr-auto-reviewer/internal/domains"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxErrorBody = 4 << 10

type Client struct {
	baseURL     string
	username    string
	appPassword string
	token       string
	httpClient  *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default client. No timeout is applied otherwise.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(cfg config.BitbucketConfig, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		username:    cfg.Username,
		appPassword: cfg.AppPassword,
		token:       cfg.Token,
		httpClient:  &http.Client{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type pullRequest struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	State       string `json:"state"`
}

type page struct {
	Values []pullRequest `json:"values"`
	Next   string        `json:"next"`
}

type commentRequest struct {
	Content struct {
		Raw string `json:"raw"`
	} `json:"content"`
}

type updateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	State       string `json:"state"`
}

// ListOpenPullRequests walks every page of open pull requests and returns
// them in the order the API lists them.
func (c *Client) ListOpenPullRequests(ctx context.Context, workspace, repoSlug string) ([]domains.PullRequest, error) {
	const op = "bitbucket.ListOpenPullRequests"

	current := c.pullRequestsURL(workspace, repoSlug) + "?state=OPEN"
	seen := make(map[string]struct{})

	var raw []pullRequest
	for current != "" {
		if _, ok := seen[current]; ok {
			break
		}
		seen[current] = struct{}{}

		body, err := c.do(ctx, op, http.MethodGet, current, nil)
		if err != nil {
			return nil, err
		}

		var p page
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, &HostError{Op: op, Err: fmt.Errorf("decode page: %w", err)}
		}

		raw = append(raw, p.Values...)

		current, err = nextPage(current, p.Next)
		if err != nil {
			return nil, &HostError{Op: op, Err: err}
		}
	}

	return lo.Map(raw, func(pr pullRequest, _ int) domains.PullRequest {
		return domains.PullRequest{
			ID:          pr.ID,
			Title:       pr.Title,
			Description: pr.Description,
			State:       domains.PullRequestState(pr.State),
		}
	}), nil
}

// nextPage resolves the "next" link of a page against the page it came from.
// Credentials go with every request, so links to another scheme or host are refused.
func nextPage(current, next string) (string, error) {
	if next == "" {
		return "", nil
	}

	base, err := url.Parse(current)
	if err != nil {
		return "", fmt.Errorf("parse page url: %w", err)
	}

	ref, err := url.Parse(next)
	if err != nil {
		return "", fmt.Errorf("parse next page link: %w", err)
	}

	resolved := base.ResolveReference(ref)
	if !strings.EqualFold(resolved.Scheme, base.Scheme) || !strings.EqualFold(resolved.Host, base.Host) {
		return "", fmt.Errorf("%w: %s://%s", ErrForeignPage, resolved.Scheme, resolved.Host)
	}

	return resolved.String(), nil
}

func (c *Client) GetDiff(ctx context.Context, workspace, repoSlug string, prID int64) (string, error) {
	const op = "bitbucket.GetDiff"

	body, err := c.do(ctx, op, http.MethodGet, c.pullRequestURL(workspace, repoSlug, prID)+"/diff", nil)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

func (c *Client) CreateComment(ctx context.Context, workspace, repoSlug string, prID int64, text string) error {
	const op = "bitbucket.CreateComment"

	var req commentRequest
	req.Content.Raw = text

	payload, err := json.Marshal(req)
	if err != nil {
		return &HostError{Op: op, Err: err}
	}

	_, err = c.do(ctx, op, http.MethodPost, c.pullRequestURL(workspace, repoSlug, prID)+"/comments", payload)
	return err
}

func (c *Client) UpdatePullRequest(
	ctx context.Context,
	workspace, repoSlug string,
	prID int64,
	upd domains.PullRequestUpdate,
) error {
	const op = "bitbucket.UpdatePullRequest"

	payload, err := json.Marshal(updateRequest{
		Title:       upd.Title,
		Description: upd.Description,
		State:       string(upd.State),
	})
	if err != nil {
		return &HostError{Op: op, Err: err}
	}

	_, err = c.do(ctx, op, http.MethodPut, c.pullRequestURL(workspace, repoSlug, prID), payload)
	return err
}

func (c *Client) pullRequestsURL(workspace, repoSlug string) string {
	return c.baseURL + "/repositories/" + url.PathEscape(workspace) + "/" + url.PathEscape(repoSlug) + "/pullrequests"
}

func (c *Client) pullRequestURL(workspace, repoSlug string, prID int64) string {
	return c.pullRequestsURL(workspace, repoSlug) + "/" + strconv.FormatInt(prID, 10)
}

func (c *Client) do(ctx context.Context, op, method, target string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &HostError{Op: op, Err: err}
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &HostError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, statusError(op, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &HostError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	return data, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
		return
	}
	req.SetBasicAuth(c.username, c.appPassword)
}
