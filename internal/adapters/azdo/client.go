package azdo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/sirupsen/logrus"

	"github.com/bnema/azdo-agent-scaler/internal/domain"
	"github.com/bnema/azdo-agent-scaler/internal/ports"
)

const (
	DefaultBaseURL    = "https://dev.azure.com"
	DefaultAPIVersion = "7.1"

	maxResponseBytes      = 16 << 20
	maxErrorSnippetBytes  = 512
	defaultRequestTimeout = 30 * time.Second
)

// ErrUnauthorized is returned when the service rejects the token. Azure
// DevOps answers a bad token on some routes with a 203 sign-in page instead
// of a 401, so both map here.
var ErrUnauthorized = errors.New("azure devops rejected the credentials")

type Config struct {
	BaseURL        string
	Organization   string
	Token          string
	APIVersion     string
	RequestTimeout time.Duration
	HTTPClient     *http.Client
	Logger         *logrus.Entry
}

// Client talks to the distributed task REST API of one organization.
type Client struct {
	baseURL        *url.URL
	token          string
	apiVersion     string
	requestTimeout time.Duration
	httpClient     *http.Client
	log            *logrus.Entry
}

var _ ports.PoolGateway = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	organization := strings.Trim(strings.TrimSpace(cfg.Organization), "/")
	if organization == "" {
		return nil, errors.New("azure devops organization is required")
	}
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, fmt.Errorf("azure devops token: %w", domain.ErrMissingCredential)
	}

	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	parsed, err := url.Parse(strings.TrimRight(base, "/") + "/" + url.PathEscape(organization) + "/")
	if err != nil {
		return nil, fmt.Errorf("parse azure devops base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("azure devops base url %q must be absolute", base)
	}

	c := &Client{
		baseURL:        parsed,
		token:          cfg.Token,
		apiVersion:     cfg.APIVersion,
		requestTimeout: cfg.RequestTimeout,
		httpClient:     cfg.HTTPClient,
		log:            cfg.Logger,
	}
	if c.apiVersion == "" {
		c.apiVersion = DefaultAPIVersion
	}
	if c.requestTimeout <= 0 {
		c.requestTimeout = defaultRequestTimeout
	}
	if c.httpClient == nil {
		c.httpClient = cleanhttp.DefaultPooledClient()
	}
	if c.log == nil {
		c.log = logrus.WithField("component", "azdo")
	}

	return c, nil
}

func (c *Client) ResolvePool(ctx context.Context, name string) (domain.PoolID, error) {
	var pools listResponse[agentPool]
	if err := c.getJSON(ctx, "_apis/distributedtask/pools", nil, &pools); err != nil {
		return 0, fmt.Errorf("list agent pools: %w", err)
	}

	for _, pool := range pools.Value {
		if strings.EqualFold(pool.Name, name) {
			return domain.PoolID(pool.ID), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", domain.ErrPoolNotFound, name)
}

func (c *Client) CountOnlineAgents(ctx context.Context, pool domain.PoolID) (int, error) {
	agents, err := c.listAgents(ctx, pool, false)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, a := range agents {
		if a.online() {
			count++
		}
	}
	return count, nil
}

func (c *Client) CountWaitingJobs(ctx context.Context, pool domain.PoolID) (int, error) {
	// Without a limit the service returns the pool's whole request history.
	query := url.Values{"completedRequestCount": {"0"}}

	var jobs listResponse[jobRequest]
	if err := c.getJSON(ctx, poolPath(pool, "jobrequests"), query, &jobs); err != nil {
		return 0, fmt.Errorf("list job requests of pool %d: %w", pool, err)
	}

	count := 0
	for _, job := range jobs.Value {
		if job.waiting() {
			count++
		}
	}
	return count, nil
}

func (c *Client) FindIdleAgent(ctx context.Context, pool domain.PoolID) (*domain.IdleAgentRef, error) {
	agents, err := c.listAgents(ctx, pool, true)
	if err != nil {
		return nil, err
	}

	for _, a := range agents {
		if a.online() && !a.assigned() {
			return &domain.IdleAgentRef{ID: a.ID, Name: a.Name}, nil
		}
	}
	return nil, nil
}

func (c *Client) RemoveAgent(ctx context.Context, pool domain.PoolID, agentID int) error {
	resp, err := c.do(ctx, http.MethodDelete, poolPath(pool, "agents", strconv.Itoa(agentID)), nil)
	if err != nil {
		return fmt.Errorf("remove agent %d from pool %d: %w", agentID, pool, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	c.log.WithFields(logrus.Fields{"pool_id": int(pool), "agent_id": agentID}).Debug("agent removed from pool")
	return nil
}

func (c *Client) listAgents(ctx context.Context, pool domain.PoolID, includeAssigned bool) ([]agent, error) {
	query := url.Values{}
	if includeAssigned {
		query.Set("includeAssignedRequest", "true")
	}

	var agents listResponse[agent]
	if err := c.getJSON(ctx, poolPath(pool, "agents"), query, &agents); err != nil {
		return nil, fmt.Errorf("list agents of pool %d: %w", pool, err)
	}
	return agents.Value, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, query)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// do issues one request and returns the response only for 2xx
// statuses other than 203. The caller closes the body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values) (*http.Response, error) {
	endpoint := c.endpoint(path, query)

	requestCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	req, err := http.NewRequestWithContext(requestCtx, method, endpoint, nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth("", c.token)
	req.Header.Set("Accept", "application/json")

	c.log.WithFields(logrus.Fields{"method": method, "path": path}).Debug("azure devops request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	resp.Body = cancelOnClose{ReadCloser: resp.Body, cancel: cancel}

	switch {
	case resp.StatusCode == http.StatusNonAuthoritativeInfo,
		resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden:
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%s %s: status %s: %w", method, path, resp.Status, ErrUnauthorized)
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		snippet := readSnippet(resp.Body)
		_ = resp.Body.Close()
		if snippet == "" {
			return nil, fmt.Errorf("%s %s: unexpected status %s", method, path, resp.Status)
		}
		return nil, fmt.Errorf("%s %s: unexpected status %s: %s", method, path, resp.Status, snippet)
	}

	return resp, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL.JoinPath(path)
	if query == nil {
		query = url.Values{}
	}
	query.Set("api-version", c.apiVersion)
	u.RawQuery = query.Encode()
	return u.String()
}

func poolPath(pool domain.PoolID, segments ...string) string {
	parts := append([]string{"_apis/distributedtask/pools", strconv.Itoa(int(pool))}, segments...)
	return strings.Join(parts, "/")
}

func readSnippet(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, maxErrorSnippetBytes))
	return strings.TrimSpace(string(data))
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
