package azdo

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/azdo-agent-scaler/internal/domain"
)

type recordedRequest struct {
	method string
	path   string
	query  map[string]string
	auth   string
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *[]recordedRequest) {
	t.Helper()

	var requests []recordedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := map[string]string{}
		for key := range r.URL.Query() {
			query[key] = r.URL.Query().Get(key)
		}
		requests = append(requests, recordedRequest{
			method: r.Method,
			path:   r.URL.Path,
			query:  query,
			auth:   r.Header.Get("Authorization"),
		})
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		BaseURL:        server.URL,
		Organization:   "contoso",
		Token:          "pat-secret",
		RequestTimeout: 2 * time.Second,
		HTTPClient:     server.Client(),
	})
	require.NoError(t, err)

	return client, &requests
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func TestNewClientValidatesConfig(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Config{Token: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "organization")

	_, err = NewClient(Config{Organization: "contoso"})
	require.ErrorIs(t, err, domain.ErrMissingCredential)

	_, err = NewClient(Config{Organization: "contoso", Token: "x", BaseURL: "dev.azure.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absolute")
}

func TestResolvePoolMatchesNameCaseInsensitively(t *testing.T) {
	t.Parallel()

	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"count":2,"value":[{"id":1,"name":"Default"},{"id":7,"name":"Linux-Builders"}]}`)
	})

	id, err := client.ResolvePool(context.Background(), "linux-builders")
	require.NoError(t, err)
	assert.Equal(t, domain.PoolID(7), id)

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, http.MethodGet, req.method)
	assert.Equal(t, "/contoso/_apis/distributedtask/pools", req.path)
	assert.Equal(t, DefaultAPIVersion, req.query["api-version"])
	assert.Equal(t, "Basic "+base64.StdEncoding.EncodeToString([]byte(":pat-secret")), req.auth)
}

func TestResolvePoolReturnsNotFound(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"count":1,"value":[{"id":1,"name":"Default"}]}`)
	})

	_, err := client.ResolvePool(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrPoolNotFound)
	assert.Contains(t, err.Error(), `"missing"`)
}

func TestCountOnlineAgentsCountsEnabledOnlineOnly(t *testing.T) {
	t.Parallel()

	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"count":4,"value":[
			{"id":1,"name":"a","enabled":true,"status":"online"},
			{"id":2,"name":"b","enabled":false,"status":"online"},
			{"id":3,"name":"c","enabled":true,"status":"offline"},
			{"id":4,"name":"d","enabled":true,"status":"online"}
		]}`)
	})

	count, err := client.CountOnlineAgents(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, "/contoso/_apis/distributedtask/pools/7/agents", (*requests)[0].path)
	assert.NotContains(t, (*requests)[0].query, "includeAssignedRequest")
}

func TestCountWaitingJobsIgnoresAssignedAndFinished(t *testing.T) {
	t.Parallel()

	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"count":4,"value":[
			{"requestId":1,"result":null,"assignTime":null},
			{"requestId":2,"assignTime":"2026-01-01T00:00:00Z"},
			{"requestId":3,"result":"succeeded","assignTime":"2026-01-01T00:00:00Z"},
			{"requestId":4}
		]}`)
	})

	count, err := client.CountWaitingJobs(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, "/contoso/_apis/distributedtask/pools/7/jobrequests", (*requests)[0].path)
	assert.Equal(t, "0", (*requests)[0].query["completedRequestCount"])
}

func TestFindIdleAgentSkipsBusyAndOfflineAgents(t *testing.T) {
	t.Parallel()

	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"count":4,"value":[
			{"id":1,"name":"busy","enabled":true,"status":"online","assignedRequest":{"requestId":9}},
			{"id":2,"name":"off","enabled":true,"status":"offline"},
			{"id":3,"name":"azdo-agent-1a2b3c4d","enabled":true,"status":"online","assignedRequest":null},
			{"id":4,"name":"azdo-agent-ffffffff","enabled":true,"status":"online"}
		]}`)
	})

	idle, err := client.FindIdleAgent(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, idle)
	assert.Equal(t, domain.IdleAgentRef{ID: 3, Name: "azdo-agent-1a2b3c4d"}, *idle)
	assert.Equal(t, "true", (*requests)[0].query["includeAssignedRequest"])
}

func TestFindIdleAgentReturnsNilWhenAllBusy(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"count":1,"value":[{"id":1,"name":"busy","enabled":true,"status":"online","assignedRequest":{"requestId":9}}]}`)
	})

	idle, err := client.FindIdleAgent(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, idle)
}

func TestRemoveAgentIssuesDelete(t *testing.T) {
	t.Parallel()

	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.RemoveAgent(context.Background(), 7, 42))
	require.Len(t, *requests, 1)
	assert.Equal(t, http.MethodDelete, (*requests)[0].method)
	assert.Equal(t, "/contoso/_apis/distributedtask/pools/7/agents/42", (*requests)[0].path)
}

func TestRemoveAgentReportsServerError(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "agent is busy", http.StatusConflict)
	})

	err := client.RemoveAgent(context.Background(), 7, 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "409")
	assert.Contains(t, err.Error(), "agent is busy")
}

func TestSignInPageIsReportedAsUnauthorized(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusNonAuthoritativeInfo)
		_, _ = w.Write([]byte("<html>sign in</html>"))
	})

	_, err := client.CountOnlineAgents(context.Background(), 7)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestMalformedBodyIsAnError(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"value":`)
	})

	_, err := client.CountWaitingJobs(context.Background(), 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestRequestTimeoutBoundsSlowServer(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	client, err := NewClient(Config{
		BaseURL:        server.URL,
		Organization:   "contoso",
		Token:          "pat",
		RequestTimeout: 50 * time.Millisecond,
		HTTPClient:     server.Client(),
	})
	require.NoError(t, err)

	_, err = client.CountOnlineAgents(context.Background(), 1)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
