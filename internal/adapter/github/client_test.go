package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/test-reporter/internal/adapter/rest"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("test-token")
	client.SetBaseURL(server.URL + "/") // trailing slash must be normalized
	client.SetMaxRetries(2)
	client.SetInitialBackoff(time.Millisecond)
	return client
}

func TestCreateCheckRun(t *testing.T) {
	var got CreateCheckRunRequest
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/repos/octo/example/check-runs", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		assert.Equal(t, "2022-11-28", r.Header.Get("X-GitHub-Api-Version"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(CheckRunResponse{
			ID:      42,
			Name:    got.Name,
			HTMLURL: "https://github.com/octo/example/runs/42",
		})
	}))

	resp, err := client.CreateCheckRun(context.Background(), "octo", "example", CreateCheckRunRequest{
		Name:       "CI",
		HeadSHA:    "abc123",
		Status:     StatusCompleted,
		Conclusion: "success",
		Output:     &CheckRunOutput{Title: "Tests passed", Summary: "5 tests passing in 1 suite."},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "https://github.com/octo/example/runs/42", resp.HTMLURL)
	assert.Equal(t, "abc123", got.HeadSHA)
	assert.Equal(t, StatusCompleted, got.Status)
}

func TestCreateCheckRunRetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(CheckRunResponse{ID: 7})
	}))

	resp, err := client.CreateCheckRun(context.Background(), "octo", "example", CreateCheckRunRequest{Name: "CI"})
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCreateCheckRunDoesNotRetryAuthFailure(t *testing.T) {
	var calls atomic.Int32
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "Bad credentials"}`))
	}))

	_, err := client.CreateCheckRun(context.Background(), "octo", "example", CreateCheckRunRequest{Name: "CI"})
	require.Error(t, err)

	var restErr *rest.Error
	require.True(t, errors.As(err, &restErr))
	assert.Equal(t, rest.ErrTypeAuthentication, restErr.Type)
	assert.Contains(t, restErr.Message, "Bad credentials")
	assert.Equal(t, int32(1), calls.Load())
}

func TestListIssueComments(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/repos/octo/example/issues/7/comments", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]IssueComment{
			{ID: 1, Body: "first", User: User{Login: "alice"}},
			{ID: 2, Body: "second", User: User{Login: "github-actions[bot]", Type: "Bot"}},
		})
	}))

	comments, err := client.ListIssueComments(context.Background(), "octo", "example", 7)
	require.NoError(t, err)

	require.Len(t, comments, 2)
	assert.Equal(t, "alice", comments[0].User.Login)
	assert.Equal(t, "second", comments[1].Body)
}

func TestCreateIssueComment(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/repos/octo/example/issues/7/comments", r.URL.Path)

		var req createCommentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "## Coverage Report\n\ntable", req.Body)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(IssueComment{ID: 55, Body: req.Body})
	}))

	comment, err := client.CreateIssueComment(context.Background(), "octo", "example", 7, "## Coverage Report\n\ntable")
	require.NoError(t, err)
	assert.Equal(t, int64(55), comment.ID)
}

func TestDeleteIssueComment(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/repos/octo/example/issues/comments/55", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	err := client.DeleteIssueComment(context.Background(), "octo", "example", 55)
	assert.NoError(t, err)
}

func TestDeleteIssueCommentNotFound(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not Found"}`))
	}))

	err := client.DeleteIssueComment(context.Background(), "octo", "example", 99)
	require.Error(t, err)

	var restErr *rest.Error
	require.True(t, errors.As(err, &restErr))
	assert.Equal(t, rest.ErrTypeNotFound, restErr.Type)
}

func TestSetBaseURLTrimsTrailingSlashes(t *testing.T) {
	client := NewClient("token")
	client.SetBaseURL("https://ghe.example.com/api/v3///")
	assert.Equal(t, "https://ghe.example.com/api/v3", client.baseURL)
}
