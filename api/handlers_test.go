package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelink/hrview/store/sqlite"
)

func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, Seed(context.Background(), store))

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	auth := NewAuth("test-secret", map[string]string{"hr.admin": "hunter2"})
	srv := httptest.NewServer(NewRouter(NewHandler(store, log), auth))
	t.Cleanup(srv.Close)

	token, _, err := auth.IssueToken("hr.admin")
	require.NoError(t, err)
	return srv, token
}

func doRequest(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestLoginIssuesToken(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doRequest(t, "POST", srv.URL+"/api/login", "",
		map[string]string{"username": "hr.admin", "password": "hunter2"})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["token"])
	assert.NotEmpty(t, data["expires_at"])
}

func TestLoginRejectsBadPassword(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doRequest(t, "POST", srv.URL+"/api/login", "",
		map[string]string{"username": "hr.admin", "password": "wrong"})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doRequest(t, "GET", srv.URL+"/api/employees", "", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestEnvelopeShapes(t *testing.T) {
	srv, token := newTestServer(t)

	// GIVEN the historical envelope zoo
	// employees: data is a bare array
	_, body := doRequest(t, "GET", srv.URL+"/api/employees", token, nil)
	require.Equal(t, true, body["success"])
	_, isArray := body["data"].([]any)
	assert.True(t, isArray, "employees data should be a bare array")

	// claims: data.items
	_, body = doRequest(t, "GET", srv.URL+"/api/claims", token, nil)
	data := body["data"].(map[string]any)
	_, hasItems := data["items"].([]any)
	assert.True(t, hasItems, "claims data should carry an items key")

	// salaries: data.salaries
	_, body = doRequest(t, "GET", srv.URL+"/api/salaries", token, nil)
	data = body["data"].(map[string]any)
	_, hasKey := data["salaries"].([]any)
	assert.True(t, hasKey, "salaries data should be keyed by resource name")
}

func TestListSeparatesArchive(t *testing.T) {
	srv, token := newTestServer(t)

	_, body := doRequest(t, "GET", srv.URL+"/api/employees", token, nil)
	active := body["data"].([]any)
	assert.Len(t, active, 3, "archived employee must not appear in the roster")

	_, body = doRequest(t, "GET", srv.URL+"/api/employees?archived=true", token, nil)
	archived := body["data"].([]any)
	require.Len(t, archived, 1)
	rec := archived[0].(map[string]any)
	assert.Equal(t, "Ramon", rec["first_name"])
}

func TestCreateUpdateLifecycle(t *testing.T) {
	srv, token := newTestServer(t)

	// WHEN creating
	resp, body := doRequest(t, "POST", srv.URL+"/api/documents", token,
		map[string]any{"title": "BLS Certification", "category": "Certification"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	item := body["data"].(map[string]any)["item"].(map[string]any)
	id := item["id"].(string)
	require.NotEmpty(t, id)

	// WHEN updating
	resp, _ = doRequest(t, "PUT", srv.URL+"/api/documents/"+id, token,
		map[string]any{"title": "BLS Certification (renewed)", "category": "Certification"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// THEN the record reflects the update
	_, body = doRequest(t, "GET", srv.URL+"/api/documents/"+id, token, nil)
	item = body["data"].(map[string]any)["item"].(map[string]any)
	assert.Equal(t, "BLS Certification (renewed)", item["title"])
}

func TestDeleteBlockedByActiveClaims(t *testing.T) {
	srv, token := newTestServer(t)

	// GIVEN e-1 owns a pending claim
	resp, body := doRequest(t, "DELETE", srv.URL+"/api/employees/e-1", token, nil)

	// THEN the delete is rejected as a business failure, not a protocol error
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "has active claims", body["error"])

	// AND the employee is still listed
	_, body = doRequest(t, "GET", srv.URL+"/api/employees", token, nil)
	assert.Len(t, body["data"].([]any), 3)
}

func TestDeleteRestorePurgeCycle(t *testing.T) {
	srv, token := newTestServer(t)

	// e-2 has only a reimbursed claim, so delete proceeds
	resp, _ := doRequest(t, "DELETE", srv.URL+"/api/employees/e-2", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body := doRequest(t, "GET", srv.URL+"/api/employees?archived=true", token, nil)
	assert.Len(t, body["data"].([]any), 2)

	resp, _ = doRequest(t, "POST", srv.URL+"/api/employees/e-2/restore", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, "DELETE", srv.URL+"/api/employees/e-4/permanent", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, "GET", srv.URL+"/api/employees/e-4", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNotFoundEnvelope(t *testing.T) {
	srv, token := newTestServer(t)

	resp, body := doRequest(t, "GET", srv.URL+"/api/employees/nope", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "record not found", body["message"])
}

func TestAdminSeedAndReset(t *testing.T) {
	srv, token := newTestServer(t)

	resp, _ := doRequest(t, "POST", srv.URL+"/api/admin/reset", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body := doRequest(t, "GET", srv.URL+"/api/employees", token, nil)
	assert.Empty(t, body["data"])

	resp, _ = doRequest(t, "POST", srv.URL+"/api/admin/seed", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = doRequest(t, "GET", srv.URL+"/api/employees", token, nil)
	assert.Len(t, body["data"].([]any), 3)
}
