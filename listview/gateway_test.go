/*
gateway_test.go - Unit tests for the remote data gateway

Tests for:
- Envelope normalization across every variant shape the backend produces
- Failure taxonomy: 401, business failures, message extraction
- Mutation routing and bearer-token attachment
*/
package listview

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestFetchList_EnvelopeShapes(t *testing.T) {
	cases := []struct {
		name string
		body string
		want int
	}{
		{"bare data array", `{"success":true,"data":[{"id":"1"},{"id":"2"}]}`, 2},
		{"data.items", `{"success":true,"data":{"items":[{"id":"1"}]}}`, 1},
		{"data.<resource>", `{"success":true,"data":{"employees":[{"id":"1"},{"id":"2"},{"id":"3"}]}}`, 3},
		{"single wrapped key", `{"success":true,"data":{"rows":[{"id":"1"}]}}`, 1},
		{"top-level array", `[{"id":"1"},{"id":"2"}]`, 2},
		{"null data", `{"success":true,"data":null}`, 0},
		{"missing data", `{"success":true}`, 0},
		{"data is an object", `{"success":true,"data":{"id":"1","name":"solo"}}`, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := jsonServer(t, http.StatusOK, tc.body)
			defer srv.Close()

			g := NewGateway(srv.URL)
			items, err := g.FetchList(context.Background(), "employees", nil)
			require.NoError(t, err)
			require.NotNil(t, items, "normalization must never return a nil list")
			assert.Len(t, items, tc.want)
		})
	}
}

func TestFetchList_Unauthorized(t *testing.T) {
	srv := jsonServer(t, http.StatusUnauthorized, `{"success":false,"message":"unauthorized"}`)
	defer srv.Close()

	g := NewGateway(srv.URL)
	_, err := g.FetchList(context.Background(), "employees", nil)
	assert.True(t, IsUnauthorized(err), "401 must map to the distinct unauthorized signal")
}

func TestFetchList_BusinessFailureMessage(t *testing.T) {
	// The backend reports failure in the `error` key; the message must
	// surface verbatim.
	srv := jsonServer(t, http.StatusOK, `{"success":false,"error":"has active claims"}`)
	defer srv.Close()

	g := NewGateway(srv.URL)
	_, err := g.FetchList(context.Background(), "employees", nil)
	require.Error(t, err)
	assert.True(t, IsBusiness(err))
	assert.Equal(t, "has active claims", UserMessage(err))
}

func TestFetchList_NonOKDefaultsToHTTPStatus(t *testing.T) {
	srv := jsonServer(t, http.StatusInternalServerError, `{}`)
	defer srv.Close()

	g := NewGateway(srv.URL)
	_, err := g.FetchList(context.Background(), "employees", nil)
	require.Error(t, err)
	assert.Equal(t, "HTTP 500", UserMessage(err))
}

func TestFetchList_ErrorStatusWithArrayBodyStillFails(t *testing.T) {
	// An error response whose body happens to be a JSON array must not be
	// mistaken for a successful legacy list.
	srv := jsonServer(t, http.StatusInternalServerError, `[{"id":"1"},{"id":"2"}]`)
	defer srv.Close()

	g := NewGateway(srv.URL)
	_, err := g.FetchList(context.Background(), "employees", nil)
	require.Error(t, err)
	assert.True(t, IsBusiness(err))
	assert.Equal(t, "HTTP 500", UserMessage(err))
}

func TestFetchList_TransportFailure(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{}`)
	srv.Close() // refuse connections

	g := NewGateway(srv.URL)
	_, err := g.FetchList(context.Background(), "employees", nil)
	assert.True(t, IsTransport(err))
}

func TestFetchList_QueryAndToken(t *testing.T) {
	var gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, WithTokenSource(func() string { return "tok-123" }))
	_, err := g.FetchList(context.Background(), "claims", url.Values{"archived": {"true"}})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "archived=true", gotQuery)
}

func TestMutate_Routing(t *testing.T) {
	type seen struct{ method, path string }
	var last seen
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last = seen{r.Method, r.URL.Path}
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	g := NewGateway(srv.URL)
	ctx := context.Background()

	cases := []struct {
		req  MutationRequest
		want seen
	}{
		{MutationRequest{Op: OpCreate, Payload: map[string]any{"name": "x"}}, seen{"POST", "/employees"}},
		{MutationRequest{Op: OpUpdate, EntityID: "7", Payload: map[string]any{"name": "y"}}, seen{"PUT", "/employees/7"}},
		{MutationRequest{Op: OpDelete, EntityID: "7"}, seen{"DELETE", "/employees/7"}},
		{MutationRequest{Op: OpRestore, EntityID: "7"}, seen{"POST", "/employees/7/restore"}},
		{MutationRequest{Op: OpPurge, EntityID: "7"}, seen{"DELETE", "/employees/7/permanent"}},
	}
	for _, tc := range cases {
		require.NoError(t, g.Mutate(ctx, "employees", tc.req))
		assert.Equal(t, tc.want, last, "op %s", tc.req.Op)
	}
}

func TestFetchItem_UnwrapsItemKey(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{"success":true,"data":{"item":{"id":"9","name":"Maria"}}}`)
	defer srv.Close()

	g := NewGateway(srv.URL)
	it, err := g.FetchItem(context.Background(), "employees", "9")
	require.NoError(t, err)
	assert.Equal(t, "Maria", it.String("name"))
}
