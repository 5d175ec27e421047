package pets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func newTestDispatcher(repo *testRepo) *Dispatcher {
	return NewDispatcher(NewService(repo, nil, nil), nil)
}

func TestDispatch_PreflightAnyPath(t *testing.T) {
	d := newTestDispatcher(newTestRepo())

	for _, path := range []string{"/pets", "/pets/query", "/nowhere", ""} {
		resp, err := d.Dispatch(context.Background(), Event{Path: path, HTTPMethod: http.MethodOptions})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "", resp.Body)
		assert.Equal(t, map[string]string{
			"Access-Control-Allow-Origin":  "*",
			"Access-Control-Allow-Methods": "GET,POST,OPTIONS",
			"Access-Control-Allow-Headers": "Content-Type,Authorization",
			"Access-Control-Max-Age":       "86400",
		}, resp.Headers)
	}
}

func TestDispatch_ListPets(t *testing.T) {
	d := newTestDispatcher(newTestRepo(rex(), tom()))

	resp, err := d.Dispatch(context.Background(), Event{Path: "/pets", HTTPMethod: http.MethodGet})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])

	var got []Pet
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &got))
	assert.Equal(t, []Pet{rex(), tom()}, got)
}

func TestDispatch_ListPets_EmptyIsArray(t *testing.T) {
	resp, err := newTestDispatcher(newTestRepo()).Dispatch(context.Background(), Event{Path: "/pets", HTTPMethod: http.MethodGet})
	require.NoError(t, err)
	assert.Equal(t, "[]", resp.Body)
}

func TestDispatch_CreatePet(t *testing.T) {
	repo := newTestRepo(rex())
	d := newTestDispatcher(repo)

	resp, err := d.Dispatch(context.Background(), Event{
		Path:       "/pets",
		HTTPMethod: http.MethodPost,
		Body:       strp(`{"name":"Kiwi","type":"bird","age":"3","price":15}`),
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET,POST,OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type",
	}, resp.Headers)
	assert.JSONEq(t, `{"id":2,"name":"Kiwi","type":"bird","breed":"Mixed","age":3,"price":15}`, resp.Body)
	assert.Len(t, repo.items, 2)
}

func TestDispatch_CreatePet_NilAndEmptyBody(t *testing.T) {
	for _, body := range []*string{nil, strp(""), strp("  ")} {
		d := newTestDispatcher(newTestRepo())
		resp, err := d.Dispatch(context.Background(), Event{Path: "/pets", HTTPMethod: http.MethodPost, Body: body})
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.JSONEq(t, `{"id":1,"name":"Unknown","type":"unknown","breed":"Mixed","age":1,"price":100}`, resp.Body)
	}
}

func TestDispatch_CreatePet_BadNumberIsUnhandled(t *testing.T) {
	repo := newTestRepo()
	_, err := newTestDispatcher(repo).Dispatch(context.Background(), Event{
		Path:       "/pets",
		HTTPMethod: http.MethodPost,
		Body:       strp(`{"price":"a lot"}`),
	})
	assert.ErrorIs(t, err, ErrNotInteger)
	assert.Empty(t, repo.items)
}

func TestDispatch_CreatePet_HugeNumberIsUnhandled(t *testing.T) {
	repo := newTestRepo()
	d := newTestDispatcher(repo)

	for _, body := range []string{`{"age":1e30}`, `{"price":9223372036854775808}`} {
		_, err := d.Dispatch(context.Background(), Event{Path: "/pets", HTTPMethod: http.MethodPost, Body: strp(body)})
		assert.ErrorIs(t, err, ErrNotInteger, "body=%s", body)
	}
	assert.Empty(t, repo.items)
}

func TestDispatch_MalformedJSON_Is400(t *testing.T) {
	d := newTestDispatcher(newTestRepo())

	for _, path := range []string{"/pets", "/pets/query"} {
		for _, body := range []string{`{"name":`, `[1,2]`, `null`, `{} {}`} {
			resp, err := d.Dispatch(context.Background(), Event{Path: path, HTTPMethod: http.MethodPost, Body: strp(body)})
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "path=%s body=%s", path, body)
			assert.JSONEq(t, `{"error":"invalid json"}`, resp.Body)
		}
	}
}

func TestDispatch_Query_FallbackWhenNoLLM(t *testing.T) {
	d := newTestDispatcher(newTestRepo(rex(), tom()))

	resp, err := d.Dispatch(context.Background(), Event{
		Path:       "/pets/query",
		HTTPMethod: http.MethodPost,
		Body:       strp(`{"query":"most expensive"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{
		"pets": [
			{"id":2,"name":"Tom","type":"cat","breed":"Siamese","age":5,"price":200},
			{"id":1,"name":"Rex","type":"dog","breed":"Beagle","age":2,"price":50}
		],
		"count": 2,
		"filters_applied": {"fallback": true}
	}`, resp.Body)
}

func TestDispatch_Query_MissingQueryField(t *testing.T) {
	d := newTestDispatcher(newTestRepo(rex(), tom()))

	resp, err := d.Dispatch(context.Background(), Event{Path: "/pets/query", HTTPMethod: http.MethodPost})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got QueryResult
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &got))
	assert.Equal(t, 2, got.Count)
}

func TestDispatch_Query_StoreFailureIsUnhandled(t *testing.T) {
	repo := newTestRepo()
	repo.scanErr = errors.New("throttled")

	_, err := newTestDispatcher(repo).Dispatch(context.Background(), Event{Path: "/pets/query", HTTPMethod: http.MethodPost})
	assert.Error(t, err)
}

func TestDispatch_NotFound(t *testing.T) {
	d := newTestDispatcher(newTestRepo())

	cases := []Event{
		{Path: "/pets", HTTPMethod: http.MethodDelete},
		{Path: "/pets/1", HTTPMethod: http.MethodGet},
		{Path: "/pets/query", HTTPMethod: http.MethodGet},
		{Path: "/pets/", HTTPMethod: http.MethodGet},
		{Path: "/pets", HTTPMethod: "get"},
	}
	for _, ev := range cases {
		resp, err := d.Dispatch(context.Background(), ev)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "%+v", ev)
		assert.JSONEq(t, `{"error":"Not found"}`, resp.Body)
		assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
	}
}
