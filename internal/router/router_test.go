package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mem "petstore-catalog/internal/adapters/storage/memory"
	"petstore-catalog/internal/domain/pets"
	"petstore-catalog/internal/router"
)

func seeded() *pets.Dispatcher {
	repo := mem.NewPetRepo(
		pets.Pet{ID: 1, Name: "Rex", Type: "dog", Breed: "Beagle", Age: 2, Price: 150},
		pets.Pet{ID: 2, Name: "Tom", Type: "cat", Breed: "Siamese", Age: 5, Price: 200},
		pets.Pet{ID: 3, Name: "Fido", Type: "dog", Breed: "Pug", Age: 1, Price: 40},
	)
	return pets.NewDispatcher(pets.NewService(repo, nil, nil), nil)
}

func TestHTTP_EndToEnd_CatalogFlow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{Dispatcher: seeded()}))
	defer ts.Close()

	// 1) Listado inicial
	{
		st, body, _ := doReq(t, ts.URL, http.MethodGet, "/pets", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list pets, got %d body=%s", st, string(body))
		}
		var got []pets.Pet
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Len(t, got, 3)
	}

	// 2) Alta con defaults: id = max + 1
	{
		st, body, hdr := doReq(t, ts.URL, http.MethodPost, "/pets", map[string]any{"name": "Nemo", "type": "fish"})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
		}
		assert.JSONEq(t, `{"id":4,"name":"Nemo","type":"fish","breed":"Mixed","age":1,"price":100}`, string(body))
		assert.Equal(t, "Content-Type", hdr.Get("Access-Control-Allow-Headers"))
	}

	// 3) Consulta sin LLM: cae al filtro por palabras clave
	{
		st, body, _ := doReq(t, ts.URL, http.MethodPost, "/pets/query", map[string]any{"query": "cheap dogs please"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 query, got %d body=%s", st, string(body))
		}
		var res pets.QueryResult
		require.NoError(t, json.Unmarshal(body, &res))
		assert.Equal(t, 2, res.Count)
		require.Len(t, res.Pets, 2)
		assert.Equal(t, "Fido", res.Pets[0].Name)
		assert.Equal(t, "Rex", res.Pets[1].Name)
		assert.Equal(t, map[string]any{"fallback": true}, res.FiltersApplied)
	}
}

func TestHTTP_Preflight(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{Dispatcher: seeded()}))
	defer ts.Close()

	for _, path := range []string{"/pets", "/pets/query", "/whatever"} {
		st, body, hdr := doReq(t, ts.URL, http.MethodOptions, path, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 preflight on %s, got %d", path, st)
		}
		assert.Empty(t, body)
		assert.Equal(t, "*", hdr.Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET,POST,OPTIONS", hdr.Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Type,Authorization", hdr.Get("Access-Control-Allow-Headers"))
		assert.Equal(t, "86400", hdr.Get("Access-Control-Max-Age"))
		assert.Empty(t, hdr.Get("X-Request-Id"))
		assert.Equal(t, 4, countCORSHeaders(hdr), "preflight on %s", path)
	}
}

func countCORSHeaders(h http.Header) int {
	n := 0
	for k := range h {
		if strings.HasPrefix(k, "Access-Control-") {
			n++
		}
	}
	return n
}

func TestHTTP_NotFound(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{Dispatcher: seeded()}))
	defer ts.Close()

	cases := []struct{ method, path string }{
		{http.MethodGet, "/owners"},
		{http.MethodDelete, "/pets"},
		{http.MethodGet, "/pets/query"},
		{http.MethodPut, "/pets/1"},
	}
	for _, tc := range cases {
		st, body, hdr := doReq(t, ts.URL, tc.method, tc.path, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for %s %s, got %d", tc.method, tc.path, st)
		}
		assert.JSONEq(t, `{"error":"Not found"}`, string(body))
		assert.Equal(t, "application/json", hdr.Get("Content-Type"))
	}
}

func TestHTTP_BadInput(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{Dispatcher: seeded()}))
	defer ts.Close()

	st, body, _ := doRaw(t, ts.URL, http.MethodPost, "/pets/query", "{not json")
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 malformed query, got %d", st)
	}
	assert.JSONEq(t, `{"error":"invalid json"}`, string(body))

	// edad no numérica: falla no manejada => 500
	st, body, _ = doRaw(t, ts.URL, http.MethodPost, "/pets", `{"age":"abc"}`)
	if st != http.StatusInternalServerError {
		t.Fatalf("expected 500 bad age, got %d body=%s", st, string(body))
	}
	assert.JSONEq(t, `{"error":"internal error"}`, string(body))
}

func TestHTTP_Ambient(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, body, hdr := doReq(t, ts.URL, http.MethodGet, "/health", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("expected 200 ok health, got %d %q", st, string(body))
	}
	assert.NotEmpty(t, hdr.Get("X-Request-Id"))

	// genera al menos una muestra antes de leer /metrics
	_, _, _ = doReq(t, ts.URL, http.MethodGet, "/pets", nil)

	st, body, _ = doReq(t, ts.URL, http.MethodGet, "/metrics", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 metrics, got %d", st)
	}
	assert.Contains(t, string(body), "petstore_http_requests_total")

	st, body, _ = doReq(t, ts.URL, http.MethodGet, "/swagger/doc.json", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 swagger doc, got %d", st)
	}
	assert.Contains(t, string(body), "/pets/query")
}

func TestLambda_SameTableAsHTTP(t *testing.T) {
	h := router.NewLambdaHandler(seeded(), nil)
	ctx := context.Background()

	resp, err := h(ctx, events.APIGatewayProxyRequest{HTTPMethod: http.MethodGet, Path: "/pets"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])

	resp, err = h(ctx, events.APIGatewayProxyRequest{HTTPMethod: http.MethodOptions, Path: "/anything"})
	require.NoError(t, err)
	assert.Equal(t, "86400", resp.Headers["Access-Control-Max-Age"])

	resp, err = h(ctx, events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPost,
		Path:            "/pets",
		Body:            "eyJuYW1lIjoiTWlsbyJ9", // {"name":"Milo"}
		IsBase64Encoded: true,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Contains(t, resp.Body, `"name":"Milo"`)
	assert.Contains(t, resp.Body, `"id":4`)

	resp, err = h(ctx, events.APIGatewayProxyRequest{HTTPMethod: http.MethodPost, Path: "/pets/query", Body: "[1,2]"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, err = h(ctx, events.APIGatewayProxyRequest{HTTPMethod: http.MethodPost, Path: "/pets", Body: `{"price":"x"}`})
	assert.ErrorIs(t, err, pets.ErrNotInteger)
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte, http.Header) {
	t.Helper()

	var raw string
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		raw = string(b)
	}
	return doRaw(t, baseURL, method, path, raw)
}

func doRaw(t *testing.T, baseURL, method, path, body string) (int, []byte, http.Header) {
	t.Helper()

	var rdr io.Reader
	if body != "" {
		rdr = bytes.NewReader([]byte(body))
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if strings.TrimSpace(body) != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody, res.Header
}
