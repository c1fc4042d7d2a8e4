package http_test

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/legacy"

	handler "github.com/samirrijal/trailboard/internal/adapters/http"
)

// findOpenAPISpec locates the openapi.yaml file by walking up from the test directory.
func findOpenAPISpec(t *testing.T) string {
	dir, _ := os.Getwd()

	for i := 0; i < 5; i++ {
		candidate := filepath.Join(dir, "api", "openapi.yaml")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		dir = filepath.Dir(dir)
	}

	t.Fatalf("could not find api/openapi.yaml")
	return ""
}

func loadSpec(t *testing.T) *openapi3.T {
	t.Helper()
	data, err := os.ReadFile(findOpenAPISpec(t))
	if err != nil {
		t.Fatalf("failed to read openapi.yaml: %v", err)
	}
	loader := &openapi3.Loader{IsExternalRefsAllowed: false}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		t.Fatalf("failed to parse OpenAPI spec: %v", err)
	}
	return spec
}

// TestOpenAPISpec validates the OpenAPI specification is valid.
func TestOpenAPISpec(t *testing.T) {
	spec := loadSpec(t)

	if err := spec.Validate(context.Background()); err != nil {
		t.Fatalf("OpenAPI spec validation failed: %v", err)
	}

	expectedPaths := []string{
		"/",
		"/v1/health",
		"/v1/ready",
		"/v1/summary",
		"/v1/trails",
		"/v1/charts/activities.png",
		"/graphql",
	}
	for _, path := range expectedPaths {
		if item := spec.Paths.Find(path); item == nil {
			t.Errorf("expected path %s not found in spec", path)
		}
	}

	expectedSchemas := []string{
		"Summary",
		"CategoryCount",
		"MileageBucket",
		"ActivityTotal",
		"TrailListing",
		"Pagination",
		"APIError",
	}
	for _, schema := range expectedSchemas {
		if spec.Components.Schemas[schema] == nil {
			t.Errorf("expected schema %s not found", schema)
		}
	}

	t.Logf("OpenAPI spec valid: %d paths, %d schemas", len(spec.Paths.Map()), len(spec.Components.Schemas))
}

// TestOpenAPIInfo verifies spec metadata.
func TestOpenAPIInfo(t *testing.T) {
	spec := loadSpec(t)

	if spec.Info.Title != "Trailboard API" {
		t.Errorf("expected title 'Trailboard API', got %q", spec.Info.Title)
	}
	if spec.Info.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %q", spec.Info.Version)
	}
	if len(spec.Servers) == 0 {
		t.Fatal("expected at least one server")
	}
}

// TestResponsesMatchSpec checks live handler responses against the documented schemas.
func TestResponsesMatchSpec(t *testing.T) {
	spec := loadSpec(t)
	router, err := legacy.NewRouter(spec)
	if err != nil {
		t.Fatalf("router: %v", err)
	}

	ok := setupApp(t, setupDeps(t, okSource()))
	failing := setupApp(t, setupDeps(t, failingSource()))

	cases := []struct {
		name   string
		failed bool
		path   string
	}{
		{"summary", false, "/v1/summary"},
		{"summary error", true, "/v1/summary"},
		{"trails", false, "/v1/trails?access=leash_required&limit=10"},
		{"trails bad access", false, "/v1/trails?access=cats"},
		{"health", false, "/v1/health"},
		{"ready", false, "/v1/ready"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := ok
			if tc.failed {
				app = failing
			}

			req := httptest.NewRequest("GET", "http://localhost:8080"+tc.path, nil)
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				t.Fatalf("find route: %v", err)
			}

			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			input := &openapi3filter.ResponseValidationInput{
				RequestValidationInput: &openapi3filter.RequestValidationInput{
					Request:    req,
					PathParams: pathParams,
					Route:      route,
				},
				Status: resp.StatusCode,
				Header: resp.Header,
				Body:   io.NopCloser(bytes.NewReader(body)),
			}
			if err := openapi3filter.ValidateResponse(context.Background(), input); err != nil {
				t.Errorf("%s %d does not match spec: %v\n%s", tc.path, resp.StatusCode, err, body)
			}
		})
	}
}

func TestDocsRoutes(t *testing.T) {
	handler.OpenAPIPath = findOpenAPISpec(t)
	app := setupApp(t, setupDeps(t, okSource()))

	status, body, _ := doGet(t, app, "/docs")
	if status != 200 || !bytes.Contains(body, []byte("swagger-ui")) {
		t.Errorf("GET /docs: %d", status)
	}

	status, body, headers := doGet(t, app, "/docs/openapi.yaml")
	if status != 200 {
		t.Fatalf("GET /docs/openapi.yaml: %d", status)
	}
	if headers["Content-Type"] != "application/yaml" {
		t.Errorf("unexpected content type %q", headers["Content-Type"])
	}
	if !bytes.Contains(body, []byte("Trailboard API")) {
		t.Error("served document is not the OpenAPI spec")
	}
}
