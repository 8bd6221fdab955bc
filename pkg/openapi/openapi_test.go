package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/cmyk-lab/pkg/openapi"
)

func TestNewSpec(t *testing.T) {
	spec := openapi.NewSpec("CMYK Lab API", "0.1.0")
	spec.SetDescription("converter")
	spec.AddServer("http://localhost:8080")
	spec.AddServer("")

	if spec.OpenAPI != "3.1.0" {
		t.Errorf("OpenAPI = %q, want 3.1.0", spec.OpenAPI)
	}
	if spec.Info.Description != "converter" {
		t.Errorf("Description = %q, want converter", spec.Info.Description)
	}
	if len(spec.Servers) != 1 {
		t.Errorf("Servers = %d, want 1 (empty URL ignored)", len(spec.Servers))
	}
	for _, name := range []string{"BadRequest", "PayloadTooLarge", "InternalError"} {
		if _, ok := spec.Components.Responses[name]; !ok {
			t.Errorf("missing shared response %s", name)
		}
	}
}

func TestSpec_AddOperation(t *testing.T) {
	spec := openapi.NewSpec("Test", "1")

	spec.AddOperation("/api/convert", "POST", &openapi.Operation{Summary: "Convert"})
	spec.AddOperation("/api/convert", "OPTIONS", &openapi.Operation{Summary: "Preflight"})

	item := spec.Paths["/api/convert"]
	if item == nil {
		t.Fatal("path not added")
	}
	if item.Post == nil || item.Post.Summary != "Convert" {
		t.Error("POST operation incorrect")
	}
	if item.Options == nil || item.Options.Summary != "Preflight" {
		t.Error("OPTIONS operation incorrect")
	}
}

func TestComponents_Add(t *testing.T) {
	c := openapi.NewComponents()

	c.AddSchemas(map[string]*openapi.Schema{"ConvertResult": {Type: "object"}})

	if _, ok := c.Schemas["ConvertResult"]; !ok {
		t.Error("schema not added")
	}
	if _, ok := c.Schemas["Error"]; !ok {
		t.Error("Error schema was overwritten")
	}
	if _, ok := c.Responses["PayloadTooLarge"]; !ok {
		t.Error("PayloadTooLarge response missing")
	}
}

func TestRequestBodyMultipart(t *testing.T) {
	body := openapi.RequestBodyMultipart("image", "Source image", "image/jpeg", "image/png")

	mt, ok := body.Content["multipart/form-data"]
	if !ok {
		t.Fatal("multipart content missing")
	}
	if mt.Schema.Properties["image"].Format != "binary" {
		t.Errorf("image format = %q, want binary", mt.Schema.Properties["image"].Format)
	}
	if got := mt.Encoding["image"].ContentType; got != "image/jpeg, image/png" {
		t.Errorf("encoding = %q", got)
	}
}

func TestMarshalJSON(t *testing.T) {
	spec := openapi.NewSpec("Test API", "1.0.0")
	spec.AddOperation("/convert", "POST", &openapi.Operation{
		Responses: map[int]*openapi.Response{
			200: {Description: "Converted"},
			400: openapi.ResponseRef("BadRequest"),
		},
	})

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	paths := result["paths"].(map[string]any)
	post := paths["/convert"].(map[string]any)["post"].(map[string]any)
	responses := post["responses"].(map[string]any)

	ref := responses["400"].(map[string]any)["$ref"]
	if ref != "#/components/responses/BadRequest" {
		t.Errorf("400 $ref = %v", ref)
	}
}

func TestServeSpec(t *testing.T) {
	w := httptest.NewRecorder()
	openapi.ServeSpec([]byte(`{"openapi":"3.1.0"}`))(w, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if w.Body.String() != `{"openapi":"3.1.0"}` {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestConfig_Finalize(t *testing.T) {
	t.Setenv("TEST_OPENAPI_TITLE", "Print Service")

	cfg := &openapi.Config{}
	if err := cfg.Finalize(&openapi.ConfigEnv{Title: "TEST_OPENAPI_TITLE"}); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Title != "Print Service" {
		t.Errorf("Title = %q, want env override", cfg.Title)
	}
	if cfg.Description == "" {
		t.Error("Description should have default")
	}
}

func TestConfig_Finalize_Servers(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		want    []string
		wantErr bool
	}{
		{"list", " https://print.example.com , http://10.0.0.5:8080,", []string{"https://print.example.com", "http://10.0.0.5:8080"}, false},
		{"relative", "/api", nil, true},
		{"wrong scheme", "ftp://files.example.com", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_OPENAPI_SERVERS", tt.env)

			cfg := &openapi.Config{}
			err := cfg.Finalize(&openapi.ConfigEnv{Servers: "TEST_OPENAPI_SERVERS"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Finalize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(cfg.Servers) != len(tt.want) {
				t.Fatalf("Servers = %v, want %v", cfg.Servers, tt.want)
			}
			for i := range tt.want {
				if cfg.Servers[i] != tt.want[i] {
					t.Errorf("Servers[%d] = %q, want %q", i, cfg.Servers[i], tt.want[i])
				}
			}
		})
	}
}

func TestConfig_Spec(t *testing.T) {
	cfg := &openapi.Config{
		Title:   "CMYK Lab API",
		Servers: []string{"https://print.example.com", "http://localhost:8080"},
	}

	spec := cfg.Spec("0.1.0", "http://localhost:8080")

	want := []string{"http://localhost:8080", "https://print.example.com"}
	if len(spec.Servers) != len(want) {
		t.Fatalf("Servers = %d, want %d", len(spec.Servers), len(want))
	}
	for i, url := range want {
		if spec.Servers[i].URL != url {
			t.Errorf("Servers[%d] = %q, want %q", i, spec.Servers[i].URL, url)
		}
	}
	if spec.Info.Title != "CMYK Lab API" || spec.Info.Version != "0.1.0" {
		t.Errorf("Info = %+v", spec.Info)
	}
}
