package config

import (
	"slices"
	"testing"

	"github.com/eugenenazirov/apiconfig/internal/env"
)

func newTestAPIConfig(process, build map[string]string) *APIConfig {
	var p, b env.Source
	if process != nil {
		p = env.NewMapSource(process)
	}
	if build != nil {
		b = env.NewMapSource(build)
	}
	return NewAPIConfig(env.NewResolver(p, b))
}

func TestAPIConfigDefaultsWithoutSources(t *testing.T) {
	t.Parallel()

	cfg := NewAPIConfig(env.NewResolver(nil, nil))

	if got := cfg.APIURL(); got != "" {
		t.Fatalf("expected empty api url, got %q", got)
	}
	if got := cfg.APIURLPrefix(); got != "" {
		t.Fatalf("expected empty prefix, got %q", got)
	}
	if cfg.IsRequestProxy() {
		t.Fatalf("expected proxy disabled by default")
	}
	if got := cfg.BaseURL(); got != "/" {
		t.Fatalf("expected base url /, got %q", got)
	}
	if got := cfg.Mode(); got != "development" {
		t.Fatalf("expected development mode, got %q", got)
	}
}

func TestAPIConfigNilResolver(t *testing.T) {
	t.Parallel()

	cfg := NewAPIConfig(nil)
	if got := cfg.Mode(); got != "development" {
		t.Fatalf("expected development mode, got %q", got)
	}
}

func TestAPIConfigBuildMode(t *testing.T) {
	t.Parallel()

	cfg := newTestAPIConfig(nil, map[string]string{KeyMode: "production"})
	if got := cfg.Mode(); got != "production" {
		t.Fatalf("expected production, got %q", got)
	}
}

func TestAPIConfigProcessOverridesBuild(t *testing.T) {
	t.Parallel()

	cfg := newTestAPIConfig(
		map[string]string{KeyAPIURL: "https://process.example.com", KeyBaseURL: ""},
		map[string]string{KeyAPIURL: "https://build.example.com", KeyBaseURL: "/app/"},
	)
	if got := cfg.APIURL(); got != "https://process.example.com" {
		t.Fatalf("expected process api url, got %q", got)
	}
	if got := cfg.BaseURL(); got != "/app/" {
		t.Fatalf("expected build base url after empty process value, got %q", got)
	}
}

func TestIsRequestProxyStrictParsing(t *testing.T) {
	t.Parallel()

	testCases := map[string]bool{
		"true":  true,
		"TRUE":  false,
		"True":  false,
		"1":     false,
		"yes":   false,
		" true": false,
		"false": false,
		"":      false,
	}

	for raw, want := range testCases {
		cfg := newTestAPIConfig(nil, map[string]string{KeyIsRequestProxy: raw})
		if got := cfg.IsRequestProxy(); got != want {
			t.Fatalf("value %q: expected %v, got %v", raw, want, got)
		}
	}
}

func TestAPIConfigReflectsProcessChanges(t *testing.T) {
	t.Setenv(KeyMode, "staging")
	cfg := NewAPIConfig(env.NewResolver(env.ProcessSource{}, nil))

	if got := cfg.Mode(); got != "staging" {
		t.Fatalf("expected staging, got %q", got)
	}

	t.Setenv(KeyMode, "test")
	if got := cfg.Mode(); got != "test" {
		t.Fatalf("expected accessor to resolve again, got %q", got)
	}
}

func TestAPIConfigIdempotent(t *testing.T) {
	t.Parallel()

	cfg := newTestAPIConfig(map[string]string{KeyAPIURL: "https://api.example.com"}, nil)
	first := cfg.Snapshot()
	for i := 0; i < 3; i++ {
		if got := cfg.Snapshot(); got != first {
			t.Fatalf("expected identical snapshots, got %+v and %+v", first, got)
		}
	}
}

func TestSnapshot(t *testing.T) {
	t.Parallel()

	cfg := newTestAPIConfig(
		map[string]string{KeyIsRequestProxy: "true"},
		map[string]string{KeyAPIURL: "https://api.example.com", KeyAPIURLPrefix: "/v1", KeyMode: "production"},
	)

	want := Settings{
		APIURL:         "https://api.example.com",
		APIURLPrefix:   "/v1",
		IsRequestProxy: true,
		BaseURL:        "/",
		Mode:           "production",
	}
	if got := cfg.Snapshot(); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	cfg := newTestAPIConfig(nil, map[string]string{KeyAPIURLPrefix: "/api"})

	key, value, ok := cfg.Lookup("apiUrlPrefix")
	if !ok || key != KeyAPIURLPrefix || value != "/api" {
		t.Fatalf("unexpected lookup result: %q %v %v", key, value, ok)
	}

	_, value, ok = cfg.Lookup("isRequestProxy")
	if !ok || value != false {
		t.Fatalf("expected boolean false, got %v", value)
	}

	if _, _, ok := cfg.Lookup("VITE_API_URL"); ok {
		t.Fatalf("expected raw keys to be rejected")
	}
}

func TestKeys(t *testing.T) {
	t.Parallel()

	want := []string{"VITE_API_URL", "VITE_API_URL_PREFIX", "VITE_IS_REQUEST_PROXY", "VITE_BASE_URL", "MODE"}
	if got := Keys(); !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSettingsRequestBase(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		settings Settings
		want     string
	}{
		{name: "empty", settings: Settings{}, want: ""},
		{name: "url only", settings: Settings{APIURL: "https://api.example.com"}, want: "https://api.example.com"},
		{name: "prefix only", settings: Settings{APIURLPrefix: "/api"}, want: "/api"},
		{name: "joined", settings: Settings{APIURL: "https://api.example.com/", APIURLPrefix: "/api"}, want: "https://api.example.com/api"},
		{name: "joined without slashes", settings: Settings{APIURL: "https://api.example.com", APIURLPrefix: "api"}, want: "https://api.example.com/api"},
		{name: "proxy", settings: Settings{APIURL: "https://api.example.com", APIURLPrefix: "/api", IsRequestProxy: true}, want: "/api"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.settings.RequestBase(); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestSettingsIsProduction(t *testing.T) {
	t.Parallel()

	if !(Settings{Mode: "production"}).IsProduction() {
		t.Fatalf("expected production")
	}
	if (Settings{Mode: "development"}).IsProduction() {
		t.Fatalf("expected non-production")
	}
}

func TestSettingNamesMatchLookup(t *testing.T) {
	t.Parallel()

	cfg := newTestAPIConfig(nil, nil)
	names := cfg.SettingNames()
	if want := []string{"apiUrl", "apiUrlPrefix", "isRequestProxy", "baseUrl", "mode"}; !slices.Equal(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}

	keys := make([]string, 0, len(names))
	for _, name := range names {
		key, _, ok := cfg.Lookup(name)
		if !ok {
			t.Fatalf("expected %q to resolve", name)
		}
		keys = append(keys, key)
	}
	if !slices.Equal(keys, Keys()) {
		t.Fatalf("expected lookup keys %v to match Keys() %v", keys, Keys())
	}
}
