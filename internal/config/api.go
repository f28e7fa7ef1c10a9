package config

import (
	"strings"

	"github.com/eugenenazirov/apiconfig/internal/env"
)

// Recognized environment keys for the API settings.
const (
	KeyAPIURL         = "VITE_API_URL"
	KeyAPIURLPrefix   = "VITE_API_URL_PREFIX"
	KeyIsRequestProxy = "VITE_IS_REQUEST_PROXY"
	KeyBaseURL        = "VITE_BASE_URL"
	KeyMode           = "MODE"
)

const (
	defaultBaseURL = "/"
	defaultMode    = "development"
	modeProduction = "production"
)

// Keys returns the full API configuration surface.
func Keys() []string {
	keys := make([]string, len(namedSettings))
	for i, s := range namedSettings {
		keys[i] = s.key
	}
	return keys
}

// APIConfig exposes the API settings. Every accessor resolves again on each
// call, so a changed process environment is visible immediately.
type APIConfig struct {
	resolver *env.Resolver
}

// NewAPIConfig returns an APIConfig backed by resolver.
func NewAPIConfig(resolver *env.Resolver) *APIConfig {
	return &APIConfig{resolver: resolver}
}

// APIURL is the base URL of the backend API.
func (c *APIConfig) APIURL() string {
	return c.resolver.Resolve(KeyAPIURL, "")
}

// APIURLPrefix is the path prefix prepended to API routes.
func (c *APIConfig) APIURLPrefix() string {
	return c.resolver.Resolve(KeyAPIURLPrefix, "")
}

// IsRequestProxy reports whether requests go through a same-origin proxy.
// Only the exact string "true" enables it.
func (c *APIConfig) IsRequestProxy() bool {
	return c.resolver.Resolve(KeyIsRequestProxy, "false") == "true"
}

// BaseURL is the public base path of the application.
func (c *APIConfig) BaseURL() string {
	return c.resolver.Resolve(KeyBaseURL, defaultBaseURL)
}

// Mode is the current environment name.
func (c *APIConfig) Mode() string {
	return c.resolver.Resolve(KeyMode, defaultMode)
}

// Snapshot resolves all settings once.
func (c *APIConfig) Snapshot() Settings {
	return Settings{
		APIURL:         c.APIURL(),
		APIURLPrefix:   c.APIURLPrefix(),
		IsRequestProxy: c.IsRequestProxy(),
		BaseURL:        c.BaseURL(),
		Mode:           c.Mode(),
	}
}

// namedSettings maps accessor names to their key and accessor, in table order.
var namedSettings = []struct {
	name string
	key  string
	get  func(*APIConfig) any
}{
	{"apiUrl", KeyAPIURL, func(c *APIConfig) any { return c.APIURL() }},
	{"apiUrlPrefix", KeyAPIURLPrefix, func(c *APIConfig) any { return c.APIURLPrefix() }},
	{"isRequestProxy", KeyIsRequestProxy, func(c *APIConfig) any { return c.IsRequestProxy() }},
	{"baseUrl", KeyBaseURL, func(c *APIConfig) any { return c.BaseURL() }},
	{"mode", KeyMode, func(c *APIConfig) any { return c.Mode() }},
}

// SettingNames returns the names accepted by Lookup.
func (c *APIConfig) SettingNames() []string {
	names := make([]string, len(namedSettings))
	for i, s := range namedSettings {
		names[i] = s.name
	}
	return names
}

// Lookup returns a single setting by its accessor name.
func (c *APIConfig) Lookup(name string) (key string, value any, ok bool) {
	for _, s := range namedSettings {
		if s.name == name {
			return s.key, s.get(c), true
		}
	}
	return "", nil, false
}

// Settings is a point-in-time copy of the API settings.
type Settings struct {
	APIURL         string `json:"apiUrl" yaml:"apiUrl"`
	APIURLPrefix   string `json:"apiUrlPrefix" yaml:"apiUrlPrefix"`
	IsRequestProxy bool   `json:"isRequestProxy" yaml:"isRequestProxy"`
	BaseURL        string `json:"baseUrl" yaml:"baseUrl"`
	Mode           string `json:"mode" yaml:"mode"`
}

// RequestBase returns the prefix an HTTP client should put in front of API
// routes. Proxied clients stay on the same origin and only use the prefix.
func (s Settings) RequestBase() string {
	if s.IsRequestProxy {
		return s.APIURLPrefix
	}
	return joinURL(s.APIURL, s.APIURLPrefix)
}

// IsProduction reports whether Mode is "production".
func (s Settings) IsProduction() bool {
	return s.Mode == modeProduction
}

func joinURL(base, prefix string) string {
	switch {
	case base == "":
		return prefix
	case prefix == "":
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(prefix, "/")
}
