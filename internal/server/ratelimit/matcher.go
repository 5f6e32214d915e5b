package ratelimit

import (
	"path"
	"strings"
)

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Paths match exactly, by prefix when the configured path ends with "/",
// or by segment wildcard when it contains "*" ("/sessions/*/export").
func MatchEndpoint(urlPath string, method string, configs []EndpointConfig) *EndpointConfig {
	// Special case: health check endpoint is unlimited
	if urlPath == "/health" && method == "GET" {
		return &EndpointConfig{Path: "/health", Method: "GET"}
	}

	// Try exact and wildcard matches first
	for i := range configs {
		config := &configs[i]
		if config.Method != method {
			continue
		}
		if config.Path == urlPath {
			return config
		}
		if strings.Contains(config.Path, "*") {
			if ok, err := path.Match(config.Path, urlPath); err == nil && ok {
				return config
			}
		}
	}

	// Try prefix match (for paths ending with "/")
	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(urlPath, config.Path) {
			return config
		}
	}

	return nil
}
