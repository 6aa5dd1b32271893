package newsroom

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
)

const (
	// DefaultHost is the standard local Ollama endpoint.
	DefaultHost = "http://localhost:11434"

	// DefaultModel is used when neither the request nor the config names one.
	DefaultModel = "llama3.2:1b"

	defaultBridgeHost = "host.docker.internal"
)

// loopbackPattern matches base URLs that point at the local machine. When the
// primary host is a loopback address the server may be running inside a
// container while Ollama runs on the container host, so a bridge-host variant
// is appended to the candidate list.
var loopbackPattern = regexp.MustCompile(`(?i)^https?://(localhost|127\.|0\.0\.0\.0)`)

// HostConfig holds the generation-host settings a Resolver is built from.
type HostConfig struct {
	// Primary is the configured Ollama base URL. Empty means DefaultHost.
	Primary string

	// Fallbacks are additional base URLs tried in order after Primary.
	Fallbacks []string

	// BridgeHost replaces a loopback hostname when deriving the
	// container-bridge candidate. Empty means "host.docker.internal".
	BridgeHost string
}

// Resolver computes the ordered candidate list of Ollama base URLs and runs
// calls against them with first-success fallback. It holds no state beyond
// its configuration; Candidates is recomputed on every call.
type Resolver struct {
	cfg HostConfig
}

// NewResolver creates a Resolver for the given host configuration.
func NewResolver(cfg HostConfig) *Resolver {
	return &Resolver{cfg: cfg}
}

// Candidates returns the ordered, de-duplicated list of base URLs to try:
// the primary host, then explicit fallbacks, then a bridge-host variant when
// the primary looks like a loopback address.
func (r *Resolver) Candidates() []string {
	var candidates []string
	seen := make(map[string]bool)
	add := func(host string) {
		host = strings.TrimRight(strings.TrimSpace(host), "/")
		if host == "" || seen[host] {
			return
		}
		seen[host] = true
		candidates = append(candidates, host)
	}

	primary := r.cfg.Primary
	if strings.TrimSpace(primary) == "" {
		primary = DefaultHost
	}
	add(primary)

	for _, fallback := range r.cfg.Fallbacks {
		add(fallback)
	}

	if loopbackPattern.MatchString(strings.TrimSpace(primary)) {
		add(bridgeURL(strings.TrimRight(strings.TrimSpace(primary), "/"), r.bridgeHost()))
	}

	if len(candidates) == 0 {
		candidates = append(candidates, DefaultHost)
	}

	return candidates
}

// Do invokes attempt against each candidate host in order and returns on the
// first success. Individual failures are logged as warnings and recorded; if
// every candidate fails, the returned error lists each host with the reason
// it was skipped so operators can see exactly what was tried.
func (r *Resolver) Do(ctx context.Context, label string, attempt func(ctx context.Context, host string) error) error {
	var failures []string
	for _, host := range r.Candidates() {
		err := attempt(ctx, host)
		if err == nil {
			return nil
		}
		slog.Warn("ollama call failed, trying next host", "op", label, "host", host, "error", err)
		failures = append(failures, fmt.Sprintf("%s: %v", host, err))
	}

	detail := "no hosts were configured"
	if len(failures) > 0 {
		detail = strings.Join(failures, "; ")
	}
	return fmt.Errorf("unable to reach any configured Ollama host: %s", detail)
}

func (r *Resolver) bridgeHost() string {
	if r.cfg.BridgeHost != "" {
		return r.cfg.BridgeHost
	}
	return defaultBridgeHost
}

// bridgeURL replaces the hostname of base with bridgeHost, preserving scheme
// and port. If base cannot be parsed, a conventional bridge URL is returned.
func bridgeURL(base, bridgeHost string) string {
	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return "http://" + bridgeHost + ":11434"
	}
	if port := u.Port(); port != "" {
		u.Host = bridgeHost + ":" + port
	} else {
		u.Host = bridgeHost
	}
	return strings.TrimRight(u.String(), "/")
}
