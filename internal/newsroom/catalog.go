package newsroom

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNoModels is returned when the host answers but reports an empty model
// list. An empty catalog is a configuration problem, not a valid result,
// since rewrites cannot proceed without a model.
var ErrNoModels = errors.New("no models found; pull one with `ollama pull <model>`")

// Catalog lists generation models available on the resolved Ollama host.
type Catalog struct {
	resolver *Resolver
	client   *http.Client
}

// NewCatalog creates a Catalog using the given resolver.
func NewCatalog(resolver *Resolver) *Catalog {
	return &Catalog{
		resolver: resolver,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type tagsResponse struct {
	Models []struct {
		Name       string `json:"name"`
		Size       int64  `json:"size"`
		Digest     string `json:"digest"`
		ModifiedAt string `json:"modified_at"`
	} `json:"models"`
}

// ListModels queries the first reachable host's tags endpoint and returns
// the normalized model list.
func (c *Catalog) ListModels(ctx context.Context) ([]Model, error) {
	var payload tagsResponse
	err := c.resolver.Do(ctx, "list models", func(ctx context.Context, host string) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, host+"/api/tags", nil)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("sending request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
		}

		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(payload.Models) == 0 {
		return nil, ErrNoModels
	}

	models := make([]Model, 0, len(payload.Models))
	for _, m := range payload.Models {
		models = append(models, Model{
			Name:       m.Name,
			Size:       m.Size,
			Digest:     m.Digest,
			ModifiedAt: m.ModifiedAt,
		})
	}
	return models, nil
}
