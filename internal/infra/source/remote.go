package source

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"site-content-service/internal/domain"
)

// DefaultEndpoint is the API path the remote content server exposes.
const DefaultEndpoint = "/api/content"

// RemoteSource implements domain.Source against a hosted content API.
type RemoteSource struct {
	name     string
	endpoint string
	client   *resty.Client
	cb       *gobreaker.CircuitBreaker[*resty.Response]
	logger   *zap.Logger
}

// NewRemoteSource creates a remote bundle client.
func NewRemoteSource(cfg ClientConfig, logger *zap.Logger) *RemoteSource {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &RemoteSource{
		name:     "remote",
		endpoint: endpoint,
		client:   NewRestyClient(cfg),
		cb:       NewCircuitBreaker[*resty.Response]("content-remote", cfg.CB),
		logger:   logger,
	}
}

// Name returns the source identifier.
func (s *RemoteSource) Name() string {
	return s.name
}

// Fetch retrieves the content bundle from the remote API.
func (s *RemoteSource) Fetch(ctx context.Context) (*domain.ContentBundle, error) {
	resp, err := s.cb.Execute(func() (*resty.Response, error) {
		var result domain.ContentBundle
		r, err := s.client.R().
			SetContext(ctx).
			SetResult(&result).
			Get(s.endpoint)
		if err != nil {
			return nil, err
		}
		if r.IsError() {
			return nil, fmt.Errorf("content server returned status %d", r.StatusCode())
		}

		return r, nil
	})

	if err != nil {
		s.logger.Warn("remote bundle fetch failed",
			zap.Error(err),
			zap.String("state", s.cb.State().String()),
		)

		return nil, fmt.Errorf("fetching content bundle: %w", err)
	}

	bundle := resp.Result().(*domain.ContentBundle)

	s.logger.Info("remote bundle fetch completed",
		zap.Int("sections", len(bundle.Site)),
		zap.Int("extra_packages", len(bundle.Packages)),
	)

	return bundle, nil
}

// HealthCheck verifies the content server is accessible.
func (s *RemoteSource) HealthCheck(ctx context.Context) error {
	resp, err := s.client.R().
		SetContext(ctx).
		Get("/health")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("health check returned status %d", resp.StatusCode())
	}

	return nil
}
