package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"site-content-service/internal/domain"
)

// FileSource implements domain.Source for a local JSON bundle file.
// This is the static-data path: the bundle ships with the deployment and
// resolves without any network step.
type FileSource struct {
	path   string
	logger *zap.Logger
}

// NewFileSource creates a file source for the given bundle path.
func NewFileSource(path string, logger *zap.Logger) *FileSource {
	return &FileSource{
		path:   path,
		logger: logger,
	}
}

// Name returns the source identifier.
func (s *FileSource) Name() string {
	return "file"
}

// Path returns the bundle file path being read.
func (s *FileSource) Path() string {
	return s.path
}

// Fetch reads and parses the bundle file. A document without a top-level
// "site" key is treated as a bare site object with no separate packages
// bundle, so both bundle shapes load.
func (s *FileSource) Fetch(ctx context.Context) (*domain.ContentBundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading bundle %s: %w", s.path, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing bundle %s: %w", s.path, err)
	}

	bundle := &domain.ContentBundle{}
	if site, ok := doc["site"].(map[string]any); ok {
		bundle.Site = site
		if packages, ok := doc["packages"].([]any); ok {
			bundle.Packages = packages
		}
	} else {
		bundle.Site = doc
	}

	s.logger.Debug("bundle file loaded",
		zap.String("path", s.path),
		zap.Int("bytes", len(data)),
		zap.Int("extra_packages", len(bundle.Packages)),
	)

	return bundle, nil
}

// HealthCheck verifies the bundle file exists and is a regular file.
func (s *FileSource) HealthCheck(_ context.Context) error {
	info, err := os.Stat(s.path)
	if err != nil {
		return fmt.Errorf("bundle file %s: %w", s.path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("bundle path %s is a directory", s.path)
	}

	return nil
}
