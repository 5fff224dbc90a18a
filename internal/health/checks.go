package health

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hellofresh/health-go/v5"
)

// Document is a store whose backing file can be checked.
type Document interface {
	Path() string
	Ping(ctx context.Context) error
}

// NewHealthHandler builds a health report with one check per document.
func NewHealthHandler(version string, docs ...Document) (*health.Health, error) {
	opts := []health.Option{
		health.WithComponent(health.Component{
			Name:    "storefront",
			Version: version,
		}),
		health.WithSystemInfo(),
	}

	for _, doc := range docs {
		doc := doc
		opts = append(opts, health.WithChecks(health.Config{
			Name:      filepath.Base(doc.Path()),
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: func(ctx context.Context) error {
				if err := doc.Ping(ctx); err != nil {
					return fmt.Errorf("%s unavailable: %w", doc.Path(), err)
				}
				return nil
			},
		}))
	}

	h, err := health.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create health checker: %w", err)
	}
	return h, nil
}
