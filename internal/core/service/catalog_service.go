package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/servicehub/portal/internal/core/domain"
	"github.com/servicehub/portal/internal/core/ports"
)

type CatalogService struct {
	backend ports.Backend
	logger  zerolog.Logger
}

func NewCatalogService(backend ports.Backend, logger zerolog.Logger) *CatalogService {
	return &CatalogService{backend: backend, logger: logger}
}

// Load fetches the service filter options and the filtered company list
// in parallel. The first failure cancels the other call.
func (s *CatalogService) Load(ctx context.Context, sess domain.Session, filter domain.CatalogFilter) (*ports.Catalog, error) {
	api := s.backend.As(sess)
	out := &ports.Catalog{Filter: filter}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		types, err := api.ServiceTypes(gctx)
		if err != nil {
			return err
		}
		out.ServiceTypes = types
		return nil
	})
	g.Go(func() error {
		companies, err := api.Companies(gctx, filter)
		if err != nil {
			return err
		}
		out.Companies = companies
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Debug().Int("companies", len(out.Companies)).Bool("filtered", !filter.IsZero()).Msg("catalog loaded")
	return out, nil
}
