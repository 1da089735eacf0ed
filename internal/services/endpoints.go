package services

import (
	"context"

	"education-backend-go/internal/models"
	"education-backend-go/internal/store"
)

type EndpointService struct {
	endpoints store.Store[models.Endpoint]
}

func NewEndpointService(endpoints store.Store[models.Endpoint]) *EndpointService {
	return &EndpointService{endpoints: endpoints}
}

// Create is idempotent by endpoint name: creating the same name twice
// returns the same entity both times.
func (s *EndpointService) Create(ctx context.Context, endpoint models.Endpoint) (models.Endpoint, error) {
	filter := store.Where("name", endpoint.Name)
	exists, err := s.endpoints.Exists(ctx, filter, false)
	if err != nil {
		return models.Endpoint{}, err
	}
	if exists {
		return s.endpoints.Get(ctx, filter)
	}
	return s.endpoints.Create(ctx, endpoint)
}

func (s *EndpointService) CreateWithName(ctx context.Context, name string) (models.Endpoint, error) {
	return s.Create(ctx, models.Endpoint{Name: name})
}

func (s *EndpointService) Get(ctx context.Context, filter store.Filter) (models.Endpoint, error) {
	return s.endpoints.Get(ctx, filter)
}

func (s *EndpointService) Exists(ctx context.Context, filter store.Filter, raiseOnMissing bool) (bool, error) {
	return s.endpoints.Exists(ctx, filter, raiseOnMissing)
}
