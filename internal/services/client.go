package services

import (
	"context"

	"github.com/diewo77/go-facturas/internal/metrics"
	"github.com/diewo77/go-facturas/validation"
	"go.uber.org/zap"
)

// ClientStore is the part of the repository the client service needs.
type ClientStore interface {
	CreateClient(ctx context.Context, name string, taxID, email *string) (int64, error)
}

type ClientService struct {
	store ClientStore
	log   *zap.Logger
}

func NewClientService(store ClientStore, log *zap.Logger) *ClientService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ClientService{store: store, log: log}
}

// Register stores a validated client and returns its id.
func (s *ClientService) Register(ctx context.Context, in validation.ClientInput) (int64, error) {
	id, err := s.store.CreateClient(ctx, in.Name, in.TaxID, in.Email)
	if err != nil {
		s.log.Error("create client failed", zap.String("nombre", in.Name), zap.Error(err))
		return 0, err
	}
	metrics.ClientCreated()
	s.log.Info("client created", zap.Int64("id", id), zap.String("nombre", in.Name))
	return id, nil
}
