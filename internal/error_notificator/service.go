package error_notificator

import (
	"context"
	"log"
)

type Service struct {
	infra Notificator
}

func NewService(infra Notificator) *Service {
	return &Service{infra: infra}
}

// Notify never fails the caller; delivery problems are only logged.
func (s *Service) Notify(ctx context.Context, source string, err error, details string) error {
	if nErr := s.infra.Notify(ctx, source, err, details); nErr != nil {
		log.Printf("[error_notificator] notify fail source=%s: %v", source, nErr)
	}
	return nil
}
