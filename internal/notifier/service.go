package notifier

import (
	"context"

	"go.uber.org/zap"
)

type Service struct {
	infra Notificator
	log   *zap.SugaredLogger
}

func NewService(infra Notificator, log *zap.SugaredLogger) *Service {
	return &Service{infra: infra, log: log}
}

// Notify forwards err to the admin; a failed delivery is logged and returned.
func (s *Service) Notify(ctx context.Context, err error, details string) error {
	if err == nil {
		return nil
	}
	if nerr := s.infra.Notify(ctx, err, details); nerr != nil {
		s.log.Warnw("[notifier] send fail", "err", nerr, "original", err)
		return nerr
	}
	return nil
}
