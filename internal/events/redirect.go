package events

import (
	"context"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/clients"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/logging"
)

var _ clients.LoginRedirector = (*SessionExpiredRedirector)(nil)

// SessionExpiredRedirector turns a login redirect into a session.expired event
// so back-office consumers see when a terminal lost its session.
type SessionExpiredRedirector struct {
	publisher Publisher
	logger    *logging.LoggerV2
}

func NewSessionExpiredRedirector(publisher Publisher, logger *logging.LoggerV2) *SessionExpiredRedirector {
	return &SessionExpiredRedirector{publisher: publisher, logger: logger}
}

// RedirectToLogin publishes the event. Publishing failures are only logged;
// the session is already gone either way.
func (r *SessionExpiredRedirector) RedirectToLogin(ctx context.Context, reason error) {
	msg := ""
	if reason != nil {
		msg = reason.Error()
	}
	if err := r.publisher.PublishSessionExpired(ctx, msg); err != nil {
		r.logger.Warn("Failed to publish session expired event", logging.Fields{"error": err.Error()})
	}
}
