package service

import (
	"context"

	"github.com/rs/zerolog"
)

// Invitation carries the details an invitation delivery needs.
type Invitation struct {
	RecipientName  string
	RecipientEmail string
	Role           string
	Token          string
}

// Mailer delivers invitations. Delivery itself lives outside this service; the
// admin endpoints only enqueue through this port.
type Mailer interface {
	SendInvitation(ctx context.Context, invitation Invitation) error
}

type logMailer struct {
	logger zerolog.Logger
}

// NewLogMailer returns a Mailer that records the invitation instead of
// delivering it. Used in development and as the default wiring when no
// delivery backend is configured.
func NewLogMailer(logger zerolog.Logger) Mailer {
	return &logMailer{logger: logger.With().Str("component", "log_mailer").Logger()}
}

func (m *logMailer) SendInvitation(_ context.Context, invitation Invitation) error {
	m.logger.Info().
		Str("recipient", invitation.RecipientEmail).
		Str("role", invitation.Role).
		Msg("invitation queued")
	return nil
}
