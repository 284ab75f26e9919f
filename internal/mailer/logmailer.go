// Copyright (c) 2026 Atimus. All rights reserved.

package mailer

import (
	"context"
	"log/slog"

	"github.com/atimus/edital-api/internal/platform/sec"
)

// # Implementations

// LogMailer writes lifecycle emails to the structured log instead of a real
// transport. It is the default in development and the safety net in any
// environment where no transport is configured.
//
// The recipient address is masked before logging.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer constructs a LogMailer.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send implements [Mailer]. It always reports false so the caller exercises
// its fallback path, which logs the full actionable link.
func (m *LogMailer) Send(ctx context.Context, kind Kind, recipient string, rawToken string) bool {
	m.logger.DebugContext(ctx, "email_transport_absent",
		slog.String("kind", string(kind)),
		slog.String("recipient", sec.MaskEmail(recipient)),
	)
	return false
}
