package usecase

import (
	"context"
	"log/slog"

	"github.com/drivelaw/backend/internal/pkg/jwt"
)

// Logout ends the session. Sessions are stateless JWTs, so the work is
// clearing the cookie at the transport layer; this records the event.
func (s *Usecase) Logout(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	if clm := jwt.GetAuth(ctx); clm != nil {
		slog.InfoContext(ctx, "user logged out", "user_id", clm.UserID)
	}

	return nil
}
