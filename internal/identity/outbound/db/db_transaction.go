package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/drivelaw/backend/internal/identity/entity"
	"github.com/jackc/pgx/v5"
)

// ActivateVerifiedUser flips an unverified user to active and removes the
// consumed verification row in one transaction.
func (s *DB) ActivateVerifiedUser(ctx context.Context, data entity.VerifiedUser) (err error) {
	ctx, span := s.startSpan(ctx, "ActivateVerifiedUser")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rolback", "error", rErr)
		}
	}()

	activate := `UPDATE users
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3 AND deleted_at IS NULL`

	if _, err := tx.Exec(ctx, activate, data.UserID,
		int16(entity.UserStatusActive), int16(entity.UserStatusUnverified)); err != nil {
		return s.mapError(err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM verifications WHERE id = $1`, data.VerificationID); err != nil {
		return s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}
