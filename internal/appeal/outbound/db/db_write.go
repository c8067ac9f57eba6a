package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/drivelaw/backend/internal/appeal/entity"
	"github.com/drivelaw/backend/internal/pkg/goerror"
	"github.com/jackc/pgx/v5"
)

func (s *DB) NextAppealNumber(ctx context.Context) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "NextAppealNumber")
	defer func() { s.endSpan(span, err) }()

	var seq int64
	err = s.conn.QueryRow(ctx, `SELECT nextval('appeal_number_seq')`).Scan(&seq)
	if err != nil {
		return 0, s.mapError(err)
	}

	return seq, nil
}

func (s *DB) CreateAppeal(ctx context.Context, appeal entity.NewAppeal, number string) (err error) {
	ctx, span := s.startSpan(ctx, "CreateAppeal")
	defer func() { s.endSpan(span, err) }()

	query := `INSERT INTO appeals (id, number, offense_id, driver_id, reason, status, due_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = s.conn.Exec(ctx, query, appeal.ID, number, appeal.OffenseID, appeal.DriverID,
		appeal.Reason, int16(entity.AppealStatusPending), appeal.DueAt)

	return s.mapError(err)
}

// ApproveAppeal marks the appeal approved, cancels the offense, and
// restores the deducted driving score points in one transaction.
func (s *DB) ApproveAppeal(ctx context.Context, decision entity.Decision) (err error) {
	ctx, span := s.startSpan(ctx, "ApproveAppeal")
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

	decide := `UPDATE appeals
		SET status = $2, decided_at = $3, decided_by = $4, decision_reason = $5, updated_at = NOW()
		WHERE id = $1 AND status = $6`

	tag, err := tx.Exec(ctx, decide, decision.AppealID,
		int16(entity.AppealStatusApproved), decision.DecidedAt, decision.DecidedBy,
		decision.Reason, int16(entity.AppealStatusPending))
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	cancel := `UPDATE offenses
		SET status = $2, updated_at = NOW()
		WHERE id = $1`

	if _, err := tx.Exec(ctx, cancel, decision.OffenseID, entity.OffenseStatusCancelled); err != nil {
		return s.mapError(err)
	}

	restore := `UPDATE users
		SET driving_score = LEAST(driving_score + $2, 100), updated_at = NOW()
		WHERE id = $1`

	if _, err := tx.Exec(ctx, restore, decision.DriverID, decision.Points); err != nil {
		return s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}

func (s *DB) RejectAppeal(ctx context.Context, decision entity.Decision) (err error) {
	ctx, span := s.startSpan(ctx, "RejectAppeal")
	defer func() { s.endSpan(span, err) }()

	query := `UPDATE appeals
		SET status = $2, decided_at = $3, decided_by = $4, decision_reason = $5, updated_at = NOW()
		WHERE id = $1 AND status = $6`

	tag, err := s.conn.Exec(ctx, query, decision.AppealID,
		int16(entity.AppealStatusRejected), decision.DecidedAt, decision.DecidedBy,
		decision.Reason, int16(entity.AppealStatusPending))
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}
