package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/drivelaw/backend/internal/offense/entity"
	"github.com/drivelaw/backend/internal/pkg/goerror"
	"github.com/jackc/pgx/v5"
)

func (s *DB) NextOffenseNumber(ctx context.Context) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "NextOffenseNumber")
	defer func() { s.endSpan(span, err) }()

	var seq int64
	err = s.conn.QueryRow(ctx, `SELECT nextval('offense_number_seq')`).Scan(&seq)
	if err != nil {
		return 0, s.mapError(err)
	}

	return seq, nil
}

func (s *DB) CreateOffense(ctx context.Context, offense entity.NewOffense, number string) (err error) {
	ctx, span := s.startSpan(ctx, "CreateOffense")
	defer func() { s.endSpan(span, err) }()

	query := `INSERT INTO offenses
			(id, number, driver_id, officer_id, type, status, fine_amount, points,
			location, description, evidence_keys, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, '{}', $11)`

	_, err = s.conn.Exec(ctx, query, offense.ID, number, offense.DriverID, offense.OfficerID,
		int16(offense.Type), int16(entity.OffenseStatusPending), offense.FineAmount,
		offense.Points, offense.Location, offense.Description, offense.OccurredAt)

	return s.mapError(err)
}

func (s *DB) UpdateOffenseStatus(ctx context.Context, id int64, oldStatus, newStatus entity.OffenseStatus) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateOffenseStatus")
	defer func() { s.endSpan(span, err) }()

	query := `UPDATE offenses
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2`

	tag, err := s.conn.Exec(ctx, query, id, int16(oldStatus), int16(newStatus))
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

// ConfirmOffense moves a pending offense to confirmed and deducts the
// points from the driver's score in one transaction.
func (s *DB) ConfirmOffense(ctx context.Context, id, driverID int64, points int16) (err error) {
	ctx, span := s.startSpan(ctx, "ConfirmOffense")
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

	confirm := `UPDATE offenses
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3`

	tag, err := tx.Exec(ctx, confirm, id,
		int16(entity.OffenseStatusConfirmed), int16(entity.OffenseStatusPending))
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	deduct := `UPDATE users
		SET driving_score = GREATEST(driving_score - $2, 0), updated_at = NOW()
		WHERE id = $1`

	if _, err := tx.Exec(ctx, deduct, driverID, points); err != nil {
		return s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}

func (s *DB) AppendEvidenceKey(ctx context.Context, id int64, key string) (err error) {
	ctx, span := s.startSpan(ctx, "AppendEvidenceKey")
	defer func() { s.endSpan(span, err) }()

	query := `UPDATE offenses
		SET evidence_keys = array_append(evidence_keys, $2), updated_at = NOW()
		WHERE id = $1`

	tag, err := s.conn.Exec(ctx, query, id, key)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}
