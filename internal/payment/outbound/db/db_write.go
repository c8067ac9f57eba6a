package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/drivelaw/backend/internal/payment/entity"
	"github.com/drivelaw/backend/internal/pkg/goerror"
	"github.com/jackc/pgx/v5"
)

func (s *DB) NextPaymentNumber(ctx context.Context) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "NextPaymentNumber")
	defer func() { s.endSpan(span, err) }()

	var seq int64
	err = s.conn.QueryRow(ctx, `SELECT nextval('payment_number_seq')`).Scan(&seq)
	if err != nil {
		return 0, s.mapError(err)
	}

	return seq, nil
}

// CreatePayment inserts the settlement row and marks the offense paid in
// one transaction. The guarded offense update keeps double capture out even
// without an idempotency key.
func (s *DB) CreatePayment(ctx context.Context, payment entity.NewPayment, reference string) (err error) {
	ctx, span := s.startSpan(ctx, "CreatePayment")
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

	settle := `UPDATE offenses
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3`

	tag, err := tx.Exec(ctx, settle, payment.OffenseID,
		entity.OffenseStatusPaid, entity.OffenseStatusConfirmed)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	insert := `INSERT INTO payments (id, reference, offense_id, driver_id, amount, method, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = tx.Exec(ctx, insert, payment.ID, reference, payment.OffenseID, payment.DriverID,
		payment.Amount, int16(payment.Method), payment.PaidAt)
	if err != nil {
		return s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}
