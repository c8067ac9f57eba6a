package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/drivelaw/backend/internal/notification/entity"
	"github.com/jackc/pgx/v5"
)

func (s *DB) CreateNotification(ctx context.Context, data entity.CreateNotification) (err error) {
	ctx, span := s.startSpan(ctx, "CreateNotification")
	defer func() { s.endSpan(span, err) }()

	query := `INSERT INTO notifications (id, user_id, kind, title, body)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = s.conn.Exec(ctx, query, data.ID, data.UserID, int16(data.Kind), data.Title, data.Body)

	return s.mapError(err)
}

func (s *DB) CreateNotificationWithDeliveryLog(
	ctx context.Context,
	n entity.CreateNotification,
	dl entity.CreateDeliveryLog,
) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "CreateNotificationWithDeliveryLog")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rolback", "error", rErr)
		}
	}()

	insertNotification := `INSERT INTO notifications (id, user_id, kind, title, body)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err = tx.Exec(ctx, insertNotification,
		n.ID, n.UserID, int16(n.Kind), n.Title, n.Body); err != nil {
		return 0, s.mapError(err)
	}

	insertLog := `INSERT INTO notification_delivery_logs (notification_id, channel, status)
		VALUES ($1, $2, $3)
		RETURNING id`

	var logID int64
	err = tx.QueryRow(ctx, insertLog, dl.NotificationID, int16(dl.Channel), int16(dl.Status)).Scan(&logID)
	if err != nil {
		return 0, s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, err
	}

	return logID, nil
}
