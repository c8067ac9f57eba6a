package db

import (
	"context"

	"github.com/drivelaw/backend/internal/driver/entity"
	"github.com/jackc/pgx/v5"
)

const offenseColumns = `id, number, type, status, fine_amount, points,
	location, description, occurred_at, created_at`

func scanOffense(row pgx.Row) (*entity.Offense, error) {
	var (
		offense     entity.Offense
		offenseType int16
		status      int16
	)

	err := row.Scan(&offense.ID, &offense.Number, &offenseType, &status,
		&offense.FineAmount, &offense.Points, &offense.Location, &offense.Description,
		&offense.OccurredAt, &offense.CreatedAt)
	if err != nil {
		return nil, err
	}

	offense.Type = entity.OffenseType(offenseType)
	offense.Status = entity.OffenseStatus(status)

	return &offense, nil
}

func (s *DB) GetDashboard(ctx context.Context, driverID int64) (_ *entity.Dashboard, err error) {
	ctx, span := s.startSpan(ctx, "GetDashboard")
	defer func() { s.endSpan(span, err) }()

	var dashboard entity.Dashboard

	err = s.conn.QueryRow(ctx,
		`SELECT driving_score FROM users WHERE id = $1 AND deleted_at IS NULL`, driverID).
		Scan(&dashboard.DrivingScore)
	if err != nil {
		return nil, s.mapError(err)
	}

	counts := `SELECT
			COALESCE(SUM(fine_amount) FILTER (WHERE status = 2), 0),
			(SELECT COUNT(*) FROM appeals WHERE driver_id = $1 AND status = 1),
			(SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read_at IS NULL)
		FROM offenses
		WHERE driver_id = $1`

	err = s.conn.QueryRow(ctx, counts, driverID).
		Scan(&dashboard.OutstandingTotal, &dashboard.PendingAppeals, &dashboard.UnreadCount)
	if err != nil {
		return nil, s.mapError(err)
	}

	byStatus := `SELECT status, COUNT(*) FROM offenses WHERE driver_id = $1 GROUP BY status ORDER BY status`

	rows, err := s.conn.Query(ctx, byStatus, driverID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status int16
			count  int64
		)
		if err = rows.Scan(&status, &count); err != nil {
			return nil, s.mapError(err)
		}
		dashboard.OffensesByStatus = append(dashboard.OffensesByStatus, entity.StatusCount{
			Status: entity.OffenseStatus(status),
			Count:  count,
		})
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	recent := `SELECT ` + offenseColumns + `
		FROM offenses
		WHERE driver_id = $1
		ORDER BY occurred_at DESC
		LIMIT 5`

	rows, err = s.conn.Query(ctx, recent, driverID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		offense, sErr := scanOffense(rows)
		if sErr != nil {
			err = sErr
			return nil, s.mapError(err)
		}
		dashboard.RecentOffenses = append(dashboard.RecentOffenses, *offense)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return &dashboard, nil
}

func (s *DB) GetOffenseList(
	ctx context.Context,
	driverID int64,
	filter entity.OffenseListFilterData,
) (_ []entity.Offense, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "GetOffenseList")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + offenseColumns + `
		FROM offenses
		WHERE driver_id = $1
			AND ($2::bool = false OR status = ANY($3))
		ORDER BY occurred_at DESC
		LIMIT $4 OFFSET $5`

	rows, err := s.conn.Query(ctx, query, driverID,
		filter.IsFilterByStatus, filter.Statuses, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	defer rows.Close()

	var offenses []entity.Offense
	for rows.Next() {
		offense, sErr := scanOffense(rows)
		if sErr != nil {
			err = sErr
			return nil, 0, s.mapError(err)
		}
		offenses = append(offenses, *offense)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, s.mapError(err)
	}

	countQuery := `SELECT COUNT(*)
		FROM offenses
		WHERE driver_id = $1
			AND ($2::bool = false OR status = ANY($3))`

	var count int64
	err = s.conn.QueryRow(ctx, countQuery, driverID,
		filter.IsFilterByStatus, filter.Statuses).Scan(&count)
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	return offenses, count, nil
}

func (s *DB) GetOffenseByID(ctx context.Context, driverID, id int64) (_ *entity.Offense, err error) {
	ctx, span := s.startSpan(ctx, "GetOffenseByID")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + offenseColumns + `
		FROM offenses
		WHERE id = $1 AND driver_id = $2`

	offense, err := scanOffense(s.conn.QueryRow(ctx, query, id, driverID))
	if err != nil {
		return nil, s.mapError(err)
	}

	return offense, nil
}

func (s *DB) GetPaymentSummary(ctx context.Context, driverID int64) (_ *entity.PaymentSummary, err error) {
	ctx, span := s.startSpan(ctx, "GetPaymentSummary")
	defer func() { s.endSpan(span, err) }()

	var summary entity.PaymentSummary

	totals := `SELECT
			(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE driver_id = $1),
			(SELECT COUNT(*) FROM payments WHERE driver_id = $1),
			COALESCE(SUM(fine_amount) FILTER (WHERE status = 2), 0),
			COUNT(*) FILTER (WHERE status = 2)
		FROM offenses
		WHERE driver_id = $1`

	err = s.conn.QueryRow(ctx, totals, driverID).Scan(&summary.PaidTotal, &summary.PaidCount,
		&summary.OutstandingTotal, &summary.OutstandingCount)
	if err != nil {
		return nil, s.mapError(err)
	}

	history := `SELECT p.id, p.reference, p.offense_id, o.number, p.amount, p.method, p.paid_at
		FROM payments p
		JOIN offenses o ON o.id = p.offense_id
		WHERE p.driver_id = $1
		ORDER BY p.paid_at DESC`

	rows, err := s.conn.Query(ctx, history, driverID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var payment entity.Payment
		if err = rows.Scan(&payment.ID, &payment.Reference, &payment.OffenseID,
			&payment.OffenseNumber, &payment.Amount, &payment.Method, &payment.PaidAt); err != nil {
			return nil, s.mapError(err)
		}
		summary.History = append(summary.History, payment)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return &summary, nil
}
