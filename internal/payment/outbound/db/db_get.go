package db

import (
	"context"

	"github.com/drivelaw/backend/internal/payment/entity"
)

func (s *DB) GetPaymentByID(ctx context.Context, id int64) (_ *entity.Payment, err error) {
	ctx, span := s.startSpan(ctx, "GetPaymentByID")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT p.id, p.reference, p.offense_id, o.number, p.driver_id, p.amount, p.method,
			p.paid_at, p.created_at
		FROM payments p
		JOIN offenses o ON o.id = p.offense_id
		WHERE p.id = $1`

	var payment entity.Payment
	err = s.conn.QueryRow(ctx, query, id).Scan(&payment.ID, &payment.Reference, &payment.OffenseID,
		&payment.OffenseNumber, &payment.DriverID, &payment.Amount, &payment.Method,
		&payment.PaidAt, &payment.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &payment, nil
}

func (s *DB) GetOffenseForPayment(ctx context.Context, offenseID int64) (_ *entity.PaymentOffense, err error) {
	ctx, span := s.startSpan(ctx, "GetOffenseForPayment")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT id, number, driver_id, status, fine_amount FROM offenses WHERE id = $1`

	var offense entity.PaymentOffense
	err = s.conn.QueryRow(ctx, query, offenseID).Scan(&offense.ID, &offense.Number,
		&offense.DriverID, &offense.Status, &offense.FineAmount)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &offense, nil
}

func (s *DB) GetStatistics(ctx context.Context) (_ *entity.Statistics, err error) {
	ctx, span := s.startSpan(ctx, "GetStatistics")
	defer func() { s.endSpan(span, err) }()

	var stats entity.Statistics
	err = s.conn.QueryRow(ctx, `SELECT COUNT(*), COALESCE(SUM(amount), 0) FROM payments`).
		Scan(&stats.TotalCount, &stats.TotalAmount)
	if err != nil {
		return nil, s.mapError(err)
	}

	byMethod := `SELECT method, COUNT(*), COALESCE(SUM(amount), 0)
		FROM payments
		GROUP BY method
		ORDER BY method`

	rows, err := s.conn.Query(ctx, byMethod)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var mt entity.MethodTotal
		if err = rows.Scan(&mt.Method, &mt.Count, &mt.Amount); err != nil {
			return nil, s.mapError(err)
		}
		stats.ByMethod = append(stats.ByMethod, mt)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	monthly := `SELECT date_trunc('month', paid_at) AS month, COUNT(*), COALESCE(SUM(amount), 0)
		FROM payments
		GROUP BY month
		ORDER BY month DESC
		LIMIT 12`

	rows, err = s.conn.Query(ctx, monthly)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var mt entity.MonthlyTotal
		if err = rows.Scan(&mt.Month, &mt.Count, &mt.Amount); err != nil {
			return nil, s.mapError(err)
		}
		stats.Monthly = append(stats.Monthly, mt)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return &stats, nil
}
