package db

import (
	"context"
	"time"

	"github.com/drivelaw/backend/internal/offense/entity"
	"github.com/jackc/pgx/v5"
)

const offenseColumns = `id, number, driver_id, officer_id, type, status, fine_amount, points,
	location, description, evidence_keys, occurred_at, created_at, updated_at`

func scanOffense(row pgx.Row) (*entity.Offense, error) {
	var (
		offense     entity.Offense
		offenseType int16
		status      int16
	)

	err := row.Scan(&offense.ID, &offense.Number, &offense.DriverID, &offense.OfficerID,
		&offenseType, &status, &offense.FineAmount, &offense.Points,
		&offense.Location, &offense.Description, &offense.EvidenceKeys,
		&offense.OccurredAt, &offense.CreatedAt, &offense.UpdatedAt)
	if err != nil {
		return nil, err
	}

	offense.Type = entity.OffenseType(offenseType)
	offense.Status = entity.OffenseStatus(status)

	return &offense, nil
}

func (s *DB) GetDriverByLicense(ctx context.Context, license string) (_ *entity.Driver, err error) {
	ctx, span := s.startSpan(ctx, "GetDriverByLicense")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT id, full_name, license_number, driving_score, language
		FROM users
		WHERE license_number = $1 AND deleted_at IS NULL`

	var driver entity.Driver
	err = s.conn.QueryRow(ctx, query, license).Scan(&driver.ID, &driver.FullName,
		&driver.LicenseNumber, &driver.DrivingScore, &driver.Language)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &driver, nil
}

func (s *DB) GetOffenseByID(ctx context.Context, id int64) (_ *entity.Offense, err error) {
	ctx, span := s.startSpan(ctx, "GetOffenseByID")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + offenseColumns + ` FROM offenses WHERE id = $1`

	offense, err := scanOffense(s.conn.QueryRow(ctx, query, id))
	if err != nil {
		return nil, s.mapError(err)
	}

	return offense, nil
}

func (s *DB) GetOffenseList(ctx context.Context, filter entity.OffenseListFilterData) (_ []entity.Offense, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "GetOffenseList")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + offenseColumns + `
		FROM offenses
		WHERE ($1::bool = false OR driver_id = $2)
			AND ($3::bool = false OR officer_id = $4)
			AND ($5::bool = false OR status = ANY($6::smallint[]))
			AND ($7::bool = false OR type = ANY($8::smallint[]))
		ORDER BY occurred_at DESC
		LIMIT $9 OFFSET $10`

	rows, err := s.conn.Query(ctx, query,
		filter.IsFilterByDriver, filter.DriverID,
		filter.IsFilterByOfficer, filter.OfficerID,
		filter.IsFilterByStatus, filter.Statuses,
		filter.IsFilterByType, filter.Types,
		filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	defer rows.Close()

	offenses := make([]entity.Offense, 0)
	for rows.Next() {
		offense, err := scanOffense(rows)
		if err != nil {
			return nil, 0, s.mapError(err)
		}
		offenses = append(offenses, *offense)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, s.mapError(err)
	}

	countQuery := `SELECT COUNT(*)
		FROM offenses
		WHERE ($1::bool = false OR driver_id = $2)
			AND ($3::bool = false OR officer_id = $4)
			AND ($5::bool = false OR status = ANY($6::smallint[]))
			AND ($7::bool = false OR type = ANY($8::smallint[]))`

	var count int64
	err = s.conn.QueryRow(ctx, countQuery,
		filter.IsFilterByDriver, filter.DriverID,
		filter.IsFilterByOfficer, filter.OfficerID,
		filter.IsFilterByStatus, filter.Statuses,
		filter.IsFilterByType, filter.Types).Scan(&count)
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	return offenses, count, nil
}

func (s *DB) GetOfficerDashboard(ctx context.Context, officerID int64, dayStart time.Time) (_ *entity.OfficerDashboard, err error) {
	ctx, span := s.startSpan(ctx, "GetOfficerDashboard")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT
			COUNT(*) FILTER (WHERE created_at >= $2),
			COALESCE(SUM(fine_amount) FILTER (WHERE created_at >= $2), 0),
			COUNT(*),
			COUNT(*) FILTER (WHERE status = $3),
			COUNT(*) FILTER (WHERE status = $4)
		FROM offenses
		WHERE officer_id = $1`

	var d entity.OfficerDashboard
	err = s.conn.QueryRow(ctx, query, officerID, dayStart,
		int16(entity.OffenseStatusPending), int16(entity.OffenseStatusConfirmed)).
		Scan(&d.TodayCount, &d.TodayFineTotal, &d.TotalCount, &d.PendingCount, &d.ConfirmedCount)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &d, nil
}

func (s *DB) GetStatistics(ctx context.Context) (_ *entity.Statistics, err error) {
	ctx, span := s.startSpan(ctx, "GetStatistics")
	defer func() { s.endSpan(span, err) }()

	var stats entity.Statistics

	err = s.conn.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(fine_amount), 0) FROM offenses`).
		Scan(&stats.Total, &stats.FineTotal)
	if err != nil {
		return nil, s.mapError(err)
	}

	statusRows, err := s.conn.Query(ctx,
		`SELECT status, COUNT(*) FROM offenses GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer statusRows.Close()

	for statusRows.Next() {
		var (
			status int16
			count  int64
		)
		if err := statusRows.Scan(&status, &count); err != nil {
			return nil, s.mapError(err)
		}
		stats.ByStatus = append(stats.ByStatus, entity.StatusCount{
			Status: entity.OffenseStatus(status),
			Count:  count,
		})
	}
	if err := statusRows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	typeRows, err := s.conn.Query(ctx,
		`SELECT type, COUNT(*) FROM offenses GROUP BY type ORDER BY type`)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer typeRows.Close()

	for typeRows.Next() {
		var (
			offenseType int16
			count       int64
		)
		if err := typeRows.Scan(&offenseType, &count); err != nil {
			return nil, s.mapError(err)
		}
		stats.ByType = append(stats.ByType, entity.TypeCount{
			Type:  entity.OffenseType(offenseType),
			Count: count,
		})
	}
	if err := typeRows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	monthRows, err := s.conn.Query(ctx,
		`SELECT date_trunc('month', occurred_at) AS month, COUNT(*), COALESCE(SUM(fine_amount), 0)
		FROM offenses
		GROUP BY month
		ORDER BY month DESC
		LIMIT 12`)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer monthRows.Close()

	for monthRows.Next() {
		var m entity.MonthlyTotal
		if err := monthRows.Scan(&m.Month, &m.Count, &m.FineTotal); err != nil {
			return nil, s.mapError(err)
		}
		stats.Monthly = append(stats.Monthly, m)
	}
	if err := monthRows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return &stats, nil
}
