package db

import (
	"context"

	"github.com/drivelaw/backend/internal/appeal/entity"
	"github.com/jackc/pgx/v5"
)

const appealColumns = `a.id, a.number, a.offense_id, o.number, a.driver_id, a.reason, a.status,
	a.due_at, a.decided_at, COALESCE(a.decided_by, 0), a.decision_reason, a.created_at, a.updated_at`

func scanAppeal(row pgx.Row) (*entity.Appeal, error) {
	var (
		appeal entity.Appeal
		status int16
	)

	err := row.Scan(&appeal.ID, &appeal.Number, &appeal.OffenseID, &appeal.OffenseNumber,
		&appeal.DriverID, &appeal.Reason, &status, &appeal.DueAt, &appeal.DecidedAt,
		&appeal.DecidedBy, &appeal.DecisionReason, &appeal.CreatedAt, &appeal.UpdatedAt)
	if err != nil {
		return nil, err
	}

	appeal.Status = entity.AppealStatus(status)

	return &appeal, nil
}

func (s *DB) GetAppealByID(ctx context.Context, id int64) (_ *entity.Appeal, err error) {
	ctx, span := s.startSpan(ctx, "GetAppealByID")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + appealColumns + `
		FROM appeals a
		JOIN offenses o ON o.id = a.offense_id
		WHERE a.id = $1`

	appeal, err := scanAppeal(s.conn.QueryRow(ctx, query, id))
	if err != nil {
		return nil, s.mapError(err)
	}

	return appeal, nil
}

func (s *DB) GetAppealList(ctx context.Context, filter entity.AppealListFilterData) (_ []entity.Appeal, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "GetAppealList")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + appealColumns + `
		FROM appeals a
		JOIN offenses o ON o.id = a.offense_id
		WHERE ($1::bool = false OR a.driver_id = $2)
			AND ($3::bool = false OR a.status = ANY($4::smallint[]))
		ORDER BY a.created_at ASC
		LIMIT $5 OFFSET $6`

	rows, err := s.conn.Query(ctx, query,
		filter.IsFilterByDriver, filter.DriverID,
		filter.IsFilterByStatus, filter.Statuses,
		filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	defer rows.Close()

	appeals := make([]entity.Appeal, 0)
	for rows.Next() {
		appeal, err := scanAppeal(rows)
		if err != nil {
			return nil, 0, s.mapError(err)
		}
		appeals = append(appeals, *appeal)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, s.mapError(err)
	}

	countQuery := `SELECT COUNT(*)
		FROM appeals a
		WHERE ($1::bool = false OR a.driver_id = $2)
			AND ($3::bool = false OR a.status = ANY($4::smallint[]))`

	var count int64
	err = s.conn.QueryRow(ctx, countQuery,
		filter.IsFilterByDriver, filter.DriverID,
		filter.IsFilterByStatus, filter.Statuses).Scan(&count)
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	return appeals, count, nil
}

func (s *DB) GetOffenseForAppeal(ctx context.Context, offenseID int64) (_ *entity.AppealOffense, err error) {
	ctx, span := s.startSpan(ctx, "GetOffenseForAppeal")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT id, number, driver_id, status, points FROM offenses WHERE id = $1`

	var offense entity.AppealOffense
	err = s.conn.QueryRow(ctx, query, offenseID).Scan(&offense.ID, &offense.Number,
		&offense.DriverID, &offense.Status, &offense.Points)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &offense, nil
}

func (s *DB) GetStatistics(ctx context.Context) (_ *entity.Statistics, err error) {
	ctx, span := s.startSpan(ctx, "GetStatistics")
	defer func() { s.endSpan(span, err) }()

	var stats entity.Statistics

	err = s.conn.QueryRow(ctx, `SELECT COUNT(*) FROM appeals`).Scan(&stats.Total)
	if err != nil {
		return nil, s.mapError(err)
	}

	rows, err := s.conn.Query(ctx,
		`SELECT status, COUNT(*) FROM appeals GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var approved, decided int64
	for rows.Next() {
		var (
			status int16
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, s.mapError(err)
		}

		appealStatus := entity.AppealStatus(status)
		stats.ByStatus = append(stats.ByStatus, entity.StatusCount{
			Status: appealStatus,
			Count:  count,
		})

		switch appealStatus {
		case entity.AppealStatusPending:
			stats.Pending = count
		case entity.AppealStatusApproved:
			approved = count
			decided += count
		case entity.AppealStatusRejected:
			decided += count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	if decided > 0 {
		stats.ApprovalRate = float64(approved) / float64(decided)
	}

	return &stats, nil
}
