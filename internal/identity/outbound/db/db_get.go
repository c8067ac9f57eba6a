package db

import (
	"context"
	"time"

	"github.com/drivelaw/backend/internal/identity/entity"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, full_name, COALESCE(email, ''), COALESCE(phone, ''), role, status,
	language, license_number, license_verified, region, driving_score, onboarding_done,
	created_at, updated_at, deleted_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		user      entity.User
		role      int16
		status    int16
		updatedAt time.Time
		deletedAt *time.Time
	)

	err := row.Scan(&user.ID, &user.FullName, &user.Email, &user.Phone, &role, &status,
		&user.Language, &user.LicenseNumber, &user.LicenseVerified, &user.Region,
		&user.DrivingScore, &user.OnboardingDone, &user.CreatedAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}

	user.Role = entity.Role(role)
	user.Status = entity.UserStatus(status)
	user.UpdatedAt = updatedAt
	user.DeletedAt = deletedAt

	return &user, nil
}

func (s *DB) GetUserByContact(ctx context.Context, contact string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByContact")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + userColumns + `
		FROM users
		WHERE (email = $1 OR phone = $1) AND deleted_at IS NULL`

	user, err := scanUser(s.conn.QueryRow(ctx, query, contact))
	if err != nil {
		return nil, s.mapError(err)
	}

	return user, nil
}

func (s *DB) GetUserByID(ctx context.Context, id int64, includeDeleted bool) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL`
	if includeDeleted {
		query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	}

	user, err := scanUser(s.conn.QueryRow(ctx, query, id))
	if err != nil {
		return nil, s.mapError(err)
	}

	return user, nil
}

func (s *DB) GetVerificationByContact(ctx context.Context, contact string) (_ *entity.Verification, err error) {
	ctx, span := s.startSpan(ctx, "GetVerificationByContact")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT id, user_id, contact, channel, code_digest, expires_at, attempts,
			locked_until, updated_at
		FROM verifications
		WHERE contact = $1`

	var (
		v       entity.Verification
		channel int16
	)
	err = s.conn.QueryRow(ctx, query, contact).Scan(&v.ID, &v.UserID, &v.Contact, &channel,
		&v.CodeDigest, &v.ExpiresAt, &v.Attempts, &v.LockedUntil, &v.UpdatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	v.Channel = entity.Channel(channel)

	return &v, nil
}

func (s *DB) GetUserList(ctx context.Context, filter entity.UserListFilterData) (_ []entity.User, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "GetUserList")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + userColumns + `
		FROM users
		WHERE role = $1
			AND deleted_at IS NULL
			AND ($2::bool = false OR status = ANY($3::smallint[]))
			AND ($4::bool = false OR full_name ILIKE '%' || $5 || '%'
				OR email ILIKE '%' || $5 || '%'
				OR phone ILIKE '%' || $5 || '%'
				OR license_number ILIKE '%' || $5 || '%')
		ORDER BY created_at DESC
		LIMIT $6 OFFSET $7`

	rows, err := s.conn.Query(ctx, query, int16(entity.RoleDriver),
		filter.IsFilterByStatus, filter.Statuses,
		filter.IsFilterBySearch, filter.Search,
		filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	defer rows.Close()

	users := make([]entity.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, s.mapError(err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, s.mapError(err)
	}

	countQuery := `SELECT COUNT(*)
		FROM users
		WHERE role = $1
			AND deleted_at IS NULL
			AND ($2::bool = false OR status = ANY($3::smallint[]))
			AND ($4::bool = false OR full_name ILIKE '%' || $5 || '%'
				OR email ILIKE '%' || $5 || '%'
				OR phone ILIKE '%' || $5 || '%'
				OR license_number ILIKE '%' || $5 || '%')`

	var count int64
	err = s.conn.QueryRow(ctx, countQuery, int16(entity.RoleDriver),
		filter.IsFilterByStatus, filter.Statuses,
		filter.IsFilterBySearch, filter.Search).Scan(&count)
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	return users, count, nil
}
