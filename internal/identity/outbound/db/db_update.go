package db

import (
	"context"
	"time"

	"github.com/drivelaw/backend/internal/identity/entity"
	"github.com/drivelaw/backend/internal/pkg/goerror"
)

// ConsumeVerificationAttempt records one failed code submission. The
// increment and the lock transition happen in a single statement so
// concurrent submissions against the same contact cannot lose a failure.
// Rows under an active lock are left untouched and report goerror.ErrNotFound.
func (s *DB) ConsumeVerificationAttempt(ctx context.Context, id int64, maxAttempts int16, lockUntil time.Time) (attempts int16, locked bool, err error) {
	ctx, span := s.startSpan(ctx, "ConsumeVerificationAttempt")
	defer func() { s.endSpan(span, err) }()

	query := `UPDATE verifications
		SET attempts = CASE WHEN attempts + 1 >= $2 THEN 0 ELSE attempts + 1 END,
			locked_until = CASE WHEN attempts + 1 >= $2 THEN $3 ELSE NULL END,
			updated_at = NOW()
		WHERE id = $1 AND (locked_until IS NULL OR locked_until <= NOW())
		RETURNING attempts, locked_until IS NOT NULL`

	err = s.conn.QueryRow(ctx, query, id, maxAttempts, lockUntil).Scan(&attempts, &locked)
	if err != nil {
		return 0, false, s.mapError(err)
	}

	return attempts, locked, nil
}

func (s *DB) CompleteOnboarding(ctx context.Context, in entity.Onboarding) (err error) {
	ctx, span := s.startSpan(ctx, "CompleteOnboarding")
	defer func() { s.endSpan(span, err) }()

	query := `UPDATE users
		SET full_name = $2, license_number = $3, region = $4,
			onboarding_done = TRUE, updated_at = NOW(), updated_by = $1
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := s.conn.Exec(ctx, query, in.UserID, in.FullName, in.LicenseNumber, in.Region)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) PatchUser(ctx context.Context, user entity.PatchUser) (err error) {
	ctx, span := s.startSpan(ctx, "PatchUser")
	defer func() { s.endSpan(span, err) }()

	query := `UPDATE users
		SET full_name = COALESCE(NULLIF($2, ''), full_name),
			license_number = COALESCE(NULLIF($3, ''), license_number),
			region = COALESCE(NULLIF($4, ''), region),
			language = COALESCE(NULLIF($5, ''), language),
			status = CASE WHEN $6::smallint = 0 THEN status ELSE $6::smallint END,
			updated_at = NOW(),
			updated_by = $7
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := s.conn.Exec(ctx, query, user.ID, user.FullName, user.LicenseNumber,
		user.Region, user.Language, int16(user.Status), user.UpdatedBy)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) UpdateUserStatus(ctx context.Context, id int64, oldStatus, newStatus entity.UserStatus) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserStatus")
	defer func() { s.endSpan(span, err) }()

	query := `UPDATE users
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2 AND deleted_at IS NULL`

	tag, err := s.conn.Exec(ctx, query, id, int16(oldStatus), int16(newStatus))
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) UpdateLicenseVerified(ctx context.Context, id int64, verified bool, byID int64) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateLicenseVerified")
	defer func() { s.endSpan(span, err) }()

	query := `UPDATE users
		SET license_verified = $2, updated_at = NOW(), updated_by = $3
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := s.conn.Exec(ctx, query, id, verified, byID)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) MarkUserDeleted(ctx context.Context, id, byID int64) (err error) {
	ctx, span := s.startSpan(ctx, "MarkUserDeleted")
	defer func() { s.endSpan(span, err) }()

	query := `UPDATE users
		SET deleted_at = NOW(), updated_at = NOW(), updated_by = $2
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := s.conn.Exec(ctx, query, id, byID)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}
