package db

import (
	"context"

	"github.com/drivelaw/backend/internal/driver/entity"
	"github.com/drivelaw/backend/internal/pkg/goerror"
)

func (s *DB) PatchProfile(ctx context.Context, data entity.PatchProfile) (err error) {
	ctx, span := s.startSpan(ctx, "PatchProfile")
	defer func() { s.endSpan(span, err) }()

	query := `UPDATE users
		SET full_name = COALESCE(NULLIF($2, ''), full_name),
			region = COALESCE(NULLIF($3, ''), region),
			language = COALESCE(NULLIF($4, ''), language),
			updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := s.conn.Exec(ctx, query, data.ID, data.FullName, data.Region, data.Language)
	if err != nil {
		return s.mapError(err)
	}

	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}
