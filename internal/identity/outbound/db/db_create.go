package db

import (
	"context"

	"github.com/drivelaw/backend/internal/identity/entity"
)

func (s *DB) CreateUser(ctx context.Context, user entity.NewUser) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	query := `INSERT INTO users (id, email, phone, role, status, language, driving_score)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6, $7)`

	_, err = s.conn.Exec(ctx, query, user.ID, user.Email, user.Phone,
		int16(user.Role), int16(user.Status), user.Language, entity.InitialDrivingScore)

	return s.mapError(err)
}

func (s *DB) UpsertVerification(ctx context.Context, in entity.NewVerification) (err error) {
	ctx, span := s.startSpan(ctx, "UpsertVerification")
	defer func() { s.endSpan(span, err) }()

	query := `INSERT INTO verifications (id, user_id, contact, channel, code_digest, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (contact) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			channel = EXCLUDED.channel,
			code_digest = EXCLUDED.code_digest,
			expires_at = EXCLUDED.expires_at,
			attempts = 0,
			locked_until = NULL,
			updated_at = NOW()`

	_, err = s.conn.Exec(ctx, query, in.ID, in.UserID, in.Contact,
		int16(in.Channel), in.CodeDigest, in.ExpiresAt)

	return s.mapError(err)
}
