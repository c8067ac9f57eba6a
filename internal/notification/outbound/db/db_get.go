package db

import (
	"context"

	"github.com/drivelaw/backend/internal/notification/entity"
)

func (s *DB) GetRecipient(ctx context.Context, userID int64) (_ *entity.Recipient, err error) {
	ctx, span := s.startSpan(ctx, "GetRecipient")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT id, full_name, COALESCE(email, ''), COALESCE(phone, ''), language
		FROM users
		WHERE id = $1 AND deleted_at IS NULL`

	var rec entity.Recipient
	err = s.conn.QueryRow(ctx, query, userID).Scan(&rec.ID, &rec.FullName,
		&rec.Email, &rec.Phone, &rec.Language)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &rec, nil
}

func (s *DB) ListNotifications(
	ctx context.Context,
	userID int64,
	status entity.NotificationStatus,
	limit, offset int32,
) (_ []entity.NotificationItem, err error) {
	ctx, span := s.startSpan(ctx, "ListNotifications")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT id, kind, title, body, read_at, created_at
		FROM notifications
		WHERE user_id = $1
			AND ($2::bool = false OR read_at IS NULL)
			AND ($3::bool = false OR read_at IS NOT NULL)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`

	rows, err := s.conn.Query(ctx, query, userID,
		status == entity.NotificationStatusUnread,
		status == entity.NotificationStatusRead,
		limit, offset)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var items []entity.NotificationItem
	for rows.Next() {
		var (
			item entity.NotificationItem
			kind int16
		)
		if err = rows.Scan(&item.ID, &kind, &item.Title, &item.Body,
			&item.ReadAt, &item.CreatedAt); err != nil {
			return nil, s.mapError(err)
		}
		item.Kind = entity.Kind(kind)
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}

func (s *DB) CountUnreadNotifications(ctx context.Context, userID int64) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "CountUnreadNotifications")
	defer func() { s.endSpan(span, err) }()

	var count int64
	err = s.conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read_at IS NULL`, userID).
		Scan(&count)
	if err != nil {
		return 0, s.mapError(err)
	}

	return count, nil
}
