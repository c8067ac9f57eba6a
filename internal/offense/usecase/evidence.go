package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strconv"
	"strings"

	"github.com/drivelaw/backend/internal/pkg/goerror"
	"github.com/drivelaw/backend/internal/pkg/storage"
	"github.com/drivelaw/backend/internal/pkg/strcase"
)

//nolint:gochecknoglobals // global for fast reuse
var evidenceContentTypeExt = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"video/mp4":       ".mp4",
	"application/pdf": ".pdf",
}

type EvidenceUploadInput struct {
	OffenseID   int64 `validate:"required,gt=0"`
	FileName    string
	File        io.Reader
	ContentType string
}

type EvidenceUploadOutput struct {
	Key string
}

// EvidenceUpload stores an evidence object for an offense and appends its
// key to the offense record.
func (s *Usecase) EvidenceUpload(ctx context.Context, in EvidenceUploadInput) (*EvidenceUploadOutput, error) {
	ctx, span := s.startSpan(ctx, "EvidenceUpload")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, "offenses", "write"); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}
	if in.File == nil {
		return nil, goerror.NewInvalidInput(nil, "evidence", "evidence file is required")
	}

	contentType := strings.ToLower(strings.TrimSpace(in.ContentType))
	ext, ok := evidenceContentTypeExt[contentType]
	if !ok {
		return nil, goerror.NewInvalidInput(nil, "evidence", "unsupported evidence content type")
	}

	offense, err := s.repoDB.GetOffenseByID(ctx, in.OffenseID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "offense not found", "offense_id", in.OffenseID)
		return nil, goerror.NewBusiness("offense not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get offense by id", "offense_id", in.OffenseID, "error", err)
		return nil, goerror.NewServer(err)
	}

	base := strcase.ToLowerSnake(strings.TrimSuffix(path.Base(in.FileName), path.Ext(in.FileName)))
	if base == "" {
		base = "evidence"
	}

	bucket := s.cfg.GetString("modules.offense.evidence_bucket")
	key := fmt.Sprintf("%d/%s_%s%s", offense.ID, base, s.uuid.Generate(), ext)

	if _, err := s.storage.PutObject(ctx, bucket, key, in.File, storage.PutOptions{
		Size:        -1,
		ContentType: contentType,
		Metadata:    map[string]string{"offense_id": strconv.FormatInt(offense.ID, 10)},
	}); err != nil {
		slog.ErrorContext(ctx, "failed to store evidence object", "offense_id", offense.ID, "key", key, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoDB.AppendEvidenceKey(ctx, offense.ID, key); err != nil {
		slog.ErrorContext(ctx, "failed to repo append evidence key", "offense_id", offense.ID, "key", key, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &EvidenceUploadOutput{Key: key}, nil
}

type EvidenceURLInput struct {
	OffenseID int64  `validate:"required,gt=0"`
	Key       string `validate:"required,max=512"`
}

type EvidenceURLOutput struct {
	URL string
}

// EvidenceURL returns a short-lived presigned download URL for an
// evidence object. The key must belong to the offense.
func (s *Usecase) EvidenceURL(ctx context.Context, in EvidenceURLInput) (*EvidenceURLOutput, error) {
	ctx, span := s.startSpan(ctx, "EvidenceURL")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, "offenses", "read"); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	offense, err := s.repoDB.GetOffenseByID(ctx, in.OffenseID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "offense not found", "offense_id", in.OffenseID)
		return nil, goerror.NewBusiness("offense not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get offense by id", "offense_id", in.OffenseID, "error", err)
		return nil, goerror.NewServer(err)
	}

	found := false
	for _, key := range offense.EvidenceKeys {
		if key == in.Key {
			found = true
			break
		}
	}
	if !found {
		slog.WarnContext(ctx, "evidence key does not belong to offense", "offense_id", offense.ID, "key", in.Key)
		return nil, goerror.NewBusiness("evidence not found", goerror.CodeNotFound)
	}

	bucket := s.cfg.GetString("modules.offense.evidence_bucket")
	expiry := s.cfg.GetMinute("modules.offense.evidence_url_ttl_minutes")

	url, err := s.storage.PresignGet(ctx, bucket, in.Key, expiry)
	if err != nil {
		slog.ErrorContext(ctx, "failed to presign evidence url", "offense_id", offense.ID, "key", in.Key, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &EvidenceURLOutput{URL: url}, nil
}
