package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	repo "github.com/AcasisDev/siteguard-hub/internal/domain/repository"
	"github.com/AcasisDev/siteguard-hub/pkg/helpers"
)

// ProfileService edits the display profile of the signed-in user.
type ProfileService struct {
	Profiles  repo.ProfileRepository
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewProfileService(profiles repo.ProfileRepository, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *ProfileService {
	return &ProfileService{Profiles: profiles, GCS: gcs, GCSBucket: gcsBucket, Logger: logger}
}

func (s *ProfileService) current(ctx context.Context, userID string) (*entity.Profile, error) {
	p, err := s.Profiles.GetByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return &entity.Profile{UserID: userID}, nil
	}
	return p, err
}

func (s *ProfileService) UpdateName(ctx context.Context, userID, name string) (*entity.Profile, error) {
	p, err := s.current(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.DisplayName = strings.TrimSpace(name)
	if err := s.Profiles.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UploadAvatar stores the image in GCS and records its public URL.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (*entity.Profile, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, ErrNotConfigured
	}
	p, err := s.current(ctx, userID)
	if err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Error("avatar upload failed")
		}
		return nil, err
	}
	p.AvatarURL = url
	if err := s.Profiles.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
