package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/internal/media"
	"github.com/MKhiriev/go-chat-core/internal/store"
	"github.com/MKhiriev/go-chat-core/models"
)

// TempPrefix holds uploads that were never attached to a message or story.
const TempPrefix = "temp/"

// videoFrameAt is the position of the frame used as video thumbnail.
const videoFrameAt = time.Second

type mediaService struct {
	objects store.ObjectStorage
	// bucket is the name objects lives in. Events for other buckets are
	// ignored.
	bucket string
	frames media.FrameExtractor
	logger *logger.Logger
}

// NewMediaService returns the thumbnail generator. objects may be nil when
// no bucket is configured.
func NewMediaService(objects store.ObjectStorage, bucket string, frames media.FrameExtractor, logger *logger.Logger) MediaService {
	return &mediaService{objects: objects, bucket: bucket, frames: frames, logger: logger}
}

// OnObjectFinalized implements [MediaService]. Generated thumbnails land in
// the same bucket and trigger this handler again, so thumbnails themselves
// are ignored.
func (s *mediaService) OnObjectFinalized(ctx context.Context, obj models.StoredObject) error {
	log := logger.FromContext(ctx).With().Str("object", obj.Name).Logger()

	if s.objects == nil {
		return ErrObjectStorageDisabled
	}
	if obj.Name == "" || obj.IsThumbnail() {
		return nil
	}
	if obj.Bucket != "" && obj.Bucket != s.bucket {
		log.Warn().Str("func", "*mediaService.OnObjectFinalized").Str("bucket", obj.Bucket).Msg("object belongs to another bucket, skipping")
		return nil
	}

	kind := mediaKind(obj.ContentType)
	if kind == "" && obj.ContentType != "" {
		return nil
	}

	body, stored, err := s.objects.Get(ctx, obj.Name)
	if err != nil {
		return fmt.Errorf("error reading object: %w", mapStoreError(err))
	}
	defer body.Close()

	if kind == "" {
		kind = mediaKind(stored.ContentType)
		obj.ContentType = stored.ContentType
	}

	var name, contentType string
	var data []byte
	switch kind {
	case "image":
		thumb, err := media.MakeThumbnail(body, obj.ContentType)
		if errors.Is(err, media.ErrUnsupportedImage) {
			log.Debug().Str("func", "*mediaService.OnObjectFinalized").Str("content_type", obj.ContentType).Msg("no thumbnail for image type")
			return nil
		}
		if errors.Is(err, media.ErrImageTooLarge) {
			log.Warn().Err(err).Str("func", "*mediaService.OnObjectFinalized").Msg("image too large for a thumbnail, skipping")
			return nil
		}
		if err != nil {
			return fmt.Errorf("error making thumbnail: %w", err)
		}
		name, contentType, data = models.ThumbnailName(obj.Name, thumb.Ext), thumb.ContentType, thumb.Data

	case "video":
		frame, err := s.frames.ExtractFrame(ctx, body, videoFrameAt)
		if err != nil {
			return fmt.Errorf("error extracting video frame: %w", err)
		}
		name, contentType, data = models.ThumbnailName(obj.Name, ".jpg"), "image/jpeg", frame

	default:
		return nil
	}

	if err = s.objects.Put(ctx, name, contentType, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("error storing thumbnail: %w", err)
	}

	log.Info().Str("func", "*mediaService.OnObjectFinalized").Str("thumbnail", name).Msg("thumbnail stored")
	return nil
}

func mediaKind(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case strings.HasPrefix(contentType, "video/"):
		return "video"
	default:
		return ""
	}
}

type janitor struct {
	objects    store.ObjectStorage
	stories    store.StoryRepository
	tempMaxAge time.Duration
	logger     *logger.Logger
}

// NewJanitor returns the cleanup service. objects may be nil, which turns
// the temp sweep into a no-op.
func NewJanitor(objects store.ObjectStorage, stories store.StoryRepository, tempMaxAge time.Duration, logger *logger.Logger) Janitor {
	if tempMaxAge <= 0 {
		tempMaxAge = 24 * time.Hour
	}
	return &janitor{objects: objects, stories: stories, tempMaxAge: tempMaxAge, logger: logger}
}

// SweepTempObjects implements [Janitor]. An object exactly tempMaxAge old
// survives. Failed deletions do not stop the sweep.
func (j *janitor) SweepTempObjects(ctx context.Context, now time.Time) (int, error) {
	if j.objects == nil {
		return 0, nil
	}

	objects, err := j.objects.List(ctx, TempPrefix)
	if err != nil {
		return 0, fmt.Errorf("error listing temp objects: %w", err)
	}

	var errs []error
	deleted := 0
	for _, obj := range objects {
		if now.Sub(obj.CreatedAt) <= j.tempMaxAge {
			continue
		}

		err = j.objects.Delete(ctx, obj.Name)
		if err != nil && !errors.Is(err, store.ErrObjectNotFound) {
			errs = append(errs, fmt.Errorf("%s: %w", obj.Name, err))
			continue
		}
		deleted++
	}

	j.logger.Info().Str("func", "*janitor.SweepTempObjects").Int("deleted", deleted).Int("failed", len(errs)).Msg("temp objects swept")
	return deleted, errors.Join(errs...)
}

// SweepExpiredStories implements [Janitor].
func (j *janitor) SweepExpiredStories(ctx context.Context, now time.Time) (int64, error) {
	deleted, err := j.stories.DeleteExpired(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("error deleting expired stories: %w", err)
	}

	j.logger.Info().Str("func", "*janitor.SweepExpiredStories").Int64("deleted", deleted).Msg("expired stories swept")
	return deleted, nil
}

