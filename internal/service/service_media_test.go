package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/internal/mock"
	"github.com/MKhiriev/go-chat-core/internal/store"
	"github.com/MKhiriev/go-chat-core/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// ── OnObjectFinalized ───────────────────────────────────────────────────────

// TestOnObjectFinalized_ImageThumbnail verifies that an uploaded image gets a
// bounded thumbnail stored next to it.
func TestOnObjectFinalized_ImageThumbnail(t *testing.T) {
	ctrl := gomock.NewController(t)
	objects := mock.NewMockObjectStorage(ctrl)
	svc := NewMediaService(objects, "media", mock.NewMockFrameExtractor(ctrl), logger.Nop())

	obj := models.StoredObject{Name: "uploads/cat.png", ContentType: "image/png"}
	objects.EXPECT().Get(gomock.Any(), obj.Name).Return(io.NopCloser(bytes.NewReader(testPNG(t, 600, 400))), obj, nil)
	objects.EXPECT().Put(gomock.Any(), "uploads/thumb_cat.png", "image/png", gomock.Any()).DoAndReturn(
		func(_ context.Context, _, _ string, body io.ReadSeeker) error {
			cfg, err := png.DecodeConfig(body)
			require.NoError(t, err)
			assert.Equal(t, 300, cfg.Width)
			assert.Equal(t, 200, cfg.Height)
			return nil
		})

	assert.NoError(t, svc.OnObjectFinalized(context.Background(), obj))
}

// TestOnObjectFinalized_IgnoresThumbnails verifies generated thumbnails do
// not trigger another round.
func TestOnObjectFinalized_IgnoresThumbnails(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewMediaService(mock.NewMockObjectStorage(ctrl), "media", nil, logger.Nop())

	err := svc.OnObjectFinalized(context.Background(), models.StoredObject{Name: "uploads/thumb_cat.png", ContentType: "image/png"})
	assert.NoError(t, err)
}

// TestOnObjectFinalized_IgnoresOtherBuckets verifies events for a bucket
// other than the configured one never read or write objects.
func TestOnObjectFinalized_IgnoresOtherBuckets(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewMediaService(mock.NewMockObjectStorage(ctrl), "media", nil, logger.Nop())

	obj := models.StoredObject{Bucket: "backups", Name: "uploads/cat.png", ContentType: "image/png"}
	assert.NoError(t, svc.OnObjectFinalized(context.Background(), obj))
}

// TestOnObjectFinalized_IgnoresOtherTypes verifies documents are skipped
// without reading them.
func TestOnObjectFinalized_IgnoresOtherTypes(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewMediaService(mock.NewMockObjectStorage(ctrl), "media", nil, logger.Nop())

	err := svc.OnObjectFinalized(context.Background(), models.StoredObject{Name: "docs/cv.pdf", ContentType: "application/pdf"})
	assert.NoError(t, err)
}

// TestOnObjectFinalized_UnsupportedImage verifies image types without a
// decoder are skipped.
func TestOnObjectFinalized_UnsupportedImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	objects := mock.NewMockObjectStorage(ctrl)
	svc := NewMediaService(objects, "media", nil, logger.Nop())

	obj := models.StoredObject{Name: "uploads/icon.svg", ContentType: "image/svg+xml"}
	objects.EXPECT().Get(gomock.Any(), obj.Name).Return(io.NopCloser(strings.NewReader("<svg/>")), obj, nil)

	assert.NoError(t, svc.OnObjectFinalized(context.Background(), obj))
}

// TestOnObjectFinalized_VideoFrame verifies that a video thumbnail is the
// frame at one second stored as jpeg.
func TestOnObjectFinalized_VideoFrame(t *testing.T) {
	ctrl := gomock.NewController(t)
	objects := mock.NewMockObjectStorage(ctrl)
	frames := mock.NewMockFrameExtractor(ctrl)
	svc := NewMediaService(objects, "media", frames, logger.Nop())

	obj := models.StoredObject{Name: "stories/u1/clip.mp4", ContentType: "video/mp4"}
	objects.EXPECT().Get(gomock.Any(), obj.Name).Return(io.NopCloser(strings.NewReader("video")), obj, nil)
	frames.EXPECT().ExtractFrame(gomock.Any(), gomock.Any(), time.Second).Return([]byte("jpeg-bytes"), nil)
	objects.EXPECT().Put(gomock.Any(), "stories/u1/thumb_clip.jpg", "image/jpeg", gomock.Any()).Return(nil)

	assert.NoError(t, svc.OnObjectFinalized(context.Background(), obj))
}

// TestOnObjectFinalized_UsesStoredContentType verifies that an event without
// a content type falls back to the object's metadata.
func TestOnObjectFinalized_UsesStoredContentType(t *testing.T) {
	ctrl := gomock.NewController(t)
	objects := mock.NewMockObjectStorage(ctrl)
	svc := NewMediaService(objects, "media", nil, logger.Nop())

	stored := models.StoredObject{Name: "uploads/dog.png", ContentType: "image/png"}
	objects.EXPECT().Get(gomock.Any(), stored.Name).Return(io.NopCloser(bytes.NewReader(testPNG(t, 10, 10))), stored, nil)
	objects.EXPECT().Put(gomock.Any(), "uploads/thumb_dog.png", "image/png", gomock.Any()).Return(nil)

	assert.NoError(t, svc.OnObjectFinalized(context.Background(), models.StoredObject{Name: stored.Name}))
}

// TestOnObjectFinalized_MissingObject verifies a vanished object maps to
// ErrNotFound.
func TestOnObjectFinalized_MissingObject(t *testing.T) {
	ctrl := gomock.NewController(t)
	objects := mock.NewMockObjectStorage(ctrl)
	svc := NewMediaService(objects, "media", nil, logger.Nop())

	objects.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, models.StoredObject{}, store.ErrObjectNotFound)

	err := svc.OnObjectFinalized(context.Background(), models.StoredObject{Name: "uploads/x.png", ContentType: "image/png"})
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestOnObjectFinalized_NoBucket verifies the handler reports disabled
// object storage.
func TestOnObjectFinalized_NoBucket(t *testing.T) {
	svc := NewMediaService(nil, "media", nil, logger.Nop())

	err := svc.OnObjectFinalized(context.Background(), models.StoredObject{Name: "uploads/x.png"})
	assert.ErrorIs(t, err, ErrObjectStorageDisabled)
}

// ── Janitor ─────────────────────────────────────────────────────────────────

// TestSweepTempObjects_AgeBoundary verifies that a 23h old upload survives
// and a 25h old one is removed.
func TestSweepTempObjects_AgeBoundary(t *testing.T) {
	ctrl := gomock.NewController(t)
	objects := mock.NewMockObjectStorage(ctrl)
	j := NewJanitor(objects, mock.NewMockStoryRepository(ctrl), 24*time.Hour, logger.Nop())

	objects.EXPECT().List(gomock.Any(), TempPrefix).Return([]models.StoredObject{
		{Name: "temp/fresh.png", CreatedAt: testNow.Add(-23 * time.Hour)},
		{Name: "temp/edge.png", CreatedAt: testNow.Add(-24 * time.Hour)},
		{Name: "temp/stale.png", CreatedAt: testNow.Add(-25 * time.Hour)},
	}, nil)
	objects.EXPECT().Delete(gomock.Any(), "temp/stale.png").Return(nil)

	deleted, err := j.SweepTempObjects(context.Background(), testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
}

// TestSweepTempObjects_ContinuesAfterFailure verifies one failed delete does
// not stop the sweep and is reported.
func TestSweepTempObjects_ContinuesAfterFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	objects := mock.NewMockObjectStorage(ctrl)
	j := NewJanitor(objects, nil, 24*time.Hour, logger.Nop())

	old := testNow.Add(-48 * time.Hour)
	objects.EXPECT().List(gomock.Any(), TempPrefix).Return([]models.StoredObject{
		{Name: "temp/a", CreatedAt: old},
		{Name: "temp/b", CreatedAt: old},
		{Name: "temp/c", CreatedAt: old},
	}, nil)
	objects.EXPECT().Delete(gomock.Any(), "temp/a").Return(errors.New("denied"))
	objects.EXPECT().Delete(gomock.Any(), "temp/b").Return(store.ErrObjectNotFound)
	objects.EXPECT().Delete(gomock.Any(), "temp/c").Return(nil)

	deleted, err := j.SweepTempObjects(context.Background(), testNow)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "temp/a")
	assert.Equal(t, 2, deleted)
}

// TestSweepTempObjects_NoBucket verifies the sweep is a no-op without
// object storage.
func TestSweepTempObjects_NoBucket(t *testing.T) {
	j := NewJanitor(nil, nil, 0, logger.Nop())

	deleted, err := j.SweepTempObjects(context.Background(), testNow)
	assert.NoError(t, err)
	assert.Zero(t, deleted)
}

// TestSweepExpiredStories verifies the repository is asked with the sweep
// time and failures are wrapped.
func TestSweepExpiredStories(t *testing.T) {
	ctrl := gomock.NewController(t)
	stories := mock.NewMockStoryRepository(ctrl)
	j := NewJanitor(nil, stories, time.Hour, logger.Nop())

	stories.EXPECT().DeleteExpired(gomock.Any(), testNow).Return(int64(3), nil)
	deleted, err := j.SweepExpiredStories(context.Background(), testNow)
	require.NoError(t, err)
	assert.EqualValues(t, 3, deleted)

	stories.EXPECT().DeleteExpired(gomock.Any(), testNow).Return(int64(0), assert.AnError)
	_, err = j.SweepExpiredStories(context.Background(), testNow)
	assert.ErrorIs(t, err, assert.AnError)
}
