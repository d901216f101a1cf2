// Package media produces derived media: fixed-size thumbnails of images and
// still frames of videos.
package media

import (
	"context"
	"io"
	"time"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/media_mock.go -package=mock

// FrameExtractor grabs a single JPEG frame out of a video.
type FrameExtractor interface {
	ExtractFrame(ctx context.Context, video io.Reader, at time.Duration) ([]byte, error)
}
