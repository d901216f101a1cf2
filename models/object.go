package models

import (
	"path"
	"strings"
	"time"
)

// ThumbnailPrefix is prepended to the base name of generated thumbnails.
const ThumbnailPrefix = "thumb_"

// StoredObject describes an object in the media bucket. It is the payload of
// storage finalize events and the element type of object listings.
type StoredObject struct {
	Bucket      string    `json:"bucket"`
	Name        string    `json:"name"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"timeCreated"`
}

// IsThumbnail reports whether the object is itself a generated thumbnail.
func (o StoredObject) IsThumbnail() bool {
	return strings.HasPrefix(path.Base(o.Name), ThumbnailPrefix)
}

// ThumbnailName returns the object name of the thumbnail stored next to
// name. When ext is non-empty it replaces the original extension.
func ThumbnailName(name, ext string) string {
	dir, base := path.Split(name)
	if ext != "" {
		base = strings.TrimSuffix(base, path.Ext(base)) + ext
	}
	return dir + ThumbnailPrefix + base
}
