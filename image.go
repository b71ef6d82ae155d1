package autoscope

import (
	"regexp"
	"time"
)

// Image is a validated photo attached to an issue. Anything failing
// validation is dropped with a recorded warning and never stored.
type Image struct {
	ID        string    `json:"id"`
	DataURL   string    `json:"dataUrl"`
	Thumbnail string    `json:"thumbnail,omitempty"`
	Name      string    `json:"name,omitempty"`
	Size      int64     `json:"size"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

const (
	// MaxImageSize is the per-image byte cap. Images over the cap are
	// rejected, not truncated.
	MaxImageSize = 10 * 1024 * 1024

	// MaxImagesPerIssue caps how many photos one issue may carry.
	MaxImagesPerIssue = 6
)

// AllowedImageTypes is the accepted MIME set for issue photos.
var AllowedImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

// DataURLPattern matches base64 image data URLs for the allowed formats.
var DataURLPattern = regexp.MustCompile(`^data:image/(jpeg|png|webp|gif);base64,`)

// AllowedImageType reports whether the MIME type is in the allowlist.
func AllowedImageType(mime string) bool {
	for _, t := range AllowedImageTypes {
		if t == mime {
			return true
		}
	}
	return false
}
