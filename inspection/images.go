package inspection

import (
	"fmt"

	autoscope "github.com/dukerupert/autoscope"
)

// ValidateImages filters an image list down to the entries that satisfy
// the upload rules. Invalid entries are dropped, not fatal; the returned
// warnings describe each rejection.
func ValidateImages(images []autoscope.Image) ([]autoscope.Image, []string) {
	if len(images) == 0 {
		return nil, nil
	}

	valid := make([]autoscope.Image, 0, len(images))
	var warnings []string
	for _, img := range images {
		if reason := validateImage(img); reason != "" {
			warnings = append(warnings, reason)
			continue
		}
		if len(valid) == autoscope.MaxImagesPerIssue {
			warnings = append(warnings, fmt.Sprintf("image %q dropped: at most %d images per issue", img.Name, autoscope.MaxImagesPerIssue))
			continue
		}
		valid = append(valid, img)
	}
	return valid, warnings
}

func validateImage(img autoscope.Image) string {
	if img.ID == "" {
		return fmt.Sprintf("image %q has no id", img.Name)
	}
	if img.DataURL == "" {
		return fmt.Sprintf("image %q has no data", img.Name)
	}
	if !autoscope.DataURLPattern.MatchString(img.DataURL) {
		return fmt.Sprintf("image %q is not a supported data URL", img.Name)
	}
	if img.Type != "" && !autoscope.AllowedImageType(img.Type) {
		return fmt.Sprintf("image %q has unsupported type %q", img.Name, img.Type)
	}
	if img.Size < 0 {
		return fmt.Sprintf("image %q has a negative size", img.Name)
	}
	if img.Size > autoscope.MaxImageSize {
		return fmt.Sprintf("image %q exceeds %d bytes", img.Name, autoscope.MaxImageSize)
	}
	return ""
}
