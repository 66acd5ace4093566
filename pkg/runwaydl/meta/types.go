// Package meta contains metadata types describing a runway gallery.
package meta

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// GalleryMetadata contains data about a single runway show gallery.
type GalleryMetadata struct {
	// URL is the gallery page this metadata was read from.
	URL string
	// Designer is the name of the fashion house.
	Designer string
	// Gender is the collection audience, e.g. "Womenswear".
	Gender string
	// Season is the season with the display separator removed, e.g. "Fall 2024".
	Season string
	// RawSeason is the season exactly as displayed on the page, e.g. "Fall / 2024".
	RawSeason string
	// Album is the show name.
	Album string
	// ImageCount is the number of images in the gallery.
	ImageCount int
}

// Label returns the stable label used for every progress event belonging to
// this gallery.
func (g *GalleryMetadata) Label() string {
	return fmt.Sprintf("%s - %s - %s - %s", g.Designer, g.Gender, g.RawSeason, g.Album)
}

// Dir returns the destination directory for this gallery's images under root.
func (g *GalleryMetadata) Dir(root string) string {
	return filepath.Join(root, g.Designer, g.Gender, g.Season, g.Album)
}

const titleSeparator = " - "

// ParsePageTitle splits a gallery page title of the form
// "Designer - Ready To Wear - Show Name - Womenswear" into its parts.
// The second segment is a category the directory layout doesn't use.
func ParsePageTitle(raw string) (designer, album, gender string, err error) {
	parts := strings.Split(raw, titleSeparator)
	if len(parts) != 4 {
		return "", "", "", fmt.Errorf("page title %q: expected 4 segments, got %d", raw, len(parts))
	}
	return parts[0], strings.TrimRight(parts[2], " "), parts[3], nil
}

// CleanSeason removes the " / " display separator from a season string,
// so "Fall / 2024" becomes "Fall 2024".
func CleanSeason(raw string) string {
	return strings.ReplaceAll(raw, " / ", " ")
}

// ParseImageCount reads the leading integer from an info string such as
// "12 photos".
func ParseImageCount(raw string) (int, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return 0, fmt.Errorf("image count %q: empty", raw)
	}
	count, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("image count %q: %w", raw, err)
	}
	if count <= 0 {
		return 0, fmt.Errorf("image count %q: must be positive", raw)
	}
	return count, nil
}
