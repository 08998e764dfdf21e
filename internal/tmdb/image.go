// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package tmdb

// ImageSize is a TMDB image width bucket.
type ImageSize string

const (
	SizeW500     ImageSize = "w500"
	SizeW780     ImageSize = "w780"
	SizeOriginal ImageSize = "original"
)

// DefaultImageBase is TMDB's public image CDN.
const DefaultImageBase = "https://image.tmdb.org/t/p"

// ImageURL returns the absolute URL of an image path, or nil when there is
// no path.
func ImageURL(path *string, size ImageSize) *string {
	return imageURL(DefaultImageBase, path, size)
}

func imageURL(base string, path *string, size ImageSize) *string {
	if path == nil || *path == "" {
		return nil
	}
	if size == "" {
		size = SizeW500
	}
	u := base + "/" + string(size) + *path
	return &u
}
