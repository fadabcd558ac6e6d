package library

import (
	"path/filepath"
	"strings"
)

// SupportedMIMETypes are the audio content types accepted for upload.
var SupportedMIMETypes = []string{
	"audio/mpeg",
	"audio/mp3",
	"audio/wav",
	"audio/ogg",
	"audio/aac",
	"audio/mp4",
	"audio/x-m4a",
}

// SupportedExtensions are the file extensions accepted for upload when
// the content type is missing or unrecognized.
var SupportedExtensions = []string{".mp3", ".wav", ".ogg", ".aac", ".m4a"}

// IsSupportedAudio reports whether a file is an acceptable audio upload.
// A recognized MIME type or a recognized extension is sufficient.
func IsSupportedAudio(filename, mimeType string) bool {
	for _, m := range SupportedMIMETypes {
		if strings.EqualFold(mimeType, m) {
			return true
		}
	}

	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}

	return false
}

// MIMEForExtension maps a filename to the content type its extension
// implies, falling back to audio/mpeg for anything unrecognized.
func MIMEForExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		return "audio/wav"
	case ".ogg":
		return "audio/ogg"
	case ".aac":
		return "audio/aac"
	case ".m4a":
		return "audio/mp4"
	default:
		return "audio/mpeg"
	}
}

// ParseFilename derives an artist and a title from an uploaded file's
// name. The extension is stripped, then the stem is split on " - ":
// "Daft Punk - One More Time.mp3" yields ("Daft Punk", "One More Time").
// A stem with no separator keeps the whole stem as the title and
// attributes it to "Unknown Artist".
func ParseFilename(filename string) (artist, title string) {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	parts := strings.Split(stem, " - ")
	if len(parts) < 2 {
		return "Unknown Artist", strings.TrimSpace(stem)
	}

	artist = strings.TrimSpace(parts[0])
	title = strings.TrimSpace(strings.Join(parts[1:], " - "))

	if artist == "" {
		artist = "Unknown Artist"
	}
	if title == "" {
		title = stem
	}

	return artist, title
}
