package internal

import (
	"regexp"
	"strings"
)

var youTubePattern = regexp.MustCompile(`(?i)^(https?://)?(www\.)?(youtube\.com|youtu\.be)/.+`)

// UploadInput is what the user handed to "add": either local files or one video link.
// It is decided once, by ParseInput, and never re-sniffed downstream.
type UploadInput interface {
	isUploadInput()
}

// FilesInput is a list of local file paths.
type FilesInput struct {
	Paths []string
}

// LinkInput is a pasted YouTube link.
type LinkInput struct {
	URL string
}

func (FilesInput) isUploadInput() {}
func (LinkInput) isUploadInput()  {}

// IsYouTubeURL reports whether s looks like a YouTube link.
func IsYouTubeURL(s string) bool {
	return youTubePattern.MatchString(strings.TrimSpace(s))
}

// ParseInput classifies raw arguments. It returns nil for input that is neither a
// YouTube link nor a list of paths; callers treat nil as a no-op.
func ParseInput(args []string) UploadInput {
	if len(args) == 0 {
		return nil
	}
	if len(args) == 1 && IsYouTubeURL(args[0]) {
		return LinkInput{URL: strings.TrimSpace(args[0])}
	}

	paths := make([]string, 0, len(args))
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		// Any other URL is not something we can upload.
		if strings.Contains(arg, "://") {
			return nil
		}
		paths = append(paths, arg)
	}
	if len(paths) == 0 {
		return nil
	}
	return FilesInput{Paths: paths}
}
