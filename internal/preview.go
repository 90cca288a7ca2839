package internal

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // imaging.Open decodes WebP through image.Decode
)

// ErrPreviewRevoked is returned when a preview reference is revoked twice or
// never existed.
var ErrPreviewRevoked = errors.New("preview reference already revoked")

const previewThumbSize = 512

// PreviewRef is a temporary, revocable local reference used to render a pending file.
type PreviewRef struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

// PreviewRegistry creates and revokes preview references. Each reference is a file
// in the registry directory, so references survive across processes and are
// revoked by removing the file.
type PreviewRegistry struct {
	dir string
	mu  sync.Mutex
}

// NewPreviewRegistry creates a registry rooted at dir.
func NewPreviewRegistry(dir string) *PreviewRegistry {
	return &PreviewRegistry{dir: dir}
}

// Dir returns the registry directory.
func (r *PreviewRegistry) Dir() string {
	return r.dir
}

// NeedsPreview reports whether a mime type gets a preview reference.
func NeedsPreview(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/") || mimeType == "application/pdf"
}

// Create makes a preview reference for the file at path. Images are rendered to a
// thumbnail; PDFs are linked as-is.
func (r *PreviewRegistry) Create(path, mimeType string) (*PreviewRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create preview directory: %w", err)
	}

	id := uuid.NewString()
	if strings.HasPrefix(mimeType, "image/") {
		ref := &PreviewRef{ID: id, Path: filepath.Join(r.dir, id+".png")}
		img, err := imaging.Open(path, imaging.AutoOrientation(true))
		if err != nil {
			return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
		}
		thumb := imaging.Fit(img, previewThumbSize, previewThumbSize, imaging.Lanczos)
		if err := imaging.Save(thumb, ref.Path); err != nil {
			return nil, fmt.Errorf("failed to write preview: %w", err)
		}
		LogDebug("Created image preview %s for %s", ref.ID, path)
		return ref, nil
	}

	ref := &PreviewRef{ID: id, Path: filepath.Join(r.dir, id+filepath.Ext(path))}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if err := os.Symlink(abs, ref.Path); err != nil {
		return nil, fmt.Errorf("failed to link preview: %w", err)
	}
	LogDebug("Created document preview %s for %s", ref.ID, path)
	return ref, nil
}

// Revoke removes a preview reference. Revoking the same reference twice returns
// ErrPreviewRevoked and has no other effect.
func (r *PreviewRegistry) Revoke(ref *PreviewRef) error {
	if ref == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(ref.Path); err != nil {
		if os.IsNotExist(err) {
			return ErrPreviewRevoked
		}
		return fmt.Errorf("failed to revoke preview %s: %w", ref.ID, err)
	}
	LogDebug("Revoked preview %s", ref.ID)
	return nil
}

// Live returns the number of unrevoked references.
func (r *PreviewRegistry) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return 0
	}
	return len(entries)
}

// DecodeImageData decodes an embedded image sent either as a data URI
// ("data:image/png;base64,...") or as bare base64. The returned extension comes
// from the URI's media type, or from the decoded bytes when there is none.
func DecodeImageData(value string) ([]byte, string, error) {
	payload, mediaType := value, ""
	if strings.HasPrefix(value, "data:") {
		header, rest, ok := strings.Cut(strings.TrimPrefix(value, "data:"), ",")
		if !ok {
			return nil, "", fmt.Errorf("malformed data URI")
		}
		mediaType, _, _ = strings.Cut(header, ";")
		payload = rest
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode embedded image: %w", err)
	}

	ext := ""
	if mediaType != "" {
		if mt := mimetype.Lookup(mediaType); mt != nil {
			ext = mt.Extension()
		}
	}
	if ext == "" {
		ext = mimetype.Detect(data).Extension()
	}
	return data, ext, nil
}
