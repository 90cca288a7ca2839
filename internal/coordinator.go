package internal

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
)

// ErrCoordinatorClosed is returned when results arrive after teardown; they are
// discarded.
var ErrCoordinatorClosed = errors.New("upload coordinator closed")

// Coordinator owns the pending-preview list and turns it into one upload request.
type Coordinator struct {
	backend    Backend
	previews   *PreviewRegistry
	normalizer *Normalizer
	store      *ContentStore

	mu          sync.Mutex
	pending     []PendingFile
	previewOpen bool
	inFlight    bool
	closed      bool
}

// NewCoordinator creates a coordinator that appends results to store.
func NewCoordinator(backend Backend, previews *PreviewRegistry, store *ContentStore) *Coordinator {
	return &Coordinator{
		backend:    backend,
		previews:   previews,
		normalizer: NewNormalizer(),
		store:      store,
		pending:    []PendingFile{},
	}
}

// Restore reinstates a pending list saved by a previous process.
func (c *Coordinator) Restore(pending []PendingFile, previewOpen bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append([]PendingFile{}, pending...)
	c.previewOpen = previewOpen && len(c.pending) > 0
}

// Pending returns a copy of the pending list.
func (c *Coordinator) Pending() []PendingFile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]PendingFile{}, c.pending...)
}

// PreviewOpen reports whether the preview surface is showing.
func (c *Coordinator) PreviewOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.previewOpen
}

// AddPending adds files, or replaces the list with a single video link. A nil
// input is a no-op.
func (c *Coordinator) AddPending(input UploadInput) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inFlight {
		return ErrSubmitInFlight
	}

	switch in := input.(type) {
	case LinkInput:
		c.revokeAll()
		c.pending = []PendingFile{{
			Kind: PendingLinkKind,
			URL:  in.URL,
			Name: "YouTube Video",
		}}
	case FilesInput:
		entries := make([]PendingFile, 0, len(in.Paths))
		for _, path := range in.Paths {
			entry, err := describeFile(path)
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		for i := range entries {
			if !NeedsPreview(entries[i].MimeType) {
				continue
			}
			ref, err := c.previews.Create(entries[i].Path, entries[i].MimeType)
			if err != nil {
				LogWarn("No preview for %s: %v", entries[i].Name, err)
				continue
			}
			entries[i].Preview = ref
		}
		c.pending = append(c.pending, entries...)
	default:
		return nil
	}

	if len(c.pending) > 0 {
		c.previewOpen = true
	}
	return nil
}

// describeFile stats and sniffs a local file.
func describeFile(path string) (PendingFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return PendingFile{}, &ValidationError{Message: fmt.Sprintf("Cannot read %s: %v", path, err)}
	}
	if info.IsDir() {
		return PendingFile{}, &ValidationError{Message: fmt.Sprintf("%s is a directory", path)}
	}

	mimeType := "application/octet-stream"
	if mt, err := mimetype.DetectFile(path); err == nil {
		if base, _, perr := mime.ParseMediaType(mt.String()); perr == nil {
			mimeType = base
		}
	}

	return PendingFile{
		Kind:     PendingFileKind,
		Path:     path,
		Name:     filepath.Base(path),
		Size:     info.Size(),
		MimeType: mimeType,
	}, nil
}

// RemovePending removes one entry and revokes its preview.
func (c *Coordinator) RemovePending(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inFlight {
		return ErrSubmitInFlight
	}
	if index < 0 || index >= len(c.pending) {
		return ErrInvalidIndex
	}

	c.revoke(&c.pending[index])
	c.pending = append(c.pending[:index], c.pending[index+1:]...)
	if len(c.pending) == 0 {
		c.previewOpen = false
	}
	return nil
}

// SubmitPending uploads the pending list. On success the normalized items are
// appended to the store, every preview is revoked and the list is cleared. On
// failure the list is left untouched so the user can retry.
func (c *Coordinator) SubmitPending(ctx context.Context) ([]ContentItem, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrCoordinatorClosed
	}
	if c.inFlight {
		c.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	if len(c.pending) == 0 {
		c.mu.Unlock()
		return nil, ErrNoPendingFiles
	}
	batch := submissionOrder(c.pending)
	if len(batch) == 0 {
		c.mu.Unlock()
		return nil, ErrNoValidFiles
	}
	c.inFlight = true
	c.mu.Unlock()

	WithFields(logrus.Fields{"sources": len(batch)}).Info("Uploading")
	results, err := c.backend.Upload(ctx, batch)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false

	if c.closed {
		LogDebug("Discarding upload results received after close")
		return nil, ErrCoordinatorClosed
	}
	if err != nil {
		return nil, err
	}

	items := c.normalizer.NormalizeBatch(results, batch, CountVideos(c.store.Items))
	c.store.Append(items)

	c.revokeAll()
	c.pending = []PendingFile{}
	c.previewOpen = false

	return items, nil
}

// submissionOrder returns the usable entries in the order the backend reports
// results: files first, then the video link.
func submissionOrder(pending []PendingFile) []PendingFile {
	var files, links []PendingFile
	for _, pf := range pending {
		switch {
		case pf.IsLink() && pf.URL != "":
			links = append(links, pf)
		case !pf.IsLink() && isReadableFile(pf.Path):
			files = append(files, pf)
		}
	}
	return append(files, links...)
}

func isReadableFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Close revokes every remaining preview. Results of an in-flight upload are
// discarded when they arrive.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.revokeAll()
	c.pending = []PendingFile{}
	c.previewOpen = false
	c.closed = true
}

// Clear revokes every preview and empties the list without closing.
func (c *Coordinator) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inFlight {
		return ErrSubmitInFlight
	}
	c.revokeAll()
	c.pending = []PendingFile{}
	c.previewOpen = false
	return nil
}

func (c *Coordinator) revokeAll() {
	for i := range c.pending {
		c.revoke(&c.pending[i])
	}
}

// revoke releases the entry's preview and forgets it, so it is revoked once.
func (c *Coordinator) revoke(pf *PendingFile) {
	if pf.Preview == nil {
		return
	}
	if err := c.previews.Revoke(pf.Preview); err != nil {
		LogWarn("Failed to revoke preview for %s: %v", pf.Name, err)
	}
	pf.Preview = nil
}
