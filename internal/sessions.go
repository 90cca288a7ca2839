package internal

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

// SessionClient saves and restores the content store and chat transcript.
type SessionClient struct {
	backend    Backend
	store      *ContentStore
	transcript *ChatTranscript

	// CurrentID is the id of the last saved or loaded session.
	CurrentID string
}

// NewSessionClient creates a session client.
func NewSessionClient(backend Backend, store *ContentStore, transcript *ChatTranscript) *SessionClient {
	return &SessionClient{backend: backend, store: store, transcript: transcript}
}

// Save creates a session record from the current store and stored transcript.
func (s *SessionClient) Save(ctx context.Context, name string) (string, error) {
	if s.store.Len() == 0 {
		return "", ErrNothingToSave
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrSessionNameRequired
	}

	payload := SessionPayload{
		Name:          name,
		UploadedFiles: s.store.Items,
		ChatHistory:   s.transcript.Load(ctx),
	}
	id, err := s.backend.CreateSession(ctx, payload)
	if err != nil {
		return "", err
	}
	s.CurrentID = id
	WithFields(logrus.Fields{"session": id, "items": s.store.Len()}).Info("Session saved")
	return id, nil
}

// Load fetches a session and replaces local state with it. Unsaved local changes
// are discarded.
func (s *SessionClient) Load(ctx context.Context, id string) (*Session, error) {
	session, err := s.backend.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	s.store.Replace(session.UploadedFiles)
	if len(session.ChatHistory) > 0 {
		if err := s.transcript.Save(ctx, session.ChatHistory); err != nil {
			return nil, err
		}
	}
	if session.ID != "" {
		s.CurrentID = session.ID
	} else {
		s.CurrentID = id
	}
	WithFields(logrus.Fields{"session": s.CurrentID, "items": s.store.Len()}).Info("Session loaded")
	return session, nil
}

// List returns the saved sessions.
func (s *SessionClient) List(ctx context.Context) ([]SessionSummary, error) {
	return s.backend.ListSessions(ctx)
}

// Delete removes a saved session.
func (s *SessionClient) Delete(ctx context.Context, id string) error {
	if err := s.backend.DeleteSession(ctx, id); err != nil {
		return err
	}
	if s.CurrentID == id {
		s.CurrentID = ""
	}
	return nil
}
