package internal

import (
	"context"
	"fmt"
)

// workspace is the snapshot persisted between command invocations.
type workspace struct {
	Store       *ContentStore `json:"store"`
	Pending     []PendingFile `json:"pending"`
	PreviewOpen bool          `json:"preview_open"`
	SessionID   string        `json:"session_id,omitempty"`
}

// App is the shared application state every command reads and mutates.
type App struct {
	Config  *Config
	KV      KVStore
	Backend Backend

	Store       *ContentStore
	Previews    *PreviewRegistry
	Coordinator *Coordinator
	Transcript  *ChatTranscript
	Chat        *ChatAssistant
	Sessions    *SessionClient
	Generator   *Generator
	Exporter    *Exporter
}

// OpenApp opens the configured store, creates an HTTP backend client and
// restores the saved workspace.
func OpenApp(ctx context.Context, cfg *Config) (*App, error) {
	kv, err := OpenStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	app, err := NewApp(ctx, cfg, kv, NewClient(cfg.APIBase, cfg.Timeout))
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	return app, nil
}

// NewApp wires the components over kv and backend and restores the workspace.
func NewApp(ctx context.Context, cfg *Config, kv KVStore, backend Backend) (*App, error) {
	store := NewContentStore()
	previews := NewPreviewRegistry(cfg.PreviewDir())
	transcript := NewChatTranscript(kv)

	app := &App{
		Config:      cfg,
		KV:          kv,
		Backend:     backend,
		Store:       store,
		Previews:    previews,
		Coordinator: NewCoordinator(backend, previews, store),
		Transcript:  transcript,
		Chat:        NewChatAssistant(backend, transcript),
		Sessions:    NewSessionClient(backend, store, transcript),
		Generator:   NewGenerator(backend, store),
		Exporter:    NewExporter(backend, store),
	}
	app.restore(ctx)
	return app, nil
}

// restore loads the saved workspace. Unreadable snapshots fall back to an empty
// workspace.
func (a *App) restore(ctx context.Context) {
	var ws workspace
	ok, err := GetJSON(ctx, a.KV, WorkspaceStorageKey, &ws)
	if err != nil {
		LogDebug("Ignoring unreadable workspace: %v", err)
		return
	}
	if !ok {
		return
	}
	if ws.Store != nil {
		*a.Store = *ws.Store
		a.Store.normalize()
	}
	a.Coordinator.Restore(ws.Pending, ws.PreviewOpen)
	a.Sessions.CurrentID = ws.SessionID
}

// Save persists the workspace.
func (a *App) Save(ctx context.Context) error {
	ws := workspace{
		Store:       a.Store,
		Pending:     a.Coordinator.Pending(),
		PreviewOpen: a.Coordinator.PreviewOpen(),
		SessionID:   a.Sessions.CurrentID,
	}
	return PutJSON(ctx, a.KV, WorkspaceStorageKey, ws)
}

// Close saves the workspace and releases the store. Pending previews stay live so
// the next invocation can still show them.
func (a *App) Close(ctx context.Context) error {
	saveErr := a.Save(ctx)
	if err := a.KV.Close(); err != nil && saveErr == nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return saveErr
}

// Reset clears the store, the pending list, the chat transcript and the current
// session. Every outstanding preview is revoked.
func (a *App) Reset(ctx context.Context) error {
	if err := a.Coordinator.Clear(); err != nil {
		return err
	}
	a.Store.Reset()
	a.Sessions.CurrentID = ""
	if err := a.Transcript.Clear(ctx); err != nil {
		return err
	}
	return a.Save(ctx)
}

// Teardown revokes every preview and discards late upload results. The app must
// not be used for uploads afterwards.
func (a *App) Teardown(ctx context.Context) error {
	a.Coordinator.Close()
	return a.Close(ctx)
}
