package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Backend is the study-assistant REST contract the client depends on.
type Backend interface {
	Upload(ctx context.Context, batch []PendingFile) ([]UploadResult, error)
	GenerateNotes(ctx context.Context, text string) (string, error)
	GenerateFlashcards(ctx context.Context, text string) ([]Flashcard, error)
	GenerateMCQs(ctx context.Context, text string, count int) ([]MCQ, error)
	Chat(ctx context.Context, req ChatRequest) (string, error)
	Download(ctx context.Context, req DownloadRequest) (*Download, error)
	GenerateSlides(ctx context.Context, req SlidesRequest) (*Download, error)
	CreateSession(ctx context.Context, payload SessionPayload) (string, error)
	ListSessions(ctx context.Context) ([]SessionSummary, error)
	GetSession(ctx context.Context, id string) (*Session, error)
	DeleteSession(ctx context.Context, id string) error
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message string         `json:"message"`
	History []ChatMessage  `json:"history"`
	Content ContentContext `json:"content"`
}

// ContentContext is the slice of the current item the chat assistant sees.
type ContentContext struct {
	Summary          string `json:"summary,omitempty"`
	ShortNotes       string `json:"short_notes,omitempty"`
	ImageDescription string `json:"image_description,omitempty"`
}

// DownloadRequest is the body of POST /download.
type DownloadRequest struct {
	Type    string      `json:"type"`
	Format  string      `json:"format"`
	Content interface{} `json:"content"`
}

// SlidesRequest is the body of POST /generate/ppt.
type SlidesRequest struct {
	Text    string `json:"text"`
	Summary string `json:"summary"`
	Notes   string `json:"notes"`
}

// SessionPayload is the body of POST /api/sessions.
type SessionPayload struct {
	Name          string        `json:"name"`
	UploadedFiles []ContentItem `json:"uploadedFiles"`
	ChatHistory   []ChatMessage `json:"chatHistory"`
}

// Download is a rendered file streamed back by the backend.
type Download struct {
	Filename    string
	ContentType string
	Body        io.ReadCloser
}

// Client talks to the backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL. A zero timeout means no timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Endpoint joins path onto the base URL.
func (c *Client) Endpoint(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// Upload sends the whole batch as one multipart request.
func (c *Client) Upload(ctx context.Context, batch []PendingFile) ([]UploadResult, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	for _, pf := range batch {
		if pf.IsLink() {
			if err := mw.WriteField("youtube_url", pf.URL); err != nil {
				return nil, &APIError{Op: "upload", Err: err}
			}
			continue
		}
		if err := writeFilePart(mw, pf); err != nil {
			return nil, &APIError{Op: "upload", Err: err}
		}
	}
	if err := mw.WriteField("quick_mode", "false"); err != nil {
		return nil, &APIError{Op: "upload", Err: err}
	}
	if err := mw.Close(); err != nil {
		return nil, &APIError{Op: "upload", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint("/upload"), body)
	if err != nil {
		return nil, &APIError{Op: "upload", Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var results []UploadResult
	if err := c.do(req, "upload", &results); err != nil {
		return nil, err
	}
	return results, nil
}

func writeFilePart(mw *multipart.Writer, pf PendingFile) error {
	f, err := os.Open(pf.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", pf.Path, err)
	}
	defer f.Close()

	name := pf.Name
	if name == "" {
		name = filepath.Base(pf.Path)
	}
	part, err := mw.CreatePart(filePartHeader(name, pf.MimeType))
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f)
	return err
}

func filePartHeader(filename, mimeType string) textproto.MIMEHeader {
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return textproto.MIMEHeader{
		"Content-Disposition": {mime.FormatMediaType("form-data", map[string]string{
			"name":     "files",
			"filename": filename,
		})},
		"Content-Type": {mimeType},
	}
}

// GenerateNotes calls POST /generate/notes.
func (c *Client) GenerateNotes(ctx context.Context, text string) (string, error) {
	var resp struct {
		ShortNotes string `json:"short_notes"`
		Error      string `json:"error"`
	}
	if err := c.postJSON(ctx, "/generate/notes", "generate.notes", map[string]string{"text": text}, &resp); err != nil {
		return "", err
	}
	if resp.ShortNotes == "" && resp.Error != "" {
		return "", &APIError{Op: "generate.notes", Message: resp.Error}
	}
	return resp.ShortNotes, nil
}

// GenerateFlashcards calls POST /generate/flashcards.
func (c *Client) GenerateFlashcards(ctx context.Context, text string) ([]Flashcard, error) {
	var resp struct {
		Flashcards []Flashcard `json:"flashcards"`
		Error      string      `json:"error"`
	}
	if err := c.postJSON(ctx, "/generate/flashcards", "generate.flashcards", map[string]string{"text": text}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Flashcards) == 0 && resp.Error != "" {
		return nil, &APIError{Op: "generate.flashcards", Message: resp.Error}
	}
	return resp.Flashcards, nil
}

// GenerateMCQs calls POST /generate/mcqs.
func (c *Client) GenerateMCQs(ctx context.Context, text string, count int) ([]MCQ, error) {
	body := map[string]interface{}{"text": text, "num_questions": count}
	var resp struct {
		MCQs  []MCQ  `json:"mcqs"`
		Error string `json:"error"`
	}
	if err := c.postJSON(ctx, "/generate/mcqs", "generate.mcqs", body, &resp); err != nil {
		return nil, err
	}
	if len(resp.MCQs) == 0 && resp.Error != "" {
		return nil, &APIError{Op: "generate.mcqs", Message: resp.Error}
	}
	return resp.MCQs, nil
}

// Chat calls POST /chat.
func (c *Client) Chat(ctx context.Context, chatReq ChatRequest) (string, error) {
	var resp struct {
		Response string `json:"response"`
	}
	if err := c.postJSON(ctx, "/chat", "chat", chatReq, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}

// Download calls POST /download and returns the streamed file.
func (c *Client) Download(ctx context.Context, dlReq DownloadRequest) (*Download, error) {
	dl, err := c.postForFile(ctx, "/download", "download", dlReq)
	if err != nil {
		return nil, err
	}
	if dl.Filename == "" {
		dl.Filename = fmt.Sprintf("%s.%s", dlReq.Type, dlReq.Format)
	}
	return dl, nil
}

// GenerateSlides calls POST /generate/ppt.
func (c *Client) GenerateSlides(ctx context.Context, slidesReq SlidesRequest) (*Download, error) {
	dl, err := c.postForFile(ctx, "/generate/ppt", "generate.ppt", slidesReq)
	if err != nil {
		return nil, err
	}
	// The archive name is fixed regardless of what the server suggests.
	dl.Filename = SlidesFilename
	return dl, nil
}

// CreateSession calls POST /api/sessions and returns the new session id.
func (c *Client) CreateSession(ctx context.Context, payload SessionPayload) (string, error) {
	var resp struct {
		SessionID string `json:"session_id"`
	}
	if err := c.postJSON(ctx, "/api/sessions", "sessions.save", payload, &resp); err != nil {
		return "", err
	}
	if resp.SessionID == "" {
		return "", &APIError{Op: "sessions.save", Message: "No session_id in response"}
	}
	return resp.SessionID, nil
}

// ListSessions calls GET /api/sessions.
func (c *Client) ListSessions(ctx context.Context) ([]SessionSummary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint("/api/sessions"), nil)
	if err != nil {
		return nil, &APIError{Op: "sessions.list", Err: err}
	}
	var resp struct {
		Sessions []SessionSummary `json:"sessions"`
	}
	if err := c.do(req, "sessions.list", &resp); err != nil {
		return nil, err
	}
	if resp.Sessions == nil {
		resp.Sessions = []SessionSummary{}
	}
	return resp.Sessions, nil
}

// GetSession calls GET /api/sessions/{id}.
func (c *Client) GetSession(ctx context.Context, id string) (*Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint("/api/sessions/"+url.PathEscape(id)), nil)
	if err != nil {
		return nil, &APIError{Op: "sessions.get", Err: err}
	}
	var session Session
	if err := c.do(req, "sessions.get", &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteSession calls DELETE /api/sessions/{id}.
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.Endpoint("/api/sessions/"+url.PathEscape(id)), nil)
	if err != nil {
		return &APIError{Op: "sessions.delete", Err: err}
	}
	return c.do(req, "sessions.delete", nil)
}

func (c *Client) postJSON(ctx context.Context, path, op string, body, out interface{}) error {
	req, err := c.newJSONRequest(ctx, path, op, body)
	if err != nil {
		return err
	}
	return c.do(req, op, out)
}

func (c *Client) newJSONRequest(ctx context.Context, path, op string, body interface{}) (*http.Request, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, &APIError{Op: op, Err: fmt.Errorf("failed to encode request: %w", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(path), bytes.NewReader(data))
	if err != nil {
		return nil, &APIError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// do executes req and decodes a JSON response into out (which may be nil).
func (c *Client) do(req *http.Request, op string, out interface{}) error {
	LogDebug("%s %s", req.Method, req.URL.Redacted())
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return errorFromResponse(op, resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func (c *Client) postForFile(ctx context.Context, path, op string, body interface{}) (*Download, error) {
	req, err := c.newJSONRequest(ctx, path, op, body)
	if err != nil {
		return nil, err
	}
	LogDebug("%s %s", req.Method, req.URL.Redacted())
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Op: op, Err: err}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		defer resp.Body.Close()
		return nil, errorFromResponse(op, resp)
	}

	dl := &Download{
		ContentType: resp.Header.Get("Content-Type"),
		Body:        resp.Body,
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			dl.Filename = filepath.Base(params["filename"])
		}
	}
	if dl.Filename == "." || dl.Filename == "/" {
		dl.Filename = ""
	}
	return dl, nil
}

// errorFromResponse reads the backend's {"error": "..."} body when present.
func errorFromResponse(op string, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	apiErr := &APIError{Op: op, Status: resp.StatusCode}
	if err := json.Unmarshal(data, &payload); err == nil {
		apiErr.Message = payload.Error
		if apiErr.Message == "" {
			apiErr.Message = payload.Message
		}
	}
	if apiErr.Message == "" {
		apiErr.Err = errors.New(http.StatusText(resp.StatusCode))
	}
	return apiErr
}
