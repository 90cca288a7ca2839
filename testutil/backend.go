package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// UploadedPart is one file part received by the fake /upload endpoint.
type UploadedPart struct {
	Filename    string
	ContentType string
	Size        int
}

// RecordedRequest is one request received by the fake backend.
type RecordedRequest struct {
	Method string
	Path   string
	Body   []byte
	Fields map[string][]string
	Files  []UploadedPart
}

// JSON decodes the recorded body into v.
func (r RecordedRequest) JSON(t *testing.T, v interface{}) {
	t.Helper()
	JSONUnmarshal(t, r.Body, v)
}

// cannedResponse overrides the default handler for one route.
type cannedResponse struct {
	status int
	body   interface{}
}

// FakeBackend is an in-process stand-in for the study-assistant backend. It
// records every request and serves deterministic responses.
type FakeBackend struct {
	URL string

	server *httptest.Server

	mu        sync.Mutex
	requests  []RecordedRequest
	overrides map[string]cannedResponse
	sessions  map[string]map[string]interface{}
	order     []string
	nextID    int
}

// NewFakeBackend starts a fake backend that is shut down when the test ends.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	fb := &FakeBackend{
		overrides: make(map[string]cannedResponse),
		sessions:  make(map[string]map[string]interface{}),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(fb.record)

	r.Post("/upload", fb.withOverride(fb.handleUpload))
	r.Route("/generate", func(r chi.Router) {
		r.Post("/notes", fb.withOverride(fb.handleNotes))
		r.Post("/flashcards", fb.withOverride(fb.handleFlashcards))
		r.Post("/mcqs", fb.withOverride(fb.handleMCQs))
		r.Post("/ppt", fb.withOverride(fb.handleSlides))
	})
	r.Post("/chat", fb.withOverride(fb.handleChat))
	r.Post("/download", fb.withOverride(fb.handleDownload))
	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", fb.withOverride(fb.handleCreateSession))
		r.Get("/", fb.withOverride(fb.handleListSessions))
		r.Get("/{id}", fb.withOverride(fb.handleGetSession))
		r.Delete("/{id}", fb.withOverride(fb.handleDeleteSession))
	})

	fb.server = httptest.NewServer(r)
	fb.URL = fb.server.URL
	t.Cleanup(fb.server.Close)
	return fb
}

// Respond makes path answer with status and a JSON body instead of the default.
func (fb *FakeBackend) Respond(path string, status int, body interface{}) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.overrides[path] = cannedResponse{status: status, body: body}
}

// Fail makes path answer with status and {"error": message}.
func (fb *FakeBackend) Fail(path string, status int, message string) {
	fb.Respond(path, status, map[string]string{"error": message})
}

// Requests returns a copy of the recorded requests.
func (fb *FakeBackend) Requests() []RecordedRequest {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]RecordedRequest{}, fb.requests...)
}

// RequestsTo returns the recorded requests for one path.
func (fb *FakeBackend) RequestsTo(path string) []RecordedRequest {
	var out []RecordedRequest
	for _, r := range fb.Requests() {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// PutSession stores a session record as if it had been saved earlier.
func (fb *FakeBackend) PutSession(id string, record map[string]interface{}) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	record["id"] = id
	if _, exists := fb.sessions[id]; !exists {
		fb.order = append(fb.order, id)
	}
	fb.sessions[id] = record
}

func (fb *FakeBackend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := RecordedRequest{Method: r.Method, Path: r.URL.Path}

		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			if err := r.ParseMultipartForm(32 << 20); err == nil {
				rec.Fields = r.MultipartForm.Value
				for _, fh := range r.MultipartForm.File["files"] {
					rec.Files = append(rec.Files, UploadedPart{
						Filename:    fh.Filename,
						ContentType: fh.Header.Get("Content-Type"),
						Size:        int(fh.Size),
					})
				}
			}
		} else if r.Body != nil {
			rec.Body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(strings.NewReader(string(rec.Body)))
		}

		fb.mu.Lock()
		fb.requests = append(fb.requests, rec)
		fb.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (fb *FakeBackend) withOverride(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		canned, ok := fb.overrides[strings.TrimSuffix(r.URL.Path, "/")]
		if !ok {
			canned, ok = fb.overrides[r.URL.Path]
		}
		fb.mu.Unlock()
		if ok {
			writeJSON(w, canned.status, canned.body)
			return
		}
		next(w, r)
	}
}

func (fb *FakeBackend) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.MultipartForm == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No files or YouTube URL provided"})
		return
	}

	results := []map[string]interface{}{}
	for _, fh := range r.MultipartForm.File["files"] {
		results = append(results, DocumentResult(fh.Filename, fh.Header.Get("Content-Type")))
	}
	if links := r.MultipartForm.Value["youtube_url"]; len(links) > 0 && links[0] != "" {
		results = append(results, VideoResult(links[0]))
	}
	if len(results) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No files or YouTube URL provided"})
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (fb *FakeBackend) handleNotes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"short_notes": "1/ **Key** point\r\n\r\n\r\n* detail one."})
}

func (fb *FakeBackend) handleFlashcards(w http.ResponseWriter, r *http.Request) {
	cards := make([]map[string]string, 0, 12)
	for i := 1; i <= 12; i++ {
		cards = append(cards, map[string]string{
			"front": fmt.Sprintf("**Term %d**", i),
			"back":  fmt.Sprintf("Definition %d", i),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"flashcards": cards})
}

func (fb *FakeBackend) handleMCQs(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NumQuestions int `json:"num_questions"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	n := req.NumQuestions
	if n < 1 {
		n = 1
	}
	if n > 20 {
		n = 20
	}
	mcqs := make([]map[string]interface{}, 0, n)
	for i := 1; i <= n; i++ {
		mcqs = append(mcqs, map[string]interface{}{
			"id":       i,
			"question": fmt.Sprintf("**Question %d**?", i),
			"options": []map[string]interface{}{
				{"letter": "A", "text": "Right", "is_correct": true},
				{"letter": "B", "text": "Wrong", "is_correct": false},
			},
			"answer":         "Right",
			"correct_answer": "A",
			"explanation":    "Because.",
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"mcqs": mcqs})
}

func (fb *FakeBackend) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	writeJSON(w, http.StatusOK, map[string]string{"response": "You said: " + req.Message})
}

func (fb *FakeBackend) handleDownload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type   string `json:"type"`
		Format string `json:"format"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.%s", req.Type, req.Format))
	_, _ = fmt.Fprintf(w, "%s rendered as %s", req.Type, req.Format)
}

func (fb *FakeBackend) handleSlides(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", "attachment; filename=slides.zip")
	_, _ = w.Write([]byte("PK\x03\x04slides"))
}

func (fb *FakeBackend) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var record map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}
	fb.mu.Lock()
	fb.nextID++
	id := fmt.Sprintf("session-%d", fb.nextID)
	fb.mu.Unlock()

	record["created_at"] = "2024-01-01T00:00:00"
	record["updated_at"] = "2024-01-01T00:00:00"
	fb.PutSession(id, record)
	writeJSON(w, http.StatusOK, map[string]string{"session_id": id})
}

func (fb *FakeBackend) handleListSessions(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	list := make([]map[string]interface{}, 0, len(fb.order))
	for i := len(fb.order) - 1; i >= 0; i-- {
		rec := fb.sessions[fb.order[i]]
		files, _ := rec["uploadedFiles"].([]interface{})
		chat, _ := rec["chatHistory"].([]interface{})
		list = append(list, map[string]interface{}{
			"id":         rec["id"],
			"name":       rec["name"],
			"created_at": rec["created_at"],
			"updated_at": rec["updated_at"],
			"file_count": len(files),
			"has_chat":   len(chat) > 0,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": list})
}

func (fb *FakeBackend) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	fb.mu.Lock()
	rec, ok := fb.sessions[id]
	fb.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Session not found"})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (fb *FakeBackend) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if _, ok := fb.sessions[id]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Session not found"})
		return
	}
	delete(fb.sessions, id)
	for i, existing := range fb.order {
		if existing == id {
			fb.order = append(fb.order[:i], fb.order[i+1:]...)
			break
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Session deleted"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
