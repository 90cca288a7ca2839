package internal

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/iksnae/notelooms/testutil"
)

func newTestClient(t *testing.T) (*Client, *testutil.FakeBackend) {
	t.Helper()
	fb := testutil.NewFakeBackend(t)
	return NewClient(fb.URL, 5*time.Second), fb
}

func TestClient_Endpoint(t *testing.T) {
	c := NewClient("http://localhost:5000/", time.Second)
	tests := []struct {
		path string
		want string
	}{
		{"/upload", "http://localhost:5000/upload"},
		{"chat", "http://localhost:5000/chat"},
	}
	for _, tt := range tests {
		if got := c.Endpoint(tt.path); got != tt.want {
			t.Errorf("Endpoint(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestClient_GenerateMCQs(t *testing.T) {
	c, fb := newTestClient(t)

	mcqs, err := c.GenerateMCQs(context.Background(), "some text", 3)
	if err != nil {
		t.Fatalf("GenerateMCQs() error = %v", err)
	}
	if len(mcqs) != 3 {
		t.Fatalf("mcqs = %d, want 3", len(mcqs))
	}
	if mcqs[0].CorrectAnswer != "A" || !mcqs[0].Options[0].IsCorrect {
		t.Errorf("lettered options not decoded: %+v", mcqs[0])
	}

	var body struct {
		Text         string `json:"text"`
		NumQuestions int    `json:"num_questions"`
	}
	fb.RequestsTo("/generate/mcqs")[0].JSON(t, &body)
	if body.Text != "some text" || body.NumQuestions != 3 {
		t.Errorf("request body = %+v", body)
	}
}

func TestClient_GenerateErrorField(t *testing.T) {
	c, fb := newTestClient(t)
	fb.Respond("/generate/notes", http.StatusOK, map[string]string{"error": "No text provided"})

	_, err := c.GenerateNotes(context.Background(), "")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Message != "No text provided" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestClient_ErrorStatus(t *testing.T) {
	c, fb := newTestClient(t)
	fb.Fail("/chat", http.StatusServiceUnavailable, "Model overloaded")

	_, err := c.Chat(context.Background(), ChatRequest{Message: "hi"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusServiceUnavailable || apiErr.Op != "chat" {
		t.Errorf("apiErr = %+v", apiErr)
	}
	if got := UserMessage(err, MsgChatFailed); got != "Model overloaded" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestClient_Download(t *testing.T) {
	c, _ := newTestClient(t)

	dl, err := c.Download(context.Background(), DownloadRequest{Type: "summary", Format: "pdf", Content: "text"})
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	defer dl.Body.Close()

	if dl.Filename != "summary.pdf" {
		t.Errorf("filename = %q, want summary.pdf", dl.Filename)
	}
	data, _ := io.ReadAll(dl.Body)
	if string(data) != "summary rendered as pdf" {
		t.Errorf("body = %q", data)
	}
}

func TestClient_GenerateSlidesFixedName(t *testing.T) {
	c, _ := newTestClient(t)

	dl, err := c.GenerateSlides(context.Background(), SlidesRequest{Text: "t"})
	if err != nil {
		t.Fatalf("GenerateSlides() error = %v", err)
	}
	defer dl.Body.Close()
	if dl.Filename != SlidesFilename {
		t.Errorf("filename = %q, want %q", dl.Filename, SlidesFilename)
	}
}

func TestClient_Sessions(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	id, err := c.CreateSession(ctx, SessionPayload{
		Name:          "Biology",
		UploadedFiles: []ContentItem{CreateTestContentItem("cells.pdf", 2)},
		ChatHistory:   []ChatMessage{{Sender: SenderUser, Text: "hi"}},
	})
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	list, err := c.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions() error = %v", err)
	}
	if len(list) != 1 || list[0].ID != id || list[0].FileCount != 1 || !list[0].HasChat {
		t.Errorf("list = %+v", list)
	}

	session, err := c.GetSession(ctx, id)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if session.Name != "Biology" || len(session.UploadedFiles) != 1 {
		t.Errorf("session = %+v", session)
	}

	if err := c.DeleteSession(ctx, id); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}
	if _, err := c.GetSession(ctx, id); err == nil {
		t.Error("GetSession() after delete expected error")
	}
}

func TestClient_ContextCanceled(t *testing.T) {
	c, _ := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListSessions(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
