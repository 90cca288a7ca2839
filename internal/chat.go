package internal

import (
	"context"
	"regexp"
	"strings"
)

const (
	greetingText      = "Hi! I'm your study assistant. I can help with your uploaded notes, explain concepts, and answer general knowledge questions—always in a clear, focused way. What would you like to work on today?"
	greetingImageText = "Hi! I'm your study assistant. I can help with your uploaded notes (including photos), explain concepts, and answer general knowledge questions—always in a clear, focused way. What would you like to work on today?"
	blockedReplyText  = "I can't help with that topic. Let's keep things focused on learning, general knowledge, and healthy study or life questions."
)

var blockedTopicPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)18\+`),
	regexp.MustCompile(`(?i)nsfw`),
	regexp.MustCompile(`(?i)porn`),
	regexp.MustCompile(`(?i)sex(ual)?`),
	regexp.MustCompile(`(?i)nude`),
	regexp.MustCompile(`(?i)erotic`),
}

// ChatTranscript persists the chat history in on-device storage.
type ChatTranscript struct {
	kv KVStore
}

// NewChatTranscript creates a transcript backed by kv.
func NewChatTranscript(kv KVStore) *ChatTranscript {
	return &ChatTranscript{kv: kv}
}

// Load returns the stored transcript. Unreadable data is logged and treated as empty.
func (t *ChatTranscript) Load(ctx context.Context) []ChatMessage {
	var messages []ChatMessage
	ok, err := GetJSON(ctx, t.kv, ChatStorageKey, &messages)
	if err != nil {
		LogDebug("Ignoring unreadable chat transcript: %v", err)
		return []ChatMessage{}
	}
	if !ok || messages == nil {
		return []ChatMessage{}
	}
	return messages
}

// Exists reports whether a transcript is stored.
func (t *ChatTranscript) Exists(ctx context.Context) bool {
	_, ok, err := t.kv.Get(ctx, ChatStorageKey)
	return err == nil && ok
}

// Save overwrites the stored transcript.
func (t *ChatTranscript) Save(ctx context.Context, messages []ChatMessage) error {
	return PutJSON(ctx, t.kv, ChatStorageKey, messages)
}

// Clear removes the stored transcript.
func (t *ChatTranscript) Clear(ctx context.Context) error {
	return t.kv.Delete(ctx, ChatStorageKey)
}

// Greeting returns the opening assistant message.
func Greeting(hasImage bool) ChatMessage {
	if hasImage {
		return ChatMessage{Sender: SenderAssistant, Text: greetingImageText}
	}
	return ChatMessage{Sender: SenderAssistant, Text: greetingText}
}

// IsBlockedTopic reports whether a message is answered locally with a refusal.
func IsBlockedTopic(message string) bool {
	for _, re := range blockedTopicPatterns {
		if re.MatchString(message) {
			return true
		}
	}
	return false
}

// ChatAssistant sends messages to the backend and keeps the transcript current.
type ChatAssistant struct {
	backend    Backend
	transcript *ChatTranscript
}

// NewChatAssistant creates an assistant.
func NewChatAssistant(backend Backend, transcript *ChatTranscript) *ChatAssistant {
	return &ChatAssistant{backend: backend, transcript: transcript}
}

// History returns the transcript, seeded with the greeting when empty.
func (a *ChatAssistant) History(ctx context.Context, current *ContentItem) []ChatMessage {
	messages := a.transcript.Load(ctx)
	if len(messages) == 0 {
		messages = []ChatMessage{Greeting(current != nil && current.IsImage)}
	}
	return messages
}

// Send appends the user message, asks the backend and appends the reply. On a
// backend failure an apology (or the backend's message) is appended and the error
// is returned alongside it.
func (a *ChatAssistant) Send(ctx context.Context, message string, current *ContentItem) (ChatMessage, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return ChatMessage{}, ErrEmptyMessage
	}

	messages := append(a.History(ctx, current), ChatMessage{Sender: SenderUser, Text: trimmed})

	if IsBlockedTopic(trimmed) {
		reply := ChatMessage{Sender: SenderAssistant, Text: blockedReplyText}
		return reply, a.transcript.Save(ctx, append(messages, reply))
	}

	if err := a.transcript.Save(ctx, messages); err != nil {
		return ChatMessage{}, err
	}

	req := ChatRequest{
		Message: trimmed,
		History: messages,
		Content: contentContext(current),
	}
	text, sendErr := a.backend.Chat(ctx, req)
	if sendErr != nil {
		text = UserMessage(sendErr, MsgChatFailed)
	}

	reply := ChatMessage{Sender: SenderAssistant, Text: text}
	if err := a.transcript.Save(ctx, append(messages, reply)); err != nil {
		return reply, err
	}
	return reply, sendErr
}

func contentContext(item *ContentItem) ContentContext {
	if item == nil {
		return ContentContext{}
	}
	return ContentContext{
		Summary:          item.Summary,
		ShortNotes:       item.ShortNotes,
		ImageDescription: item.ImageDescription,
	}
}
