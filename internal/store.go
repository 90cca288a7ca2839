package internal

// DefaultFlashcardCount is how many flashcards are shown by default.
const DefaultFlashcardCount = 10

// ContentStore is the ordered list of processed items plus the selection pointer.
// Selected is always a valid index while Items is non-empty.
type ContentStore struct {
	Items          []ContentItem `json:"items"`
	Selected       int           `json:"selected"`
	FlashcardIndex int           `json:"flashcard_index"`
	FlashcardCount int           `json:"flashcard_count"`
}

// NewContentStore returns an empty store.
func NewContentStore() *ContentStore {
	return &ContentStore{Items: []ContentItem{}, FlashcardCount: DefaultFlashcardCount}
}

// Len returns the number of items.
func (s *ContentStore) Len() int {
	return len(s.Items)
}

// Current returns the selected item, or nil when the store is empty.
func (s *ContentStore) Current() *ContentItem {
	if len(s.Items) == 0 {
		return nil
	}
	return &s.Items[s.Selected]
}

// Append adds a batch and points the selection at its first item.
func (s *ContentStore) Append(items []ContentItem) {
	if len(items) == 0 {
		return
	}
	first := len(s.Items)
	s.Items = append(s.Items, items...)
	s.Selected = first
	s.FlashcardIndex = 0
	s.FlashcardCount = min(DefaultFlashcardCount, len(items[0].Flashcards))
}

// Select moves the selection pointer.
func (s *ContentStore) Select(index int) error {
	if index < 0 || index >= len(s.Items) {
		return ErrInvalidIndex
	}
	s.Selected = index
	s.FlashcardIndex = 0
	s.FlashcardCount = min(DefaultFlashcardCount, len(s.Items[index].Flashcards))
	return nil
}

// Replace swaps in a new item list wholesale and selects the first item.
func (s *ContentStore) Replace(items []ContentItem) {
	s.Items = make([]ContentItem, len(items))
	copy(s.Items, items)
	s.Selected = 0
	s.FlashcardIndex = 0
	if len(items) > 0 {
		s.FlashcardCount = min(DefaultFlashcardCount, len(items[0].Flashcards))
	} else {
		s.FlashcardCount = DefaultFlashcardCount
	}
}

// Remove deletes one whole item and keeps the selection valid.
func (s *ContentStore) Remove(index int) error {
	if index < 0 || index >= len(s.Items) {
		return ErrInvalidIndex
	}
	s.Items = append(s.Items[:index], s.Items[index+1:]...)
	if s.Selected >= len(s.Items) {
		s.Selected = max(0, len(s.Items)-1)
	} else if index < s.Selected {
		s.Selected--
	}
	return nil
}

// UpdateCurrent mutates the selected item in place.
func (s *ContentStore) UpdateCurrent(fn func(item *ContentItem)) error {
	item := s.Current()
	if item == nil {
		return ErrNoContent
	}
	fn(item)
	return nil
}

// Reset clears everything.
func (s *ContentStore) Reset() {
	s.Items = []ContentItem{}
	s.Selected = 0
	s.FlashcardIndex = 0
	s.FlashcardCount = DefaultFlashcardCount
}

// normalize repairs a store decoded from storage so the selection invariant holds.
func (s *ContentStore) normalize() {
	if s.Items == nil {
		s.Items = []ContentItem{}
	}
	if s.Selected < 0 || s.Selected >= len(s.Items) {
		s.Selected = 0
	}
}
