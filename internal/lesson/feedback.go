package lesson

// DefaultFeedbackLimit is how many feedback entries a front end keeps.
const DefaultFeedbackLimit = 10

// FeedbackEntry is a single line of answer feedback.
type FeedbackEntry struct {
	Text    string
	Correct bool
}

// FeedbackLog keeps the most recent feedback entries, oldest first.
type FeedbackLog struct {
	limit   int
	entries []FeedbackEntry
}

// NewFeedbackLog creates a log holding at most limit entries. A
// non-positive limit falls back to DefaultFeedbackLimit.
func NewFeedbackLog(limit int) *FeedbackLog {
	if limit <= 0 {
		limit = DefaultFeedbackLimit
	}
	return &FeedbackLog{limit: limit}
}

// Append adds an entry, dropping the oldest ones beyond the limit.
func (l *FeedbackLog) Append(text string, correct bool) {
	l.entries = append(l.entries, FeedbackEntry{Text: text, Correct: correct})
	if over := len(l.entries) - l.limit; over > 0 {
		l.entries = append([]FeedbackEntry(nil), l.entries[over:]...)
	}
}

// Entries returns a copy of the retained entries.
func (l *FeedbackLog) Entries() []FeedbackEntry {
	cp := make([]FeedbackEntry, len(l.entries))
	copy(cp, l.entries)
	return cp
}

// Len returns the number of retained entries.
func (l *FeedbackLog) Len() int {
	return len(l.entries)
}

// Reset drops every entry.
func (l *FeedbackLog) Reset() {
	l.entries = nil
}
