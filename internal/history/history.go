package history

import (
	"encoding/json"
	"fmt"
	"sync"

	"splice/internal/services"
	"splice/internal/timeline"
)

// DefaultLimit bounds how many undo steps a stack retains before the oldest
// snapshots fall off.
const DefaultLimit = 100

// Stack records document snapshots for undo and redo. Snapshots are stored as
// serialized JSON so later edits to a returned document cannot mutate history.
type Stack struct {
	mu      sync.Mutex
	limit   int
	current []byte
	undo    [][]byte
	redo    [][]byte
}

// NewStack builds a history stack seeded with the given document. A limit of
// zero or below uses DefaultLimit.
func NewStack(doc timeline.Document, limit int) (*Stack, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	snapshot, err := encode(doc)
	if err != nil {
		return nil, err
	}
	return &Stack{limit: limit, current: snapshot}, nil
}

// Push records a new document state. The previous state becomes undoable and
// any redo states are discarded.
func (s *Stack) Push(doc timeline.Document) error {
	snapshot, err := encode(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.undo = append(s.undo, s.current)
	if len(s.undo) > s.limit {
		s.undo = s.undo[len(s.undo)-s.limit:]
	}
	s.current = snapshot
	s.redo = nil
	return nil
}

// Undo steps back one state and returns the restored document.
func (s *Stack) Undo() (timeline.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.undo) == 0 {
		return timeline.Document{}, services.Wrap(services.ErrValidation, "history", "undo", "nothing to undo", nil)
	}
	s.redo = append(s.redo, s.current)
	s.current = s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	return decode(s.current)
}

// Redo reapplies the most recently undone state.
func (s *Stack) Redo() (timeline.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.redo) == 0 {
		return timeline.Document{}, services.Wrap(services.ErrValidation, "history", "redo", "nothing to redo", nil)
	}
	s.undo = append(s.undo, s.current)
	s.current = s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	return decode(s.current)
}

// Current returns the document at the top of the stack.
func (s *Stack) Current() (timeline.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return decode(s.current)
}

// CanUndo reports whether an undo step is available.
func (s *Stack) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo) > 0
}

// CanRedo reports whether a redo step is available.
func (s *Stack) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redo) > 0
}

// Depths returns the current undo and redo depths.
func (s *Stack) Depths() (undo, redo int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo), len(s.redo)
}

func encode(doc timeline.Document) ([]byte, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document snapshot: %w", err)
	}
	return payload, nil
}

func decode(payload []byte) (timeline.Document, error) {
	var doc timeline.Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return timeline.Document{}, fmt.Errorf("decode document snapshot: %w", err)
	}
	return doc, nil
}
