package wizard

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"strconv"
	"strings"

	"project-config-api/internal/pricing"
)

// ErrConfigurationLocked is returned by every mutating operation on a locked configuration
var ErrConfigurationLocked = errors.New("configuration is locked")

// LockGuard reports whether the owning configuration is locked. It is consulted
// before every mutation of a SelectionSet.
type LockGuard func() bool

// SelectionSet is the mutable set of selections of one configuration, keyed by
// item, variation and context
type SelectionSet struct {
	entries []pricing.Selection
	guard   LockGuard
}

// NewSelectionSet creates a set from persisted selections. Duplicate keys keep the last entry.
func NewSelectionSet(initial []pricing.Selection, guard LockGuard) *SelectionSet {
	s := &SelectionSet{guard: guard}
	for _, sel := range initial {
		s.put(sel)
	}
	return s
}

func (s *SelectionSet) locked() bool {
	return s.guard != nil && s.guard()
}

// Toggle adds the selection when absent and removes it when present.
// It reports whether the selection is part of the set afterwards.
func (s *SelectionSet) Toggle(sel pricing.Selection) (bool, error) {
	if s.locked() {
		return false, ErrConfigurationLocked
	}
	if i := s.find(sel.Key()); i >= 0 {
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
		return false, nil
	}
	s.entries = append(s.entries, sel)
	return true, nil
}

// Put adds the selection or replaces the quantity of an existing one
func (s *SelectionSet) Put(sel pricing.Selection) error {
	if s.locked() {
		return ErrConfigurationLocked
	}
	s.put(sel)
	return nil
}

func (s *SelectionSet) put(sel pricing.Selection) {
	if i := s.find(sel.Key()); i >= 0 {
		s.entries[i] = sel
		return
	}
	s.entries = append(s.entries, sel)
}

// Remove drops the selection with the given key; removing a missing key is a no-op
func (s *SelectionSet) Remove(key string) error {
	if s.locked() {
		return ErrConfigurationLocked
	}
	if i := s.find(key); i >= 0 {
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
	}
	return nil
}

// Contains reports whether a selection with the same key is present
func (s *SelectionSet) Contains(sel pricing.Selection) bool {
	return s.find(sel.Key()) >= 0
}

// Items returns a copy of the selections in insertion order
func (s *SelectionSet) Items() []pricing.Selection {
	out := make([]pricing.Selection, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of selections
func (s *SelectionSet) Len() int {
	return len(s.entries)
}

func (s *SelectionSet) find(key string) int {
	for i := range s.entries {
		if s.entries[i].Key() == key {
			return i
		}
	}
	return -1
}

// Fingerprint hashes a selection set including quantities. Order of selections does not matter.
func Fingerprint(selections []pricing.Selection) string {
	keys := make([]string, 0, len(selections))
	for _, sel := range selections {
		qty := "-"
		if sel.Quantity != nil {
			qty = strconv.Itoa(*sel.Quantity)
		}
		keys = append(keys, sel.Key()+"|"+qty)
	}
	sort.Strings(keys)

	sum := sha256.Sum256([]byte(strings.Join(keys, "\n")))
	return hex.EncodeToString(sum[:])
}
