package chat

import (
	"fmt"
	"slices"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// DefaultTranscriptSize is the number of messages kept on screen.
const DefaultTranscriptSize = 3

const (
	transcriptObject   = "chat"
	transcriptProperty = "transcript"
)

// Role identifies who wrote a transcript entry.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Entry is one transcript line.
type Entry struct {
	Role Role   `yaml:"role"`
	Text string `yaml:"text"`
}

// Store persists opaque object properties. *gdata.Manager satisfies it.
type Store interface {
	ObjectPropExists(objectKey, propKey string) bool
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	SaveObjectProp(objectKey, propKey string, data []byte) error
}

var _ Store = (*gdata.Manager)(nil)

// OpenStore opens the per-user data directory for appName.
func OpenStore(appName string) (Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open data store %q: %w", appName, err)
	}
	return m, nil
}

// transcript is the implementation of the Transcript interface.
type transcript struct {
	mu       *sync.Mutex
	capacity int
	entries  []Entry
	store    Store
}

// Transcript keeps the most recent chat messages, dropping the oldest past its capacity.
// With a Store, entries survive restarts.
type Transcript interface {
	// Add appends an entry and persists the transcript when a store is configured.
	//
	// Parameters:
	//   - e: the entry to add
	//
	// Returns:
	//   - error: the persistence error, if any; the entry is kept in memory regardless
	Add(e Entry) error

	// Entries returns a copy of the entries, oldest first.
	Entries() []Entry

	// Capacity returns the maximum number of entries kept.
	Capacity() int
}

var _ Transcript = &transcript{}

// NewTranscript creates a new Transcript, loading persisted entries when a store is configured.
//
// Parameters:
//   - options: variadic TranscriptBuilderOption functions to configure the Transcript
//
// Returns:
//   - Transcript: the new transcript
//   - error: a load or decode error; the transcript is still usable and starts empty
func NewTranscript(options ...TranscriptBuilderOption) (Transcript, error) {
	t := &transcript{
		mu:       &sync.Mutex{},
		capacity: DefaultTranscriptSize,
	}

	for _, opt := range options {
		opt(t)
	}

	return t, t.load()
}

func (t *transcript) Add(e Entry) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = append(t.entries, e)
	if over := len(t.entries) - t.capacity; over > 0 {
		t.entries = slices.Delete(t.entries, 0, over)
	}
	return t.save()
}

func (t *transcript) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.entries)
}

func (t *transcript) Capacity() int {
	return t.capacity
}

func (t *transcript) load() error {
	if t.store == nil || !t.store.ObjectPropExists(transcriptObject, transcriptProperty) {
		return nil
	}

	data, err := t.store.LoadObjectProp(transcriptObject, transcriptProperty)
	if err != nil {
		return fmt.Errorf("failed to load transcript: %w", err)
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to decode transcript: %w", err)
	}
	if over := len(entries) - t.capacity; over > 0 {
		entries = entries[over:]
	}
	t.entries = entries
	return nil
}

// save must be called with t.mu held.
func (t *transcript) save() error {
	if t.store == nil {
		return nil
	}
	data, err := yaml.Marshal(t.entries)
	if err != nil {
		return fmt.Errorf("failed to encode transcript: %w", err)
	}
	if err := t.store.SaveObjectProp(transcriptObject, transcriptProperty, data); err != nil {
		return fmt.Errorf("failed to save transcript: %w", err)
	}
	return nil
}
