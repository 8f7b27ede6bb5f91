package chat

import (
	"errors"
	"testing"
)

type memStore struct {
	props   map[string][]byte
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{props: make(map[string][]byte)}
}

func (s *memStore) ObjectPropExists(objectKey, propKey string) bool {
	_, ok := s.props[objectKey+"/"+propKey]
	return ok
}

func (s *memStore) LoadObjectProp(objectKey, propKey string) ([]byte, error) {
	return s.props[objectKey+"/"+propKey], nil
}

func (s *memStore) SaveObjectProp(objectKey, propKey string, data []byte) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.props[objectKey+"/"+propKey] = append([]byte(nil), data...)
	return nil
}

func TestTranscriptKeepsLastEntries(t *testing.T) {
	tr, err := NewTranscript()
	if err != nil {
		t.Fatal(err)
	}
	if tr.Capacity() != DefaultTranscriptSize {
		t.Errorf("Capacity() = %d", tr.Capacity())
	}
	for _, text := range []string{"one", "two", "three", "four"} {
		if err := tr.Add(Entry{Role: RoleUser, Text: text}); err != nil {
			t.Fatal(err)
		}
	}
	got := tr.Entries()
	if len(got) != 3 || got[0].Text != "two" || got[2].Text != "four" {
		t.Errorf("Entries() = %+v", got)
	}

	got[0].Text = "changed"
	if tr.Entries()[0].Text != "two" {
		t.Error("Entries() returned shared storage")
	}
}

func TestTranscriptPersists(t *testing.T) {
	store := newMemStore()
	tr, err := NewTranscript(WithStore(store))
	if err != nil {
		t.Fatal(err)
	}
	_ = tr.Add(Entry{Role: RoleUser, Text: "hi"})
	_ = tr.Add(Entry{Role: RoleBot, Text: "hello"})

	reloaded, err := NewTranscript(WithStore(store))
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	got := reloaded.Entries()
	if len(got) != 2 || got[0] != (Entry{Role: RoleUser, Text: "hi"}) || got[1] != (Entry{Role: RoleBot, Text: "hello"}) {
		t.Errorf("reloaded Entries() = %+v", got)
	}

	smaller, err := NewTranscript(WithStore(store), WithCapacity(1))
	if err != nil {
		t.Fatal(err)
	}
	if got := smaller.Entries(); len(got) != 1 || got[0].Text != "hello" {
		t.Errorf("trimmed Entries() = %+v", got)
	}
}

func TestTranscriptStoreErrors(t *testing.T) {
	store := newMemStore()
	store.props[transcriptObject+"/"+transcriptProperty] = []byte("role: [")
	tr, err := NewTranscript(WithStore(store))
	if err == nil {
		t.Error("NewTranscript() with corrupt data succeeded")
	}
	if len(tr.Entries()) != 0 {
		t.Errorf("Entries() = %+v, want empty", tr.Entries())
	}

	store.saveErr = errors.New("disk full")
	if err := tr.Add(Entry{Role: RoleUser, Text: "kept"}); !errors.Is(err, store.saveErr) {
		t.Errorf("Add() error = %v", err)
	}
	if len(tr.Entries()) != 1 {
		t.Error("entry dropped after save failure")
	}
}
