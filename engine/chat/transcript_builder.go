package chat

// TranscriptBuilderOption is a functional option for configuring a Transcript during construction.
type TranscriptBuilderOption func(*transcript)

// WithCapacity is an option builder that sets how many entries are kept. Values below one are ignored.
func WithCapacity(n int) TranscriptBuilderOption {
	return func(t *transcript) {
		if n > 0 {
			t.capacity = n
		}
	}
}

// WithStore is an option builder that persists the transcript in s.
func WithStore(s Store) TranscriptBuilderOption {
	return func(t *transcript) {
		t.store = s
	}
}
