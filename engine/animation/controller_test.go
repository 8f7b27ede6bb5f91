package animation

import (
	"bytes"
	"errors"
	"io"
	"log"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
)

type fadeCall struct {
	name     string
	duration float32
}

type fakeHost struct {
	clips    map[string]float32
	calls    []fadeCall
	finished func()
}

func newFakeHost(names ...string) *fakeHost {
	h := &fakeHost{clips: make(map[string]float32)}
	for _, n := range names {
		h.clips[n] = 1
	}
	return h
}

func (h *fakeHost) CrossFadeTo(name string, duration float32) error {
	if _, ok := h.clips[name]; !ok {
		return ErrUnknownAnimation
	}
	h.calls = append(h.calls, fadeCall{name: name, duration: duration})
	return nil
}

func (h *fakeHost) HasClip(name string) bool {
	_, ok := h.clips[name]
	return ok
}

func (h *fakeHost) Duration(name string) (float32, bool) {
	d, ok := h.clips[name]
	return d, ok
}

func (h *fakeHost) OnClipFinished(fn func()) {
	h.finished = fn
}

func (h *fakeHost) finish() {
	if h.finished != nil {
		h.finished()
	}
}

func (h *fakeHost) played() []string {
	names := make([]string, len(h.calls))
	for i, c := range h.calls {
		names[i] = c.name
	}
	return names
}

func (h *fakeHost) last() string {
	if len(h.calls) == 0 {
		return ""
	}
	return h.calls[len(h.calls)-1].name
}

var stockClips = []string{"idle", "idle_n", "idle_s", "greeting", "focus", "walk", "dance", "ask", "talking1", "talking2", "yawn"}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestController(t *testing.T, host AnimationHost, options ...ControllerBuilderOption) Controller {
	t.Helper()
	opts := append([]ControllerBuilderOption{
		WithLogger(quietLogger()),
		WithRand(rand.New(rand.NewPCG(1, 2))),
	}, options...)
	return NewController(host, opts...)
}

func startedController(t *testing.T, host *fakeHost, options ...ControllerBuilderOption) Controller {
	t.Helper()
	c := newTestController(t, host, options...)
	if err := c.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	return c
}

func TestStartPlaysRandomIdle(t *testing.T) {
	host := newFakeHost(stockClips...)
	c := startedController(t, host)

	if len(host.calls) != 1 {
		t.Fatalf("expected one cross-fade after Start, got %v", host.played())
	}
	if !c.Catalog().IsIdle(host.last()) {
		t.Errorf("Start played %q, want an idle clip", host.last())
	}
	if c.Mode() != ModeIdle {
		t.Errorf("Mode() = %v, want idle", c.Mode())
	}
	if !c.Started() {
		t.Error("Started() = false after Start")
	}

	if err := c.Start(); err != nil {
		t.Fatalf("second Start() error = %v", err)
	}
	if len(host.calls) != 1 {
		t.Errorf("second Start replayed: %v", host.played())
	}
}

func TestStartWithoutHost(t *testing.T) {
	c := newTestController(t, nil)
	if err := c.Start(); !errors.Is(err, ErrHostNotReady) {
		t.Fatalf("Start() error = %v, want ErrHostNotReady", err)
	}
	c.PlaySequence([]string{"greeting"})
	c.OnClipFinished()
	if got := c.State().PendingQueue; !slices.Equal(got, []string{"greeting"}) {
		t.Errorf("PendingQueue = %v", got)
	}
}

func TestGreetingAskScenario(t *testing.T) {
	host := newFakeHost(stockClips...)
	c := newTestController(t, host)

	// Start without playing so lastPlayed stays empty.
	c.PlaySequence([]string{"greeting", "ask"})
	if len(host.calls) != 0 {
		t.Fatalf("host driven before Start: %v", host.played())
	}
	if err := c.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if got := host.last(); got != "greeting" {
		t.Fatalf("first play = %q, want greeting", got)
	}
	if host.calls[0].duration != 0.2 {
		t.Errorf("greeting cross-fade = %v, want 0.2", host.calls[0].duration)
	}
	if c.Mode() != ModeSequenced {
		t.Errorf("Mode() = %v, want sequenced", c.Mode())
	}

	host.finish()
	if got := host.last(); got != "ask" {
		t.Fatalf("second play = %q, want ask", got)
	}
	if c.Mode() != ModeOneShot {
		t.Errorf("Mode() = %v, want one-shot", c.Mode())
	}

	host.finish()
	if got := host.last(); !c.Catalog().IsIdle(got) {
		t.Fatalf("third play = %q, want an idle clip", got)
	}
	if len(host.calls) != 3 {
		t.Errorf("plays = %v, want exactly three", host.played())
	}
}

func TestSequencePlaysEveryEntryInOrder(t *testing.T) {
	sequences := [][]string{
		{"greeting", "ask"},
		{"yawn"},
		{"dance", "talking1", "dance", "idle_n"},
		{"focus", "focus", "focus"},
		{"walk", "idle", "greeting", "talking2", "yawn"},
	}

	for _, seq := range sequences {
		host := newFakeHost(stockClips...)
		c := startedController(t, host)
		before := len(host.calls)

		c.PlaySequence(seq)
		for range len(seq) - 1 {
			host.finish()
		}

		if got := host.played()[before:]; !slices.Equal(got, seq) {
			t.Errorf("PlaySequence(%v) played %v", seq, got)
		}
		if q := c.State().PendingQueue; len(q) != 0 {
			t.Errorf("PlaySequence(%v) left queue %v", seq, q)
		}
	}
}

func TestExhaustedQueueReturnsToLoopOrIdle(t *testing.T) {
	for _, name := range stockClips {
		host := newFakeHost(stockClips...)
		c := startedController(t, host)
		cat := c.Catalog()

		c.PlayAnimation(name)
		for i := 0; i < 20; i++ {
			prev := host.last()
			host.finish()
			next := host.last()

			switch {
			case cat.IsIdle(next):
			case next == prev && cat.PolicyFor(prev).LoopForever:
			default:
				t.Fatalf("after %q finished controller played %q", prev, next)
			}
		}
	}
}

func TestIdleFinishStaysIdle(t *testing.T) {
	host := newFakeHost(stockClips...)
	c := startedController(t, host)

	c.PlayAnimation("idle")
	for i := 0; i < 50; i++ {
		host.finish()
		if got := host.last(); !c.Catalog().IsIdle(got) {
			t.Fatalf("iteration %d played %q, want idle", i, got)
		}
		if c.Mode() != ModeIdle {
			t.Fatalf("Mode() = %v, want idle", c.Mode())
		}
	}
}

func TestLoopingClipIsRetriggered(t *testing.T) {
	host := newFakeHost(stockClips...)
	c := startedController(t, host)

	c.PlayAnimation("dance")
	host.finish()
	host.finish()

	got := host.played()[len(host.calls)-3:]
	if !slices.Equal(got, []string{"dance", "dance", "dance"}) {
		t.Errorf("plays = %v, want dance re-triggered", got)
	}
}

func TestTalkingReturnsToIdle(t *testing.T) {
	host := newFakeHost(stockClips...)
	c := startedController(t, host)

	c.PlayAnimation("talking2")
	if c.Mode() != ModeTalking {
		t.Errorf("Mode() = %v, want talking", c.Mode())
	}
	host.finish()
	if got := host.last(); !c.Catalog().IsIdle(got) {
		t.Errorf("after talking played %q, want idle", got)
	}
}

func TestTalkingLoopPicksTalkingVariant(t *testing.T) {
	host := newFakeHost(stockClips...)
	cat := NewCatalog(
		WithPolicy("idle", true, 0.5),
		WithPolicy("talking1", true, 0.3),
		WithPolicy("talking2", true, 0.3),
		WithIdleAnimations("idle"),
		WithTalkingAnimations("talking1", "talking2"),
	)
	c := startedController(t, host, WithCatalog(cat))

	c.PlayAnimation("talking1")
	for i := 0; i < 20; i++ {
		host.finish()
		if got := host.last(); !cat.IsTalking(got) {
			t.Fatalf("iteration %d played %q, want a talking clip", i, got)
		}
	}
}

func TestPlayAnimationRestartsActiveClip(t *testing.T) {
	host := newFakeHost(stockClips...)
	c := startedController(t, host)

	c.PlayAnimation("yawn")
	c.PlayAnimation("yawn")

	got := host.played()[len(host.calls)-2:]
	if !slices.Equal(got, []string{"yawn", "yawn"}) {
		t.Errorf("plays = %v, want yawn issued twice", got)
	}
	st := c.State()
	if st.ActiveClipName != "yawn" || st.LastPlayedName != "yawn" {
		t.Errorf("State() = %+v", st)
	}
}

func TestUnknownAnimationFallsBackToIdle(t *testing.T) {
	host := newFakeHost(stockClips...)
	c := startedController(t, host)
	before := len(host.calls)

	c.PlayAnimation("nonexistent")

	if len(host.calls) != before+1 {
		t.Fatalf("plays = %v, want one fallback", host.played())
	}
	if got := host.last(); !c.Catalog().IsIdle(got) {
		t.Errorf("fallback played %q, want idle", got)
	}
	if slices.Contains(host.played(), "nonexistent") {
		t.Error("unknown clip reached the host")
	}
}

func TestUnknownIdleIsNoOp(t *testing.T) {
	host := newFakeHost("greeting")
	cat := NewCatalog(WithIdleAnimations("missing"))
	c := startedController(t, host, WithCatalog(cat))

	c.PlayAnimation("nonexistent")
	c.OnClipFinished()

	if len(host.calls) != 0 {
		t.Errorf("plays = %v, want none", host.played())
	}
	if st := c.State(); st.ActiveClipName != "" {
		t.Errorf("ActiveClipName = %q, want empty", st.ActiveClipName)
	}
}

func TestEmptySequenceRunsFallback(t *testing.T) {
	host := newFakeHost(stockClips...)
	c := startedController(t, host)

	c.PlayAnimation("dance")
	c.PlaySequence(nil)
	if got := host.last(); got != "dance" {
		t.Errorf("empty sequence after dance played %q, want dance", got)
	}

	c.PlayAnimation("greeting")
	c.PlaySequence([]string{})
	if got := host.last(); !c.Catalog().IsIdle(got) {
		t.Errorf("empty sequence after greeting played %q, want idle", got)
	}
}

func TestSupersededSequence(t *testing.T) {
	host := newFakeHost(stockClips...)
	c := startedController(t, host)

	c.PlaySequence([]string{"greeting", "ask", "yawn"})
	c.PlaySequence([]string{"focus"})
	if q := c.State().PendingQueue; len(q) != 0 {
		t.Fatalf("PendingQueue = %v, want empty", q)
	}

	host.finish()
	if got := host.last(); !c.Catalog().IsIdle(got) {
		t.Errorf("after superseding sequence played %q, want idle", got)
	}
	for _, name := range []string{"ask", "yawn"} {
		if slices.Contains(host.played(), name) {
			t.Errorf("dropped entry %q was played", name)
		}
	}
}

func TestPlayAnimationBeforeStartIsQueued(t *testing.T) {
	host := newFakeHost(stockClips...)
	c := newTestController(t, host)

	c.PlayAnimation("walk")
	host.finish()
	if len(host.calls) != 0 {
		t.Fatalf("host driven before Start: %v", host.played())
	}
	if got := c.State().PendingQueue; !slices.Equal(got, []string{"walk"}) {
		t.Fatalf("PendingQueue = %v", got)
	}

	if err := c.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if got := host.played(); !slices.Equal(got, []string{"walk"}) {
		t.Errorf("plays = %v, want [walk]", got)
	}
}

func TestPlayAnimationBeforeStartLogsDroppedSequence(t *testing.T) {
	host := newFakeHost(stockClips...)
	var buf bytes.Buffer
	c := newTestController(t, host, WithLogger(log.New(&buf, "", 0)))

	c.PlaySequence([]string{"greeting", "ask"})
	c.PlayAnimation("walk")

	if got := c.State().PendingQueue; !slices.Equal(got, []string{"walk"}) {
		t.Fatalf("PendingQueue = %v, want [walk]", got)
	}
	if !strings.Contains(buf.String(), "dropping [greeting ask]") {
		t.Errorf("log = %q, want the dropped sequence", buf.String())
	}
}

func TestStateIsACopy(t *testing.T) {
	host := newFakeHost(stockClips...)
	c := startedController(t, host)
	c.PlaySequence([]string{"greeting", "ask"})

	st := c.State()
	st.PendingQueue[0] = "yawn"
	host.finish()

	if got := host.last(); got != "ask" {
		t.Errorf("mutating State() changed the queue, played %q", got)
	}
}

func TestSetCatalog(t *testing.T) {
	host := newFakeHost(stockClips...)
	c := startedController(t, host)

	c.SetCatalog(nil)
	if c.Catalog() == nil {
		t.Fatal("SetCatalog(nil) cleared the catalog")
	}

	c.SetCatalog(NewCatalog(
		WithPolicy("yawn", true, 1.5),
		WithIdleAnimations("idle"),
	))
	c.PlayAnimation("yawn")
	if d := host.calls[len(host.calls)-1].duration; d != 1.5 {
		t.Errorf("cross-fade = %v, want 1.5 from the new catalog", d)
	}
	host.finish()
	if got := host.last(); got != "yawn" {
		t.Errorf("after finish played %q, want yawn to loop", got)
	}
}

func TestModeString(t *testing.T) {
	tests := map[Mode]string{
		ModeIdle:      "idle",
		ModeTalking:   "talking",
		ModeSequenced: "sequenced",
		ModeOneShot:   "one-shot",
		Mode(9):       "Mode(9)",
	}
	for m, want := range tests {
		if got := m.String(); got != want {
			t.Errorf("Mode(%d).String() = %q, want %q", int(m), got, want)
		}
	}
}
