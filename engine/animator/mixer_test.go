package animator

import (
	"errors"
	"io"
	"log"
	"math/rand/v2"
	"testing"

	"github.com/Carmen-Shannon/timmy/engine/animation"
	"github.com/Carmen-Shannon/timmy/engine/model"
)

func newTestMixer() Mixer {
	return NewMixer(WithModel(model.NewModel(
		model.WithName("test"),
		model.WithClip("a", 1),
		model.WithClip("b", 2),
		model.WithClip("short", 0.5),
	)))
}

func TestMixerUnknownClip(t *testing.T) {
	m := newTestMixer()
	if err := m.CrossFadeTo("nope", 0.5); !errors.Is(err, animation.ErrUnknownAnimation) {
		t.Fatalf("CrossFadeTo(unknown) error = %v, want ErrUnknownAnimation", err)
	}
	if m.HasClip("nope") {
		t.Error("HasClip(unknown) = true")
	}
	if _, ok := m.Duration("nope"); ok {
		t.Error("Duration(unknown) ok = true")
	}
	if d, ok := m.Duration("b"); !ok || d != 2 {
		t.Errorf("Duration(b) = %v, %v", d, ok)
	}
}

func TestMixerRestartResetsTime(t *testing.T) {
	m := newTestMixer()
	if err := m.CrossFadeTo("b", 0); err != nil {
		t.Fatal(err)
	}
	m.Update(0.75)
	if got := m.ClipTime("b"); got != 0.75 {
		t.Fatalf("ClipTime(b) = %v, want 0.75", got)
	}

	if err := m.CrossFadeTo("b", 0.5); err != nil {
		t.Fatal(err)
	}
	if got := m.ClipTime("b"); got != 0 {
		t.Errorf("ClipTime(b) after restart = %v, want 0", got)
	}
	if m.Active() != "b" {
		t.Errorf("Active() = %q", m.Active())
	}
}

func TestMixerCrossFadeWeights(t *testing.T) {
	m := newTestMixer()
	if err := m.CrossFadeTo("a", 0); err != nil {
		t.Fatal(err)
	}
	if w := m.Weight("a"); w != 1 {
		t.Fatalf("Weight(a) = %v, want 1 after an instant fade", w)
	}

	if err := m.CrossFadeTo("b", 0.5); err != nil {
		t.Fatal(err)
	}
	if !m.IsFading("a") || !m.IsFading("b") {
		t.Fatal("expected both clips to be fading")
	}

	m.Update(0.25)
	if wa, wb := m.Weight("a"), m.Weight("b"); wa != 0.5 || wb != 0.5 {
		t.Errorf("mid-fade weights = %v, %v, want 0.5, 0.5", wa, wb)
	}
	if got := m.ClipTime("a"); got != 0.25 {
		t.Errorf("outgoing clip time = %v, want it to keep advancing", got)
	}

	m.Update(0.25)
	if wa, wb := m.Weight("a"), m.Weight("b"); wa != 0 || wb != 1 {
		t.Errorf("final weights = %v, %v, want 0, 1", wa, wb)
	}
	if m.IsFading("a") || m.IsFading("b") {
		t.Error("fade still in progress after its duration")
	}

	weights := m.Weights()
	if len(weights) != 1 || weights["b"] != 1 {
		t.Errorf("Weights() = %v", weights)
	}

	m.Update(0.25)
	if got := m.ClipTime("a"); got != 0.5 {
		t.Errorf("faded-out clip time = %v, want it stopped at 0.5", got)
	}
}

func TestMixerFinishedOncePerPlaythrough(t *testing.T) {
	m := newTestMixer()
	count := 0
	m.OnClipFinished(func() { count++ })

	if err := m.CrossFadeTo("a", 0.5); err != nil {
		t.Fatal(err)
	}
	m.Update(0.75)
	if count != 0 {
		t.Fatalf("finished fired early")
	}
	m.Update(0.5)
	m.Update(0.5)
	m.Update(3)
	if count != 1 {
		t.Fatalf("finished fired %d times, want 1", count)
	}
	if got := m.ClipTime("a"); got != 1 {
		t.Errorf("ClipTime(a) = %v, want clamped at 1", got)
	}
	if w := m.Weight("a"); w != 1 {
		t.Errorf("Weight(a) = %v, want the final pose held", w)
	}

	if err := m.CrossFadeTo("a", 0.5); err != nil {
		t.Fatal(err)
	}
	m.Update(1)
	if count != 2 {
		t.Errorf("finished fired %d times after restart, want 2", count)
	}
}

func TestMixerFinishedOnlyForActiveClip(t *testing.T) {
	m := newTestMixer()
	count := 0
	m.OnClipFinished(func() { count++ })

	if err := m.CrossFadeTo("short", 0); err != nil {
		t.Fatal(err)
	}
	if err := m.CrossFadeTo("b", 1); err != nil {
		t.Fatal(err)
	}
	m.Update(0.75)
	if count != 0 {
		t.Errorf("outgoing clip raised finished")
	}
}

func TestMixerCallbackMayReenter(t *testing.T) {
	m := newTestMixer()
	m.OnClipFinished(func() {
		if err := m.CrossFadeTo("b", 0.25); err != nil {
			t.Errorf("CrossFadeTo in callback: %v", err)
		}
	})

	if err := m.CrossFadeTo("short", 0); err != nil {
		t.Fatal(err)
	}
	m.Update(0.5)
	if m.Active() != "b" {
		t.Errorf("Active() = %q, want b", m.Active())
	}
}

func TestMixerSetModelResets(t *testing.T) {
	m := newTestMixer()
	if err := m.CrossFadeTo("a", 0); err != nil {
		t.Fatal(err)
	}

	m.SetModel(model.NewModel(model.WithClip("x", 1), model.WithClip("x", 2), model.WithClip("y", 1)))
	if m.Active() != "" {
		t.Errorf("Active() = %q after SetModel", m.Active())
	}
	if m.HasClip("a") {
		t.Error("old clip survived SetModel")
	}
	names := m.ClipNames()
	if len(names) != 2 || names[0] != "x" || names[1] != "y" {
		t.Errorf("ClipNames() = %v", names)
	}
	if d, _ := m.Duration("x"); d != 1 {
		t.Errorf("Duration(x) = %v, want the first duplicate", d)
	}

	m.SetModel(nil)
	if m.Model() != nil || len(m.ClipNames()) != 0 {
		t.Error("SetModel(nil) kept clips")
	}
}

func TestMixerNegativeDelta(t *testing.T) {
	m := newTestMixer()
	if err := m.CrossFadeTo("a", 0); err != nil {
		t.Fatal(err)
	}
	m.Update(-1)
	if got := m.ClipTime("a"); got != 0 {
		t.Errorf("ClipTime(a) = %v, want 0", got)
	}
}

func TestMixerDrivesController(t *testing.T) {
	m := NewMixer(WithModel(model.NewModel(
		model.WithClip("idle", 2),
		model.WithClip("idle_n", 2),
		model.WithClip("idle_s", 2),
		model.WithClip("greeting", 1),
		model.WithClip("ask", 1),
	)))
	c := animation.NewController(m,
		animation.WithLogger(log.New(io.Discard, "", 0)),
		animation.WithRand(rand.New(rand.NewPCG(3, 4))),
	)
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}

	c.PlaySequence([]string{"greeting", "ask"})
	var seen []string
	for i := 0; i < 40; i++ {
		name := m.Active()
		if len(seen) == 0 || seen[len(seen)-1] != name {
			seen = append(seen, name)
		}
		m.Update(0.125)
	}

	if len(seen) < 3 || seen[0] != "greeting" || seen[1] != "ask" {
		t.Fatalf("active sequence = %v", seen)
	}
	if !c.Catalog().IsIdle(seen[2]) {
		t.Errorf("after ask played %q, want idle", seen[2])
	}
	if got := m.ClipTime(m.Active()); got > 2 {
		t.Errorf("ClipTime = %v beyond clip duration", got)
	}
}
