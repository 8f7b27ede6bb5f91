package chat

import (
	"math/rand/v2"
	"path/filepath"
	"slices"
	"testing"
)

func knownSet(names ...string) func(string) bool {
	return func(n string) bool { return slices.Contains(names, n) }
}

func talkingSet(names ...string) func() []string {
	return func() []string { return names }
}

func newTestRouter(options ...RouterBuilderOption) Router {
	opts := append([]RouterBuilderOption{
		WithRand(rand.New(rand.NewPCG(5, 6))),
		WithRouterLogger(quietLogger()),
	}, options...)
	return NewRouter(knownSet("dance", "yawn", "talking1", "talking2"), talkingSet("talking1", "talking2"), opts...)
}

func TestRouteClipName(t *testing.T) {
	r := newTestRouter()
	act := r.Route(Reply{Response: " dance\n"})
	if !slices.Equal(act.Sequence, []string{"dance"}) || act.Text != "" {
		t.Errorf("Route(dance) = %+v", act)
	}
}

func TestRouteText(t *testing.T) {
	r := newTestRouter()
	act := r.Route(Reply{Response: "Nice to meet you!"})
	if act.Text != "Nice to meet you!" {
		t.Errorf("Text = %q", act.Text)
	}
	if len(act.Sequence) != 1 || (act.Sequence[0] != "talking1" && act.Sequence[0] != "talking2") {
		t.Errorf("Sequence = %v, want one talking clip", act.Sequence)
	}
}

func TestRouteTextWithoutTalkingSet(t *testing.T) {
	r := NewRouter(knownSet(), talkingSet(), WithRouterLogger(quietLogger()))
	act := r.Route(Reply{Response: "hello"})
	if act.Text != "hello" || len(act.Sequence) != 0 {
		t.Errorf("Route() = %+v", act)
	}
}

func TestRouteEmpty(t *testing.T) {
	r := newTestRouter()
	if act := r.Route(Reply{Response: "  "}); len(act.Sequence) != 0 || act.Text != "" {
		t.Errorf("Route(empty) = %+v", act)
	}
}

func TestRouteReactions(t *testing.T) {
	reactions, err := NewReactions([]byte(`
text := import("text")
if text.contains(text.to_lower(response), "dance") {
	sequence = ["dance", "yawn"]
	say = "Watch this!"
}
`))
	if err != nil {
		t.Fatal(err)
	}
	r := newTestRouter(WithReactions(reactions))

	act := r.Route(Reply{Response: "Let's DANCE"})
	if !slices.Equal(act.Sequence, []string{"dance", "yawn"}) || act.Text != "Watch this!" {
		t.Errorf("scripted Route() = %+v", act)
	}

	act = r.Route(Reply{Response: "yawn"})
	if !slices.Equal(act.Sequence, []string{"yawn"}) {
		t.Errorf("fallthrough Route() = %+v", act)
	}

	r.SetReactions(nil)
	act = r.Route(Reply{Response: "Let's DANCE"})
	if act.Text != "Let's DANCE" {
		t.Errorf("Route() without reactions = %+v", act)
	}
}

func TestRouteReactionsErrorFallsBack(t *testing.T) {
	reactions, err := NewReactions([]byte(`n := 0; sequence = [10 / n]`))
	if err != nil {
		t.Fatal(err)
	}
	r := newTestRouter(WithReactions(reactions))
	act := r.Route(Reply{Response: "hi there"})
	if act.Text != "hi there" || len(act.Sequence) != 1 {
		t.Errorf("Route() = %+v, want default routing", act)
	}
}

func TestRouteClipNameBeforeReactions(t *testing.T) {
	reactions, err := LoadReactions(filepath.Join("..", "..", "assets", "reactions.tengo"))
	if err != nil {
		t.Fatal(err)
	}
	talking := []string{"talking1", "talking2"}
	r := NewRouter(knownSet("dance", "ask", "yawn", "talking1", "talking2"), talkingSet(talking...),
		WithReactions(reactions),
		WithRand(rand.New(rand.NewPCG(5, 6))),
		WithRouterLogger(quietLogger()),
	)

	act := r.Route(Reply{Response: "dance"})
	if !slices.Equal(act.Sequence, []string{"dance"}) || act.Text != "" {
		t.Errorf("Route(dance) = %+v, want the clip without text", act)
	}

	act = r.Route(Reply{Response: "Want to dance with me"})
	if !slices.Equal(act.Sequence, []string{"dance"}) || act.Text != "Want to dance with me" {
		t.Errorf("scripted dance Route() = %+v", act)
	}

	seen := make(map[string]bool)
	for range 40 {
		act = r.Route(Reply{Response: "How are you?"})
		if len(act.Sequence) != 2 || act.Sequence[0] != "ask" || !slices.Contains(talking, act.Sequence[1]) {
			t.Fatalf("scripted question Route() = %+v", act)
		}
		seen[act.Sequence[1]] = true
	}
	if len(seen) != len(talking) {
		t.Errorf("talking clips after questions = %v, want every variant", seen)
	}
}
