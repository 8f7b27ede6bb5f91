package chat

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// reactionTimeout bounds a single script run.
const reactionTimeout = 100 * time.Millisecond

// reactions is the implementation of the Reactions interface.
type reactions struct {
	mu       *sync.Mutex
	compiled *tengo.Compiled
}

// Reactions is a tengo script that maps a chat reply to an animation sequence.
//
// The script sees these globals:
//
//	response  the trimmed reply text
//	talking   the talking clip names
//	is_clip   a function reporting whether a name is a playable clip
//
// and may assign:
//
//	sequence  an array of clip names to play
//	say       the text to show; defaults to nothing
//
// A run that leaves both outputs empty defers to the default routing.
type Reactions interface {
	// React runs the script for one reply.
	//
	// Parameters:
	//   - response: the reply text
	//   - talking: the talking clip names
	//   - known: reports whether a name is a playable clip; may be nil
	//
	// Returns:
	//   - Action: the scripted action
	//   - bool: false if the script produced nothing
	//   - error: a runtime error from the script
	React(response string, talking []string, known func(string) bool) (Action, bool, error)

	// Reload compiles new source and swaps it in. The old script stays active if compilation fails.
	//
	// Parameters:
	//   - src: the tengo source
	//
	// Returns:
	//   - error: the compile error, if any
	Reload(src []byte) error
}

var _ Reactions = &reactions{}

// NewReactions compiles a reactions script.
//
// Parameters:
//   - src: the tengo source
//
// Returns:
//   - Reactions: the compiled script
//   - error: the compile error, if any
func NewReactions(src []byte) (Reactions, error) {
	r := &reactions{mu: &sync.Mutex{}}
	if err := r.Reload(src); err != nil {
		return nil, err
	}
	return r, nil
}

// LoadReactions reads and compiles a reactions script file.
func LoadReactions(path string) (Reactions, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reactions %q: %w", path, err)
	}
	r, err := NewReactions(src)
	if err != nil {
		return nil, fmt.Errorf("reactions %q: %w", path, err)
	}
	return r, nil
}

func (r *reactions) Reload(src []byte) error {
	script := tengo.NewScript(src)
	_ = script.Add("response", "")
	_ = script.Add("talking", []any{})
	_ = script.Add("is_clip", isClipFunc(nil))
	_ = script.Add("sequence", []any{})
	_ = script.Add("say", "")
	script.SetImports(stdlib.GetModuleMap("text", "rand", "math", "fmt"))

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("failed to compile reactions: %w", err)
	}

	r.mu.Lock()
	r.compiled = compiled
	r.mu.Unlock()
	return nil
}

func (r *reactions) React(response string, talking []string, known func(string) bool) (Action, bool, error) {
	r.mu.Lock()
	c := r.compiled.Clone()
	r.mu.Unlock()

	names := make([]any, len(talking))
	for i, n := range talking {
		names[i] = n
	}
	if err := c.Set("response", response); err != nil {
		return Action{}, false, err
	}
	if err := c.Set("talking", names); err != nil {
		return Action{}, false, err
	}
	if err := c.Set("is_clip", isClipFunc(known)); err != nil {
		return Action{}, false, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), reactionTimeout)
	defer cancel()
	if err := c.RunContext(ctx); err != nil {
		return Action{}, false, fmt.Errorf("reactions run: %w", err)
	}

	var act Action
	for _, v := range c.Get("sequence").Array() {
		if s, ok := v.(string); ok && s != "" {
			act.Sequence = append(act.Sequence, s)
		}
	}
	if v := c.Get("say"); !v.IsUndefined() {
		act.Text = v.String()
	}

	return act, len(act.Sequence) > 0 || act.Text != "", nil
}

func isClipFunc(known func(string) bool) *tengo.UserFunction {
	return &tengo.UserFunction{Name: "is_clip", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		name, ok := tengo.ToString(args[0])
		if !ok || known == nil || !known(name) {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}
}
