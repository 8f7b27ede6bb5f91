package main

import (
	"context"
	"log"
	"maps"
	"sync/atomic"

	"github.com/Carmen-Shannon/timmy/common"
	"github.com/Carmen-Shannon/timmy/engine"
	"github.com/Carmen-Shannon/timmy/engine/animator"
	"github.com/Carmen-Shannon/timmy/engine/character"
	"github.com/Carmen-Shannon/timmy/engine/config"
	"github.com/Carmen-Shannon/timmy/engine/loader"
	"github.com/Carmen-Shannon/timmy/engine/renderer"
	"github.com/Carmen-Shannon/timmy/engine/window"
)

// runDesktop plays the model in a native window. The mixer runs in process.
func runDesktop(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	// ── Model ───────────────────────────────────────────────────────
	mdl, err := loader.NewLoader(loader.BackendTypeGLTF).Load(cfg.Model.Path)
	if err != nil {
		return err
	}
	logger.Printf("timmy: loaded %q with clips %v", mdl.Name(), mdl.AnimationNames())
	mixer := animator.NewMixer(animator.WithModel(mdl))

	// ── Engine + Window ─────────────────────────────────────────────
	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	defer win.Close()

	eng := newEngine(cfg, logger, engine.WithUpdater(mixer), engine.WithWindow(win))

	// ── Renderer ────────────────────────────────────────────────────
	palette := renderer.DefaultPalette()
	if cfg.Stage.Background != nil {
		palette.Background = *cfg.Stage.Background
	}
	maps.Copy(palette.Clips, cfg.Stage.Clips)

	r := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		win,
		renderer.WithPresentMode(renderer.PresentModeVSync),
		renderer.WithForceSoftwareRenderer(cfg.Engine.SoftwareRenderer),
		renderer.WithPalette(palette),
		renderer.WithWeights(mixer.Weights),
	)
	defer r.Release()
	win.SetResizeCallback(r.Resize)
	eng.SetRenderCallback(func(deltaTime float32) {
		_ = r.Render()
	})

	// ── Character ───────────────────────────────────────────────────
	// The title bar shows the transcript. It is composed on the engine loop and applied on the window thread.
	var title atomic.Value
	title.Store(cfg.Window.Title)
	prompt := character.NewPrompt(character.DefaultPromptLimit)

	var ch character.Character
	refreshTitle := func() {
		title.Store(character.Title(cfg.Window.Title, ch.Transcript().Entries(), prompt.Text()))
	}

	ch, err = newCharacter(cfg, mixer, eng, logger,
		character.WithClipNames(mixer.ClipNames),
		character.WithSay(func(string) { refreshTitle() }),
	)
	if err != nil {
		return err
	}
	defer ch.Close()

	eng.Post(func() {
		if err := ch.Start(); err != nil {
			logger.Printf("timmy: %v", err)
		}
		refreshTitle()
	})

	// ── Input ───────────────────────────────────────────────────────
	win.SetClickCallback(func(x, y int32) {
		eng.Post(ch.Click)
	})
	win.SetCharCallback(func(c rune) {
		eng.Post(func() {
			prompt.Type(c)
			refreshTitle()
		})
	})
	win.SetKeyDownCallback(func(keyCode uint32) {
		switch keyCode {
		case common.KeyEnter:
			eng.Post(func() {
				ch.Send(prompt.Submit())
				refreshTitle()
			})
		case common.KeyBackspace:
			eng.Post(func() {
				prompt.Backspace()
				refreshTitle()
			})
		case common.KeyF1:
			eng.Post(func() {
				logger.Printf("timmy: clips %v, state %+v, mode %s", mixer.ClipNames(), ch.Controller().State(), ch.Controller().Mode())
			})
		default:
			// Number keys only play clips while nothing is being typed.
			if index, ok := common.ClipKeyIndex(keyCode); ok {
				eng.Post(func() {
					if prompt.Text() == "" {
						ch.PlayClipIndex(index)
					}
				})
			}
		}
	})

	shown := cfg.Window.Title
	win.SetUpdateCallback(func() {
		if t := title.Load().(string); t != shown {
			shown = t
			win.SetTitle(t)
		}
		if ctx.Err() != nil {
			win.RequestClose()
		}
	})

	if w := watch(cfg, ch, eng, logger); w != nil {
		defer w.Close()
	}

	eng.Run()
	return nil
}
