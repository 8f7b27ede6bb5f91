package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Carmen-Shannon/timmy/engine/bridge"
	"github.com/Carmen-Shannon/timmy/engine/character"
	"github.com/Carmen-Shannon/timmy/engine/config"
)

// runBridge serves the browser renderer and drives it over a websocket.
// The engine runs headless; the browser owns the clip timeline.
func runBridge(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	// ── Engine ──────────────────────────────────────────────────────
	eng := newEngine(cfg, logger)

	// ── Host + Character ────────────────────────────────────────────
	var ch character.Character
	host := bridge.NewHost(bridge.HandlerConfig{
		Logger: logger,
		Post:   eng.Post,
		OnReady: func() {
			if err := ch.Start(); err != nil {
				logger.Printf("timmy: %v", err)
			}
		},
		OnClick: func() { ch.Click() },
		OnChat:  func(text string) { ch.Send(text) },
		OnPlay:  func(name string) { ch.PlayClip(name) },
	})

	var err error
	ch, err = newCharacter(cfg, host, eng, logger,
		character.WithClipNames(host.ClipNames),
		character.WithSay(func(text string) {
			if err := host.Say(text); err != nil {
				logger.Printf("timmy: say: %v", err)
			}
		}),
	)
	if err != nil {
		return err
	}
	defer ch.Close()

	if w := watch(cfg, ch, eng, logger); w != nil {
		defer w.Close()
	}

	// ── Server ──────────────────────────────────────────────────────
	srv := bridge.NewServer(cfg.Bridge.Listen, cfg.Bridge.StaticDir, host)
	serveErr := make(chan error, 1)
	go func() {
		logger.Printf("timmy: serving on http://%s", cfg.Bridge.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		eng.Quit()
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	eng.Run()

	select {
	case err := <-serveErr:
		return err
	default:
		return nil
	}
}
