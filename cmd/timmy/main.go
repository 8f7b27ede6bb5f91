package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Carmen-Shannon/timmy/engine"
	"github.com/Carmen-Shannon/timmy/engine/animation"
	"github.com/Carmen-Shannon/timmy/engine/character"
	"github.com/Carmen-Shannon/timmy/engine/chat"
	"github.com/Carmen-Shannon/timmy/engine/config"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	mode := flag.String("mode", "", "run mode: desktop or bridge (overrides the config file)")
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)

	cfg, err := loadConfig(*configPath, *mode)
	if err != nil {
		logger.Fatalf("timmy: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Mode {
	case config.ModeBridge:
		err = runBridge(ctx, cfg, logger)
	default:
		err = runDesktop(ctx, cfg, logger)
	}
	if err != nil {
		logger.Fatalf("timmy: %v", err)
	}
}

func loadConfig(path, mode string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if mode != "" {
		cfg.Mode = mode
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv()
	return cfg, nil
}

func newEngine(cfg *config.Config, logger *log.Logger, options ...engine.EngineBuilderOption) engine.Engine {
	return engine.NewEngine(append([]engine.EngineBuilderOption{
		engine.WithTickRate(cfg.Engine.TickRate),
		engine.WithTimeScale(cfg.Engine.TimeScale),
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithRenderFrameLimit(cfg.Engine.RenderFrameLimit),
		engine.WithLogger(logger),
	}, options...)...)
}

// newCharacter builds the controller, chat stack and character around host.
// Chat completions and reloads are posted to the engine loop.
func newCharacter(cfg *config.Config, host animation.AnimationHost, eng engine.Engine, logger *log.Logger, options ...character.CharacterBuilderOption) (character.Character, error) {
	catalog, err := cfg.BuildCatalog()
	if err != nil {
		return nil, err
	}
	ctrl := animation.NewController(host,
		animation.WithCatalog(catalog),
		animation.WithLogger(logger),
	)

	transcriptOptions := []chat.TranscriptBuilderOption{chat.WithCapacity(cfg.Chat.TranscriptSize)}
	if store, err := chat.OpenStore(cfg.Chat.AppName); err != nil {
		logger.Printf("timmy: transcript will not be saved: %v", err)
	} else {
		transcriptOptions = append(transcriptOptions, chat.WithStore(store))
	}
	transcript, err := chat.NewTranscript(transcriptOptions...)
	if err != nil {
		logger.Printf("timmy: %v", err)
	}

	opts := []character.CharacterBuilderOption{
		character.WithTranscript(transcript),
		character.WithClickSequence(cfg.Chat.ClickSequence...),
		character.WithWaitAnimation(cfg.Chat.WaitAnimation),
		character.WithReloadPaths(cfg.Catalog.Path, cfg.Chat.Reactions),
		character.WithPost(eng.Post),
		character.WithLogger(logger),
	}

	if cfg.Chat.Endpoint != "" {
		opts = append(opts, character.WithClient(chat.NewClient(
			chat.WithEndpoint(cfg.Chat.Endpoint),
			chat.WithAPIKey(cfg.Chat.APIKey),
			chat.WithTimeout(cfg.Chat.Timeout),
			chat.WithWorkers(cfg.Chat.Workers),
			chat.WithLogger(logger),
		)))
	} else {
		logger.Printf("timmy: no chat endpoint configured")
	}

	if cfg.Chat.Reactions != "" {
		reactions, err := chat.LoadReactions(cfg.Chat.Reactions)
		if err != nil {
			return nil, err
		}
		opts = append(opts, character.WithReactions(reactions))
	}

	return character.NewCharacter(ctrl, host, append(opts, options...)...), nil
}

// watch posts a Reload for every change to the catalog or reactions file until the watcher closes.
// Returns nil when nothing is watched.
func watch(cfg *config.Config, ch character.Character, eng engine.Engine, logger *log.Logger) *config.Watcher {
	files := cfg.WatchedFiles()
	if len(files) == 0 {
		return nil
	}
	w, err := config.NewWatcher(files...)
	if err != nil {
		logger.Printf("timmy: hot reload disabled: %v", err)
		return nil
	}

	go func() {
		for name := range w.Events {
			eng.Post(func() {
				if err := ch.Reload(name); err != nil {
					logger.Printf("timmy: reload: %v", err)
				}
			})
		}
	}()
	go func() {
		for err := range w.Errors {
			logger.Printf("timmy: watch: %v", err)
		}
	}()
	return w
}
