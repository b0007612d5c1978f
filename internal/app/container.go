package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/doeshing/tmuxcast/internal/application/record"
	"github.com/doeshing/tmuxcast/internal/domain"
	"github.com/doeshing/tmuxcast/internal/infrastructure/asciinema"
	"github.com/doeshing/tmuxcast/internal/infrastructure/cleanup"
	"github.com/doeshing/tmuxcast/internal/infrastructure/conf"
	"github.com/doeshing/tmuxcast/internal/infrastructure/config"
	"github.com/doeshing/tmuxcast/internal/infrastructure/encoder"
	"github.com/doeshing/tmuxcast/internal/infrastructure/paths"
	"github.com/doeshing/tmuxcast/internal/infrastructure/recorder"
	"github.com/doeshing/tmuxcast/internal/infrastructure/report"
	"github.com/doeshing/tmuxcast/internal/infrastructure/tmux"
	"github.com/doeshing/tmuxcast/internal/pkg/logger"
	"github.com/doeshing/tmuxcast/internal/ports"
)

// RecordOptions carries everything the CLI knows about one run.
type RecordOptions struct {
	ProjectName    string
	SessionName    string
	Quiet          bool
	KeepScratch    bool
	Video          bool
	VideoQuality   string
	VideoFramerate int
	Verbose        bool
}

// Container wires up the record service with infrastructure adapters.
type Container struct {
	RecordService *record.Service
	Config        domain.Config
	SessionPaths  domain.SessionPaths
	Logger        ports.Logger
}

// BuildContainer constructs the dependency graph for one recording session.
func BuildContainer(ctx context.Context, opts RecordOptions) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.New(opts.Verbose)

	sessionPaths, err := paths.NewSession(cfg, opts.ProjectName, time.Now())
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.Paths.ScratchRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create scratch root: %w", err)
	}
	scratchDir, err := os.MkdirTemp(cfg.Paths.ScratchRoot, "session-")
	if err != nil {
		return nil, fmt.Errorf("create scratch directory: %w", err)
	}

	sessionName := opts.SessionName
	if sessionName == "" {
		sessionName = paths.SessionName(sessionPaths)
	}

	confgen := conf.NewGenerator(cfg, sessionPaths, scratchDir, log)
	pollInterval := time.Duration(cfg.Recording.PollIntervalSeconds) * time.Second
	sessions := tmux.NewManager(sessionName, pollInterval, log)
	caster := asciinema.NewCLICaster(sessionPaths.AsciinemaFile)

	terminal := recorder.NewTmuxAsciinemaRecorder(cfg, sessionPaths, confgen, sessions, caster, log)

	composite := recorder.NewComposite(log)
	composite.Add(terminal)

	reporters := []record.NamedReporter{
		{Name: terminal.Name(), Reporter: report.NewTmuxSessionReporter(nil)},
	}
	tools := []string{"tmux", "zsh", "asciinema"}

	if opts.Video {
		video := recorder.NewVideoRecorder(
			cfg, sessionPaths,
			opts.VideoQuality, opts.VideoFramerate,
			func() ports.Encoder { return encoder.NewSupervisor(log) },
			log,
		)
		composite.Add(video)
		reporters = append(reporters, record.NamedReporter{
			Name: video.Name(), Reporter: report.NewVideoReporter(nil),
		})
		tools = append(tools, "ffmpeg")
	}

	svc := &record.Service{
		Recorder:      composite,
		Reporters:     reporters,
		Cleaner:       cleanup.NewScratchCleaner(scratchDir),
		Logger:        log,
		Quiet:         opts.Quiet,
		KeepScratch:   opts.KeepScratch,
		RequiredTools: tools,
	}

	return &Container{
		RecordService: svc,
		Config:        cfg,
		SessionPaths:  sessionPaths,
		Logger:        log,
	}, nil
}
