package cli

import (
	"github.com/spf13/cobra"

	"github.com/doeshing/tmuxcast/internal/app"
	"github.com/doeshing/tmuxcast/internal/domain"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. Recording is the root action:
// `tmuxcast <project>` starts a session immediately.
func NewRootCmd(opts Options) *cobra.Command {
	var (
		sessionName    string
		keepTmp        bool
		quiet          bool
		video          bool
		videoQuality   string
		videoFramerate int
	)

	root := &cobra.Command{
		Use:   "tmuxcast <project>",
		Short: "Record a tmux session with asciinema, zsh history logging, and optional screen video",
		Long: "tmuxcast records one terminal work session as a correlated artifact set:\n" +
			"an asciinema cast of a tmux session, the session's zsh history, per-pane\n" +
			"tmux logs, and optionally a full-screen video, all under one timestamped\n" +
			"directory tree.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := app.BuildContainer(cmd.Context(), app.RecordOptions{
				ProjectName:    args[0],
				SessionName:    sessionName,
				Quiet:          quiet,
				KeepScratch:    keepTmp,
				Video:          video,
				VideoQuality:   videoQuality,
				VideoFramerate: videoFramerate,
				Verbose:        opts.Verbose,
			})
			if err != nil {
				return err
			}
			_, err = container.RecordService.Run(cmd.Context())
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Flags().StringVar(&sessionName, "session", "", "tmux session name (default: <project>_<date>_<time>)")
	root.Flags().BoolVar(&keepTmp, "keep-tmp", false, "keep the scratch directory after the run")
	root.Flags().BoolVarP(&quiet, "quiet", "q", false, "minimize output messages")
	root.Flags().BoolVar(&video, "video", false, "enable full-screen video recording")
	root.Flags().StringVar(&videoQuality, "video-quality", "medium", "video recording quality (low|medium|high)")
	root.Flags().IntVar(&videoFramerate, "video-framerate", domain.DefaultFramerate, "video recording framerate")

	return root
}
