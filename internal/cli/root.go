package cli

import (
	"errors"
	"fmt"
	"io"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ytget/youtube-dl-gui/internal/config"
	"github.com/ytget/youtube-dl-gui/internal/download"
	"github.com/ytget/youtube-dl-gui/internal/i18n"
	"github.com/ytget/youtube-dl-gui/internal/lite"
	"github.com/ytget/youtube-dl-gui/internal/logging"
	"github.com/ytget/youtube-dl-gui/internal/session"
	"github.com/ytget/youtube-dl-gui/internal/ui"
)

const (
	AppID   = "com.ytget.youtube-dl-gui"
	AppName = "youtube-dl-gui"
)

// Frontends selectable with --toolkit
const (
	ToolkitWidget = "widget"
	ToolkitLite   = "lite"
)

// ErrMissingDependencies is returned when the downloader or ffmpeg is not installed
var ErrMissingDependencies = errors.New("missing dependencies")

// serviceFactory is swapped in tests
var serviceFactory = session.ServiceFactory

type rootOptions struct {
	toolkit    string
	logLevel   string
	logFile    string
	configPath string

	logger zerolog.Logger
	closer io.Closer
}

// closeLog closes the log file once; later calls are no-ops
func (o *rootOptions) closeLog() error {
	if o.closer == nil {
		return nil
	}
	err := o.closer.Close()
	o.closer = nil
	return err
}

// NewRootCommand builds the command tree
func NewRootCommand(version string) *cobra.Command {
	cmd, _ := newRootCommand(version)
	return cmd
}

func newRootCommand(version string) (*cobra.Command, *rootOptions) {
	opts := &rootOptions{logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:           AppName,
		Short:         "Desktop front end for youtube-dl and yt-dlp",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, closer, err := logging.Setup(logging.Config{
				Level:    opts.logLevel,
				Console:  cmd.ErrOrStderr(),
				FilePath: opts.logFile,
			})
			if err != nil {
				return err
			}
			opts.logger = logger
			opts.closer = closer
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return opts.closeLog()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch opts.toolkit {
			case ToolkitWidget:
				return runWidget(cmd, opts, version)
			case ToolkitLite:
				return runLite(cmd, opts)
			default:
				return fmt.Errorf("unknown toolkit %q (want %s or %s)", opts.toolkit, ToolkitWidget, ToolkitLite)
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.logLevel, "log-level", logging.DefaultLevel, "log level (trace, debug, info, warn, error)")
	flags.StringVar(&opts.logFile, "log-file", "", "also write JSON logs to this file")
	flags.StringVar(&opts.configPath, "config", "", "preferences file used by the lite window and the CLI (default: XDG config dir)")
	cmd.Flags().StringVar(&opts.toolkit, "toolkit", ToolkitWidget, "window toolkit: widget (Fyne) or lite (giu)")

	cmd.AddCommand(newGetCommand(opts))
	cmd.AddCommand(newDoctorCommand(opts))

	return cmd, opts
}

// Execute runs the command line and returns the process exit code
func Execute(version string) int {
	cmd, opts := newRootCommand(version)
	if err := execute(cmd, opts); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return 1
	}
	return 0
}

// execute runs cmd and closes the log file even when RunE failed,
// since cobra skips the post-run hooks then.
func execute(cmd *cobra.Command, opts *rootOptions) error {
	err := cmd.Execute()
	if closeErr := opts.closeLog(); err == nil {
		err = closeErr
	}
	return err
}

// openStore loads the JSON preferences file
func openStore(opts *rootOptions) (*config.FileStore, error) {
	path := opts.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPreferencesPath(); err != nil {
			return nil, err
		}
	}
	return config.NewFileStore(path, opts.logger)
}

// checkDependencies reports missing tools on stderr and in the log
func checkDependencies(cmd *cobra.Command, opts *rootOptions, settings *config.Settings) string {
	missing := download.DetectMissing(settings.GetExecutable(), settings.GetFFmpegLocation())
	if len(missing) == 0 {
		return ""
	}

	message := download.MissingMessage(missing)
	opts.logger.Error().Strs("missing", missing).Msg("dependencies not found")
	fmt.Fprintln(cmd.ErrOrStderr(), message)
	return message
}

func newLocalization(settings *config.Settings) *i18n.Localization {
	localization := i18n.NewLocalization()
	localization.SetLanguage(settings.GetLanguage())
	return localization
}

func runWidget(cmd *cobra.Command, opts *rootOptions, version string) error {
	a := app.NewWithID(AppID)
	settings := config.NewSettings(a.Preferences())
	a.Settings().SetTheme(ui.NewMaterialTheme(settings.GetThemeAccent()))

	if message := checkDependencies(cmd, opts, settings); message != "" {
		ui.NewMissingDependenciesWindow(a, newLocalization(settings), message).ShowAndRun()
		return ErrMissingDependencies
	}

	opts.logger.Info().Str("version", version).Str("toolkit", ToolkitWidget).Msg("starting")

	window := a.NewWindow(AppName)
	window.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))
	ui.NewRootUI(window, a, settings, serviceFactory(opts.logger), opts.logger)
	window.ShowAndRun()
	return nil
}

func runLite(cmd *cobra.Command, opts *rootOptions) error {
	store, err := openStore(opts)
	if err != nil {
		return err
	}
	settings := config.NewSettings(store)

	if message := checkDependencies(cmd, opts, settings); message != "" {
		lite.RunMissingDependencies(newLocalization(settings), message)
		return ErrMissingDependencies
	}

	opts.logger.Info().Str("toolkit", ToolkitLite).Str("preferences", store.Path()).Msg("starting")
	lite.New(settings, serviceFactory(opts.logger), opts.logger).Run()
	return nil
}
