package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ytget/youtube-dl-gui/internal/config"
	"github.com/ytget/youtube-dl-gui/internal/model"
	"github.com/ytget/youtube-dl-gui/internal/session"
)

type getOptions struct {
	directory string
	format    string
	verbose   bool
}

func newGetCommand(root *rootOptions) *cobra.Command {
	opts := &getOptions{}

	cmd := &cobra.Command{
		Use:   "get URL [-- downloader flags]",
		Short: "Download one URL without opening a window",
		Example: `  youtube-dl-gui get https://youtu.be/dQw4w9WgXcQ --format audio
  youtube-dl-gui get https://example.com/clip -- --limit-rate 1M`,
		Args: func(cmd *cobra.Command, args []string) error {
			n := len(args)
			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				n = dash
			}
			if n != 1 {
				return fmt.Errorf("expected exactly one URL, got %d", n)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var passthrough []string
			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				passthrough = args[dash:]
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runGet(ctx, cmd, root, opts, args[0], passthrough)
		},
	}

	cmd.Flags().StringVarP(&opts.directory, "dir", "d", "", "download folder (default: saved folder)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "format: best, medium, low, audio (default: saved format)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "print downloader output")

	return cmd
}

func runGet(ctx context.Context, cmd *cobra.Command, root *rootOptions, opts *getOptions, rawURL string, passthrough []string) error {
	store, err := openStore(root)
	if err != nil {
		return err
	}

	prefs := newOverlayPreferences(store)
	if opts.directory != "" {
		prefs.override(config.KeyDownloadDir, opts.directory)
	}
	if opts.format != "" {
		format, err := model.ParseFormat(opts.format)
		if err != nil {
			return err
		}
		prefs.override(config.KeyFormat, format.String())
	}

	settings := config.NewSettings(prefs)
	view := newTerminalView(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.verbose)

	controller := session.NewController(view, settings, newLocalization(settings),
		serviceFactory(root.logger, passthrough...), root.logger)
	controller.SetRevealer(nil)
	controller.SetURL(rawURL)

	if err := controller.Submit(); err != nil {
		return err
	}

	stopCancel := context.AfterFunc(ctx, controller.Cancel)
	defer stopCancel()

	controller.Wait()
	return view.result()
}

// overlayPreferences serves command line values ahead of the stored ones
// without writing them back.
type overlayPreferences struct {
	config.Preferences
	values map[string]string
}

func newOverlayPreferences(base config.Preferences) *overlayPreferences {
	return &overlayPreferences{Preferences: base, values: make(map[string]string)}
}

func (p *overlayPreferences) override(key, value string) {
	p.values[key] = value
}

func (p *overlayPreferences) String(key string) string {
	if value, ok := p.values[key]; ok {
		return value
	}
	return p.Preferences.String(key)
}

func (p *overlayPreferences) SetString(key, value string) {
	if _, ok := p.values[key]; ok {
		p.values[key] = value
		return
	}
	p.Preferences.SetString(key, value)
}

// terminalView renders the session as a progress bar on stderr
type terminalView struct {
	out     io.Writer
	errOut  io.Writer
	verbose bool

	mu       sync.Mutex
	bar      *progressbar.ProgressBar
	status   model.Status
	errTitle string
	errMsg   string
	saved    string
}

var _ session.View = (*terminalView)(nil)

func newTerminalView(out, errOut io.Writer, verbose bool) *terminalView {
	return &terminalView{
		out:     out,
		errOut:  errOut,
		verbose: verbose,
		status:  model.StatusIdle,
		bar: progressbar.NewOptions(100,
			progressbar.OptionSetWriter(errOut),
			progressbar.OptionSetWidth(30),
			progressbar.OptionSetDescription("starting"),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		),
	}
}

func (v *terminalView) SetStatus(status model.Status, text string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.status = status
	switch status {
	case model.StatusStarting, model.StatusDownloading, model.StatusPostprocessing, model.StatusCompleted:
		v.bar.Describe(text)
	}
}

func (v *terminalView) SetProgress(fraction float64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	_ = v.bar.Set(int(fraction * 100))
}

func (v *terminalView) AppendLog(line string) {
	if !v.verbose {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	_ = v.bar.Clear()
	fmt.Fprintln(v.errOut, line)
}

func (v *terminalView) SetInputEnabled(bool) {}

func (v *terminalView) SetDownloadEnabled(bool) {}

func (v *terminalView) ShowError(title, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.errTitle = title
	v.errMsg = message
}

func (v *terminalView) ShowCompleted(path string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.saved = path
	_ = v.bar.Finish()
}

// result turns the final state into the command's outcome
func (v *terminalView) result() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	fmt.Fprintln(v.errOut)
	switch {
	case v.errMsg != "":
		return fmt.Errorf("%s: %s", v.errTitle, v.errMsg)
	case v.status == model.StatusCancelled:
		return context.Canceled
	case v.status == model.StatusCompleted:
		fmt.Fprintln(v.out, v.saved)
		return nil
	default:
		return errors.New("download did not complete")
	}
}
