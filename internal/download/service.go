package download

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/alessio/shellescape"
	"github.com/arunsworld/nursery"
	"github.com/rs/zerolog"

	"github.com/ytget/youtube-dl-gui/internal/model"
)

// Subprocess constants
const (
	// StderrTailLines is how many stderr lines are kept for error reports
	StderrTailLines = 20

	// KillGracePeriod bounds how long Wait blocks on pipes after the child is killed
	KillGracePeriod = 3 * time.Second

	// MaxLineLength is the longest output line the scanner accepts
	MaxLineLength = 1024 * 1024
)

// Result describes a finished download
type Result struct {
	RequestID  string
	Command    string
	OutputPath string
	ExitCode   int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration returns the wall time of the subprocess
func (r *Result) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// ExitError is returned when the downloader exits with a non-zero code
type ExitError struct {
	Code   int
	Stderr string
	Err    error
}

func (e *ExitError) Error() string {
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		return msg
	}
	return fmt.Sprintf("downloader exited with code %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Service runs the external downloader
type Service struct {
	executable string
	opts       Options
	log        zerolog.Logger
}

// NewService creates a download service for the given executable
func NewService(executable string, opts Options, logger zerolog.Logger) *Service {
	return &Service{
		executable: executable,
		opts:       opts,
		log:        logger.With().Str("component", "download").Logger(),
	}
}

// Executable returns the configured downloader path
func (s *Service) Executable() string {
	return s.executable
}

// Args returns the argument vector for req
func (s *Service) Args(req *model.Request) []string {
	return BuildArgs(req, s.opts)
}

// CommandLine renders the full command for display
func (s *Service) CommandLine(req *model.Request) string {
	return shellescape.QuoteCommand(append([]string{s.executable}, s.Args(req)...))
}

// Download runs the downloader for req and blocks until it exits.
// Events from stdout and stderr are delivered one at a time, in the order
// they were read from each stream.
func (s *Service) Download(ctx context.Context, req *model.Request, onEvent func(Event)) (*Result, error) {
	log := s.log.With().Str("request_id", req.ID).Logger()

	args := s.Args(req)
	cmd := exec.CommandContext(ctx, s.executable, args...)
	cmd.WaitDelay = KillGracePeriod
	configureProcessGroup(cmd)

	result := &Result{
		RequestID: req.ID,
		Command:   s.CommandLine(req),
		StartedAt: time.Now(),
		ExitCode:  -1,
	}
	log.Info().Str("command", result.Command).Msg("starting downloader")

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", s.executable, err)
	}

	var (
		mu   sync.Mutex
		tail = newLineTail(StderrTailLines)
	)
	emit := func(ev Event) {
		mu.Lock()
		defer mu.Unlock()

		if ev.Stderr {
			tail.add(ev)
		}
		if ev.Kind == EventDestination && ev.Path != "" {
			result.OutputPath = ev.Path
		}
		log.Debug().Str("kind", ev.Kind.String()).Bool("stderr", ev.Stderr).Msg(ev.Line)
		if onEvent != nil {
			onEvent(ev)
		}
	}

	// Pipes must be drained before Wait closes them
	scanErr := nursery.RunConcurrently(
		scanOutput(stdout, false, emit),
		scanOutput(stderr, true, emit),
	)
	waitErr := cmd.Wait()

	result.FinishedAt = time.Now()
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if ctx.Err() != nil {
		log.Info().Msg("downloader cancelled")
		return result, ctx.Err()
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			log.Warn().Int("exit_code", exitErr.ExitCode()).Msg("downloader failed")
			return result, &ExitError{
				Code:   exitErr.ExitCode(),
				Stderr: tail.message(),
				Err:    waitErr,
			}
		}
		return result, fmt.Errorf("downloader failed: %w", waitErr)
	}

	if scanErr != nil {
		log.Warn().Err(scanErr).Msg("output stream error")
	}

	log.Info().
		Str("output", result.OutputPath).
		Dur("duration", result.Duration()).
		Msg("download completed")

	return result, nil
}

// scanOutput reads one stream line by line and emits classified events
func scanOutput(r io.Reader, isStderr bool, emit func(Event)) func(context.Context, chan error) {
	return func(_ context.Context, errCh chan error) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), MaxLineLength)

		for scanner.Scan() {
			ev := ParseLine(scanner.Text())
			if ev.Kind == EventLine && strings.TrimSpace(ev.Line) == "" {
				continue
			}
			ev.Stderr = isStderr
			emit(ev)
		}

		// Keep draining so the child never blocks on a full pipe
		if err := scanner.Err(); err != nil {
			_, _ = io.Copy(io.Discard, r)
			errCh <- fmt.Errorf("read output: %w", err)
		}
	}
}

// lineTail keeps the last stderr lines, preferring ERROR lines in reports
type lineTail struct {
	max    int
	lines  []string
	errors []string
}

func newLineTail(max int) *lineTail {
	return &lineTail{max: max}
}

func (t *lineTail) add(ev Event) {
	line := strings.TrimSpace(ev.Line)
	if line == "" {
		return
	}
	if ev.Kind == EventError {
		t.errors = appendBounded(t.errors, line, t.max)
	}
	t.lines = appendBounded(t.lines, line, t.max)
}

func (t *lineTail) message() string {
	if len(t.errors) > 0 {
		return strings.Join(t.errors, "\n")
	}
	return strings.Join(t.lines, "\n")
}

func appendBounded(lines []string, line string, max int) []string {
	lines = append(lines, line)
	if len(lines) > max {
		lines = lines[len(lines)-max:]
	}
	return lines
}
