package download

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/shlex"

	"github.com/ytget/youtube-dl-gui/internal/model"
)

// ErrInvalidExtraArgs is returned when the extra arguments cannot be split
var ErrInvalidExtraArgs = errors.New("invalid extra arguments")

// Flavor identifies which downloader implementation is being driven
type Flavor int

const (
	FlavorYoutubeDL Flavor = iota
	FlavorYtDLP
)

// Executables, in lookup order
const (
	CommandYtDLP     = "yt-dlp"
	CommandYoutubeDL = "youtube-dl"
	CommandFFmpeg    = "ffmpeg"
)

// Flags shared by youtube-dl and yt-dlp
const (
	FlagNewline        = "--newline"
	FlagNoPlaylist     = "--no-playlist"
	FlagOutput         = "-o"
	FlagFormat         = "-f"
	FlagExtractAudio   = "-x"
	FlagAudioFormat    = "--audio-format"
	FlagAudioQuality   = "--audio-quality"
	FlagEmbedThumbnail = "--embed-thumbnail"
	FlagAddMetadata    = "--add-metadata"
	FlagFFmpegLocation = "--ffmpeg-location"
	FlagEndOfOptions   = "--"
)

// yt-dlp only flags
const (
	FlagConvertThumbnails = "--convert-thumbnails"
	FlagPostprocessorArgs = "--ppa"
)

// Audio extraction settings
const (
	AudioCodec   = "mp3"
	AudioQuality = "320K"
	CoverFormat  = "jpg"
	CoverSize    = 512
)

// SquareCoverArgs centre-crops the thumbnail to a square and scales it to CoverSize
const SquareCoverArgs = "ThumbnailsConvertor+ffmpeg_o:-c:v mjpeg -vf crop=ih:ih,scale=512:512"

// DefaultOutputTemplate names files after the video title
const DefaultOutputTemplate = "%(title)s.%(ext)s"

// Options are the settings-driven parts of the argument vector
type Options struct {
	Flavor         Flavor
	OutputTemplate string
	FFmpegLocation string
	SquareCover    bool
	ExtraArgs      []string
}

// FlavorOf guesses the implementation from the executable name
func FlavorOf(executable string) Flavor {
	base := strings.ToLower(filepath.Base(executable))
	base = strings.TrimSuffix(base, ".exe")
	if strings.Contains(base, CommandYtDLP) {
		return FlavorYtDLP
	}
	return FlavorYoutubeDL
}

// BuildArgs builds the downloader arguments for req.
// The URL is always the last argument and follows "--".
func BuildArgs(req *model.Request, opts Options) []string {
	args := make([]string, 0, 24)

	// One progress report per line, one video per request
	args = append(args, FlagNewline, FlagNoPlaylist)

	template := opts.OutputTemplate
	if strings.TrimSpace(template) == "" {
		template = DefaultOutputTemplate
	}
	args = append(args, FlagOutput, filepath.Join(req.Directory, template))

	args = append(args, FlagFormat, req.Format.Selector())

	if req.Format.IsAudio() {
		args = append(args,
			FlagExtractAudio,
			FlagAudioFormat, AudioCodec,
			FlagAudioQuality, AudioQuality,
			FlagEmbedThumbnail,
			FlagAddMetadata,
		)
		if opts.SquareCover && opts.Flavor == FlavorYtDLP {
			args = append(args,
				FlagConvertThumbnails, CoverFormat,
				FlagPostprocessorArgs, SquareCoverArgs,
			)
		}
	}

	if opts.FFmpegLocation != "" {
		args = append(args, FlagFFmpegLocation, opts.FFmpegLocation)
	}

	// Already tokenized, so empty values are real arguments
	args = append(args, opts.ExtraArgs...)

	// Target URL must go last
	args = append(args, FlagEndOfOptions, req.URL)

	return args
}

// SplitExtraArgs splits a passthrough flag string with shell quoting rules.
// Quoted empty strings are kept as empty arguments.
func SplitExtraArgs(s string) ([]string, error) {
	args, err := shlex.Split(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExtraArgs, err)
	}
	if len(args) == 0 {
		return nil, nil
	}
	return args, nil
}
