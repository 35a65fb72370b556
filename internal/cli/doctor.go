package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/youtube-dl-gui/internal/config"
	"github.com/ytget/youtube-dl-gui/internal/download"
)

// Installers, swapped in tests
var (
	installDownloader = download.Install
	installFFmpeg     = download.InstallFFmpeg
)

func newDoctorCommand(root *rootOptions) *cobra.Command {
	var install bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the downloader and ffmpeg are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(root)
			if err != nil {
				return err
			}
			settings := config.NewSettings(store)
			out := cmd.OutOrStdout()

			exe, exeErr := download.ResolveExecutable(settings.GetExecutable())
			if exeErr == nil {
				fmt.Fprintf(out, "downloader: %s\n", exe)
			}
			ffmpeg, ffmpegErr := download.ResolveFFmpeg(settings.GetFFmpegLocation())
			if ffmpegErr == nil {
				fmt.Fprintf(out, "ffmpeg: %s\n", ffmpeg)
			}

			if exeErr == nil && ffmpegErr == nil {
				fmt.Fprintln(out, "all dependencies found")
				return nil
			}
			fmt.Fprintln(out, download.MissingMessage(download.DetectMissing(settings.GetExecutable(), settings.GetFFmpegLocation())))

			if !install {
				return ErrMissingDependencies
			}

			if exeErr != nil {
				path, err := runInstall(cmd, root, download.CommandYtDLP, installDownloader)
				if err != nil {
					return err
				}
				settings.SetExecutable(path)
			}
			if ffmpegErr != nil {
				path, err := runInstall(cmd, root, download.CommandFFmpeg, installFFmpeg)
				if err != nil {
					return err
				}
				settings.SetFFmpegLocation(path)
			}

			fmt.Fprintf(out, "saved to %s\n", store.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&install, "install", false, "download missing yt-dlp and ffmpeg into the user cache")
	return cmd
}

func runInstall(cmd *cobra.Command, root *rootOptions, name string, install func(context.Context) (string, string, error)) (string, error) {
	path, version, err := install(cmd.Context())
	if err != nil {
		return "", err
	}
	root.logger.Info().Str("tool", name).Str("path", path).Str("version", version).Msg("installed")
	fmt.Fprintf(cmd.OutOrStdout(), "installed %s %s at %s\n", name, version, path)
	return path, nil
}
