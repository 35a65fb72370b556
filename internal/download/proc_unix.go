//go:build !windows

package download

import (
	"os/exec"
	"syscall"
)

// configureProcessGroup starts the downloader in its own process group so
// cancelling also stops the ffmpeg children it spawns.
func configureProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		if err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL); err != nil {
			return cmd.Process.Kill()
		}
		return nil
	}
}
