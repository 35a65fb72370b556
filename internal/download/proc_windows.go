//go:build windows

package download

import (
	"os/exec"
	"syscall"
)

// createNoWindow keeps a console window from flashing up for the child
const createNoWindow = 0x08000000

func configureProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: createNoWindow,
	}
}
