//go:build unix

package shell

import (
	"os/exec"
	"syscall"
)

// setProcessGroup puts the command in its own process group so cancellation
// kills every process the shell spawned.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
