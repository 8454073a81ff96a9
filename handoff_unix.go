//go:build unix

package readygate

import (
	"os"
	"os/exec"
	"syscall"
)

// Exec replaces the current process image with the command, so the wrapped
// process keeps this pid and receives the orchestrator's signals directly.
// On success it never returns.
func Exec(command []string) error {

	if err := checkCommand(command); err != nil {
		return err
	}

	path, err := exec.LookPath(command[0])
	if err != nil {
		return err
	}

	return syscall.Exec(path, command, os.Environ())
}
