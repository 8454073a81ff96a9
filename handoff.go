package readygate

import (
	"errors"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
)

func checkCommand(command []string) error {

	if len(command) == 0 || command[0] == "" {
		return errors.New("empty command")
	}

	return nil
}

// Spawn runs the command as a child process, mirroring stdio and forwarding
// termination signals, and returns the child's exit code once it's done.
//
// This is the fallback hand-off mode: unlike Exec, the gate process stays
// around as an extra pid layer between the orchestrator and the command.
func Spawn(command []string) (int, error) {

	if err := checkCommand(command); err != nil {
		return 0, err
	}

	cmd := exec.Command(command[0], command[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()

	if err := cmd.Start(); err != nil {
		return 0, err
	}

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	defer func() {
		signal.Stop(sigCh)
		close(sigCh)
	}()

	go func() {
		for sig := range sigCh {
			cmd.Process.Signal(sig)
		}
	}()

	if err := cmd.Wait(); err != nil {

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}

		return 0, err
	}

	return 0, nil
}
