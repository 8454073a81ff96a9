//go:build !unix

package readygate

import "os"

// Exec on platforms without process image replacement: run the command as a
// child and exit with its code. The wrapped process gets its own pid here,
// which is the closest this platform can offer.
func Exec(command []string) error {

	code, err := Spawn(command)
	if err != nil {
		return err
	}

	os.Exit(code)
	return nil
}
