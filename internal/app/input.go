package app

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// promptSecret reads the secret seed from the terminal without echo.
// The prompt goes to stderr so stdout stays clean for the summary line.
func (a *App) promptSecret() (string, error) {
	fmt.Fprint(os.Stderr, "Enter secret seed: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
