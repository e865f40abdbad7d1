// Package prompt asks the operator for values the environment did not provide.
package prompt

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

var (
	// ErrNotInteractive is returned when stdin is not a terminal.
	ErrNotInteractive = errors.New("prompt requires an interactive terminal")
	// ErrAborted is returned when the operator cancels a prompt.
	ErrAborted = errors.New("prompt aborted")
)

// Prompter reads a single line answer to a question.
type Prompter interface {
	Ask(title, placeholder string) (string, error)
}

// Terminal prompts on the controlling terminal with huh inputs.
type Terminal struct{}

// Ask shows a one-line input and returns the trimmed answer.
func (Terminal) Ask(title, placeholder string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", ErrNotInteractive
	}

	var answer string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder(placeholder).
				Value(&answer),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrAborted
		}
		return "", err
	}
	return strings.TrimSpace(answer), nil
}
