// Package prompt provides interactive terminal prompts for CLI commands.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrAborted is returned when the user cancels a prompt with Ctrl+C.
var ErrAborted = errors.New("aborted")

// Confirm prompts the user for yes/no confirmation.
// Returns true if the user confirms, false otherwise.
func Confirm(label string, defaultYes bool) (bool, error) {
	defaultStr := "y/N"
	if defaultYes {
		defaultStr = "Y/n"
	}

	p := promptui.Prompt{
		Label:     fmt.Sprintf("%s [%s]", label, defaultStr),
		IsConfirm: true,
	}

	result, err := p.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) {
			return false, ErrAborted
		}
		// promptui reports "n" as ErrAbort
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		if result == "" {
			return defaultYes, nil
		}
		return false, err
	}

	result = strings.ToLower(result)
	return result == "y" || result == "yes", nil
}
