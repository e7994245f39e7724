package tui

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
)

// ErrInteractiveDisabled is returned when interactive prompts are disabled via TIDYGIT_TEST_NO_INTERACTIVE
var ErrInteractiveDisabled = fmt.Errorf("interactive prompts are disabled (TIDYGIT_TEST_NO_INTERACTIVE is set)")

// checkInteractiveAllowed returns an error if interactive mode is disabled for testing
func checkInteractiveAllowed() error {
	if os.Getenv("TIDYGIT_TEST_NO_INTERACTIVE") != "" {
		return ErrInteractiveDisabled
	}
	return nil
}

// PromptBranchMultiSelect asks the user to pick which branches to act on.
// All options start selected; an empty selection is a valid answer and means
// do nothing.
func PromptBranchMultiSelect(message string, options []string) ([]string, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return nil, err
	}

	var selected []string
	prompt := &survey.MultiSelect{
		Message: message,
		Options: options,
		Default: options,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return nil, fmt.Errorf("canceled")
	}
	return selected, nil
}

// PromptSelect asks the user to pick one option from a list.
func PromptSelect(message string, options []string, defaultOption string) (string, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return "", err
	}

	var selected string
	prompt := &survey.Select{
		Message: message,
		Options: options,
		Default: defaultOption,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", fmt.Errorf("canceled")
	}
	return selected, nil
}
