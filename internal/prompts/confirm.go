package prompts

import (
	stderrors "errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

// OverwriteConfirmer asks on the terminal before replacing an existing file.
type OverwriteConfirmer struct{}

// ConfirmOverwrite implements output.Confirmer. Aborting the prompt counts as no.
func (OverwriteConfirmer) ConfirmOverwrite(path string) (bool, error) {
	var overwrite bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("%s already exists. Overwrite?", path)).
				Affirmative("Yes").
				Negative("No").
				Value(&overwrite),
		),
	).WithTheme(Theme()).Run()
	if stderrors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return overwrite, nil
}
