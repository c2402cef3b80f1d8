package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"quickaction/internal/ui/input/types"
)

// FormMode edits the single field of the form dialog
type FormMode struct {
	TextInputMode
}

func NewFormMode(ti *textinput.Model) *FormMode {
	return &FormMode{
		TextInputMode: NewTextInputMode(types.ModeForm, "form", "", ti),
	}
}
