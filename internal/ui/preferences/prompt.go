package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const defaultCustomMinutes = "25"

// DurationPrompt asks for a custom countdown length in minutes.
type DurationPrompt struct {
	window fyne.Window
	input  *widget.Entry
	errors *widget.Label
	onSet  func(minutes int)
}

// NewDurationPrompt creates the "Set Custom Timer" window.
// onSet only receives positive whole minutes.
func NewDurationPrompt(app fyne.App, onSet func(minutes int)) *DurationPrompt {
	window := app.NewWindow("Set Custom Timer")

	prompt := &DurationPrompt{
		window: window,
		input:  widget.NewEntry(),
		errors: widget.NewLabel(""),
		onSet:  onSet,
	}
	prompt.input.SetText(defaultCustomMinutes)
	prompt.input.OnSubmitted = func(string) {
		prompt.submit()
	}

	setButton := widget.NewButton("Set", prompt.submit)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
	})

	window.SetContent(container.NewVBox(
		widget.NewLabel("Enter duration in minutes:"),
		prompt.input,
		prompt.errors,
		container.NewHBox(setButton, layout.NewSpacer(), cancelButton),
	))
	window.Resize(fyne.NewSize(260, 140))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return prompt
}

// Show resets the input and displays the prompt.
func (prompt *DurationPrompt) Show() {
	prompt.input.SetText(defaultCustomMinutes)
	prompt.errors.SetText("")
	prompt.window.Show()
	prompt.window.RequestFocus()
}

func (prompt *DurationPrompt) submit() {
	minutes, ok := parsePositiveInt(prompt.input.Text)
	if !ok {
		prompt.errors.SetText("Enter a whole number of minutes greater than zero.")
		return
	}
	prompt.window.Hide()
	if prompt.onSet != nil {
		prompt.onSet(minutes)
	}
}
