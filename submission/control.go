package submission

const (
	InProgressLabel = "Wird gesendet..."
	FailureNotice   = "Es gab einen Fehler beim Senden. Bitte versuchen Sie es erneut."
)

// Control is the state of the form's submit button. While it is disabled
// no further submission may start from it.
type Control struct {
	Disabled bool   `json:"disabled"`
	Label    string `json:"label"`

	original string
}

func NewControl(label string) *Control {
	return &Control{Label: label, original: label}
}

func (c *Control) Disable() {
	c.Disabled = true
	c.Label = InProgressLabel
}

func (c *Control) Restore() {
	c.Disabled = false
	c.Label = c.original
}
