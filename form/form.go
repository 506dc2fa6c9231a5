package form

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	TypeText     = "text"
	TypeEmail    = "email"
	TypeTel      = "tel"
	TypeCheckbox = "checkbox"
	TypeSelect   = "select"
	TypeTextarea = "textarea"
)

// Ids of the contact fields the submission reads.
const (
	NameID         = "form-name"
	EmailID        = "form-email"
	PhoneID        = "form-phone"
	AvailabilityID = "form-availability"
	PrivacyID      = "form-privacy"
)

const DefaultSubmitLabel = "Jetzt Gutschein sichern!"

// Style is the visual error state of a field.
type Style struct {
	BorderColor string `json:"borderColor"`
	BoxShadow   string `json:"boxShadow"`
}

var ErrorStyle = Style{
	BorderColor: "#ff4444",
	BoxShadow:   "0 0 0 2px rgba(255, 68, 68, 0.2)",
}

type Field struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	Value    string `json:"value,omitempty"`
	Checked  bool   `json:"checked,omitempty"`
	Style    Style  `json:"style"`
}

func (f *Field) MarkError() {
	f.Style = ErrorStyle
}

func (f *Field) ClearError() {
	f.Style = Style{}
}

func (f *Field) Marked() bool {
	return f.Style != Style{}
}

// Touch is what editing a field does: any error marking goes away.
func (f *Field) Touch() {
	f.ClearError()
}

type Form struct {
	Fields      []*Field `json:"fields"`
	SubmitLabel string   `json:"submitLabel"`
}

func (f *Form) Field(id string) *Field {
	for _, field := range f.Fields {
		if field.ID == id {
			return field
		}
	}
	return nil
}

// Value returns the value of field id, or "" when the form has no such field.
func (f *Form) Value(id string) string {
	if field := f.Field(id); field != nil {
		return field.Value
	}
	return ""
}

func (f *Form) Checked(id string) bool {
	if field := f.Field(id); field != nil {
		return field.Checked
	}
	return false
}

func (f *Form) Clone() *Form {
	c := &Form{SubmitLabel: f.SubmitLabel, Fields: make([]*Field, len(f.Fields))}
	for i, field := range f.Fields {
		copied := *field
		c.Fields[i] = &copied
	}
	return c
}

// Bind copies live values onto the fields, keyed by field id or, failing
// that, by name. A bound field counts as touched.
func (f *Form) Bind(values map[string]any) {
	for _, field := range f.Fields {
		v, ok := values[field.ID]
		if !ok && field.Name != "" {
			v, ok = values[field.Name]
		}
		if !ok {
			continue
		}
		if field.Type == TypeCheckbox {
			field.Checked = truthy(v)
		} else if v != nil {
			field.Value = text(v)
		}
		field.Touch()
	}
}

// text renders a decoded JSON value the way the page would show it; numbers
// keep their digits instead of float64's exponent form.
func text(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

func truthy(v any) bool {
	switch v := v.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(v) {
		case "on", "true", "1", "yes":
			return true
		}
	case float64:
		return v != 0
	}
	return false
}

// Marked returns the ids of the fields currently showing an error.
func (f *Form) Marked() []string {
	ids := []string{}
	for _, field := range f.Fields {
		if field.Marked() {
			ids = append(ids, field.ID)
		}
	}
	return ids
}

// Contact is the landing page's contact form, used when the page markup
// cannot be read.
func Contact() *Form {
	return &Form{
		SubmitLabel: DefaultSubmitLabel,
		Fields: []*Field{
			{ID: NameID, Name: "name", Type: TypeText, Required: true},
			{ID: EmailID, Name: "email", Type: TypeEmail, Required: true},
			{ID: PhoneID, Name: "phone", Type: TypeTel, Required: true},
			{ID: AvailabilityID, Name: "availability", Type: TypeSelect},
			{ID: PrivacyID, Name: "privacy", Type: TypeCheckbox, Required: true},
		},
	}
}
