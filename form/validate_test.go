package form

import (
	"sort"
	"strings"
	"testing"
)

func contactForm(values map[string]any) *Form {
	f := Contact()
	f.Bind(values)
	return f
}

func TestValidateEmptyForm(t *testing.T) {
	f := contactForm(nil)

	err := Validate(f)
	if err == nil {
		t.Fatal("empty form validated")
	}

	marked := f.Marked()
	sort.Strings(marked)
	want := []string{EmailID, NameID, PhoneID, PrivacyID}
	if strings.Join(marked, ",") != strings.Join(want, ",") {
		t.Fatalf("marked = %v want %v", marked, want)
	}
	if f.Field(AvailabilityID).Marked() {
		t.Fatal("optional field marked")
	}
	if len(FieldErrors(err)) != 4 {
		t.Fatalf("FieldErrors = %v", FieldErrors(err))
	}
}

func TestValidateFilledForm(t *testing.T) {
	f := contactForm(nil)
	Validate(f)

	f.Bind(map[string]any{
		NameID:    "Anna",
		EmailID:   "anna@example.de",
		PhoneID:   "0151 234567",
		PrivacyID: true,
	})
	if err := Validate(f); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if marked := f.Marked(); len(marked) != 0 {
		t.Fatalf("fields still marked: %v", marked)
	}
}

func TestValidateWhitespaceOnly(t *testing.T) {
	f := contactForm(map[string]any{
		NameID:    "   ",
		EmailID:   "anna@example.de",
		PhoneID:   "\t",
		PrivacyID: "on",
	})
	Validate(f)

	if !f.Field(NameID).Marked() || !f.Field(PhoneID).Marked() {
		t.Fatalf("whitespace values passed: %v", f.Marked())
	}
	if f.Field(PrivacyID).Marked() {
		t.Fatal(`checkbox bound with "on" reported unchecked`)
	}
}

func TestEmailGate(t *testing.T) {
	optional := func(email string) *Form {
		return &Form{Fields: []*Field{{ID: EmailID, Type: TypeEmail, Value: email}}}
	}

	tests := []struct {
		email string
		valid bool
	}{
		{"not-an-email", false},
		{"a@b.co", true},
		{"", true},
		{"a@@b.co", false},
		{"a b@c.de", false},
		{"a@b", false},
		{" a@b.co", false},
		{"ä@b.co", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			f := optional(tt.email)
			err := Validate(f)
			if (err == nil) != tt.valid {
				t.Fatalf("Validate(%q) = %v, want valid=%v", tt.email, err, tt.valid)
			}
			if f.Field(EmailID).Marked() == tt.valid {
				t.Fatalf("marking for %q = %v", tt.email, f.Field(EmailID).Marked())
			}
		})
	}
}

func TestEmailGateByType(t *testing.T) {
	f := &Form{Fields: []*Field{{ID: "contact-mail", Type: TypeEmail, Value: "nope"}}}
	errs := FieldErrors(Validate(f))
	if len(errs) != 1 || errs[0].FieldID != "contact-mail" || errs[0].Reason != ReasonEmail {
		t.Fatalf("errors = %v", errs)
	}
}

func TestBindClearsMarking(t *testing.T) {
	f := contactForm(nil)
	Validate(f)

	f.Bind(map[string]any{NameID: "Anna"})
	if f.Field(NameID).Marked() {
		t.Fatal("bound field still marked")
	}
	if !f.Field(PhoneID).Marked() {
		t.Fatal("unbound field lost its marking")
	}
}

func TestOptionalEmailRebound(t *testing.T) {
	f := &Form{Fields: []*Field{
		{ID: NameID, Type: TypeText, Required: true},
		{ID: EmailID, Type: TypeEmail},
	}}
	f.Bind(map[string]any{NameID: "Anna", EmailID: "not-an-email"})
	if err := Validate(f); err == nil {
		t.Fatal("bad optional email accepted")
	}

	f.Bind(map[string]any{EmailID: "a@b.co"})
	if err := Validate(f); err != nil {
		t.Fatalf("Validate = %v", err)
	}
	if marked := f.Marked(); len(marked) != 0 {
		t.Fatalf("valid form still marked: %v", marked)
	}
}

func TestBindNumbers(t *testing.T) {
	f := Contact()
	f.Bind(map[string]any{PhoneID: float64(1500000), NameID: 0.5})
	if got := f.Value(PhoneID); got != "1500000" {
		t.Errorf("phone = %q", got)
	}
	if got := f.Value(NameID); got != "0.5" {
		t.Errorf("name = %q", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	tmpl := Contact()
	c := tmpl.Clone()
	c.Bind(map[string]any{NameID: "Anna"})
	Validate(c)

	if tmpl.Value(NameID) != "" || len(tmpl.Marked()) != 0 {
		t.Fatal("clone shares fields with its template")
	}
}
