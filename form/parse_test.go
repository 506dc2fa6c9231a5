package form

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

const page = `<!doctype html>
<html>
<body>
  <form class="newsletter"><input type="email" id="newsletter-email" required></form>
  <form class="quiz-form" onsubmit="return submitQuizForm(event)">
    <input class="quiz-form__input" type="text" id="form-name" name="name" required>
    <input class="quiz-form__input" type="email" id="form-email" name="email" required>
    <input class="quiz-form__input" type="tel" id="form-phone" name="phone" required>
    <select class="quiz-form__input" id="form-availability" name="availability">
      <option value="">Bitte wählen</option>
      <option value="vormittags">Vormittags</option>
    </select>
    <label><input class="quiz-form__checkbox" type="checkbox" id="form-privacy" required> Datenschutz</label>
    <input type="hidden" name="source" value="landing">
    <button type="submit"> Jetzt Termin sichern! </button>
  </form>
</body>
</html>`

func TestParse(t *testing.T) {
	f, err := Parse(strings.NewReader(page))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if f.SubmitLabel != "Jetzt Termin sichern!" {
		t.Errorf("SubmitLabel = %q", f.SubmitLabel)
	}

	want := []struct {
		id       string
		typ      string
		required bool
	}{
		{NameID, TypeText, true},
		{EmailID, TypeEmail, true},
		{PhoneID, TypeTel, true},
		{AvailabilityID, TypeSelect, false},
		{PrivacyID, TypeCheckbox, true},
	}
	if len(f.Fields) != len(want) {
		t.Fatalf("parsed %d fields want %d: %+v", len(f.Fields), len(want), f.Fields)
	}
	for i, w := range want {
		got := f.Fields[i]
		if got.ID != w.id || got.Type != w.typ || got.Required != w.required {
			t.Errorf("field %d = %+v want %+v", i, got, w)
		}
	}
}

func TestParseNoForm(t *testing.T) {
	_, err := Parse(strings.NewReader(`<html><body><p>Danke</p></body></html>`))
	if !errors.Is(err, ErrNoForm) {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadFallsBackToContact(t *testing.T) {
	f := Load(filepath.Join(t.TempDir(), "missing.html"))
	if len(f.Fields) != len(Contact().Fields) || f.SubmitLabel != DefaultSubmitLabel {
		t.Fatalf("Load = %+v", f)
	}
}
