package submission

import (
	"time"

	"github.com/NataliiaKozak/landing-frauen-fotoshooting/form"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/model"
)

// Assemble builds the payload from the live contact fields and a snapshot of
// sess, which may be nil.
func Assemble(f *form.Form, sess *model.Session, now time.Time) model.Payload {
	p := model.Payload{
		Name:         f.Value(form.NameID),
		Email:        f.Value(form.EmailID),
		Phone:        f.Value(form.PhoneID),
		Availability: f.Value(form.AvailabilityID),
		Privacy:      f.Checked(form.PrivacyID),
		Timestamp:    model.Timestamp(now),
	}
	if sess != nil && sess.Answers != nil {
		p.QuizAnswers = sess.Snapshot()
		p.QuizStartTime = sess.StartTime
	}
	return p
}
