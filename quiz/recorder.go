package quiz

import (
	"context"
	"errors"

	"github.com/NataliiaKozak/landing-frauen-fotoshooting/log"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/model"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/session"
)

var ErrMissingQuestion = errors.New("quiz: missing question id")

// Recorder writes quiz-step answers into the visitor's session.
type Recorder struct {
	sessions *session.Store
}

func NewRecorder(sessions *session.Store) *Recorder {
	return &Recorder{sessions}
}

// Record sets the answer for questionID, overwriting any earlier one. The
// updated session is returned even when persisting it failed; the error is
// then a *session.Fault.
func (r *Recorder) Record(ctx context.Context, questionID, answer string) (*model.Session, error) {
	if questionID == "" {
		return nil, ErrMissingQuestion
	}

	sess, _, readErr := r.sessions.GetOrCreate(ctx)
	sess.Answers[questionID] = answer
	sess.LastUpdated = model.Timestamp(r.sessions.Now())

	err := r.sessions.Save(ctx, sess)
	if err == nil {
		err = readErr
	}

	log.Infof("Saved answer for %s: %s", questionID, answer)
	return sess, err
}
