// Package submission runs one attempt to submit the contact form together
// with the visitor's quiz answers.
//
// An attempt moves idle → validating → submitting and ends in succeeded or
// failed. An invalid form goes back to idle without touching the submit
// control or the endpoint. A failed delivery leaves the session in place so
// the visitor can retry with the same answers.
package submission

import (
	"context"
	"errors"
	"time"

	"github.com/looplab/fsm"

	"github.com/NataliiaKozak/landing-frauen-fotoshooting/config"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/delivery"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/form"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/log"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/session"
)

const (
	StateIdle       = "idle"
	StateValidating = "validating"
	StateSubmitting = "submitting"
	StateSucceeded  = "succeeded"
	StateFailed     = "failed"

	EventValidate = "validate"
	EventReject   = "reject"
	EventSubmit   = "submit"
	EventSucceed  = "succeed"
	EventFail     = "fail"
)

const DefaultTimeout = 15 * time.Second

// ErrInProgress is returned for a submit from a control that is disabled.
var ErrInProgress = errors.New("submission: already in progress")

func newMachine() *fsm.FSM {
	return fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: EventValidate, Src: []string{StateIdle}, Dst: StateValidating},
			{Name: EventReject, Src: []string{StateValidating}, Dst: StateIdle},
			{Name: EventSubmit, Src: []string{StateValidating}, Dst: StateSubmitting},
			{Name: EventSucceed, Src: []string{StateSubmitting}, Dst: StateSucceeded},
			{Name: EventFail, Src: []string{StateSubmitting}, Dst: StateFailed},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				log.Debugf("submission: %s -> %s (%s)", e.Src, e.Dst, e.Event)
			},
		},
	)
}

type Result struct {
	State    string        `json:"state"`
	Redirect string        `json:"redirect,omitempty"`
	Notice   string        `json:"notice,omitempty"`
	Invalid  []string      `json:"invalid,omitempty"`
	Fields   []*form.Field `json:"fields,omitempty"`
	Control  Control       `json:"control"`
	// Degraded reports that the session store failed during the attempt.
	Degraded bool `json:"degraded,omitempty"`
	// Err is the validation or delivery error behind a non-success result.
	Err error `json:"-"`
	// StorageErr is the *session.Fault behind Degraded.
	StorageErr error `json:"-"`
}

type Pipeline struct {
	quiz     config.Quiz
	sessions *session.Store
	sink     delivery.Sink
	timeout  time.Duration
}

func NewPipeline(quiz config.Quiz, sessions *session.Store, sink delivery.Sink, timeout time.Duration) *Pipeline {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Pipeline{quiz, sessions, sink, timeout}
}

// Submit runs one attempt for the bound form f. ctl is the submit control
// the attempt was started from.
func (p *Pipeline) Submit(ctx context.Context, f *form.Form, ctl *Control) Result {
	machine := newMachine()
	if ctl.Disabled {
		return Result{State: machine.Current(), Control: *ctl, Err: ErrInProgress}
	}
	// transitions must happen even once the caller's ctx is done
	fire := func(event string) {
		if err := machine.Event(context.WithoutCancel(ctx), event); err != nil {
			log.Errorf("submission.%s: %s", event, err)
		}
	}

	fire(EventValidate)
	if err := form.Validate(f); err != nil {
		fire(EventReject)
		log.Debugf("submission.validate: %s", err)
		return Result{
			State:   machine.Current(),
			Invalid: f.Marked(),
			Fields:  f.Fields,
			Control: *ctl,
			Err:     err,
		}
	}

	fire(EventSubmit)
	ctl.Disable()

	sess, storageErr := p.sessions.Get(ctx)
	payload := Assemble(f, sess, p.sessions.Now())

	deliverCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	err := p.sink.Deliver(deliverCtx, payload.Wire())
	if err != nil {
		fire(EventFail)
		log.Errorf("Error submitting form: %s", err)
		ctl.Restore()
		return Result{
			State:      machine.Current(),
			Notice:     FailureNotice,
			Control:    *ctl,
			Err:        err,
			Degraded:   storageErr != nil,
			StorageErr: storageErr,
		}
	}

	fire(EventSucceed)
	log.Info("Form submitted successfully")
	if err := p.sessions.Clear(context.WithoutCancel(ctx)); err != nil && storageErr == nil {
		storageErr = err
	}
	return Result{
		State:      machine.Current(),
		Redirect:   p.quiz.SuccessPage,
		Control:    *ctl,
		Degraded:   storageErr != nil,
		StorageErr: storageErr,
	}
}
