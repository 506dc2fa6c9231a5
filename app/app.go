package app

import (
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/config"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/delivery"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/form"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/kv"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/quiz"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/session"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/submission"
)

// App bundles what the handlers need. Everything in it is built once in
// main from the resolved configuration.
type App struct {
	config.Config
	Quiz    config.Quiz
	Storage kv.Scoper
	Sink    delivery.Sink
	// Form is the template the live field values are bound onto.
	Form *form.Form
}

// Sessions returns the session store of one visitor.
func (app App) Sessions(visitor string) *session.Store {
	return session.NewStore(app.Storage.Scope(visitor), app.Quiz)
}

func (app App) Recorder(visitor string) *quiz.Recorder {
	return quiz.NewRecorder(app.Sessions(visitor))
}

func (app App) Pipeline(visitor string) *submission.Pipeline {
	return submission.NewPipeline(app.Quiz, app.Sessions(visitor), app.Sink, app.DeliveryTimeout)
}
