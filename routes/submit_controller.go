package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/render"

	"github.com/NataliiaKozak/landing-frauen-fotoshooting/app"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/httpx"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/log"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/routes/middlewares"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/submission"
)

type submitRequest struct {
	Fields map[string]any `json:"fields"`
}

// InFlightCheck asks the guard goroutine whether a visitor's submit control
// is already disabled (op true, which also disables it) or re-enables it
// (op false).
type InFlightCheck struct {
	op      bool
	visitor string
	result  chan<- bool
}

// SubmitQuiz serves submissions until ctx is done; after that every submit
// is refused with 503.
func SubmitQuiz(ctx context.Context, app app.App) http.HandlerFunc {
	checks := make(chan InFlightCheck)
	go func() {
		inFlight := make(map[string]bool)

		for {
			select {
			case <-ctx.Done():
				return
			case req := <-checks:
				if req.op {
					req.result <- inFlight[req.visitor]
					inFlight[req.visitor] = true
				} else {
					delete(inFlight, req.visitor)
				}
			}
		}
	}()

	return func(w http.ResponseWriter, r *http.Request) {
		visitor := middlewares.VisitorID(r.Context())

		req := submitRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		f := app.Form.Clone()
		f.Bind(req.Fields)

		// the control of this visitor must not be pressed twice
		done := make(chan bool, 1)
		select {
		case checks <- InFlightCheck{true, visitor, done}:
		case <-ctx.Done():
			httpx.LogStatus(w, r, http.StatusServiceUnavailable, log.DebugLevel, "submission.shutting_down")
			return
		}
		if <-done {
			httpx.LogStatusMsg(w, r, http.StatusConflict, log.DebugLevel, "submission.in_progress", submission.InProgressLabel)
			return
		}
		defer func() {
			select {
			case checks <- InFlightCheck{false, visitor, nil}:
			case <-ctx.Done():
			}
		}()

		res := app.Pipeline(visitor).Submit(r.Context(), f, submission.NewControl(f.SubmitLabel))

		switch res.State {
		case submission.StateSucceeded:
			render.Status(r, http.StatusOK)
		case submission.StateFailed:
			render.Status(r, http.StatusBadGateway)
		default:
			render.Status(r, http.StatusUnprocessableEntity)
		}
		render.JSON(w, r, res)
	}
}
