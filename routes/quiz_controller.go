package routes

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/NataliiaKozak/landing-frauen-fotoshooting/app"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/httpx"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/log"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/model"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/quiz"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/routes/middlewares"
)

// sessionResponse carries the session plus whether storage is degraded. A
// degraded store never fails the request.
type sessionResponse struct {
	Session  *model.Session `json:"session"`
	Degraded bool           `json:"degraded,omitempty"`
}

func GetQuizConfig(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]any{
			"storageKey":         app.Quiz.StorageKey,
			"successPage":        app.Quiz.SuccessPage,
			"endpointConfigured": app.Quiz.EndpointConfigured(),
			"submitLabel":        app.Form.SubmitLabel,
		})
	}
}

func InitSession(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visitor := middlewares.VisitorID(r.Context())

		sess, err := app.Sessions(visitor).Initialize(r.Context())
		render.JSON(w, r, sessionResponse{sess, err != nil})
	}
}

func GetSession(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visitor := middlewares.VisitorID(r.Context())

		sess, err := app.Sessions(visitor).Get(r.Context())
		if sess == nil {
			if err != nil {
				log.Debugf("get_session: degraded store for %s", visitor)
			}
			httpx.LogNotFound(w, r, "get_session", visitor)
			return
		}

		render.JSON(w, r, sessionResponse{sess, false})
	}
}

func ClearSession(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visitor := middlewares.VisitorID(r.Context())

		// a failed clear is already logged by the store
		app.Sessions(visitor).Clear(r.Context())

		w.WriteHeader(http.StatusNoContent)
	}
}

type answerRequest struct {
	Answer string `json:"answer"`
}

func RecordAnswer(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visitor := middlewares.VisitorID(r.Context())
		questionID := chi.URLParam(r, "questionId")

		req := answerRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		sess, err := app.Recorder(visitor).Record(r.Context(), questionID, req.Answer)
		if errors.Is(err, quiz.ErrMissingQuestion) {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.question_id")
			return
		}

		render.JSON(w, r, sessionResponse{sess, err != nil})
	}
}
