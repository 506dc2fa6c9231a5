package httpx

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"

	"github.com/NataliiaKozak/landing-frauen-fotoshooting/log"
)

// Problem is the JSON body of every error response of the quiz API.
type Problem struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Will log an error, and send a JSON response with status 500 and default text
func LogInternalError(w http.ResponseWriter, r *http.Request, code string, err error) {
	log.Errorf("%s: %s", code, err)
	writeProblem(w, r, http.StatusInternalServerError, code, http.StatusText(http.StatusInternalServerError))
}

// Will log a debug message, and send a JSON response with status 404
func LogNotFound(w http.ResponseWriter, r *http.Request, code string, id any) {
	log.Debugf("%s: not found (%v)", code, id)
	writeProblem(w, r, http.StatusNotFound, code, http.StatusText(http.StatusNotFound))
}

// Will log an error code at the given level, and send
// a JSON response with status and default text
func LogStatus(w http.ResponseWriter, r *http.Request, status int, level log.Level, code string) {
	log.Log(level, code)
	writeProblem(w, r, status, code, http.StatusText(status))
}

// Will log an error code and message at the given level,
// and send a JSON response with the given status and formatted message
func LogStatusMsg(w http.ResponseWriter, r *http.Request, status int, level log.Level, code string, msg string, args ...any) {
	errMsg := fmt.Sprintf(msg, args...)
	log.Log(level, code+":", errMsg)
	writeProblem(w, r, status, code, errMsg)
}

func writeProblem(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	render.Status(r, status)
	render.JSON(w, r, Problem{code, msg})
}
