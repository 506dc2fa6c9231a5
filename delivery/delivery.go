// Package delivery sends the wire payload to the collection endpoint.
//
// Delivery is opaque: the endpoint (a Google Apps Script web app) is called
// without looking at what it answers. A request that leaves without a
// transport error counts as delivered.
package delivery

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/NataliiaKozak/landing-frauen-fotoshooting/config"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/log"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/model"
)

type Sink interface {
	Deliver(ctx context.Context, w model.Wire) error
}

// New returns the sink for quiz: a LogSink while the endpoint is still the
// placeholder, an HTTPSink otherwise.
func New(quiz config.Quiz, client *http.Client) Sink {
	if !quiz.EndpointConfigured() {
		return LogSink{}
	}
	return NewHTTPSink(quiz.EndpointURL, client)
}

// LogSink only logs what would have been sent.
type LogSink struct{}

func (LogSink) Deliver(_ context.Context, w model.Wire) error {
	log.WithFields(log.Fields{
		"timestamp":        w.Timestamp,
		"name":             w.Name,
		"email":            w.Email,
		"phone":            w.Phone,
		"availability":     w.Availability,
		"privacy_accepted": w.PrivacyAccepted,
		"quiz_start_time":  w.QuizStartTime,
	}).Info("Collection endpoint not configured. Form data")
	log.WithFields(log.Fields{
		"q1":  w.Q1,
		"q2":  w.Q2,
		"q3r": w.Q3R,
		"q4":  w.Q4,
		"q5":  w.Q5,
		"q6":  w.Q6,
	}).Info("Quiz answers")
	return nil
}

type HTTPSink struct {
	url    string
	client *http.Client
}

func NewHTTPSink(url string, client *http.Client) *HTTPSink {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSink{url, client}
}

func (s *HTTPSink) Deliver(ctx context.Context, w model.Wire) error {
	body, err := json.Marshal(w)
	if err != nil {
		return errors.Wrap(err, "delivery.encode")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "delivery.new_request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "delivery.post")
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	// status is deliberately not interpreted
	log.Debugf("delivery.post: endpoint answered %s", resp.Status)
	return nil
}
