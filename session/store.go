// Package session owns the single persisted quiz session of a visitor.
//
// Storage is best effort: a failing substrate never interrupts the quiz.
// Every failure is logged and handed back as a *Fault so callers can tell a
// degraded store from a healthy one, but none of them has to act on it.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/NataliiaKozak/landing-frauen-fotoshooting/config"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/kv"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/log"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/model"
)

type Kind int

const (
	KindRead Kind = iota + 1
	KindCorrupt
	KindWrite
	KindClear
)

func (k Kind) String() string {
	switch k {
	case KindRead:
		return "read"
	case KindCorrupt:
		return "corrupt"
	case KindWrite:
		return "write"
	case KindClear:
		return "clear"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Fault reports a storage failure that was recovered locally.
type Fault struct {
	Kind Kind
	Err  error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("session %s: %s", f.Kind, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// KindOf returns the fault kind of err, or 0 when err is not a *Fault.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return 0
}

type Store struct {
	kv  kv.Store
	key string
	now func() time.Time
}

func NewStore(store kv.Store, quiz config.Quiz) *Store {
	return &Store{kv: store, key: quiz.StorageKey, now: time.Now}
}

// WithClock replaces the time source, for tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Now() time.Time {
	return s.now()
}

func (s *Store) fault(kind Kind, err error, msg string) *Fault {
	f := &Fault{kind, errors.Wrap(err, msg)}
	log.Errorf("%s: %s", msg, err)
	return f
}

// Get returns the stored session, or nil when there is none. A record that
// does not decode is treated as absent.
func (s *Store) Get(ctx context.Context) (*model.Session, error) {
	raw, ok, err := s.kv.GetItem(ctx, s.key)
	if err != nil {
		return nil, s.fault(KindRead, err, "session.get")
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var sess *model.Session
	err = json.Unmarshal([]byte(raw), &sess)
	if err != nil {
		return nil, s.fault(KindCorrupt, err, "session.get.decode")
	}
	if sess == nil {
		return nil, nil
	}
	if sess.Answers == nil {
		sess.Answers = map[string]string{}
	}
	return sess, nil
}

// Save writes sess. On failure whatever was stored before stays in place.
func (s *Store) Save(ctx context.Context, sess *model.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return s.fault(KindWrite, err, "session.save.encode")
	}
	err = s.kv.SetItem(ctx, s.key, string(raw))
	if err != nil {
		return s.fault(KindWrite, err, "session.save")
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	err := s.kv.RemoveItem(ctx, s.key)
	if err != nil {
		return s.fault(KindClear, err, "session.clear")
	}
	return nil
}

// GetOrCreate returns the stored session, or a fresh one when none is
// stored or the stored one is unreadable. created reports the latter; a
// fresh session is not persisted here.
func (s *Store) GetOrCreate(ctx context.Context) (sess *model.Session, created bool, err error) {
	sess, err = s.Get(ctx)
	if sess != nil {
		return sess, false, nil
	}
	return model.NewSession(s.now()), true, err
}

// Initialize persists a fresh session unless one already exists.
func (s *Store) Initialize(ctx context.Context) (*model.Session, error) {
	sess, created, err := s.GetOrCreate(ctx)
	if !created {
		return sess, nil
	}
	if saveErr := s.Save(ctx, sess); saveErr != nil {
		err = saveErr
	}
	return sess, err
}
