package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/NataliiaKozak/landing-frauen-fotoshooting/config"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/kv"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/model"
)

// flakyStore wraps a kv.Store and fails the operations switched on.
type flakyStore struct {
	kv.Store
	failGet, failSet, failRemove bool
}

var errDisabled = errors.New("storage disabled")

func (f *flakyStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	if f.failGet {
		return "", false, errDisabled
	}
	return f.Store.GetItem(ctx, key)
}

func (f *flakyStore) SetItem(ctx context.Context, key, value string) error {
	if f.failSet {
		return errDisabled
	}
	return f.Store.SetItem(ctx, key, value)
}

func (f *flakyStore) RemoveItem(ctx context.Context, key string) error {
	if f.failRemove {
		return errDisabled
	}
	return f.Store.RemoveItem(ctx, key)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestStore() (*Store, *flakyStore) {
	backing := &flakyStore{Store: kv.NewMemory().Scope("visitor")}
	return NewStore(backing, config.DefaultQuiz()), backing
}

func TestInitializeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()

	t0 := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	store.WithClock(fixedClock(t0))
	first, err := store.Initialize(ctx)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	store.WithClock(fixedClock(t0.Add(time.Hour)))
	second, err := store.Initialize(ctx)
	if err != nil {
		t.Fatalf("second Initialize: %v", err)
	}

	if second.StartTime != first.StartTime {
		t.Fatalf("startTime changed from %q to %q", first.StartTime, second.StartTime)
	}

	got, err := store.Get(ctx)
	if err != nil || got == nil {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if got.StartTime != "2026-10-17T09:00:00.000Z" || got.CurrentStep != 1 || len(got.Answers) != 0 {
		t.Fatalf("stored session = %+v", got)
	}
}

func TestGetAbsent(t *testing.T) {
	store, _ := newTestStore()
	got, err := store.Get(context.Background())
	if got != nil || err != nil {
		t.Fatalf("Get = %v, %v want nil, nil", got, err)
	}
}

func TestGetCorrupt(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		fault bool
	}{
		{name: "not json", raw: "{answers:", fault: true},
		{name: "wrong answers type", raw: `{"answers":"q1"}`, fault: true},
		{name: "null", raw: "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store, backing := newTestStore()
			backing.Store.SetItem(ctx, config.DefaultStorageKey, tt.raw)

			got, err := store.Get(ctx)
			if got != nil {
				t.Fatalf("Get returned %+v for corrupt record", got)
			}
			if tt.fault && KindOf(err) != KindCorrupt {
				t.Fatalf("Get error = %v, want corrupt fault", err)
			}
			if !tt.fault && err != nil {
				t.Fatalf("Get error = %v", err)
			}
		})
	}
}

func TestGetNormalizesMissingAnswers(t *testing.T) {
	ctx := context.Background()
	store, backing := newTestStore()
	backing.Store.SetItem(ctx, config.DefaultStorageKey, `{"startTime":"2026-10-17T09:00:00.000Z","currentStep":1}`)

	got, err := store.Get(ctx)
	if err != nil || got == nil {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if got.Answers == nil {
		t.Fatal("Answers left nil")
	}
}

func TestSaveFailureKeepsPriorState(t *testing.T) {
	ctx := context.Background()
	store, backing := newTestStore()
	if _, err := store.Initialize(ctx); err != nil {
		t.Fatal(err)
	}
	before, _ := store.Get(ctx)

	backing.failSet = true
	changed := *before
	changed.Answers = map[string]string{"q1": "lost"}
	err := store.Save(ctx, &changed)
	if KindOf(err) != KindWrite {
		t.Fatalf("Save error = %v, want write fault", err)
	}
	if !errors.Is(err, errDisabled) {
		t.Fatalf("fault does not wrap the cause: %v", err)
	}

	after, _ := store.Get(ctx)
	if len(after.Answers) != 0 || after.StartTime != before.StartTime {
		t.Fatalf("stored session changed to %+v", after)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	store, backing := newTestStore()
	store.Initialize(ctx)

	backing.failRemove = true
	if err := store.Clear(ctx); KindOf(err) != KindClear {
		t.Fatalf("Clear error = %v, want clear fault", err)
	}
	if got, _ := store.Get(ctx); got == nil {
		t.Fatal("failed clear removed the session")
	}

	backing.failRemove = false
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if got, _ := store.Get(ctx); got != nil {
		t.Fatalf("session present after Clear: %+v", got)
	}
}

func TestGetOrCreateUnreadableStore(t *testing.T) {
	store, backing := newTestStore()
	backing.failGet = true

	sess, created, err := store.GetOrCreate(context.Background())
	if !created || sess == nil {
		t.Fatalf("GetOrCreate = %v, %v", sess, created)
	}
	if KindOf(err) != KindRead {
		t.Fatalf("err = %v, want read fault", err)
	}
	fresh := model.NewSession(store.Now())
	if sess.CurrentStep != fresh.CurrentStep || len(sess.Answers) != 0 || sess.LastUpdated != "" || sess.StartTime == "" {
		t.Fatalf("fresh session shape %+v", sess)
	}
}

func TestKindOfPlainError(t *testing.T) {
	if KindOf(errDisabled) != 0 || KindOf(nil) != 0 {
		t.Fatal("KindOf reported a kind for a non-fault")
	}
}
