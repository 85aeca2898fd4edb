package scan

import (
	"context"
	"errors"
	"testing"

	"winmatch/internal/wm"
	"winmatch/pkg/logger"
	"winmatch/pkg/matcher"

	"github.com/rs/zerolog"
)

type stubWM struct {
	windows   []wm.Window
	active    wm.Window
	listErr   error
	activeErr error
	lastMode  wm.Mode
}

func (s *stubWM) Name() string { return "stub" }

func (s *stubWM) List(mode wm.Mode) ([]wm.Window, error) {
	s.lastMode = mode
	return s.windows, s.listErr
}

func (s *stubWM) ActiveWindow() (wm.Window, error) {
	return s.active, s.activeErr
}

func testScanner(t *testing.T, backend *stubWM) *Scanner {
	t.Helper()
	log, err := logger.NewLogger(
		logger.WithLevel(zerolog.Disabled),
		logger.WithFile(t.TempDir()+"/test.log"),
	)
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	t.Cleanup(func() { log.Close() })
	return NewScanner(backend, log)
}

func threeWindows() []wm.Window {
	return []wm.Window{
		{ID: "w1", Title: "term one", Class: "kitty"},
		{ID: "w2", Title: "term two", Class: "kitty"},
		{ID: "w3", Title: "term three", Class: "kitty"},
	}
}

func kittyLeaf() *matcher.Leaf {
	return matcher.MustLeaf(matcher.Criteria{Class: "kitty", Mode: matcher.Full})
}

func TestEachVisitsEveryMatchInOrder(t *testing.T) {
	backend := &stubWM{windows: append(threeWindows(), wm.Window{ID: "w4", Class: "firefox"})}
	s := testScanner(t, backend)

	var visited []string
	err := s.Each(kittyLeaf(), wm.TopLevel, func(w wm.Window) {
		visited = append(visited, w.ID)
	})
	if err != nil {
		t.Fatalf("Each: %v", err)
	}
	want := []string{"w1", "w2", "w3"}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("visited %v, want %v", visited, want)
		}
	}
	if backend.lastMode != wm.TopLevel {
		t.Errorf("mode = %v, want TopLevel", backend.lastMode)
	}
}

func TestEachWhileStopsAtFirstFalse(t *testing.T) {
	backend := &stubWM{windows: threeWindows()}
	s := testScanner(t, backend)

	var visited []string
	all, err := s.EachWhile(kittyLeaf(), wm.AllWindows, func(w wm.Window) bool {
		visited = append(visited, w.ID)
		return w.ID != "w2"
	})
	if err != nil {
		t.Fatalf("EachWhile: %v", err)
	}
	if all {
		t.Error("expected the walk to report an early stop")
	}
	if len(visited) != 2 || visited[0] != "w1" || visited[1] != "w2" {
		t.Errorf("visited %v, want [w1 w2]", visited)
	}
	if backend.lastMode != wm.AllWindows {
		t.Errorf("mode = %v, want AllWindows", backend.lastMode)
	}
}

func TestEachWhileCompletes(t *testing.T) {
	s := testScanner(t, &stubWM{windows: threeWindows()})

	count := 0
	all, err := s.EachWhile(kittyLeaf(), wm.TopLevel, func(wm.Window) bool {
		count++
		return true
	})
	if err != nil {
		t.Fatalf("EachWhile: %v", err)
	}
	if !all || count != 3 {
		t.Errorf("all=%v count=%d, want all visits", all, count)
	}
}

func TestDiscoveryErrorFailsTheWholeCall(t *testing.T) {
	boom := errors.New("enumeration denied")
	s := testScanner(t, &stubWM{listErr: boom})

	if err := s.Each(kittyLeaf(), wm.TopLevel, func(wm.Window) {}); !errors.Is(err, boom) {
		t.Errorf("Each err = %v, want %v", err, boom)
	}
	if _, err := s.EachWhile(kittyLeaf(), wm.TopLevel, func(wm.Window) bool { return true }); !errors.Is(err, boom) {
		t.Errorf("EachWhile err = %v, want %v", err, boom)
	}
	if _, err := s.EachContext(context.Background(), kittyLeaf(), wm.TopLevel,
		func(context.Context, wm.Window) (bool, error) { return true, nil }); !errors.Is(err, boom) {
		t.Errorf("EachContext err = %v, want %v", err, boom)
	}
}

func TestEachContextSequentialAndComplete(t *testing.T) {
	s := testScanner(t, &stubWM{windows: threeWindows()})

	inFlight := 0
	var visited []string
	all, err := s.EachContext(context.Background(), kittyLeaf(), wm.TopLevel,
		func(_ context.Context, w wm.Window) (bool, error) {
			inFlight++
			if inFlight != 1 {
				t.Errorf("%d callbacks in flight, want 1", inFlight)
			}
			visited = append(visited, w.ID)
			inFlight--
			return true, nil
		})
	if err != nil {
		t.Fatalf("EachContext: %v", err)
	}
	if !all || len(visited) != 3 {
		t.Errorf("all=%v visited=%v, want a full sequential walk", all, visited)
	}
}

func TestEachContextCallbackErrorAborts(t *testing.T) {
	s := testScanner(t, &stubWM{windows: threeWindows()})

	boom := errors.New("callback failed")
	var visited []string
	all, err := s.EachContext(context.Background(), kittyLeaf(), wm.TopLevel,
		func(_ context.Context, w wm.Window) (bool, error) {
			visited = append(visited, w.ID)
			if w.ID == "w2" {
				return false, boom
			}
			return true, nil
		})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if all {
		t.Error("a failed walk must not report completion")
	}
	if len(visited) != 2 {
		t.Errorf("visited %v, want the walk to stop at the failure", visited)
	}
}

func TestEachContextHonorsCancellation(t *testing.T) {
	s := testScanner(t, &stubWM{windows: threeWindows()})

	ctx, cancel := context.WithCancel(context.Background())
	var visited []string
	all, err := s.EachContext(ctx, kittyLeaf(), wm.TopLevel,
		func(_ context.Context, w wm.Window) (bool, error) {
			visited = append(visited, w.ID)
			cancel()
			return true, nil
		})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if all || len(visited) != 1 {
		t.Errorf("all=%v visited=%v, want a stop after the first visit", all, visited)
	}
}

func TestIsActive(t *testing.T) {
	active := wm.Window{ID: "w9", Title: "mail", Class: "thunderbird"}

	tests := []struct {
		name    string
		backend *stubWM
		pred    matcher.Predicate
		want    bool
		wantErr bool
	}{
		{"focused window matches", &stubWM{active: active},
			matcher.MustLeaf(matcher.Criteria{Class: "thunderbird"}), true, false},
		{"focused window does not match", &stubWM{active: active}, kittyLeaf(), false, false},
		{"no focused window", &stubWM{},
			matcher.MustLeaf(matcher.Criteria{}), false, false},
		{"backend failure", &stubWM{activeErr: errors.New("no focus info")},
			kittyLeaf(), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testScanner(t, tt.backend)
			got, err := s.IsActive(tt.pred)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("IsActive = %v, want %v", got, tt.want)
			}
		})
	}
}
