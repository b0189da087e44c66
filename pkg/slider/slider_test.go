package slider

import (
	"math"
	"math/rand"
	"testing"

	"github.com/Dicklesworthstone/rangeslider/pkg/geometry"
	"github.com/Dicklesworthstone/rangeslider/pkg/model"
	"github.com/Dicklesworthstone/rangeslider/pkg/session"
)

// fakeHost is a minimal surface: a dispatcher plus a fixed track
type fakeHost struct {
	*session.Dispatcher
	track   geometry.Rect
	mounted bool
}

func newFakeHost(track geometry.Rect) *fakeHost {
	return &fakeHost{Dispatcher: session.NewDispatcher(), track: track, mounted: true}
}

func (h *fakeHost) TrackRect() (geometry.Rect, bool) {
	return h.track, h.mounted
}

func horizontalTrack() geometry.Rect {
	return geometry.Rect{X: 0, Y: 0, Width: 100, Height: 2}
}

func ptr(v model.Value) *model.Value { return &v }

func TestEngine_DragSnapsToStep(t *testing.T) {
	host := newFakeHost(horizontalTrack())
	var changes []model.Value
	e := New(host, Config{Min: 0, Max: 100, Step: 10, OnChange: func(v model.Value) {
		changes = append(changes, v)
	}})

	if !e.OnThumbPointerDown(0, geometry.Point{X: 0, Y: 1}) {
		t.Fatal("Expected press to start a drag")
	}
	if e.State() != session.Pressed {
		t.Fatalf("Expected Pressed, got %s", e.State())
	}
	host.Move(geometry.Point{X: 47, Y: 1})

	if e.State() != session.Dragging {
		t.Fatalf("Expected Dragging, got %s", e.State())
	}
	if e.CurrentValue() != model.Scalar(50) {
		t.Errorf("Expected 50, got %v", e.CurrentValue())
	}
	if len(changes) != 1 || changes[0] != model.Scalar(50) {
		t.Errorf("Expected one change to 50, got %v", changes)
	}
}

func TestEngine_RangeThumbPinned(t *testing.T) {
	host := newFakeHost(horizontalTrack())
	e := New(host, Config{Min: 0, Max: 100, Step: 1, Range: true, DefaultValue: ptr(model.Pair(20, 80))})

	e.OnThumbPointerDown(0, geometry.Point{X: 20})
	host.Move(geometry.Point{X: 90})

	if got := e.CurrentValue(); got != model.Pair(80, 80) {
		t.Errorf("Expected [80, 80], got %v", got)
	}
	if e.ActiveThumb() != 0 {
		t.Errorf("Expected thumb 0 to stay active, got %d", e.ActiveThumb())
	}

	// Moving back releases the pin without swapping thumbs
	host.Move(geometry.Point{X: 10})
	if got := e.CurrentValue(); got != model.Pair(10, 80) {
		t.Errorf("Expected [10, 80], got %v", got)
	}
}

func TestEngine_VerticalInvertsAxis(t *testing.T) {
	host := newFakeHost(geometry.Rect{X: 0, Y: 0, Width: 1, Height: 40})
	e := New(host, Config{Min: 0, Max: 100, Step: 1, Orientation: model.Vertical})

	e.OnThumbPointerDown(0, geometry.Point{})
	host.Move(geometry.Point{X: 0, Y: 10})

	if got := e.CurrentValue(); got != model.Scalar(75) {
		t.Errorf("Expected 75, got %v", got)
	}
}

func TestEngine_ReleaseOutsideEndsSession(t *testing.T) {
	host := newFakeHost(horizontalTrack())
	changes := 0
	e := New(host, Config{Min: 0, Max: 100, Step: 1, OnChange: func(model.Value) { changes++ }})

	e.OnThumbPointerDown(0, geometry.Point{})
	host.Move(geometry.Point{X: 30})
	host.Up(geometry.Point{X: 900, Y: -40})

	if e.State() != session.Idle {
		t.Fatalf("Expected Idle, got %s", e.State())
	}
	if host.Len() != 0 {
		t.Fatalf("Expected listeners released, %d left", host.Len())
	}

	host.Move(geometry.Point{X: 60})
	host.Move(geometry.Point{X: 70})
	if changes != 1 {
		t.Errorf("Expected no changes after release, got %d", changes)
	}
	if e.CurrentValue() != model.Scalar(30) {
		t.Errorf("Expected value to stay 30, got %v", e.CurrentValue())
	}
}

func TestEngine_SecondPressIgnoredWhileDragging(t *testing.T) {
	host := newFakeHost(horizontalTrack())
	e := New(host, Config{Min: 0, Max: 100, Step: 1, Range: true})

	if !e.OnThumbPointerDown(1, geometry.Point{}) {
		t.Fatal("Expected first press to start a drag")
	}
	if e.OnThumbPointerDown(0, geometry.Point{}) {
		t.Error("Expected second press to be ignored")
	}
	if host.Len() != 1 {
		t.Errorf("Expected a single subscription, got %d", host.Len())
	}
	if e.ActiveThumb() != 1 {
		t.Errorf("Expected thumb 1 active, got %d", e.ActiveThumb())
	}

	host.Up(geometry.Point{})
	if !e.OnThumbPointerDown(0, geometry.Point{}) {
		t.Error("Expected press to work after release")
	}
}

func TestEngine_InvalidThumbIgnored(t *testing.T) {
	e := New(newFakeHost(horizontalTrack()), Config{Min: 0, Max: 10, Step: 1})
	if e.OnThumbPointerDown(1, geometry.Point{}) {
		t.Error("Single mode has no thumb 1")
	}
	if e.OnThumbPointerDown(-1, geometry.Point{}) {
		t.Error("Negative thumb index should be ignored")
	}
}

func TestEngine_TrackPressSingleMode(t *testing.T) {
	host := newFakeHost(horizontalTrack())
	var changes []model.Value
	e := New(host, Config{Min: 0, Max: 100, Step: 5, OnChange: func(v model.Value) {
		changes = append(changes, v)
	}})

	if !e.OnTrackPointerDown(geometry.Point{X: 62}) {
		t.Fatal("Expected track press to commit")
	}
	if e.CurrentValue() != model.Scalar(60) {
		t.Errorf("Expected 60, got %v", e.CurrentValue())
	}
	if e.State() != session.Idle || host.Len() != 0 {
		t.Error("Track press must not start a drag session")
	}
	if len(changes) != 1 {
		t.Errorf("Expected one change, got %d", len(changes))
	}
}

func TestEngine_TrackPressDisabledInRangeMode(t *testing.T) {
	host := newFakeHost(horizontalTrack())
	e := New(host, Config{Min: 0, Max: 100, Step: 1, Range: true})

	if e.OnTrackPointerDown(geometry.Point{X: 50}) {
		t.Error("Expected track press to be ignored in range mode")
	}
	if e.CurrentValue() != model.Pair(0, 100) {
		t.Errorf("Expected default [0, 100], got %v", e.CurrentValue())
	}
}

func TestEngine_TrackPressUnmounted(t *testing.T) {
	host := newFakeHost(horizontalTrack())
	host.mounted = false
	e := New(host, Config{Min: 0, Max: 100, Step: 1})

	if e.OnTrackPointerDown(geometry.Point{X: 50}) {
		t.Error("Expected no commit without track geometry")
	}
}

func TestEngine_DisabledSuppressesTransitions(t *testing.T) {
	host := newFakeHost(horizontalTrack())
	cfg := Config{Min: 0, Max: 100, Step: 1}
	e := New(host, cfg)

	e.OnThumbPointerDown(0, geometry.Point{})
	host.Move(geometry.Point{X: 40})

	cfg.Disabled = true
	e.Configure(cfg)
	if e.State() != session.Idle || host.Len() != 0 {
		t.Fatal("Disabling must end the drag and release listeners")
	}

	host.Move(geometry.Point{X: 90})
	if e.OnThumbPointerDown(0, geometry.Point{}) {
		t.Error("Press should be ignored while disabled")
	}
	if e.OnTrackPointerDown(geometry.Point{X: 10}) {
		t.Error("Track press should be ignored while disabled")
	}
	if e.Nudge(0, 1) {
		t.Error("Nudge should be ignored while disabled")
	}
	if e.CurrentValue() != model.Scalar(40) {
		t.Errorf("Expected value frozen at 40, got %v", e.CurrentValue())
	}
}

func TestEngine_ControlledFighting(t *testing.T) {
	host := newFakeHost(horizontalTrack())
	owned := model.Scalar(20)
	var proposed []model.Value
	cfg := Config{Min: 0, Max: 100, Step: 1, Value: &owned}
	cfg.OnChange = func(v model.Value) { proposed = append(proposed, v) }
	e := New(host, cfg)

	e.OnThumbPointerDown(0, geometry.Point{})
	host.Move(geometry.Point{X: 70})

	// Caller has not accepted the proposal: the thumb stays
	if e.CurrentValue() != model.Scalar(20) {
		t.Errorf("Expected controlled value 20, got %v", e.CurrentValue())
	}
	if len(proposed) != 1 || proposed[0] != model.Scalar(70) {
		t.Fatalf("Expected proposal 70, got %v", proposed)
	}

	// Caller accepts and re-renders
	owned = proposed[0]
	cfg.Value = &owned
	e.Configure(cfg)
	if e.CurrentValue() != model.Scalar(70) {
		t.Errorf("Expected 70 after accept, got %v", e.CurrentValue())
	}
	if !e.Controlled() {
		t.Error("Expected engine to report controlled")
	}
}

func TestEngine_CurrentPositions(t *testing.T) {
	e := New(newFakeHost(horizontalTrack()), Config{
		Min: 0, Max: 200, Step: 10, Range: true, DefaultValue: ptr(model.Pair(50, 150)),
	})
	pos := e.CurrentPositions()
	if len(pos) != 2 {
		t.Fatalf("Expected 2 positions, got %d", len(pos))
	}
	if math.Abs(pos[0]-25) > 1e-9 || math.Abs(pos[1]-75) > 1e-9 {
		t.Errorf("Expected [25 75], got %v", pos)
	}
}

func TestEngine_Nudge(t *testing.T) {
	e := New(newFakeHost(horizontalTrack()), Config{
		Min: 0, Max: 10, Step: 2, Range: true, DefaultValue: ptr(model.Pair(4, 6)),
	})

	if !e.Nudge(0, 1) {
		t.Fatal("Expected nudge to change value")
	}
	if e.CurrentValue() != model.Pair(6, 6) {
		t.Errorf("Expected [6, 6], got %v", e.CurrentValue())
	}
	if e.Nudge(0, 1) {
		t.Error("Expected pinned nudge to report no change")
	}
	e.Nudge(1, 10)
	if e.CurrentValue() != model.Pair(6, 10) {
		t.Errorf("Expected [6, 10], got %v", e.CurrentValue())
	}
}

func TestEngine_ConfigureRangeChange(t *testing.T) {
	host := newFakeHost(horizontalTrack())
	cfg := Config{Min: 0, Max: 100, Step: 1, DefaultValue: ptr(model.Scalar(90))}
	e := New(host, cfg)

	cfg.Max = 50
	e.Configure(cfg)
	if e.CurrentValue() != model.Scalar(50) {
		t.Errorf("Expected value clamped to new max 50, got %v", e.CurrentValue())
	}

	e.OnThumbPointerDown(0, geometry.Point{})
	cfg.Range = true
	e.Configure(cfg)
	if e.State() != session.Idle {
		t.Error("Switching mode should end the drag")
	}
	if e.CurrentValue() != model.Pair(50, 50) {
		t.Errorf("Expected [50, 50], got %v", e.CurrentValue())
	}
}

func TestEngine_CloseReleasesListeners(t *testing.T) {
	host := newFakeHost(horizontalTrack())
	e := New(host, Config{Min: 0, Max: 1, Step: 0.1})
	e.OnThumbPointerDown(0, geometry.Point{})
	e.Close()
	if host.Len() != 0 {
		t.Errorf("Expected no listeners after Close, got %d", host.Len())
	}
	e.Close()
}

func TestEngine_RandomDragsKeepInvariants(t *testing.T) {
	host := newFakeHost(geometry.Rect{X: 10, Y: 0, Width: 80, Height: 1})
	rng := model.Range{Min: -5, Max: 5, Step: 0.25}
	e := New(host, Config{Min: rng.Min, Max: rng.Max, Step: rng.Step, Range: true})
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		e.OnThumbPointerDown(r.Intn(2), geometry.Point{})
		for j := 0; j < 20; j++ {
			host.Move(geometry.Point{X: r.Float64()*200 - 50})
			v := e.CurrentValue()
			if v.Low() > v.High() {
				t.Fatalf("drag %d move %d: crossed %v", i, j, v)
			}
			if v.Low() < rng.Min || v.High() > rng.Max {
				t.Fatalf("drag %d move %d: out of range %v", i, j, v)
			}
		}
		host.Up(geometry.Point{})
	}
}

func TestEngine_SetSnapsAndSanitizes(t *testing.T) {
	host := newFakeHost(horizontalTrack())
	var changes int
	e := New(host, Config{Min: 0, Max: 100, Step: 10, Range: true, OnChange: func(model.Value) { changes++ }})

	if !e.Set(model.Pair(73, 21)) {
		t.Fatal("Expected Set to commit")
	}
	if got := e.CurrentValue(); got != model.Pair(20, 70) {
		t.Errorf("Expected [20, 70], got %v", got)
	}
	if e.Set(model.Pair(18, 69)) {
		t.Error("Expected an unchanged value not to commit")
	}
	if changes != 1 {
		t.Errorf("Expected 1 change, got %d", changes)
	}

	e.Configure(Config{Min: 0, Max: 100, Step: 10, Range: true, Disabled: true})
	if e.Set(model.Pair(0, 10)) {
		t.Error("Expected Set to be ignored while disabled")
	}
}

func TestEngine_NaNValuesNormalized(t *testing.T) {
	host := newFakeHost(horizontalTrack())
	nan := math.NaN()

	e := New(host, Config{Min: 0, Max: 100, Step: 1, DefaultValue: ptr(model.Scalar(nan))})
	if got := e.CurrentValue(); got != model.Scalar(0) {
		t.Errorf("Expected NaN default to become 0, got %v", got)
	}
	if pos := e.CurrentPositions(); len(pos) != 1 || pos[0] != 0 {
		t.Errorf("Expected position [0], got %v", pos)
	}

	c := New(host, Config{Min: 0, Max: 100, Step: 1, Range: true, Value: ptr(model.Pair(nan, 50))})
	if got := c.CurrentValue(); got != model.Pair(0, 50) {
		t.Errorf("Expected controlled [0, 50], got %v", got)
	}

	b := New(host, Config{Min: nan, Max: math.Inf(1), Step: 1})
	if got := b.CurrentValue(); got != model.Scalar(0) {
		t.Errorf("Expected 0 on a normalized range, got %v", got)
	}
	for _, p := range b.CurrentPositions() {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			t.Errorf("Expected finite positions, got %v", b.CurrentPositions())
		}
	}
}
