package widget

import "testing"

// fakeSurface records registrations so tests can fire events and check
// that every listener was removed
type fakeSurface struct {
	moves    map[int]func(Point)
	ups      map[int]func()
	resizes  map[int]func(Size)
	deferred map[int]func()
	next     int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		moves:    map[int]func(Point){},
		ups:      map[int]func(){},
		resizes:  map[int]func(Size){},
		deferred: map[int]func(){},
	}
}

func (s *fakeSurface) id() int { s.next++; return s.next }

func (s *fakeSurface) OnPointerMove(fn func(Point)) func() {
	id := s.id()
	s.moves[id] = fn
	return func() { delete(s.moves, id) }
}

func (s *fakeSurface) OnPointerUp(fn func()) func() {
	id := s.id()
	s.ups[id] = fn
	return func() { delete(s.ups, id) }
}

func (s *fakeSurface) OnResize(fn func(Size)) func() {
	id := s.id()
	s.resizes[id] = fn
	return func() { delete(s.resizes, id) }
}

func (s *fakeSurface) Defer(fn func()) func() {
	id := s.id()
	s.deferred[id] = fn
	return func() { delete(s.deferred, id) }
}

func (s *fakeSurface) move(p Point) {
	for _, fn := range s.moves {
		fn(p)
	}
}

func (s *fakeSurface) up() {
	for _, fn := range s.ups {
		fn()
	}
}

func (s *fakeSurface) resize(vp Size) {
	for _, fn := range s.resizes {
		fn(vp)
	}
}

func (s *fakeSurface) flush() {
	for id, fn := range s.deferred {
		delete(s.deferred, id)
		fn()
	}
}

func (s *fakeSurface) listeners() int {
	return len(s.moves) + len(s.ups) + len(s.resizes) + len(s.deferred)
}

type fakeMeasurer struct {
	size    Size
	mounted bool
}

func (m *fakeMeasurer) PanelSize() (Size, bool) { return m.size, m.mounted }

func TestPositionerDragAndSnap(t *testing.T) {
	t.Parallel()

	surface := newFakeSurface()
	p := NewPositioner(DefaultOptions(), Size{Width: 1280, Height: 800}, surface, nil)

	if !p.PointerDown(Point{X: 1200, Y: 420}, p.Position()) {
		t.Fatal("drag should start while closed")
	}
	if p.State() != StateDragging {
		t.Fatalf("unexpected state: %v", p.State())
	}

	surface.move(Point{X: 220, Y: 320})
	if got := p.Position(); got != (Point{X: 200, Y: 300}) {
		t.Fatalf("position should follow pointer minus grab offset, got %+v", got)
	}

	surface.move(Point{X: -500, Y: 5000})
	if got := p.Position(); got != (Point{X: 0, Y: 736}) {
		t.Fatalf("position should be clamped while dragging, got %+v", got)
	}

	surface.up()
	if p.State() != StateIdle {
		t.Fatalf("unexpected state after release: %v", p.State())
	}
	if got := p.Position(); got != (Point{X: 24, Y: 712}) {
		t.Fatalf("unexpected snapped position: %+v", got)
	}
	if surface.listeners() != 0 {
		t.Fatalf("drag listeners leaked: %d", surface.listeners())
	}
}

func TestPositionerNoDragWhileOpen(t *testing.T) {
	t.Parallel()

	surface := newFakeSurface()
	p := NewPositioner(DefaultOptions(), Size{Width: 1280, Height: 800}, surface, nil)
	p.Open()

	if p.PointerDown(Point{X: 1200, Y: 420}, p.Position()) {
		t.Fatal("drag must not start while the panel is open")
	}
	before := p.Position()
	surface.move(Point{X: 10, Y: 10})
	if p.Position() != before {
		t.Fatal("position changed while open")
	}
}

func TestPositionerPanelListeners(t *testing.T) {
	t.Parallel()

	surface := newFakeSurface()
	measurer := &fakeMeasurer{}
	p := NewPositioner(DefaultOptions(), Size{Width: 1280, Height: 800}, surface, measurer)

	p.Toggle()
	if !p.IsOpen() {
		t.Fatal("toggle should open the panel")
	}
	if len(surface.resizes) != 1 || len(surface.deferred) != 1 {
		t.Fatalf("expected resize and deferred listeners, got %d and %d", len(surface.resizes), len(surface.deferred))
	}
	initial := p.Placement()
	if initial != DefaultOptions().Place(p.Position(), Size{}, Size{Width: 1280, Height: 800}) {
		t.Fatalf("unmounted panel should use default dimensions: %+v", initial)
	}

	measurer.size, measurer.mounted = Size{Width: 280, Height: 200}, true
	surface.flush()
	if got := p.Placement(); got.Top != 400+32-100 {
		t.Fatalf("deferred recompute should use measured height, got %+v", got)
	}

	surface.resize(Size{Width: 600, Height: 500})
	if got := p.Position(); got != (Point{X: 536, Y: 400}) {
		t.Fatalf("resize should re-clamp the trigger, got %+v", got)
	}
	if got := p.Placement(); !got.OpenLeft {
		t.Fatalf("panel should flip left after resize, got %+v", got)
	}

	p.Toggle()
	if p.IsOpen() || surface.listeners() != 0 {
		t.Fatalf("close should remove listeners, %d left", surface.listeners())
	}
}

func TestPositionerTeardown(t *testing.T) {
	t.Parallel()

	surface := newFakeSurface()
	p := NewPositioner(DefaultOptions(), Size{Width: 1280, Height: 800}, surface, nil)

	p.PointerDown(Point{X: 1200, Y: 420}, p.Position())
	p.Teardown()
	if surface.listeners() != 0 {
		t.Fatalf("teardown left %d listeners", surface.listeners())
	}
	if p.State() != StateIdle {
		t.Fatalf("unexpected state after teardown: %v", p.State())
	}

	p.Open()
	p.Teardown()
	if surface.listeners() != 0 || p.IsOpen() {
		t.Fatal("teardown should close the panel and drop its listeners")
	}
}

func TestPositionerToggleIgnoredWhileDragging(t *testing.T) {
	t.Parallel()

	surface := newFakeSurface()
	p := NewPositioner(DefaultOptions(), Size{Width: 1280, Height: 800}, surface, nil)
	p.PointerDown(Point{X: 1200, Y: 420}, p.Position())
	p.Toggle()
	if p.IsOpen() {
		t.Fatal("click ending a drag should not open the panel")
	}
}
