// internal/domain/widget/positioner.go
package widget

// Surface is the top-level input surface the widget listens on. Every
// registration returns a function that removes it.
type Surface interface {
	OnPointerMove(fn func(Point)) (cancel func())
	OnPointerUp(fn func()) (cancel func())
	OnResize(fn func(Size)) (cancel func())
	// Defer runs fn once after the current layout pass
	Defer(fn func()) (cancel func())
}

// Measurer reports the rendered panel box. ok is false before the panel
// is mounted.
type Measurer interface {
	PanelSize() (size Size, ok bool)
}

// State is the drag state of the trigger
type State int

const (
	StateIdle State = iota
	StateDragging
)

func (s State) String() string {
	if s == StateDragging {
		return "dragging"
	}
	return "idle"
}

// Positioner owns the trigger position and the panel placement. It is
// driven from a single event loop and is not safe for concurrent use.
type Positioner struct {
	opts     Options
	surface  Surface
	measurer Measurer

	viewport  Size
	position  Point
	placement PanelPlacement
	state     State
	grab      Point
	open      bool

	dragListeners  []func()
	panelListeners []func()
}

// NewPositioner creates a positioner with the control at its initial
// position for the viewport
func NewPositioner(opts Options, viewport Size, surface Surface, measurer Measurer) *Positioner {
	return &Positioner{
		opts:     opts,
		surface:  surface,
		measurer: measurer,
		viewport: viewport,
		position: opts.InitialPosition(viewport),
	}
}

// Position returns the current trigger position
func (p *Positioner) Position() Point { return p.position }

// Placement returns the last computed panel placement
func (p *Positioner) Placement() PanelPlacement { return p.placement }

// State returns the drag state
func (p *Positioner) State() State { return p.state }

// IsOpen reports whether the panel is open
func (p *Positioner) IsOpen() bool { return p.open }

// PointerDown starts a drag when the panel is closed. origin is the
// control's top-left corner at the time of the press.
func (p *Positioner) PointerDown(pointer, origin Point) bool {
	if p.open || p.state == StateDragging {
		return false
	}

	p.state = StateDragging
	p.grab = Point{X: pointer.X - origin.X, Y: pointer.Y - origin.Y}
	p.dragListeners = append(p.dragListeners,
		p.surface.OnPointerMove(p.PointerMove),
		p.surface.OnPointerUp(p.PointerUp),
	)
	return true
}

// PointerMove follows the pointer during a drag
func (p *Positioner) PointerMove(pointer Point) {
	if p.state != StateDragging {
		return
	}
	p.position = p.opts.ClampTrigger(Point{X: pointer.X - p.grab.X, Y: pointer.Y - p.grab.Y}, p.viewport)
}

// PointerUp ends a drag and snaps the control to an edge
func (p *Positioner) PointerUp() {
	if p.state != StateDragging {
		return
	}
	release(&p.dragListeners)
	p.state = StateIdle
	p.position = p.opts.Snap(p.position, p.viewport)
}

// Toggle opens or closes the panel. A click that ends a drag is ignored.
func (p *Positioner) Toggle() {
	if p.state == StateDragging {
		return
	}
	if p.open {
		p.Close()
		return
	}
	p.Open()
}

// Open shows the panel and keeps its placement current until Close
func (p *Positioner) Open() {
	if p.open {
		return
	}
	p.open = true
	p.recompute()
	p.panelListeners = append(p.panelListeners,
		p.surface.OnResize(p.Resize),
		p.surface.Defer(p.recompute),
	)
}

// Close hides the panel and drops its listeners
func (p *Positioner) Close() {
	if !p.open {
		return
	}
	p.open = false
	release(&p.panelListeners)
}

// Resize re-clamps the control and recomputes the panel for a new viewport
func (p *Positioner) Resize(viewport Size) {
	p.viewport = viewport
	p.position = p.opts.ClampTrigger(p.position, viewport)
	if p.open {
		p.recompute()
	}
}

// Teardown removes every listener the positioner registered
func (p *Positioner) Teardown() {
	release(&p.dragListeners)
	release(&p.panelListeners)
	p.state = StateIdle
	p.open = false
}

func (p *Positioner) recompute() {
	var panel Size
	if p.measurer != nil {
		if measured, ok := p.measurer.PanelSize(); ok {
			panel = measured
		}
	}
	p.placement = p.opts.Place(p.position, panel, p.viewport)
}

func release(cancels *[]func()) {
	for _, cancel := range *cancels {
		if cancel != nil {
			cancel()
		}
	}
	*cancels = nil
}
