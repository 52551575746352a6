// internal/domain/widget/geometry.go
package widget

import (
	"math"

	"github.com/pressart/storefront-api/internal/config"
)

// Point is a position in viewport pixels
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height pair in viewport pixels
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PanelPlacement is the top-left corner of the open panel
type PanelPlacement struct {
	Left     float64 `json:"left"`
	Top      float64 `json:"top"`
	OpenLeft bool    `json:"openLeft"`
}

// Options holds the widget geometry
type Options struct {
	ControlSize  float64
	SnapMargin   float64
	PanelMargin  float64
	DefaultPanel Size
}

// DefaultOptions returns the storefront widget geometry
func DefaultOptions() Options {
	return Options{
		ControlSize:  64,
		SnapMargin:   24,
		PanelMargin:  16,
		DefaultPanel: Size{Width: 320, Height: 480},
	}
}

// OptionsFromConfig builds options from the widget configuration. Zero or
// negative values count as unset and keep the defaults.
func OptionsFromConfig(cfg config.WidgetConfig) Options {
	opts := DefaultOptions()
	if cfg.ControlSize > 0 {
		opts.ControlSize = cfg.ControlSize
	}
	if cfg.SnapMargin > 0 {
		opts.SnapMargin = cfg.SnapMargin
	}
	if cfg.PanelMargin > 0 {
		opts.PanelMargin = cfg.PanelMargin
	}
	if cfg.PanelWidth > 0 {
		opts.DefaultPanel.Width = cfg.PanelWidth
	}
	if cfg.PanelHeight > 0 {
		opts.DefaultPanel.Height = cfg.PanelHeight
	}
	return opts
}

// clamp bounds v to [lo, hi]. When the range is empty lo wins.
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// ClampTrigger keeps the control fully inside the viewport
func (o Options) ClampTrigger(p Point, viewport Size) Point {
	return Point{
		X: clamp(p.X, 0, math.Max(0, viewport.Width-o.ControlSize)),
		Y: clamp(p.Y, 0, math.Max(0, viewport.Height-o.ControlSize)),
	}
}

// Snap moves a released control against the nearer vertical edge of the
// viewport and keeps its vertical position inside the margin band
func (o Options) Snap(p Point, viewport Size) Point {
	size, margin := o.ControlSize, o.SnapMargin

	x := margin
	if p.X+size/2 >= viewport.Width/2 {
		x = viewport.Width - size - margin
	}

	var y float64
	lo, hi := margin, viewport.Height-size-margin
	if lo > hi {
		y = (viewport.Height - size) / 2
	} else {
		y = clamp(p.Y, lo, hi)
	}

	return o.ClampTrigger(Point{X: x, Y: y}, viewport)
}

// Place computes where the panel opens next to the trigger. The result is
// a pure function of its inputs.
func (o Options) Place(trigger Point, panel, viewport Size) PanelPlacement {
	if panel.Width <= 0 {
		panel.Width = o.DefaultPanel.Width
	}
	if panel.Height <= 0 {
		panel.Height = o.DefaultPanel.Height
	}
	size, margin := o.ControlSize, o.PanelMargin

	openLeft := trigger.X+size+margin+panel.Width > viewport.Width-margin

	left := trigger.X + size + margin
	if openLeft {
		left = trigger.X - panel.Width - margin
	}
	left = clamp(left, margin, viewport.Width-margin-panel.Width)

	top := trigger.Y + size/2 - panel.Height/2
	top = clamp(top, margin, viewport.Height-margin-panel.Height)

	return PanelPlacement{Left: left, Top: top, OpenLeft: openLeft}
}

// InitialPosition is where the control sits before the first drag: near
// the right edge, vertically centred
func (o Options) InitialPosition(viewport Size) Point {
	return o.ClampTrigger(Point{
		X: viewport.Width - o.ControlSize - 36,
		Y: viewport.Height / 2,
	}, viewport)
}
