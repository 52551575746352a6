// internal/domain/widget/layout.go
package widget

// LayoutRequest asks for the widget geometry of a client viewport
type LayoutRequest struct {
	Viewport Size   `json:"viewport" binding:"required"`
	Trigger  *Point `json:"trigger,omitempty"`
	Panel    Size   `json:"panel"`
	Released bool   `json:"released"`
}

// Layout is the computed widget geometry
type Layout struct {
	Viewport Size           `json:"viewport"`
	Trigger  Point          `json:"trigger"`
	Panel    PanelPlacement `json:"panel"`
}

// Compute resolves a layout request. A missing trigger starts at the
// initial position; a released trigger is snapped to an edge.
func (o Options) Compute(req LayoutRequest) Layout {
	trigger := o.InitialPosition(req.Viewport)
	if req.Trigger != nil {
		trigger = o.ClampTrigger(*req.Trigger, req.Viewport)
	}
	if req.Released {
		trigger = o.Snap(trigger, req.Viewport)
	}

	return Layout{
		Viewport: req.Viewport,
		Trigger:  trigger,
		Panel:    o.Place(trigger, req.Panel, req.Viewport),
	}
}
