package reports

import (
	"context"
	"errors"
)

//go:generate mockgen -source=renderer.go -destination=./mocks/renderer_mock.go -package=mocks
type Renderer interface {
	// RenderMonth produces the output for one completed month. view is read-only.
	RenderMonth(ctx context.Context, view *MonthView) error
}

type multiRenderer []Renderer

// Multi runs every renderer in order. A failing renderer does not stop the others.
func Multi(renderers ...Renderer) Renderer {
	return multiRenderer(renderers)
}

func (m multiRenderer) RenderMonth(ctx context.Context, view *MonthView) error {
	var errs []error
	for _, r := range m {
		if err := r.RenderMonth(ctx, view); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
