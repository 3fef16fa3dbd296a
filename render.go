package wig

import "github.com/AnatoleLucet/wig/internal"

type (
	// RenderTask is a class render task, run when one of its dependencies
	// changes.
	RenderTask = internal.RenderTask
	// Step continues a render task later in the frame or in the next one.
	Step = internal.Step
	// Phase orders render tasks around the redraw hook.
	Phase = internal.Phase
)

const (
	// PhaseMeasure tasks run before redraws and should only read.
	PhaseMeasure = internal.PhaseMeasure
	// PhaseApply tasks run after redraws.
	PhaseApply = internal.PhaseApply

	// ResizeDependency makes a render task run again after each resize.
	ResizeDependency = internal.ResizeDependency
)

func DeferMeasure(fn func(w *Widget) *Step) *Step     { return internal.DeferMeasure(fn) }
func DeferApply(fn func(w *Widget) *Step) *Step       { return internal.DeferApply(fn) }
func DeferMeasureNext(fn func(w *Widget) *Step) *Step { return internal.DeferMeasureNext(fn) }
func DeferApplyNext(fn func(w *Widget) *Step) *Step   { return internal.DeferApplyNext(fn) }

// Recalculation returns a measure task calling fn whenever one of the
// dependencies changes.
func Recalculation(name string, dependencies []string, fn func(w *Widget)) RenderTask {
	return internal.Recalculation(name, dependencies, fn)
}
