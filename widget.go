package wig

import (
	"golang.org/x/net/html"

	"github.com/AnatoleLucet/wig/internal"
	"github.com/AnatoleLucet/wig/internal/dom"
)

type (
	// Widget is an instance of a Class.
	Widget = internal.Widget
	// WidgetOption configures NewWidget.
	WidgetOption = internal.WidgetOption
	// Invalid tracks the options changed since the last redraw.
	Invalid = internal.Invalid
)

// NewWidget creates a widget of class with options on top of the class
// defaults. Options named "on<event>" holding a Handler subscribe to event.
func NewWidget(class *Class, options map[string]any, opts ...WidgetOption) *Widget {
	return internal.NewWidget(class, options, opts...)
}

// WithRuntime creates the widget on r instead of the default runtime.
func WithRuntime(r *Runtime) WidgetOption { return internal.WithRuntime(r) }

// WithParent adds the widget to parent once initialized.
func WithParent(parent *Widget) WidgetOption { return internal.WithParent(parent) }

// Get returns the option key of w as a T, or the zero value if it holds
// something else.
func Get[T any](w *Widget, key string) T {
	return as[T](w.Get(key))
}

// Meta returns the private value key of w as a T.
func Meta[T any](w *Widget, key string) T {
	return as[T](w.Meta(key))
}

// Mount makes w a root of its runtime, so it draws.
func Mount(w *Widget) {
	w.Runtime().Mount(w)
}

// Render returns the HTML of the widget's element.
func Render(w *Widget) (string, error) {
	return dom.Render(w.Element())
}

// Element creates a detached element, e.g. to use as a container.
func Element(tag string, classes ...string) *html.Node {
	return dom.Element(tag, classes...)
}
