package internal

import (
	"errors"
	"fmt"
	"slices"

	tp "github.com/xlab/treeprint"

	"github.com/AnatoleLucet/wig/internal/dom"
)

var (
	// ErrDuplicateChild is returned when adding a widget to a parent twice.
	ErrDuplicateChild = errors.New("child added twice")
	// ErrNotChild is returned when removing a widget from a parent it does not belong to.
	ErrNotChild = errors.New("not a child")
)

func (w *Widget) Parent() *Widget { return w.parent }

// SetParent moves the widget below parent, removing it from its previous
// parent. A mounted widget given a parent is unmounted.
func (w *Widget) SetParent(parent *Widget) {
	w.setParent(parent, false)
}

func (w *Widget) setParent(parent *Widget, keepChild bool) {
	old := w.parent
	if old == parent {
		return
	}
	w.parent = parent

	if parent != nil && w.mounted {
		w.runtime.Unmount(w)
	}
	if old != nil && !keepChild {
		_ = old.RemoveChild(w)
	}
}

func (w *Widget) HasChild(child *Widget) bool {
	return slices.Contains(w.children, child)
}

// AddChild appends child to the children and aligns its draw state with w.
func (w *Widget) AddChild(child *Widget) error {
	if w.HasChild(child) {
		return fmt.Errorf("%w: %s in %s", ErrDuplicateChild, child.class.name, w.class.name)
	}

	child.SetParent(w)
	w.children = append(w.children, child)

	if w.drawn {
		child.EnableDraw()
	} else {
		child.DisableDraw()
	}
	child.TriggerResize()
	w.Emit("child_added", child)

	return nil
}

func (w *Widget) AddChildren(children ...*Widget) error {
	var errs []error
	for _, c := range children {
		errs = append(errs, w.AddChild(c))
	}
	return errors.Join(errs...)
}

// RemoveChild detaches child and stops drawing it.
func (w *Widget) RemoveChild(child *Widget) error {
	if w.IsDestructed() {
		return nil
	}
	if child.parent == w {
		child.setParent(nil, true)
	}
	child.DisableDraw()

	i := slices.Index(w.children, child)
	if i < 0 {
		w.logger().Err().
			Str("widget", w.class.name).
			Str("child", child.class.name).
			Log("not a child")
		return fmt.Errorf("%w: %s of %s", ErrNotChild, child.class.name, w.class.name)
	}

	w.children = slices.Delete(w.children, i, i+1)
	w.Emit("child_removed", child)
	return nil
}

func (w *Widget) RemoveChildren(children ...*Widget) error {
	var errs []error
	for _, c := range children {
		errs = append(errs, w.RemoveChild(c))
	}
	return errors.Join(errs...)
}

// AppendChild moves the child's element into w's element and adds it.
func (w *Widget) AppendChild(child *Widget) error {
	dom.Append(w.element, child.element)
	return w.AddChild(child)
}

func (w *Widget) AppendChildren(children ...*Widget) error {
	var errs []error
	for _, c := range children {
		errs = append(errs, w.AppendChild(c))
	}
	return errors.Join(errs...)
}

// Children returns the direct children in insertion order.
func (w *Widget) Children() []*Widget {
	return slices.Clone(w.children)
}

// AllChildren returns all descendants, depth first.
func (w *Widget) AllChildren() []*Widget {
	var ret []*Widget
	for _, c := range w.children {
		ret = append(ret, c)
		ret = append(ret, c.AllChildren()...)
	}
	return ret
}

// VisibleChildren returns the descendants not hidden themselves or below a
// hidden widget, depth first.
func (w *Widget) VisibleChildren() []*Widget {
	var ret []*Widget
	for _, c := range w.children {
		if c.Hidden() {
			continue
		}
		ret = append(ret, c)
		ret = append(ret, c.VisibleChildren()...)
	}
	return ret
}

// Dump renders the subtree below w for debugging.
func (w *Widget) Dump() string {
	p := tp.New()
	w.dump(p)
	return p.String()
}

func (w *Widget) dump(p tp.Tree) {
	if len(w.children) == 0 {
		p.AddNode(w.describe())
		return
	}
	branch := p.AddBranch(w.describe())
	for _, c := range w.children {
		c.dump(branch)
	}
}

func (w *Widget) describe() string {
	state := "hidden"
	switch {
	case w.IsDestructed():
		state = "destroyed"
	case w.drawn:
		state = "drawn"
	}
	if w.needsRedraw {
		state += ", needs redraw"
	}
	return fmt.Sprintf("%s <%s> (%s)", w.class.name, w.element.Data, state)
}
