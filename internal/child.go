package internal

import (
	"maps"
	"slices"
	"strings"

	"golang.org/x/net/html"

	"github.com/AnatoleLucet/wig/internal/dom"
)

// ChildWidgetConfig describes a widget created and owned by a parent widget.
type ChildWidgetConfig struct {
	Name string

	// Create is the class of the child. A config without one is skipped.
	Create *Class

	// Option of the parent toggling the child, "show_<name>" if empty. The
	// child exists and is attached while the option holds anything but false,
	// so nil, "" and 0 show it too.
	Option string
	// Fixed children exist regardless of Option.
	Fixed bool
	// Show is the default of Option when the parent does not declare it.
	Show bool

	// Append places the child's element into the parent's DOM. By default it
	// is appended to the parent element, or inserted before the first match
	// of AppendBefore if set.
	Append       func(parent, child *Widget)
	AppendBefore string

	// InheritOptions shares every non-base option of the child with the
	// parent, except BlacklistOptions.
	InheritOptions   bool
	BlacklistOptions []string
	// MapOptions forwards parent options to differently named child options.
	MapOptions map[string]string
	// DefaultOptions returns options the child is created with.
	DefaultOptions func(parent *Widget) map[string]any

	// UsersetIgnore drops user interaction on the child. Otherwise it is
	// relayed to the parent, as "<name>.<key>" unless UsersetDelegate or
	// InheritOptions is set.
	UsersetIgnore   bool
	UsersetDelegate bool

	// StaticEvents are added to the child class.
	StaticEvents map[string][]Handler

	// ToggleClass adds "aux-has-<name>" to the parent while the child is shown.
	ToggleClass bool

	// NoMapInteracting stops the child's interacting option from driving the
	// parent's.
	NoMapInteracting bool
}

// DefineChildWidget registers the static events creating, forwarding options
// to, and destroying a child widget of c's instances. Each option of the
// child is settable on the parent as "<name>.<option>".
func (c *Class) DefineChildWidget(name string, cfg ChildWidgetConfig) {
	if cfg.Create == nil {
		tracer().Errorf("class %s: child widget %q has no class, skipping", c.name, name)
		return
	}

	key := cfg.Option
	if key == "" {
		key = "show_" + name
	}

	events := make(map[string][]Handler)
	if !cfg.UsersetIgnore {
		events["userset"] = []Handler{func(child *Widget, args ...any) any {
			k, _ := args[0].(string)
			if !cfg.InheritOptions && !cfg.UsersetDelegate {
				k = name + "." + k
			}
			if child.parent != nil {
				child.parent.Userset(k, args[1])
			}
			return false
		}}
	}
	for event, handlers := range cfg.StaticEvents {
		events[event] = append(events[event], handlers...)
	}
	if !cfg.NoMapInteracting {
		events["set_interacting"] = append(events["set_interacting"], func(child *Widget, args ...any) any {
			parent := child.parent
			if parent == nil {
				return nil
			}
			if v, _ := args[0].(bool); v {
				parent.StartInteracting()
			} else {
				parent.StopInteracting()
			}
			return nil
		})
	}

	childClass := newClass(ClassDef{
		Name:   cfg.Create.name,
		Events: events,
	}, cfg.Create)

	c.AddStaticEvent("initialize_children", func(w *Widget, args ...any) any {
		if w.childWidgets[name] == nil {
			w.Set(key, w.options[key])
		}
		return nil
	})

	c.AddStaticEvent("destroy", func(w *Widget, args ...any) any {
		if child := w.childWidgets[name]; child != nil {
			delete(w.childWidgets, name)
			child.Destroy()
		}
		return nil
	})

	c.AddStaticEvent("set_"+key, func(w *Widget, args ...any) any {
		child := w.childWidgets[name]
		show := cfg.Fixed || args[0] != false

		switch {
		case show && child == nil:
			child = NewWidget(childClass, childOptions(w, name, childClass, cfg), WithRuntime(w.runtime))
			w.childWidgets[name] = child
			if err := w.AddChild(child); err != nil {
				w.logger().Err().Err(err).Str("widget", c.name).Str("child", name).Log("cannot add child widget")
			}
		case !show && child != nil:
			if !cfg.NoMapInteracting {
				if v, _ := child.Get("interacting").(bool); v {
					w.StopInteracting()
				}
			}
			delete(w.childWidgets, name)
			if cfg.ToggleClass {
				w.RemoveClass("aux-has-" + name)
			}
			child.Destroy()
		}

		w.TriggerResize()
		return nil
	})

	c.AddStaticEvent("redraw", func(w *Widget, args ...any) any {
		child := w.childWidgets[name]
		if child == nil || child.element.Parent != nil {
			return nil
		}
		if !cfg.Fixed && w.options[key] == false {
			return nil
		}

		if cfg.ToggleClass {
			w.AddClass("aux-has-" + name)
		}
		appendChildWidget(w, child, cfg)
		w.TriggerResize()
		return nil
	})

	childTypes := childClass.Types()

	for _, opt := range slices.Sorted(maps.Keys(childTypes)) {
		dotted := name + "." + opt
		c.AddStaticEvent("set_"+dotted, func(w *Widget, args ...any) any {
			if child := w.childWidgets[name]; child != nil {
				child.Set(opt, args[0])
			}
			return nil
		})
		if _, ok := c.types[dotted]; !ok {
			c.types[dotted] = childTypes[opt]
		}
	}

	if cfg.InheritOptions {
		for _, opt := range slices.Sorted(maps.Keys(childTypes)) {
			if WidgetClass.HasOption(opt) || slices.Contains(cfg.BlacklistOptions, opt) {
				continue
			}
			c.AddStaticEvent("set_"+opt, func(w *Widget, args ...any) any {
				if child := w.childWidgets[name]; child != nil {
					child.Set(opt, args[0])
				}
				return nil
			})
			if !c.HasOption(opt) {
				c.types[opt] = childTypes[opt]
			}
		}
	}

	for _, parentKey := range slices.Sorted(maps.Keys(cfg.MapOptions)) {
		childKey := cfg.MapOptions[parentKey]
		if !c.HasOption(parentKey) {
			c.types[parentKey] = childClass.OptionType(childKey)
			if def, ok := childClass.Default(childKey); ok {
				c.options[parentKey] = def
			}
		}
		c.AddStaticEvent("set_"+parentKey, func(w *Widget, args ...any) any {
			if child := w.childWidgets[name]; child != nil {
				child.Set(childKey, args[0])
			}
			return nil
		})
	}

	if !c.HasOption(key) {
		c.types[key] = TypeBoolean
		c.options[key] = cfg.Fixed || cfg.Show
	}
}

func appendChildWidget(w, child *Widget, cfg ChildWidgetConfig) {
	if cfg.Append != nil {
		cfg.Append(w, child)
		return
	}
	if cfg.AppendBefore != "" {
		ref, err := dom.Query(w.element, cfg.AppendBefore)
		if err != nil {
			w.logger().Warning().Err(err).Str("widget", w.class.name).Log("bad append selector")
		}
		if ref != nil && ref.Parent != nil {
			dom.InsertBefore(ref.Parent, child.element, ref)
			return
		}
	}
	dom.Append(w.element, child.element)
}

// childOptions collects the options a child widget is created with from the
// parent's options.
func childOptions(parent *Widget, name string, childClass *Class, cfg ChildWidgetConfig) map[string]any {
	ret := make(map[string]any)
	if cfg.DefaultOptions != nil {
		maps.Copy(ret, cfg.DefaultOptions(parent))
	}

	prefix := name + "."
	for key, v := range parent.options {
		if rest, ok := strings.CutPrefix(key, prefix); ok {
			ret[rest] = v
			continue
		}
		if !cfg.InheritOptions || slices.Contains(cfg.BlacklistOptions, key) {
			continue
		}
		if childClass.HasOption(key) && !WidgetClass.HasOption(key) {
			ret[key] = v
		}
	}

	for parentKey, childKey := range cfg.MapOptions {
		v, ok := parent.options[parentKey]
		if !ok {
			continue
		}
		if _, given := ret[childKey]; given {
			if def, _ := parent.class.Default(parentKey); sameValue(v, def) {
				continue
			}
		}
		ret[childKey] = v
	}

	return ret
}

// InheritChildOptions makes every option of src not declared on dst settable
// on dst, forwarding it to the child widget childName.
func InheritChildOptions(dst *Class, childName string, src *Class, blacklist ...string) {
	for _, opt := range slices.Sorted(maps.Keys(src.Types())) {
		if dst.HasOption(opt) || slices.Contains(blacklist, opt) {
			continue
		}
		dst.AddStaticEvent("set_"+opt, func(w *Widget, args ...any) any {
			if child := w.childWidgets[childName]; child != nil {
				child.Set(opt, args[0])
			}
			return nil
		})
		dst.types[opt] = src.OptionType(opt)
		if def, ok := src.Default(opt); ok {
			dst.options[opt] = def
		}
	}
}

// ChildElementConfig describes a DOM element created and owned by a widget.
type ChildElementConfig struct {
	Name string

	// Option of the parent toggling the element, "show_<name>" if empty.
	Option string
	// Show is the default of Option when the parent does not declare it.
	Show bool
	// DisplayCheck decides visibility from the option value. By default the
	// element is shown unless the value is false.
	DisplayCheck func(value any) bool

	// Create builds the element, a div with class "aux-<name>" by default.
	Create func(w *Widget) *html.Node
	// Append places the element, appending it to the widget element by default.
	Append func(w *Widget, e *html.Node)

	// ToggleClass adds "aux-has-<name>" to the widget while the element is shown.
	ToggleClass bool

	// Draw runs once per redraw after the option or any of DrawOptions
	// changed, while the element is shown.
	DrawOptions []string
	Draw        func(w *Widget)
}

// DefineChildElement registers the static events creating and removing a
// child element of c's instances.
func (c *Class) DefineChildElement(name string, cfg ChildElementConfig) {
	key := cfg.Option
	if key == "" {
		key = "show_" + name
	}

	show := func(value any) bool {
		if cfg.DisplayCheck != nil {
			return cfg.DisplayCheck(value)
		}
		return value != false
	}

	create := cfg.Create
	if create == nil {
		create = func(w *Widget) *html.Node {
			return dom.Element("div", "aux-"+name)
		}
	}
	appendElement := cfg.Append
	if appendElement == nil {
		appendElement = func(w *Widget, e *html.Node) {
			dom.Append(w.element, e)
		}
	}

	c.AddStaticEvent("initialize_children", func(w *Widget, args ...any) any {
		w.Set(key, w.options[key])
		return nil
	})

	c.AddStaticEvent("destroy", func(w *Widget, args ...any) any {
		if e := w.childElements[name]; e != nil {
			delete(w.childElements, name)
			dom.Remove(e)
		}
		return nil
	})

	c.AddStaticEvent("set_"+key, func(w *Widget, args ...any) any {
		e := w.childElements[name]
		visible := show(args[0])
		if visible == (e != nil) {
			return nil
		}

		if visible {
			e = create(w)
			w.childElements[name] = e
			appendElement(w, e)
		} else {
			delete(w.childElements, name)
			dom.Remove(e)
		}

		if cfg.ToggleClass {
			dom.ToggleClass(w.element, "aux-has-"+name, visible)
		}
		w.TriggerResize()
		return nil
	})

	if cfg.Draw != nil {
		for _, opt := range append(slices.Clone(cfg.DrawOptions), key) {
			c.AddStaticEvent("set_"+opt, func(w *Widget, args ...any) any {
				if show(w.options[key]) {
					w.DrawOnce(name, cfg.Draw)
				}
				return nil
			})
		}
	}

	if !c.HasOption(key) {
		c.types[key] = TypeBoolean
		c.options[key] = cfg.Show
	}
}
