package internal

import (
	"maps"
	"slices"
	"strings"
)

// Handler is a static or instance event handler. Dispatch stops at the first
// handler returning a non-nil value, which becomes the result of Emit.
type Handler func(w *Widget, args ...any) any

// Method is a named behavior resolved through the class hierarchy.
type Method func(w *Widget, args ...any) any

// Trait is a bundle of defaults, types, events and methods mixed into classes.
type Trait struct {
	Name    string
	Options map[string]any
	Types   map[string]string
	Events  map[string][]Handler
	Methods map[string]Method
}

// ClassDef describes a class to build with DefineClass.
type ClassDef struct {
	Name string

	// Extends defaults to WidgetClass.
	Extends    *Class
	Implements []*Trait

	// Options holds default values, Types the type tag of each option.
	Options map[string]any
	Types   map[string]string
	Events  map[string][]Handler
	Methods map[string]Method

	// Tag of the element created for instances, "div" if empty.
	Tag string

	// Hooks resolve to the nearest class defining them. Overrides chain to
	// their ancestor explicitly, e.g. WidgetClass.Redraw(w).
	Initialize func(w *Widget)
	Draw       func(w *Widget)
	Redraw     func(w *Widget)
	Resize     func(w *Widget)
	// Coerce may normalize a value before Set stores it. Options given to
	// NewWidget pass through it too, once all of them are merged.
	Coerce func(w *Widget, key string, value any) any

	ChildWidgets  []ChildWidgetConfig
	ChildElements []ChildElementConfig

	// Renders run after the tasks inherited from the parent class.
	Renders []RenderTask
}

// Class is a built widget class. Defaults, types, methods and hooks fall
// through to the parent class. Events accumulate along the hierarchy.
type Class struct {
	name   string
	parent *Class
	traits []*Trait
	tag    string

	options map[string]any
	types   map[string]string
	events  map[string][]Handler
	methods map[string]Method

	initialize func(w *Widget)
	draw       func(w *Widget)
	redraw     func(w *Widget)
	resize     func(w *Widget)
	coerce     func(w *Widget, key string, value any) any

	renders []RenderTask
}

// DefineClass builds a class.
//
// Own defaults, types and methods win over those of traits, and earlier
// traits win over later ones. Static events run inherited handlers first,
// then the handlers of each trait in order, then the class's own handlers.
// AddStaticEvent appends after all of them.
func DefineClass(def ClassDef) *Class {
	parent := def.Extends
	if parent == nil {
		parent = WidgetClass
	}

	c := newClass(def, parent)

	for _, cfg := range def.ChildElements {
		c.DefineChildElement(cfg.Name, cfg)
	}
	for _, cfg := range def.ChildWidgets {
		c.DefineChildWidget(cfg.Name, cfg)
	}

	return c
}

func newClass(def ClassDef, parent *Class) *Class {
	c := &Class{
		name:   def.Name,
		parent: parent,
		traits: slices.Clone(def.Implements),
		tag:    def.Tag,

		options: maps.Clone(def.Options),
		types:   maps.Clone(def.Types),
		events:  make(map[string][]Handler),
		methods: maps.Clone(def.Methods),

		initialize: def.Initialize,
		draw:       def.Draw,
		redraw:     def.Redraw,
		resize:     def.Resize,
		coerce:     def.Coerce,

		renders: slices.Clone(def.Renders),
	}
	if c.name == "" {
		c.name = "Anonymous"
	}
	if c.options == nil {
		c.options = make(map[string]any)
	}
	if c.types == nil {
		c.types = make(map[string]string)
	}
	if c.methods == nil {
		c.methods = make(map[string]Method)
	}

	for _, t := range c.traits {
		if t == nil {
			continue
		}
		for key, v := range t.Options {
			if _, ok := c.options[key]; !ok {
				c.options[key] = v
			}
		}
		for key, v := range t.Types {
			if _, ok := c.types[key]; !ok {
				c.types[key] = v
			}
		}
		for name, m := range t.Methods {
			if _, ok := c.methods[name]; !ok {
				c.methods[name] = m
			} else {
				tracer().Debugf("class %s: trait %s method %s shadowed", c.name, t.Name, name)
			}
		}
		for event, handlers := range t.Events {
			c.events[event] = append(c.events[event], handlers...)
		}
	}

	for event, handlers := range def.Events {
		c.events[event] = append(c.events[event], handlers...)
	}

	for key := range c.options {
		if c.OptionType(key) == "" && !strings.HasPrefix(key, "_") {
			tracer().Errorf("class %s: default for %q has no type", c.name, key)
		}
	}

	return c
}

func (c *Class) Name() string   { return c.name }
func (c *Class) Parent() *Class { return c.parent }

// Tag returns the element tag of instances.
func (c *Class) Tag() string {
	for k := c; k != nil; k = k.parent {
		if k.tag != "" {
			return k.tag
		}
	}
	return "div"
}

// IsSubclassOf reports whether c is other or derives from it.
func (c *Class) IsSubclassOf(other *Class) bool {
	for k := c; k != nil; k = k.parent {
		if k == other {
			return true
		}
	}
	return false
}

func (c *Class) HasOption(name string) bool {
	return c.OptionType(name) != ""
}

// OptionType returns the type tag of an option, or "" if it is not declared.
func (c *Class) OptionType(name string) string {
	for k := c; k != nil; k = k.parent {
		if t, ok := k.types[name]; ok {
			return t
		}
	}
	return ""
}

// Default returns the default of an option and whether there is one.
func (c *Class) Default(name string) (any, bool) {
	for k := c; k != nil; k = k.parent {
		if v, ok := k.options[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Defaults returns all defaults, merged along the hierarchy.
func (c *Class) Defaults() map[string]any {
	ret := make(map[string]any)
	if c.parent != nil {
		ret = c.parent.Defaults()
	}
	maps.Copy(ret, c.options)
	return ret
}

// Types returns all type tags, merged along the hierarchy.
func (c *Class) Types() map[string]string {
	ret := make(map[string]string)
	if c.parent != nil {
		ret = c.parent.Types()
	}
	maps.Copy(ret, c.types)
	return ret
}

// DefineOption declares an option after the class was built. An optional
// default may follow the type.
func (c *Class) DefineOption(name, typ string, def ...any) {
	c.types[name] = typ
	if len(def) > 0 {
		c.options[name] = def[0]
	}
}

// AddStaticEvent appends a handler for event.
func (c *Class) AddStaticEvent(event string, h Handler) {
	c.events[event] = append(c.events[event], h)
}

// HasStaticEvent reports whether c or an ancestor handles event.
func (c *Class) HasStaticEvent(event string) bool {
	for k := c; k != nil; k = k.parent {
		if len(k.events[event]) > 0 {
			return true
		}
	}
	return false
}

// StaticEvents returns the handlers of event in dispatch order.
func (c *Class) StaticEvents(event string) []Handler {
	var ret []Handler
	if c.parent != nil {
		ret = c.parent.StaticEvents(event)
	}
	return append(ret, c.events[event]...)
}

func (c *Class) Method(name string) (Method, bool) {
	for k := c; k != nil; k = k.parent {
		if m, ok := k.methods[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// Trait flattens the class, without what it inherits from WidgetClass, into
// a trait for use in Implements.
func (c *Class) Trait() *Trait {
	t := &Trait{
		Name:    c.name,
		Options: make(map[string]any),
		Types:   make(map[string]string),
		Events:  make(map[string][]Handler),
		Methods: make(map[string]Method),
	}

	for k := c; k != nil && k != WidgetClass; k = k.parent {
		for key, v := range k.options {
			if _, ok := t.Options[key]; !ok {
				t.Options[key] = v
			}
		}
		for key, v := range k.types {
			if _, ok := t.Types[key]; !ok {
				t.Types[key] = v
			}
		}
		for name, m := range k.methods {
			if _, ok := t.Methods[name]; !ok {
				t.Methods[name] = m
			}
		}
		for event := range k.events {
			if _, ok := t.Events[event]; !ok {
				t.Events[event] = c.staticEventsBelow(event, WidgetClass)
			}
		}
	}
	return t
}

// staticEventsBelow returns the handlers of event contributed by c and its
// ancestors up to, not including, stop.
func (c *Class) staticEventsBelow(event string, stop *Class) []Handler {
	if c == nil || c == stop {
		return nil
	}
	return append(c.parent.staticEventsBelow(event, stop), c.events[event]...)
}

// Initialize runs the nearest Initialize hook of c.
func (c *Class) Initialize(w *Widget) {
	for k := c; k != nil; k = k.parent {
		if k.initialize != nil {
			k.initialize(w)
			return
		}
	}
}

// Draw runs the nearest Draw hook of c.
func (c *Class) Draw(w *Widget) {
	for k := c; k != nil; k = k.parent {
		if k.draw != nil {
			k.draw(w)
			return
		}
	}
}

// Redraw runs the nearest Redraw hook of c.
func (c *Class) Redraw(w *Widget) {
	for k := c; k != nil; k = k.parent {
		if k.redraw != nil {
			k.redraw(w)
			return
		}
	}
}

// Resize runs the nearest Resize hook of c.
func (c *Class) Resize(w *Widget) {
	for k := c; k != nil; k = k.parent {
		if k.resize != nil {
			k.resize(w)
			return
		}
	}
}

// Coerce runs the nearest Coerce hook of c, returning value unchanged if
// there is none.
func (c *Class) Coerce(w *Widget, key string, value any) any {
	for k := c; k != nil; k = k.parent {
		if k.coerce != nil {
			return k.coerce(w, key, value)
		}
	}
	return value
}
