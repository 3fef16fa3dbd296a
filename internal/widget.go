package internal

import (
	"strings"

	"github.com/joeycumines/logiface"
	"golang.org/x/net/html"

	"github.com/AnatoleLucet/wig/internal/dom"
)

// Widget is an instance of a Class: an option store with per-option
// invalidation, an element and a place in the widget tree.
type Widget struct {
	class   *Class
	runtime *Runtime

	// nil once destroyed
	options map[string]any
	invalid *Invalid
	element *html.Node

	// private per-instance state, never rendered
	meta map[string]any

	listeners map[string][]*listener

	parent   *Widget
	children []*Widget
	mounted  bool

	drawn       bool
	needsDraw   bool
	needsRedraw bool
	redrawTask  *Task
	resizeTask  *Task

	renders renderState

	drawQueue []drawEntry

	interacting int

	presetOrigins map[string]any
	lastPreset    string
	presetting    bool

	subscriptions []func()

	childWidgets  map[string]*Widget
	childElements map[string]*html.Node
}

type drawEntry struct {
	key string
	fn  func(w *Widget)
}

type widgetConfig struct {
	runtime *Runtime
	parent  *Widget
}

// WidgetOption configures widget construction.
type WidgetOption func(c *widgetConfig)

// WithRuntime creates the widget on r instead of the goroutine's runtime.
func WithRuntime(r *Runtime) WidgetOption {
	return func(c *widgetConfig) { c.runtime = r }
}

// WithParent adds the widget to parent once it is initialized.
func WithParent(parent *Widget) WidgetOption {
	return func(c *widgetConfig) { c.parent = parent }
}

// NewWidget creates an instance of class. Keys of options starting with "on"
// and holding a Handler register listeners for the rest of the key instead.
func NewWidget(class *Class, options map[string]any, opts ...WidgetOption) *Widget {
	var cfg widgetConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.runtime == nil && cfg.parent != nil {
		cfg.runtime = cfg.parent.runtime
	}
	if cfg.runtime == nil {
		cfg.runtime = GetRuntime()
	}
	if class == nil {
		class = WidgetClass
	}

	w := &Widget{
		class:     class,
		runtime:   cfg.runtime,
		options:   class.Defaults(),
		meta:      make(map[string]any),
		listeners: make(map[string][]*listener),
		needsDraw: true,

		presetOrigins: make(map[string]any),
		childWidgets:  make(map[string]*Widget),
		childElements: make(map[string]*html.Node),
	}
	w.redrawTask = NewTask(class.name+".redraw", w.redraw)
	w.resizeTask = NewTask(class.name+".resize", w.resizeIfDrawn)

	var given []string
	for key, value := range options {
		if fn, ok := asHandler(value); ok && strings.HasPrefix(key, "on") && len(key) > 2 {
			w.On(strings.ToLower(key[2:]), fn)
			continue
		}
		w.options[key] = value
		given = append(given, key)
	}
	// coerce once every option is in place, so hooks see the merged set
	for _, key := range given {
		w.options[key] = class.Coerce(w, key, w.options[key])
	}

	for key, value := range w.options {
		w.checkType(key, value)
	}

	if e, ok := w.options["element"].(*html.Node); ok && e != nil {
		w.element = e
	} else {
		w.element = dom.Element(class.Tag())
	}
	w.invalid = NewInvalid(w.options)
	for key := range class.Types() {
		w.invalid.Mark(key)
	}
	w.initRenders()

	w.Emit("initialize")
	class.Initialize(w)
	w.Emit("initialize_children")

	w.Emit("initialized")
	w.TriggerDraw()
	if preset, _ := w.options["preset"].(string); preset != "" {
		w.Set("preset", preset)
	}

	if cfg.parent != nil {
		if err := cfg.parent.AddChild(w); err != nil {
			w.logger().Err().Err(err).Str("widget", class.name).Log("cannot add to parent")
		}
	}

	return w
}

func asHandler(v any) (Handler, bool) {
	switch fn := v.(type) {
	case Handler:
		return fn, fn != nil
	case func(w *Widget, args ...any) any:
		return fn, fn != nil
	}
	return nil, false
}

func (w *Widget) Class() *Class { return w.class }
func (w *Widget) Runtime() *Runtime { return w.runtime }
func (w *Widget) Element() *html.Node { return w.element }
func (w *Widget) Invalid() *Invalid { return w.invalid }
func (w *Widget) IsDestructed() bool { return w.options == nil }
func (w *Widget) IsDrawn() bool { return w.drawn }
func (w *Widget) NeedsRedraw() bool { return w.needsRedraw }
func (w *Widget) ChildWidget(name string) *Widget {
	return w.childWidgets[name]
}
func (w *Widget) ChildElement(name string) *html.Node {
	return w.childElements[name]
}

func (w *Widget) logger() *Logger {
	if w.runtime == nil {
		return nil
	}
	return w.runtime.logger
}

// Debug returns a debug log builder if the widget's debug option is set.
func (w *Widget) Debug() *logiface.Builder[logiface.Event] {
	if debug, _ := w.Get("debug").(bool); !debug {
		return nil
	}
	return w.logger().Debug().Str("widget", w.class.name)
}

// --- Options ---------------------------------------------------------------

func (w *Widget) Get(key string) any {
	return w.options[key]
}

// Options returns a copy of the current option values.
func (w *Widget) Options() map[string]any {
	ret := make(map[string]any, len(w.options))
	for key, v := range w.options {
		ret[key] = v
	}
	return ret
}

// Set stores value. Declared options are invalidated and a redraw is
// scheduled; undeclared keys not starting with "_" are stored with a warning.
// Set emits "set" (key, value, old) and "set_<key>" (value, key, old).
func (w *Widget) Set(key string, value any) any {
	if w.IsDestructed() {
		w.logger().Warning().
			Str("widget", w.class.name).
			Str("key", key).
			Log("set on destroyed widget")
		return value
	}

	value = w.class.Coerce(w, key, value)

	if w.class.HasOption(key) {
		w.checkType(key, value)
		w.invalid.Mark(key)
		w.invalidateRenders(key)
		w.TriggerDraw()
	} else if !strings.HasPrefix(key, "_") {
		w.logger().Warning().
			Str("widget", w.class.name).
			Str("key", key).
			Any("value", value).
			Log("unknown option")
	}

	old := w.options[key]
	w.options[key] = value

	if w.HasEventListeners("set") {
		w.Emit("set", key, value, old)
	}
	if e := "set_" + key; w.HasEventListeners(e) {
		w.Emit(e, value, key, old)
	}

	return value
}

// Update sets key only if value differs from the current one.
func (w *Widget) Update(key string, value any) {
	if w.IsDestructed() || sameValue(w.options[key], value) {
		return
	}
	w.Set(key, value)
}

// Reset sets key back to its default.
func (w *Widget) Reset(key string) any {
	def, ok := w.class.Default(key)
	if !ok && !w.class.HasOption(key) {
		w.logger().Warning().
			Str("widget", w.class.name).
			Str("key", key).
			Log("reset of unknown option")
		return nil
	}
	return w.Set(key, def)
}

// Userset is Set on behalf of the user. A "userset" handler returning false
// cancels it, otherwise "useraction" is emitted afterwards.
func (w *Widget) Userset(key string, value any) bool {
	if v, ok := w.Emit("userset", key, value).(bool); ok && !v {
		return false
	}
	value = w.Set(key, value)
	w.Emit("useraction", key, value)
	return true
}

// Invalidate marks key and schedules a redraw and the render tasks
// depending on it.
func (w *Widget) Invalidate(key string) {
	w.invalid.Mark(key)
	w.invalidateRenders(key)
	w.TriggerDraw()
}

// InvalidateAll marks every declared option present on the widget.
func (w *Widget) InvalidateAll() {
	for key := range w.options {
		if w.class.HasOption(key) {
			w.invalid.Mark(key)
			w.invalidateRenders(key)
		} else if !strings.HasPrefix(key, "_") {
			w.logger().Warning().
				Str("widget", w.class.name).
				Str("key", key).
				Log("unknown option")
		}
	}
}

// AssertNoneInvalid warns about and returns the options still invalid.
func (w *Widget) AssertNoneInvalid() []string {
	pending := w.invalid.Pending()
	if len(pending) > 0 {
		w.logger().Warning().
			Str("widget", w.class.name).
			Any("invalid", pending).
			Log("options left invalid")
	}
	return pending
}

func (w *Widget) checkType(key string, value any) {
	tag := w.class.OptionType(key)
	if CheckType(tag, value) {
		return
	}
	w.logger().Warning().
		Str("widget", w.class.name).
		Str("key", key).
		Str("type", tag).
		Any("value", value).
		Log("option value does not match its type")
}

// Meta returns private per-instance state stored with SetMeta.
func (w *Widget) Meta(key string) any { return w.meta[key] }

func (w *Widget) SetMeta(key string, value any) {
	if value == nil {
		delete(w.meta, key)
		return
	}
	w.meta[key] = value
}

// Call invokes a method resolved through the class hierarchy.
func (w *Widget) Call(name string, args ...any) any {
	m, ok := w.class.Method(name)
	if !ok {
		w.logger().Warning().
			Str("widget", w.class.name).
			Str("method", name).
			Log("unknown method")
		return nil
	}
	return m(w, args...)
}

// --- Interaction -----------------------------------------------------------

// StartInteracting sets the interacting option on the first of nested calls.
func (w *Widget) StartInteracting() {
	w.interacting++
	if w.interacting == 1 {
		w.Set("interacting", true)
	}
}

// StopInteracting clears the interacting option once every start is matched.
func (w *Widget) StopInteracting() {
	if w.interacting == 0 {
		return
	}
	w.interacting--
	if w.interacting == 0 {
		w.Set("interacting", false)
	}
}

// AddSubscriptions registers functions called when the widget is destroyed.
func (w *Widget) AddSubscriptions(unsubscribe ...func()) {
	for _, fn := range unsubscribe {
		if fn != nil {
			w.subscriptions = append(w.subscriptions, fn)
		}
	}
}

// --- Element ---------------------------------------------------------------

func (w *Widget) AddClass(cls string) { dom.AddClass(w.element, cls) }
func (w *Widget) RemoveClass(cls string) { dom.RemoveClass(w.element, cls) }
func (w *Widget) HasClass(cls string) bool { return dom.HasClass(w.element, cls) }
func (w *Widget) Style(property string) string { return dom.Style(w.element, property) }

func (w *Widget) SetStyle(property, value string) {
	if err := dom.SetStyle(w.element, property, value); err != nil {
		w.logger().Warning().Err(err).Str("widget", w.class.name).Log("cannot set style")
	}
}

// SetStyles applies a styles option value: a map of properties, or a
// declaration list such as "width: 10px; color: red".
func (w *Widget) SetStyles(styles any) {
	var err error

	switch s := styles.(type) {
	case nil:
	case string:
		err = dom.SetStyleText(w.element, s)
	case map[string]string:
		err = dom.SetStyles(w.element, sortedStyles(s))
	case map[string]any:
		m := make(map[string]string, len(s))
		for k, v := range s {
			m[k] = toString(v)
		}
		err = dom.SetStyles(w.element, sortedStyles(m))
	default:
		w.logger().Warning().Str("widget", w.class.name).Any("styles", styles).Log("unsupported styles value")
	}

	if err != nil {
		w.logger().Warning().Err(err).Str("widget", w.class.name).Log("cannot set styles")
	}
}

func (w *Widget) DisableTransitions() { dom.AddClass(w.element, "aux-notransition") }
func (w *Widget) EnableTransitions() { dom.RemoveClass(w.element, "aux-notransition") }
