package internal

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/net/html"

	"github.com/AnatoleLucet/wig/internal/dom"
)

// WidgetClass is the root of every class hierarchy. It owns the options all
// widgets share and the base Draw, Redraw and Resize hooks.
var WidgetClass *Class

func init() {
	WidgetClass = newClass(ClassDef{
		Name: "Widget",
		Types: map[string]string{
			"class":        TypeString,
			"container":    TypeElement,
			"debug":        TypeBoolean,
			"id":           TypeString,
			"styles":       TypeObject + "|" + TypeString,
			"disabled":     TypeBoolean,
			"element":      TypeElement,
			"active":       TypeBoolean,
			"visible":      TypeBoolean,
			"needs_resize": TypeBoolean,
			"interacting":  TypeBoolean,
			"presets":      TypeObject,
			"preset":       TypeString,
			"title":        TypeString,
		},
		Options: map[string]any{
			"debug":        false,
			"disabled":     false,
			"active":       true,
			"visible":      true,
			"needs_resize": true,
			"interacting":  false,
			"presets":      map[string]map[string]any{},
		},
		Events: map[string][]Handler{
			"set_container": {notDynamic("container")},
			"set_class":     {notDynamic("class")},
			"set_element":   {notDynamic("element")},
			"set_preset": {func(w *Widget, args ...any) any {
				preset, _ := args[0].(string)
				w.applyPreset(preset)
				return nil
			}},
			"set": {func(w *Widget, args ...any) any {
				key := args[0].(string)
				if _, ok := w.presetOrigins[key]; ok && !w.presetting {
					w.presetOrigins[key] = args[1]
				}
				return nil
			}},
			"set_visible": {func(w *Widget, args ...any) any {
				switch args[0] {
				case true:
					w.EnableDraw()
				case false:
					w.DisableDrawChildren()
				}
				return nil
			}},
		},
		Draw:   drawWidget,
		Redraw: redrawWidget,
		Resize: resizeWidget,
	}, nil)
}

func notDynamic(key string) Handler {
	return func(w *Widget, args ...any) any {
		w.logger().Warning().
			Str("widget", w.class.name).
			Str("key", key).
			Log("option is not dynamic")
		return nil
	}
}

// drawWidget runs once, on the first redraw.
func drawWidget(w *Widget) {
	E := w.element

	if container, ok := w.options["container"].(*html.Node); ok && container != nil {
		dom.Append(container, E)
	}
	dom.AddClass(E, "aux-widget")

	w.DisableTransitions()
	w.runtime.AddNext(NewTask(w.class.name+".transitions", func() {
		if w.IsDestructed() {
			return
		}
		w.EnableTransitions()
	}), PriorityRedraw)

	if cls, _ := w.options["class"].(string); cls != "" {
		for _, c := range strings.Fields(cls) {
			dom.AddClass(E, c)
		}
	}

	w.ScheduleResize()
}

func redrawWidget(w *Widget) {
	I := w.invalid
	O := w.options
	E := w.element

	if I.Validate("visible") {
		switch O["visible"] {
		case true:
			dom.RemoveClass(E, "aux-hide")
			dom.AddClass(E, "aux-show")
		case false:
			dom.RemoveClass(E, "aux-show")
			dom.AddClass(E, "aux-hide")
			w.DisableDraw()
			return
		}
	}

	if I.Validate("active") {
		active, _ := O["active"].(bool)
		dom.ToggleClass(E, "aux-inactive", !active)
	}

	if I.Validate("disabled") {
		disabled, _ := O["disabled"].(bool)
		dom.ToggleClass(E, "aux-disabled", disabled)
	}

	if I.Validate("id") {
		if id, _ := O["id"].(string); id != "" {
			dom.SetAttr(E, "id", id)
		} else {
			dom.RemoveAttr(E, "id")
		}
	}

	if I.Validate("title") {
		if title, ok := O["title"].(string); ok {
			dom.SetAttr(E, "title", title)
		}
	}

	if I.Validate("styles") {
		w.SetStyles(O["styles"])
	}

	if I.Validate("needs_resize") {
		if needs, _ := O["needs_resize"].(bool); needs {
			O["needs_resize"] = false
			w.runtime.AfterFrame(w.ScheduleResize)
		}
	}

	q := w.drawQueue
	w.drawQueue = nil
	for _, e := range q {
		e.fn(w)
	}
}

func resizeWidget(w *Widget) {
	w.Emit("resize")
	if w.class.HasOption("resized") {
		w.Set("resized", true)
	}
	if w.HasEventListeners("resized") {
		w.runtime.AfterFrame(func() { w.Emit("resized") })
	}
}

// applyPreset sets the options of preset, and restores the options a
// previous preset changed but this one does not.
func (w *Widget) applyPreset(preset string) {
	if w.lastPreset != "" {
		w.RemoveClass("aux-preset-" + w.lastPreset)
	}
	w.lastPreset = preset
	if preset == "" {
		return
	}
	w.AddClass("aux-preset-" + preset)

	options := presetOptions(w.options["presets"], preset)

	w.presetting = true
	defer func() { w.presetting = false }()

	for _, key := range slices.Sorted(maps.Keys(options)) {
		if _, ok := w.presetOrigins[key]; !ok {
			w.presetOrigins[key] = w.options[key]
		}
		w.Set(key, options[key])
	}
	for _, key := range slices.Sorted(maps.Keys(w.presetOrigins)) {
		if _, ok := options[key]; !ok {
			w.Set(key, w.presetOrigins[key])
		}
	}
}

func presetOptions(presets any, name string) map[string]any {
	switch p := presets.(type) {
	case map[string]map[string]any:
		return p[name]
	case map[string]any:
		options, _ := p[name].(map[string]any)
		return options
	}
	return nil
}

func sortedStyles(m map[string]string) [][2]string {
	props := make([][2]string, 0, len(m))
	for _, key := range slices.Sorted(maps.Keys(m)) {
		props = append(props, [2]string{key, m[key]})
	}
	return props
}

func toString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}
