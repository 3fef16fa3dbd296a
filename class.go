package wig

import "github.com/AnatoleLucet/wig/internal"

type (
	// Class is a widget class built by DefineClass.
	Class = internal.Class
	// ClassDef describes a class: its parent, traits, options and hooks.
	ClassDef = internal.ClassDef
	// Trait is a reusable bundle of options, events and methods.
	Trait = internal.Trait
	// Handler handles an event. Returning non-nil stops the dispatch.
	Handler = internal.Handler
	// Method is a named behavior looked up through the class hierarchy.
	Method = internal.Method
)

// Option type tags. Tags may be combined with "|", e.g. "number|string".
const (
	TypeNumber   = internal.TypeNumber
	TypeInt      = internal.TypeInt
	TypeString   = internal.TypeString
	TypeBoolean  = internal.TypeBoolean
	TypeArray    = internal.TypeArray
	TypeObject   = internal.TypeObject
	TypeFunction = internal.TypeFunction
	TypeElement  = internal.TypeElement
	TypeAny      = internal.TypeAny
)

// WidgetClass is the base class of every widget.
var WidgetClass = internal.WidgetClass

// DefineClass builds a class from def. Without Extends it derives from
// WidgetClass.
func DefineClass(def ClassDef) *Class {
	return internal.DefineClass(def)
}

// CheckType reports whether v satisfies the type tag.
func CheckType(tag string, v any) bool {
	return internal.CheckType(tag, v)
}
