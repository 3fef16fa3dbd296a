package wig

import "github.com/AnatoleLucet/wig/internal"

type (
	// ChildWidgetConfig describes a widget owned by instances of a class.
	ChildWidgetConfig = internal.ChildWidgetConfig
	// ChildElementConfig describes an element owned by instances of a class.
	ChildElementConfig = internal.ChildElementConfig
)

// InheritChildOptions declares the options of src on dst and forwards them
// to the child widget named childName.
func InheritChildOptions(dst *Class, childName string, src *Class, blacklist ...string) {
	internal.InheritChildOptions(dst, childName, src, blacklist...)
}
