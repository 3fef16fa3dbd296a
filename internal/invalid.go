package internal

import "sort"

// Invalid tracks which options changed since redraw last consumed them.
type Invalid struct {
	flags map[string]bool
}

// NewInvalid returns a set with every key of options marked.
func NewInvalid(options map[string]any) *Invalid {
	flags := make(map[string]bool, len(options))
	for key := range options {
		flags[key] = true
	}
	return &Invalid{flags: flags}
}

func (i *Invalid) Mark(keys ...string) {
	for _, key := range keys {
		i.flags[key] = true
	}
}

// Validate clears the given flags and reports whether any of them was set.
func (i *Invalid) Validate(keys ...string) bool {
	ret := false
	for _, key := range keys {
		if i.flags[key] {
			i.flags[key] = false
			ret = true
		}
	}
	return ret
}

// Test reports whether any of the given flags is set, without clearing.
func (i *Invalid) Test(keys ...string) bool {
	for _, key := range keys {
		if i.flags[key] {
			return true
		}
	}
	return false
}

// Pending returns the set flags in sorted order.
func (i *Invalid) Pending() []string {
	var keys []string
	for key, set := range i.flags {
		if set {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}
