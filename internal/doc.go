/*
Package internal implements the widget core: a priority frame scheduler,
class composition with inheritance and traits, per-option invalidation and
the widget base with its tree and child helpers.

Everything in here is single-threaded. A Runtime and the widgets created on
it must only be touched from the goroutine that drives its frames.
*/
package internal

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'wig.class'.
func tracer() tracing.Trace {
	return tracing.Select("wig.class")
}
