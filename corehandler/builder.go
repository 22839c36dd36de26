// Package corehandler provides the one accumulator every ICS-04/ICS-26
// handler builds its output through: a typed result plus the log lines and
// events produced getting there. Nothing accumulated in a Builder is
// emitted until the caller has a complete Builder to commit: a handler that
// errors partway through returns no Builder, so none of its accumulated
// events are kept. Events a handler writes directly to ctx.EventManager()
// (such as the packet validation-failure event) are outside the Builder.
package corehandler

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Builder accumulates a typed result alongside the log lines and events a
// handler produced computing it. T is typically a ChannelResult or
// PacketResult; see core/04-channel/types.
type Builder[T any] struct {
	log    []string
	events sdk.Events
	result T
}

func NewBuilder[T any](result T) *Builder[T] {
	return &Builder[T]{result: result}
}

func (b *Builder[T]) Log(line string) *Builder[T] {
	b.log = append(b.log, line)
	return b
}

func (b *Builder[T]) Emit(event sdk.Event) *Builder[T] {
	b.events = b.events.AppendEvent(event)
	return b
}

func (b *Builder[T]) EmitAll(events []sdk.Event) *Builder[T] {
	for _, e := range events {
		b.events = b.events.AppendEvent(e)
	}
	return b
}

// WithResult replaces the builder's result, used by channel_callback to
// record a module-negotiated version before channel_events runs.
func (b *Builder[T]) WithResult(result T) *Builder[T] {
	b.result = result
	return b
}

// MergeExtras folds in the log lines and events a module callback produced
// (see Extras) without altering the builder's typed result.
func (b *Builder[T]) MergeExtras(extras Extras) *Builder[T] {
	b.log = append(b.log, extras.Log...)
	b.events = b.events.AppendEvents(extras.Events)
	return b
}

func (b *Builder[T]) Result() T          { return b.result }
func (b *Builder[T]) Logs() []string     { return b.log }
func (b *Builder[T]) Events() sdk.Events { return b.events }

// Extras is the untyped bag of log lines and events a bound module's
// callback contributes; it never carries a typed result because the core,
// not the module, owns the protocol result.
type Extras struct {
	Events []sdk.Event
	Log    []string
}

func EmptyExtras() Extras { return Extras{} }

func (e Extras) WithEvent(event sdk.Event) Extras {
	e.Events = append(e.Events, event)
	return e
}

func (e Extras) WithLog(line string) Extras {
	e.Log = append(e.Log, line)
	return e
}
