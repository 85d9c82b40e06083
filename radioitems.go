// Package radioitems implements RadioGroup, a controlled group of mutually
// exclusive radio inputs rendered from an ordered set of option groups.
//
// The selected values are owned by the caller. A RadioGroup keeps a working
// copy that is overwritten whenever the caller supplies new values (Receive)
// and patched optimistically when the user picks an option (Select). Changes
// are reported upward through the optional SetProps and FireEvent callbacks.
package radioitems

import (
	"context"
	"sync"

	"golang.org/x/net/html"
)

// EventChange is the only event a RadioGroup fires.
const EventChange = "change"

// Update is the payload handed to SetProps. Value always holds the complete
// post-update state, never a delta.
type Update struct {
	Value Values `json:"value"`
}

// Event is the payload handed to FireEvent.
type Event struct {
	Event string `json:"event"`
}

// SetPropsFunc receives the new full Values after a selection.
type SetPropsFunc func(ctx context.Context, u Update)

// FireEventFunc receives a generic change notification after SetProps.
type FireEventFunc func(ctx context.Context, e Event)

// InputAttrsFunc returns extra attributes for the input rendered for the
// index-th sub-option of the group identified by key.
type InputAttrsFunc func(key string, index int, option SubOption) []html.Attribute

// Props configures a RadioGroup. Only Options is meaningful for behaviour;
// the style and class fields are passed through to the rendered elements.
type Props struct {
	ID      string
	Options Options
	Values  Values

	Style          Style
	ClassName      string
	InputStyle     Style
	InputClassName string
	LabelStyle     Style
	LabelClassName string

	SetProps  SetPropsFunc
	FireEvent FireEventFunc

	// InputAttrs lets a host attach transport attributes (hx-post, data-*)
	// to each input.
	InputAttrs InputAttrsFunc
}

// RadioGroup is a single widget instance. It is safe for concurrent use.
type RadioGroup struct {
	props Props

	mu     sync.RWMutex
	values Values

	// serialises interactions so notifications arrive in selection order
	interact sync.Mutex
}

// New creates a RadioGroup whose state is a copy of props.Values.
func New(props Props) *RadioGroup {
	return &RadioGroup{
		props:  props,
		values: props.Values.Clone(),
	}
}

// ID returns the identifier applied to the rendered containers.
func (g *RadioGroup) ID() string {
	return g.props.ID
}

// Props returns the configuration the widget was created with.
func (g *RadioGroup) Props() Props {
	return g.props
}

// Options returns the option groups the widget renders.
func (g *RadioGroup) Options() Options {
	return g.props.Options
}

// Values returns the current state. The returned map is never mutated by the
// RadioGroup; callers must not mutate it either.
func (g *RadioGroup) Values() Values {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.values
}

// Receive replaces the state with values. The overwrite is unconditional:
// local selections not yet confirmed by the owner are discarded.
func (g *RadioGroup) Receive(values Values) {
	next := values.Clone()
	g.mu.Lock()
	g.values = next
	g.mu.Unlock()
}

// Checked reports whether the index-th sub-option of group key is selected.
func (g *RadioGroup) Checked(key string, index int) bool {
	group, ok := g.props.Options.Group(key)
	if !ok || index < 0 || index >= len(group.Options) {
		return false
	}
	return g.Values().Selected(key, group.Options[index].Value)
}

// Select applies a user selection of the index-th sub-option of group key.
// The state is replaced before SetProps and then FireEvent are called.
// Selecting a disabled sub-option changes nothing and notifies no one.
func (g *RadioGroup) Select(ctx context.Context, key string, index int) error {
	option, err := g.props.Options.Lookup(key, index)
	if err != nil {
		return err
	}
	if option.Disabled {
		return ErrDisabled
	}

	g.interact.Lock()
	defer g.interact.Unlock()

	g.mu.Lock()
	next := g.values.With(key, option.Value)
	g.values = next
	g.mu.Unlock()

	if g.props.SetProps != nil {
		g.props.SetProps(ctx, Update{Value: next})
	}
	if g.props.FireEvent != nil {
		g.props.FireEvent(ctx, Event{Event: EventChange})
	}
	return nil
}
