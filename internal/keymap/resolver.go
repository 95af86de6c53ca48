package keymap

import (
	"slices"
	"strings"
)

// Resolver maps key strings to actions.
type Resolver struct {
	bindings []Binding
	byKey    map[string]Action
	byAction map[Action][]string
}

// NewResolver creates a resolver from bindings. When a key appears twice,
// the first binding wins.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: bindings,
		byKey:    make(map[string]Action),
		byAction: make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			if _, taken := r.byKey[key]; !taken {
				r.byKey[key] = b.Action
			}
			if !slices.Contains(r.byAction[b.Action], key) {
				r.byAction[b.Action] = append(r.byAction[b.Action], key)
			}
		}
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.byKey[key]
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

// HelpLines renders one "keys  description" line per binding in context.
func (r *Resolver) HelpLines(context string) []string {
	var lines []string
	width := 0
	var labels []string
	var descs []string
	for _, b := range r.bindings {
		if b.Context != context {
			continue
		}
		keys := make([]string, len(b.Keys))
		for i, k := range b.Keys {
			keys[i] = DisplayKey(k)
		}
		label := strings.Join(keys, "/")
		width = max(width, len(label))
		labels = append(labels, label)
		descs = append(descs, b.Description)
	}
	for i, label := range labels {
		lines = append(lines, label+strings.Repeat(" ", width-len(label)+2)+descs[i])
	}
	return lines
}
