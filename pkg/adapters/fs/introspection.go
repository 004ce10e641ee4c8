package fs

import (
	"sort"

	"github.com/aretw0/introspection"
)

// AccessorState exposes internal state for observability.
type AccessorState struct {
	Serializers    []string `json:"serializers"`
	Disabled       []string `json:"disabled,omitempty"`
	Fallback       string   `json:"fallback"`
	Strict         bool     `json:"strict"`
	RichEnv        bool     `json:"rich_env"`
	ActiveWatchers int      `json:"active_watchers"`
}

// State implements introspection.Introspectable.
func (a *Accessor) State() any {
	a.mu.RLock()
	defer a.mu.RUnlock()

	state := AccessorState{
		Serializers:    make([]string, 0, len(a.serializers)),
		Fallback:       "text",
		Strict:         a.config.Strict,
		RichEnv:        a.config.RichEnv,
		ActiveWatchers: int(a.watchers.Load()),
	}
	for ext, s := range a.serializers {
		if s == nil {
			state.Disabled = append(state.Disabled, ext)
			continue
		}
		state.Serializers = append(state.Serializers, ext)
	}
	sort.Strings(state.Serializers)
	sort.Strings(state.Disabled)
	return state
}

// ComponentType implements introspection.Component.
func (a *Accessor) ComponentType() string {
	return "accessor"
}

var _ introspection.Introspectable = (*Accessor)(nil)
var _ introspection.Component = (*Accessor)(nil)
