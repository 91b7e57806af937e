// Package recommend computes event recommendations for a user from two
// sources: content-based matching against the user's registration history,
// and an external model service. Both are merged deterministically.
package recommend

import (
	"sort"

	"github.com/campushub/campushub/internal/model"
)

// Profile is the preference profile derived from a user's registered events.
// It is request-scoped: computed fresh per request, never cached, discarded
// when the request completes.
type Profile struct {
	types    map[string]struct{}
	subtypes map[string]struct{}
	excluded map[string]struct{}
}

// BuildProfile scans the registered events and collects the distinct type
// set, subtype set, and the exclusion set of already-registered event IDs.
// Membership is case-sensitive exact string equality.
func BuildProfile(registered []*model.Event) *Profile {
	p := &Profile{
		types:    make(map[string]struct{}),
		subtypes: make(map[string]struct{}),
		excluded: make(map[string]struct{}),
	}

	for _, event := range registered {
		if event.Type != "" {
			p.types[event.Type] = struct{}{}
		}
		if event.Subtype != "" {
			p.subtypes[event.Subtype] = struct{}{}
		}
		if event.EventID != "" {
			p.excluded[event.EventID] = struct{}{}
		}
	}

	return p
}

// HasType reports whether the type is in the preference set.
func (p *Profile) HasType(t string) bool {
	_, ok := p.types[t]
	return ok
}

// HasSubtype reports whether the subtype is in the preference set.
func (p *Profile) HasSubtype(s string) bool {
	_, ok := p.subtypes[s]
	return ok
}

// IsExcluded reports whether the event ID is already registered.
func (p *Profile) IsExcluded(eventID string) bool {
	_, ok := p.excluded[eventID]
	return ok
}

// Types returns the type set as a sorted slice for query parameters.
func (p *Profile) Types() []string {
	return sortedKeys(p.types)
}

// Subtypes returns the subtype set as a sorted slice for query parameters.
func (p *Profile) Subtypes() []string {
	return sortedKeys(p.subtypes)
}

// Excluded returns the exclusion set as a sorted slice for query parameters.
func (p *Profile) Excluded() []string {
	return sortedKeys(p.excluded)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
