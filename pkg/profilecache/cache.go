// Package profilecache implements C7: the per-active-profile lookup
// structures built once from a match store's collected output (spec.md
// §4.5) — an exact trigger map, a global variable map, and a literal
// prefilter ahead of the trigger-map lookups in Dispatch.
package profilecache

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/expando-dev/expando/pkg/model"
)

// Cache is the set of lookup structures built once per active profile.
// TriggerMap and GlobalVarMap hold borrowed pointers into the MatchStore's
// arena, exactly like the Collected value they are built from (spec.md
// §4.5).
type Cache struct {
	TriggerMap   map[string]*model.TriggerMatch
	GlobalVarMap map[string]*model.Variable
	Regex        []*model.RegexMatch

	literals  []string
	prefilter *ahocorasick.Matcher
}

// Build assembles a Cache from one profile's collected matches and global
// variables. Collision policy: when two matches share a trigger literal or
// two variables share a name, the later one in collected order wins —
// allowed but not guaranteed stable across runs (spec.md §4.5).
func Build(collected model.Collected) *Cache {
	c := &Cache{
		TriggerMap:   make(map[string]*model.TriggerMatch, len(collected.TriggerMatches)),
		GlobalVarMap: make(map[string]*model.Variable, len(collected.GlobalVars)),
		Regex:        collected.RegexMatches,
	}

	for _, tm := range collected.TriggerMatches {
		for _, trigger := range tm.Triggers {
			c.TriggerMap[trigger] = tm
		}
	}
	for _, v := range collected.GlobalVars {
		c.GlobalVarMap[v.Name] = v
	}

	c.literals = make([]string, 0, len(c.TriggerMap))
	for trigger := range c.TriggerMap {
		c.literals = append(c.literals, trigger)
	}
	if len(c.literals) > 0 {
		c.prefilter = ahocorasick.NewStringMatcher(c.literals)
	}

	return c
}

// ContainsAnyTrigger reports whether text contains any known trigger
// literal as a substring, using the Aho-Corasick prefilter rather than
// scanning TriggerMap one entry at a time. Intended as a cheap gate before
// the exact/lowercase dispatch lookups in §4.6.
func (c *Cache) ContainsAnyTrigger(text string) bool {
	if c.prefilter == nil {
		return false
	}
	return len(c.prefilter.Match([]byte(text))) > 0
}

// Dispatch implements §4.5+§4.6's trigger dispatch: an exact match on
// candidate, else a lowercase match valid only for matches whose effect
// propagates case. Each branch is gated by ContainsAnyTrigger first: if a
// string contains none of the known trigger literals as a substring, it
// cannot equal one exactly either, so the map lookup is skipped entirely.
func (c *Cache) Dispatch(candidate string) (*model.TriggerMatch, bool) {
	if c.ContainsAnyTrigger(candidate) {
		if tm, ok := c.TriggerMap[candidate]; ok {
			return tm, true
		}
	}
	lower := strings.ToLower(candidate)
	if c.ContainsAnyTrigger(lower) {
		if tm, ok := c.TriggerMap[lower]; ok && tm.PropagateCase {
			return tm, true
		}
	}
	return nil, false
}
