// Package nav holds the dashboard's view state as immutable snapshots.
//
// Every user navigation goes through Apply, which returns the next State and,
// when the transition needs data, the Request to issue. Each request carries
// a generation number; responses for anything but the current generation are
// stale and must be dropped.
package nav

import (
	"fmt"
	"strings"

	"github.com/kalebj25/news-aggregator/internal/catalog"
)

type View string

const (
	ViewFeed      View = "feed"
	ViewHeadlines View = "headlines"
)

// ParseView accepts "feed" or "headlines".
func ParseView(s string) (View, error) {
	switch View(s) {
	case ViewFeed, ViewHeadlines:
		return View(s), nil
	}
	return "", fmt.Errorf("unknown view %q (valid: feed, headlines)", s)
}

type State struct {
	Mode       catalog.Mode
	Filter     string // empty while a search is active
	Query      string
	View       View
	Generation uint64
}

// Request describes the fetch a transition asks for. Query is set for
// searches; otherwise Param/Key select the filter endpoint.
type Request struct {
	Generation uint64
	Param      string
	Key        string
	Query      string
}

func (r Request) IsSearch() bool { return r.Query != "" }

type Event interface{ event() }

type SelectFilter struct{ Key string }

// SelectTier jumps to the first filter in a tier (pyramid click).
type SelectTier struct{ Tier catalog.Tier }

type SetView struct{ View View }

type Search struct{ Query string }

type Refresh struct{}

func (SelectFilter) event() {}
func (SelectTier) event()   {}
func (SetView) event()      {}
func (Search) event()       {}
func (Refresh) event()      {}

// Initial returns the startup state. It does not request anything; callers
// issue the first load with Apply(..., SelectFilter{key}) or Refresh.
func Initial(table catalog.Table, key string, view View) State {
	if _, ok := table.Lookup(key); !ok {
		key = table.Default()
	}
	if view == "" || !table.HasTiers() {
		view = ViewFeed
	}
	return State{Mode: table.Mode(), Filter: key, View: view}
}

// Apply is the single update function for navigation.
func Apply(table catalog.Table, s State, ev Event) (State, *Request) {
	switch ev := ev.(type) {
	case SelectFilter:
		if _, ok := table.Lookup(ev.Key); !ok {
			return s, nil
		}
		return s.load(table, ev.Key)

	case SelectTier:
		if !table.HasTiers() {
			return s, nil
		}
		d, ok := table.FirstInTier(ev.Tier)
		if !ok {
			return s, nil
		}
		return s.load(table, d.Key)

	case SetView:
		if !table.HasTiers() {
			return s, nil
		}
		if ev.View != ViewFeed && ev.View != ViewHeadlines {
			return s, nil
		}
		s.View = ev.View
		return s, nil

	case Search:
		q := strings.TrimSpace(ev.Query)
		if q == "" {
			return s, nil
		}
		s.Filter = ""
		s.Query = q
		s.Generation++
		return s, &Request{Generation: s.Generation, Query: q}

	case Refresh:
		if s.Query != "" {
			s.Generation++
			return s, &Request{Generation: s.Generation, Query: s.Query}
		}
		return s.load(table, s.Filter)
	}
	return s, nil
}

func (s State) load(table catalog.Table, key string) (State, *Request) {
	if key == "" {
		key = table.Default()
	}
	s.Filter = key
	s.Query = ""
	s.Generation++
	return s, &Request{Generation: s.Generation, Param: table.Param(), Key: key}
}

// Accepts reports whether a response for gen is still current.
func (s State) Accepts(gen uint64) bool {
	return gen == s.Generation
}

func (s State) Searching() bool { return s.Query != "" }

// Title is the view-bar heading.
func (s State) Title(table catalog.Table) string {
	if s.Searching() {
		return fmt.Sprintf("Search: %q", s.Query)
	}
	if d, ok := table.Lookup(s.Filter); ok {
		return d.Label
	}
	return ""
}

// TierTag is hidden while searching and for untiered filters.
func (s State) TierTag(table catalog.Table) string {
	if s.Searching() {
		return ""
	}
	return table.TierTag(s.Filter)
}

// ActiveTier is the pyramid row to highlight.
func (s State) ActiveTier(table catalog.Table) catalog.Tier {
	if s.Searching() {
		return catalog.TierNone
	}
	d, ok := table.Lookup(s.Filter)
	if !ok {
		return catalog.TierNone
	}
	return d.Tier
}

// ColorKey is the filter whose accent colors rendered cards. Searches use
// the default entry.
func (s State) ColorKey(table catalog.Table) string {
	if s.Searching() || s.Filter == "" {
		return table.Default()
	}
	return s.Filter
}
