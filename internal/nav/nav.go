// Package nav models which pane of a tab group is visible.
//
// A Group holds an ordered list of panes and exactly one active pane. The UI
// renders from Group values and never tracks visibility separately.
package nav

import "fmt"

// Pane identifies a tab or sub-tab.
type Pane string

// Top-level tabs.
const (
	Home    Pane = "Home"
	Upload  Pane = "Upload"
	Chat    Pane = "Chat"
	Explore Pane = "Explore"
	Console Pane = "Console"
)

// Upload sub-tabs.
const (
	UploadFile        Pane = "File"
	UploadCollections Pane = "Collections"
)

// NeedsCollections reports whether entering the pane should refresh the
// collection selectors.
func (p Pane) NeedsCollections() bool {
	switch p {
	case Upload, Chat, Explore:
		return true
	}
	return false
}

// Group is a set of sibling panes with one active member.
type Group struct {
	panes  []Pane
	active int
}

// NewGroup builds a group whose first pane is active.
// It panics on an empty or duplicated pane list.
func NewGroup(panes ...Pane) Group {
	if len(panes) == 0 {
		panic("nav: empty group")
	}
	seen := make(map[Pane]struct{}, len(panes))
	for _, p := range panes {
		if _, dup := seen[p]; dup {
			panic(fmt.Sprintf("nav: duplicate pane %q", p))
		}
		seen[p] = struct{}{}
	}
	dup := make([]Pane, len(panes))
	copy(dup, panes)
	return Group{panes: dup}
}

// TopLevel returns the main tab group.
func TopLevel() Group {
	return NewGroup(Home, Upload, Chat, Explore, Console)
}

// UploadTabs returns the sub-tab group inside the Upload tab.
func UploadTabs() Group {
	return NewGroup(UploadFile, UploadCollections)
}

// Select activates id. An unknown id leaves the group unchanged.
func (g *Group) Select(id Pane) (Pane, error) {
	for i, p := range g.panes {
		if p == id {
			g.active = i
			return p, nil
		}
	}
	return g.Active(), fmt.Errorf("unknown pane %q", id)
}

// SelectIndex activates the pane at position i (zero-based).
func (g *Group) SelectIndex(i int) (Pane, error) {
	if i < 0 || i >= len(g.panes) {
		return g.Active(), fmt.Errorf("pane index %d out of range", i)
	}
	g.active = i
	return g.panes[i], nil
}

// Next activates the following pane, wrapping around.
func (g *Group) Next() Pane {
	g.active = (g.active + 1) % len(g.panes)
	return g.panes[g.active]
}

// Prev activates the preceding pane, wrapping around.
func (g *Group) Prev() Pane {
	g.active = (g.active - 1 + len(g.panes)) % len(g.panes)
	return g.panes[g.active]
}

// Active returns the visible pane.
func (g Group) Active() Pane {
	return g.panes[g.active]
}

// IsActive reports whether id is the visible pane.
func (g Group) IsActive(id Pane) bool {
	return g.panes[g.active] == id
}

// Panes returns the panes in display order.
func (g Group) Panes() []Pane {
	dup := make([]Pane, len(g.panes))
	copy(dup, g.panes)
	return dup
}
