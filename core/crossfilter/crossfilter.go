// Package crossfilter holds the per-section selection state machines behind
// chart interactivity. All state is an explicit value passed in and returned;
// nothing here is shared between sessions.
package crossfilter

// Element identifies one clickable chart mark. Composite marks (a segment of
// a stacked bar) carry both halves of their identity so re-sorting the chart
// cannot misattribute a click.
type Element struct {
	Category    string `json:"category"`
	SubCategory string `json:"subCategory,omitempty"`
}

// Single is a one-at-a-time selection (pie slices, drill-down bars).
type Single struct {
	Element Element
	Active  bool
}

// Click toggles the selection: clicking the current element deselects it,
// clicking anything else moves the selection there.
func (s Single) Click(e Element) Single {
	if s.Active && s.Element == e {
		return Single{}
	}
	return Single{Element: e, Active: true}
}

// Multi is a toggle-set selection (sector bars, attack-type stacks).
type Multi struct {
	Elements []Element
}

// Active reports whether anything is selected.
func (m Multi) Active() bool {
	return len(m.Elements) > 0
}

// Contains reports whether e is currently selected.
func (m Multi) Contains(e Element) bool {
	for _, have := range m.Elements {
		if have == e {
			return true
		}
	}
	return false
}

// Click toggles membership of e. The returned value shares no storage with
// the receiver.
func (m Multi) Click(e Element) Multi {
	out := make([]Element, 0, len(m.Elements)+1)
	removed := false
	for _, have := range m.Elements {
		if have == e {
			removed = true
			continue
		}
		out = append(out, have)
	}
	if !removed {
		out = append(out, e)
	}
	if len(out) == 0 {
		return Multi{}
	}
	return Multi{Elements: out}
}
