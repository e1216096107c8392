package registry

// Selector is one collection drop-down: an ordered option list and the
// selected position.
type Selector struct {
	options []string
	index   int
}

// Replace swaps in a new option list. The selected name survives when it is
// still offered; otherwise the first option is selected.
func (s *Selector) Replace(options []string) {
	prev := s.Value()
	s.options = append([]string(nil), options...)
	s.index = 0
	if prev == "" {
		return
	}
	for i, name := range s.options {
		if name == prev {
			s.index = i
			return
		}
	}
}

// Options returns a copy of the option list.
func (s Selector) Options() []string {
	return append([]string(nil), s.options...)
}

// Value returns the selected collection name, or "" when there are none.
func (s Selector) Value() string {
	if len(s.options) == 0 {
		return ""
	}
	return s.options[s.index]
}

// Next selects the following option, wrapping around.
func (s *Selector) Next() {
	if len(s.options) == 0 {
		return
	}
	s.index = (s.index + 1) % len(s.options)
}

// Prev selects the preceding option, wrapping around.
func (s *Selector) Prev() {
	if len(s.options) == 0 {
		return
	}
	s.index = (s.index - 1 + len(s.options)) % len(s.options)
}

// Selectors are the three independent collection pickers. Each target keeps
// its own selection; only the option list is shared.
type Selectors struct {
	Ingest  Selector
	Chat    Selector
	Explore Selector
}

// ReplaceAll installs names into every selector.
func (s *Selectors) ReplaceAll(names []string) {
	s.Ingest.Replace(names)
	s.Chat.Replace(names)
	s.Explore.Replace(names)
}
