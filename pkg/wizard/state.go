package wizard

// Entry is one instance of a multi-entry section.
type Entry struct {
	ID     int    `json:"id"`
	Values Values `json:"values"`
}

func (e Entry) clone() Entry {
	return Entry{ID: e.ID, Values: e.Values.Clone()}
}

// EntryList holds the entries of one multi-entry section and the position of
// the entry currently displayed.
type EntryList struct {
	Entries []Entry `json:"entries"`
	Active  int     `json:"active"`
}

func (l EntryList) clone() EntryList {
	out := EntryList{Active: l.Active}
	if l.Entries != nil {
		out.Entries = make([]Entry, len(l.Entries))
		for i, entry := range l.Entries {
			out.Entries[i] = entry.clone()
		}
	}
	return out
}

// ActiveEntry returns the entry at the active position.
func (l EntryList) ActiveEntry() (Entry, bool) {
	if l.Active < 0 || l.Active >= len(l.Entries) {
		return Entry{}, false
	}
	return l.Entries[l.Active], true
}

// IDs lists entry ids in order.
func (l EntryList) IDs() []int {
	out := make([]int, len(l.Entries))
	for i, entry := range l.Entries {
		out[i] = entry.ID
	}
	return out
}

// Layout captures the navigation chrome state. Compact marks small viewports
// where the section panel overlays the form.
type Layout struct {
	Compact    bool `json:"compact"`
	DrawerOpen bool `json:"drawerOpen"`
	Minimized  bool `json:"minimized"`
}

// State is the full, serialisable session state.
type State struct {
	Step      int                  `json:"step"`
	Shared    Values               `json:"shared"`
	Multi     map[string]EntryList `json:"multi"`
	Completed map[int]bool         `json:"completed"`
	Layout    Layout               `json:"layout"`
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := State{
		Step:   s.Step,
		Shared: s.Shared.Clone(),
		Layout: s.Layout,
	}
	if s.Multi != nil {
		out.Multi = make(map[string]EntryList, len(s.Multi))
		for title, list := range s.Multi {
			out.Multi[title] = list.clone()
		}
	}
	if s.Completed != nil {
		out.Completed = make(map[int]bool, len(s.Completed))
		for step, done := range s.Completed {
			out.Completed[step] = done
		}
	}
	return out
}

// EntriesFor returns the entry list of a section. Sections without a list
// read as a single empty entry.
func (s State) EntriesFor(title string) EntryList {
	if list, ok := s.Multi[title]; ok {
		return list
	}
	return freshEntryList()
}

// IsStepComplete reports whether step was marked complete by Advance.
func (s State) IsStepComplete(step int) bool {
	return s.Completed[step]
}

func freshEntryList() EntryList {
	return EntryList{Entries: []Entry{{ID: 0, Values: Values{}}}, Active: 0}
}
