package wizard

// AddEntry appends an empty entry to the named section with an id one greater
// than the largest existing id (0 for an empty list) and makes it active.
func (f *Form) AddEntry(st State, title string) State {
	next := st.Clone()
	if next.Multi == nil {
		next.Multi = make(map[string]EntryList)
	}
	list := next.Multi[title]

	id := 0
	for _, entry := range list.Entries {
		if entry.ID+1 > id {
			id = entry.ID + 1
		}
	}

	list.Entries = append(list.Entries, Entry{ID: id, Values: Values{}})
	list.Active = len(list.Entries) - 1
	next.Multi[title] = list
	return next
}

// RemoveEntry deletes the entry at index. The last remaining entry is never
// deleted; it is reset to an empty entry with id 0 instead. After a removal
// the active position is clamped to the new last index when it falls past
// the end, or moved back by one (not below 0) when it pointed at the removed
// entry. Indexes outside the list leave the state unchanged.
func (f *Form) RemoveEntry(st State, title string, index int) State {
	next := st.Clone()
	if next.Multi == nil {
		next.Multi = make(map[string]EntryList)
	}
	list, ok := next.Multi[title]
	if !ok || len(list.Entries) <= 1 {
		next.Multi[title] = freshEntryList()
		return next
	}
	if index < 0 || index >= len(list.Entries) {
		return next
	}

	list.Entries = append(list.Entries[:index], list.Entries[index+1:]...)

	size := len(list.Entries)
	switch {
	case list.Active >= size:
		list.Active = size - 1
	case list.Active == index:
		list.Active = max(0, list.Active-1)
	}

	next.Multi[title] = list
	return next
}

// SelectEntry makes index the active entry of the named section. No bounds
// checking is performed; reads of a missing active entry are empty.
func (f *Form) SelectEntry(st State, title string, index int) State {
	next := st.Clone()
	if next.Multi == nil {
		next.Multi = make(map[string]EntryList)
	}
	list, ok := next.Multi[title]
	if !ok {
		list = freshEntryList()
	}
	list.Active = index
	next.Multi[title] = list
	return next
}
