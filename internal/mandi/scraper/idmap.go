package scraper

import (
	"encoding/json"
)

// IDMap is an ordered mapping from lower-cased option name to site id.
// Iteration follows the order names were first seen.
type IDMap struct {
	names []string
	ids   map[string]string
}

// Entry is one name/id pair of an IDMap.
type Entry struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// NewIDMap builds a map from entries in order.
func NewIDMap(entries ...Entry) IDMap {
	var m IDMap
	for _, e := range entries {
		m.Set(e.Name, e.ID)
	}
	return m
}

// Set stores id under name. A repeated name keeps its first position and
// takes the new id.
func (m *IDMap) Set(name, id string) {
	if m.ids == nil {
		m.ids = make(map[string]string)
	}
	if _, exists := m.ids[name]; !exists {
		m.names = append(m.names, name)
	}
	m.ids[name] = id
}

// Get returns the id stored under name.
func (m IDMap) Get(name string) (string, bool) {
	id, ok := m.ids[name]
	return id, ok
}

// Len returns the number of distinct names.
func (m IDMap) Len() int {
	return len(m.names)
}

// Entries returns the pairs in order.
func (m IDMap) Entries() []Entry {
	out := make([]Entry, 0, len(m.names))
	for _, name := range m.names {
		out = append(out, Entry{Name: name, ID: m.ids[name]})
	}
	return out
}

// MarshalJSON encodes the map as an ordered list of entries.
func (m IDMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Entries())
}

// UnmarshalJSON decodes an ordered list of entries.
func (m *IDMap) UnmarshalJSON(data []byte) error {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	*m = NewIDMap(entries...)
	return nil
}

// Identifiers are the crop and region option lists of the search page.
type Identifiers struct {
	Crops   IDMap `json:"crops"`
	Regions IDMap `json:"regions"`
}
