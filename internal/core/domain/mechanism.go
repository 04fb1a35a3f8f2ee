package domain

import "time"

// Mechanism is an immutable snapshot of one loaded equation file.
// A reload produces a new snapshot; snapshots are never patched in place.
type Mechanism struct {
	// ID is the unique snapshot identifier.
	ID string `json:"id" yaml:"id"`

	// Name is a human-readable label (usually the file name).
	Name string `json:"name" yaml:"name"`

	// SourcePath is the file the snapshot was read from.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// Headers is the leading comment block, preserved for rewriting.
	Headers []string `json:"headers,omitempty" yaml:"headers,omitempty"`

	// Species in declaration order (active block first).
	Species []Species `json:"species" yaml:"species"`

	// Reactions in file order across all categories.
	Reactions []Reaction `json:"reactions" yaml:"reactions"`

	// Issues are the localised parse problems encountered.
	Issues []LineIssue `json:"issues,omitempty" yaml:"issues,omitempty"`

	// SplitCount is the number of compound statements that were split.
	SplitCount int `json:"split_count" yaml:"split_count"`

	// LoadedAt is when the snapshot was derived.
	LoadedAt time.Time `json:"loaded_at" yaml:"loaded_at"`
}

// ByCategory returns the reactions of one category in file order.
func (m *Mechanism) ByCategory(c Category) []Reaction {
	var out []Reaction
	for i := range m.Reactions {
		if m.Reactions[i].Category == c {
			out = append(out, m.Reactions[i])
		}
	}
	return out
}

// SpeciesByActivity returns species with the given activity.
func (m *Mechanism) SpeciesByActivity(a Activity) []Species {
	var out []Species
	for _, s := range m.Species {
		if s.Activity == a {
			out = append(out, s)
		}
	}
	return out
}

// FindSpecies looks up a species by name.
func (m *Mechanism) FindSpecies(name string) (Species, bool) {
	for _, s := range m.Species {
		if s.Name == name {
			return s, true
		}
	}
	return Species{}, false
}

// Reaction looks up a reaction by identifier.
func (m *Mechanism) Reaction(id ReactionID) (Reaction, bool) {
	for i := range m.Reactions {
		if m.Reactions[i].ID == id {
			return m.Reactions[i], true
		}
	}
	return Reaction{}, false
}

// MechanismSummary is a lightweight listing entry for stored snapshots.
type MechanismSummary struct {
	ID            string    `json:"id" yaml:"id"`
	Name          string    `json:"name" yaml:"name"`
	SourcePath    string    `json:"source_path" yaml:"source_path"`
	SpeciesCount  int       `json:"species_count" yaml:"species_count"`
	ReactionCount int       `json:"reaction_count" yaml:"reaction_count"`
	LoadedAt      time.Time `json:"loaded_at" yaml:"loaded_at"`
}

// Summary returns the listing entry for the snapshot.
func (m *Mechanism) Summary() MechanismSummary {
	return MechanismSummary{
		ID:            m.ID,
		Name:          m.Name,
		SourcePath:    m.SourcePath,
		SpeciesCount:  len(m.Species),
		ReactionCount: len(m.Reactions),
		LoadedAt:      m.LoadedAt,
	}
}

// ReactionIndex is the reaction-id to raw-text mapping read from a
// compiled solver's monitor listing.
type ReactionIndex struct {
	// Layout names the column grammar used to read the listing.
	Layout MonitorLayout `json:"layout" yaml:"layout"`

	// Entries maps identifiers to reaction text ("A + B --> C").
	Entries map[ReactionID]string `json:"-" yaml:"-"`

	// Assumed lists identifiers inferred as previous+1.
	Assumed []ReactionID `json:"assumed,omitempty" yaml:"assumed,omitempty"`

	// Issues are lines that could not be attributed to a reaction.
	Issues []LineIssue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// IDs returns the identifiers in sorted order.
func (x *ReactionIndex) IDs() []ReactionID {
	ids := make([]ReactionID, 0, len(x.Entries))
	for id := range x.Entries {
		ids = append(ids, id)
	}
	SortIDs(ids)
	return ids
}

// Len returns the number of entries.
func (x *ReactionIndex) Len() int {
	return len(x.Entries)
}
