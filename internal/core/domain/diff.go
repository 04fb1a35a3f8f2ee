package domain

// MechanismDiff lists reactions present in only one of two mechanisms.
type MechanismDiff struct {
	Left    string   `json:"left" yaml:"left"`
	Right   string   `json:"right" yaml:"right"`
	Removed []string `json:"removed" yaml:"removed"`
	Added   []string `json:"added" yaml:"added"`
	Common  int      `json:"common" yaml:"common"`
}

// Empty reports whether both mechanisms hold the same reactions.
func (d *MechanismDiff) Empty() bool {
	return len(d.Removed) == 0 && len(d.Added) == 0
}
