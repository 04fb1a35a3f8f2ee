package domain

// LegacyReaction is one row of a legacy solver log's reaction table.
type LegacyReaction struct {
	Number int      `json:"number" yaml:"number"`
	Tokens []string `json:"tokens" yaml:"tokens"`
}

// LegacyMember is one reaction contributing to a legacy production/loss family.
type LegacyMember struct {
	Reaction    int      `json:"reaction" yaml:"reaction"`
	Coefficient float64  `json:"coefficient" yaml:"coefficient"`
	Tokens      []string `json:"tokens" yaml:"tokens"`
}
