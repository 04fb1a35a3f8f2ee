package domain

// Activity states whether the solver integrates a species.
type Activity string

// Species activities.
const (
	// ActivityActive marks variable species declared under #DEFVAR.
	ActivityActive Activity = "active"

	// ActivityFixed marks fixed-concentration species declared under #DEFFIX.
	ActivityFixed Activity = "fixed"
)

// IsValid returns true if the activity is recognised.
func (a Activity) IsValid() bool {
	return a == ActivityActive || a == ActivityFixed
}

// String returns the string representation.
func (a Activity) String() string {
	return string(a)
}

// Species is a declared chemical species.
type Species struct {
	// Name is the unique species key.
	Name string `json:"name" yaml:"name"`

	// Description is free text, stored without surrounding braces.
	Description string `json:"description" yaml:"description"`

	// Activity is active or fixed-concentration.
	Activity Activity `json:"activity" yaml:"activity"`
}

// IsFixed returns true for fixed-concentration species.
func (s Species) IsFixed() bool {
	return s.Activity == ActivityFixed
}
