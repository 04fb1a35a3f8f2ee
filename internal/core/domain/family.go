package domain

// Family is the chemical family a tagged reaction is attributed to.
type Family string

// The closed set of families.
const (
	FamilyPhotolysis Family = "Photolysis"
	FamilyHOx        Family = "HOx"
	FamilyNOx        Family = "NOx"
	FamilyChlorine   Family = "Chlorine"
	FamilyBromine    Family = "Bromine"
	FamilyIodine     Family = "Iodine"

	// Two-halogen crossover families.
	FamilyChlorineBromine Family = "Cl+Br"
	FamilyChlorineIodine  Family = "Cl+I"
	FamilyBromineIodine   Family = "Br+I"

	// FamilyUnassigned flags a reaction for manual inspection.
	FamilyUnassigned Family = "Unassigned"
)

// Families returns the closed set in report order.
func Families() []Family {
	return []Family{
		FamilyPhotolysis,
		FamilyHOx,
		FamilyNOx,
		FamilyChlorine,
		FamilyBromine,
		FamilyIodine,
		FamilyChlorineBromine,
		FamilyChlorineIodine,
		FamilyBromineIodine,
		FamilyUnassigned,
	}
}

// IsValid returns true if the family is in the closed set.
func (f Family) IsValid() bool {
	for _, known := range Families() {
		if f == known {
			return true
		}
	}
	return false
}

// IsHalogen returns true for single-halogen and crossover families.
func (f Family) IsHalogen() bool {
	switch f {
	case FamilyChlorine, FamilyBromine, FamilyIodine:
		return true
	default:
		return f.IsCrossover()
	}
}

// IsCrossover returns true for two-halogen families.
func (f Family) IsCrossover() bool {
	switch f {
	case FamilyChlorineBromine, FamilyChlorineIodine, FamilyBromineIodine:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f Family) String() string {
	return string(f)
}
