// Package domain defines the core entities of a chemical reaction mechanism.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Species: A declared chemical species and its activity
//   - Reaction: A structured reaction (terms, rate law, metadata, category)
//   - Tag: A pseudo-product marking a reaction for production/loss output
//   - Family: The chemical family a tagged reaction is attributed to
//   - Mechanism: An immutable snapshot of one loaded equation file
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
