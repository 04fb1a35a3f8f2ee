// Package driving defines the operations the CLI invokes on the core:
// loading and querying mechanisms, tagging, stoichiometry, writing,
// snapshots and settings.
//
// Implementations live in internal/core/services.
package driving
