// Package services implements the driving port interfaces.
// Services orchestrate the kpp readers and writers, the tagging engine
// and the stoichiometry resolver, and reach storage through driven ports.
package services
