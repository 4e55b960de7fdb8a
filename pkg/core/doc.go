// Package core defines the shared language of the LeapFrag system.
//
// This package contains:
//   - Capability interfaces consumed by the renderer (Dialect, TypeRegistry)
//   - Pure-data dialect configuration (DialectConfig, IdentifierConfig, BooleanStyle)
//   - Service interfaces (Store, Verifier)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
