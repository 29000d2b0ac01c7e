// Package form holds the in-memory component tree that formgen compiles.
//
// A Form has exactly one top-level Component. Components carry typed
// property values (the closed Value sum type), an optional Layout (the
// closed Layout sum type) and the Constraints their parent's layout reads.
// Load reads the YAML description used by the formc command.
package form
