// Package formgen compiles a form component tree into a bound class file.
//
// [Compile] parses the bound class, synthesizes a private setup method that
// instantiates every component, applies its properties, stores bound
// components into their fields and wires containers with their layout
// managers, and then patches the class's constructors so that the setup
// method runs exactly once per construction, right after the superclass
// constructor returns.
//
// Property values and layouts are closed sets: each value kind has a
// propertyEmitter and each layout kind a layoutEmitter chosen by a type
// switch. Failures are reported as *Error values carrying a Kind; the only
// non-fatal finding, a component without a field binding, is returned as a
// Warning.
package formgen
