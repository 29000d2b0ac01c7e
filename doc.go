// Package formc compiles GUI form descriptions into JVM bytecode.
//
// Users import this single package for the public API: the component tree
// model, type resolution and the compiler that patches a bound class with a
// synthetic setup method and calls to it from every constructor.
package formc
