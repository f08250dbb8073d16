// Package prim provides the leaf-level primitives shared by every other
// package in this module: validated identifiers, a three-way numeric
// representation that excludes NaN and infinities, and the operator
// enumerations used by the expression grammar. Nothing in this package
// depends on anything else in the module.
package prim
