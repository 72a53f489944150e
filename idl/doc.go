// Package idl holds the interface description of a Move package: modules,
// structs, entry functions and error codes, as emitted by the IDL builder.
// Values are read-only once decoded.
package idl
