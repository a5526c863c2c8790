// Package contract validates raw provider records against the typed grain
// contracts. Validation is pure: no I/O, no partial mutation, a typed
// ValidationError on any failure.
//
// Numeric fields go through a string round-trip before quantization so the
// result never inherits binary floating-point drift from the decode step.
package contract
