package minhash

import "fmt"

// ConfigError is returned when a sketch is constructed with invalid
// parameters, or when two sketches with incompatible seeds, sizes, or
// digests are combined.
type ConfigError struct {
	Reason string
}

func (e ConfigError) Error() string {
	return e.Reason
}

// StateError is returned when an operation is forbidden by the current
// lifecycle state of the sketch, e.g. updating a finalized sketch.
type StateError struct {
	Reason string
}

func (e StateError) Error() string {
	return e.Reason
}

// SizeError is returned when the destination buffer passed to Serialize
// cannot hold the encoded sketch.
type SizeError struct {
	Size int // length of the supplied buffer
	Need int // bytes required
}

func (e SizeError) Error() string {
	return fmt.Sprintf("buffer of %d bytes cannot hold %d-byte sketch", e.Size, e.Need)
}
