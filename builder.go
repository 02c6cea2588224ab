package bitvec

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"fmt"
)

// FromBools creates a vector holding the given bits. A capacity of 0
// sizes the vector exactly to the input, leaving no room for insertion;
// an empty input gets capacity 1.
func FromBools(bits []bool, capacity int) (*Vector, error) {
	if capacity == 0 {
		capacity = len(bits)
	}
	if capacity < len(bits) {
		return nil, fmt.Errorf("%w: %d bits exceed capacity %d", ErrCapacityExhausted, len(bits), capacity)
	}
	if capacity == 0 {
		capacity = 1
	}
	v, err := New(capacity)
	if err != nil {
		return nil, err
	}
	for _, b := range bits {
		if err := v.PushBack(b); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// FromString creates a vector from a string of '0' and '1' characters,
// lowest position first. Any other character is an error. A capacity of
// 0 sizes the vector exactly to the input.
func FromString(s string, capacity int) (*Vector, error) {
	bits := make([]bool, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			bits = append(bits, false)
		case '1':
			bits = append(bits, true)
		default:
			return nil, fmt.Errorf("%w: character %q at %d is not a bit",
				ErrInvalidConfig, s[i], i)
		}
	}
	return FromBools(bits, capacity)
}
