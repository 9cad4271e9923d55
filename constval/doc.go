// Package constval implements the in-memory representation of a compile-time
// constant: the result of evaluating an expression as a constant during
// type-checking.
//
// This package contains:
//   - Value: a discriminated union over integers, floats, fixed-point values,
//     complex pairs, symbolic locations, vectors, arrays, structs, unions,
//     member pointers, and label-address differences
//   - LValueBase and PathEntry: symbolic object identities with optional
//     packed subobject paths, for pointer and reference constants
//   - Equality, hashing, and an open-addressed BaseMap keyed by LValueBase
//   - Debug and diagnostic rendering, and the integral-conversion query
//
// A Value owns every nested Value reachable through its aggregate payloads
// and nothing else: declaration, expression, and type references point into
// the host-owned graph. Values are single-owner and unsynchronized; misusing
// an accessor under the wrong active kind is a programming error and panics.
package constval
