// Package internal holds small numeric constants shared across the math
// packages that themselves cannot depend on one another.
package internal

// Smallfloat32 is float32 machine epsilon, used as a default step size
// for numeric derivative/root-finding helpers in ms1.
const Smallfloat32 = 1.1920929e-7
