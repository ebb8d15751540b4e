// Package symbolic is the expression kernel behind the calculus modes of the
// calculator.
//
// It parses infix text into an immutable expression tree over exact
// rationals, free symbols and the constants pi and E, and offers
// simplification, differentiation, rule-based integration and numeric
// evaluation. Output is printed in the same textual form SymPy uses
// (x**3/3, sqrt(2)/2, -cos(x)) so results read the way users of the
// Python tools expect.
//
// Constructors (AddOf, MulOf, PowOf, FuncOf) always return a canonical,
// auto-simplified tree. They panic with a *KernelError on undefined
// arithmetic such as 0**-1; the exported operations (Parse, Simplify,
// Differentiate, Integrate, DefiniteIntegral, Eval) recover those panics
// and return them as errors.
package symbolic
