/*
linearize.go - Reusable boolean/integer linearization idioms

PURPOSE:
  Three small constructors the objective builders share, kept out of the call
  sites so each idiom is independently testable:

  andVar(a, b):
    Boolean AND of two boolean variables, linearized exactly:
      v <= a, v <= b, v >= a + b - 1
    Valid because both operands are 0/1.

  minUpperBoundVar(a, b, ub):
    An integer variable constrained only by v <= a and v <= b. When the
    objective maximizes v, the solver drives it to exactly min(a, b) at
    optimality without an explicit equality.

  presenceVar(count):
    A boolean channeled to "count >= 1": count >= 1 forces it true,
    count == 0 forces it false.

SEE ALSO:
  - objective.go: The call sites
*/
package assign

import "github.com/google/or-tools/ortools/sat/go/cpmodel"

// andVar returns a boolean variable equal to a AND b.
func andVar(b *cpmodel.Builder, x, y cpmodel.BoolVar, name string) cpmodel.BoolVar {
	v := b.NewBoolVar().WithName(name)
	b.AddLessOrEqual(v, x)
	b.AddLessOrEqual(v, y)
	b.AddGreaterOrEqual(v, cpmodel.NewLinearExpr().Add(x).Add(y).AddConstant(-1))
	return v
}

// minUpperBoundVar returns an integer variable in [0, ub] bounded above by
// both expressions. Meaningful only as a maximized objective term.
func minUpperBoundVar(b *cpmodel.Builder, x, y cpmodel.LinearArgument, ub int64, name string) cpmodel.IntVar {
	v := b.NewIntVar(0, ub).WithName(name)
	b.AddLessOrEqual(v, x)
	b.AddLessOrEqual(v, y)
	return v
}

// presenceVar returns a boolean that is true iff count >= 1.
func presenceVar(b *cpmodel.Builder, count cpmodel.LinearArgument, name string) cpmodel.BoolVar {
	v := b.NewBoolVar().WithName(name)
	b.AddGreaterOrEqual(count, cpmodel.NewConstant(1)).OnlyEnforceIf(v)
	b.AddEquality(count, cpmodel.NewConstant(0)).OnlyEnforceIf(v.Not())
	return v
}
