// Package layout resolves declarative child-positioning rules into
// concrete geometry for two container kinds.
//
// # Overview
//
// A [Relative] container anchors children to siblings and to the container
// itself through a fixed vocabulary of 22 relations ([Rule]). A [Linear]
// container lays children along one axis with optional weighting,
// dividers, and baseline alignment. Both containers implement [Widget],
// so they nest: measuring a container runs its complete resolution pass.
//
// # Resolution model
//
// A pass is one synchronous call to Measure. For relative containers it
// rebuilds the dependency graph from scratch, computes two independent
// topological orders (one per axis), applies rules node by node in that
// order, infers missing edges from measured sizes, shifts the result for
// container gravity, and finally mirrors the horizontal axis under
// right-to-left layout. Nothing survives between passes: per-child working
// state lives in records owned by the pass, which makes passes independent
// and trivially re-runnable.
//
// Malformed content never fails a pass. Cyclic rule graphs fall back to
// original child order for the unresolved remainder, and missing anchors
// either substitute the equivalent parent alignment or leave the edge for
// later inference. Both fallbacks are deterministic and surfaced through
// [PassInfo]. Host-misconfiguration — a baseline-source child index that
// is out of range or names a baseline-less child — is a caller bug and
// panics instead.
//
// # Size negotiation
//
// [Negotiate] turns a child's resolved edges, declared size, and size
// policy into the [Spec] handed to its intrinsic-size query. Constraints
// carry a [Mode]: Exactly pins the child, AtMost caps it, Unspecified
// leaves it free. [ResolveSize] reconciles a computed size with an
// incoming constraint.
//
// # Basic usage
//
//	r := layout.NewRelative()
//	a := layout.Params{Tag: "a", Width: 50, Height: 50}
//	b := layout.Params{Width: 50, Height: 50}
//	b.AddRule(layout.RightOf, "a")
//	b.AddRule(layout.AlignTop, "a")
//	r.Add(layout.NewBox(50, 50), a)
//	r.Add(layout.NewBox(50, 50), b)
//
//	size := r.Measure(layout.Spec{Mode: layout.Unspecified}, layout.Spec{Mode: layout.Unspecified})
//	frames := r.Frames()
//
// # Concurrency
//
// Containers are not safe for concurrent use: one pass must run to
// completion before another begins on the same container. Distinct
// containers share no state and may resolve in parallel.
package layout
