// Package blueprint loads layout descriptions from TOML files and builds
// ready-to-measure containers from them.
//
// # Overview
//
// A blueprint is a declarative tree: one root container, any number of
// nested children. Children are plain boxes unless their kind names a
// container, in which case the node nests a full layout of its own.
//
// # Format
//
// The root table is [container]; children are [[container.child]] array
// entries and nest recursively:
//
//	[container]
//	kind = "relative"
//	width = 100
//	height = "wrap"
//	padding = [4, 4, 4, 4]
//
//	[[container.child]]
//	tag = "a"
//	content = [40, 20]
//
//	[[container.child]]
//	tag = "b"
//	content = [30, 20]
//	margins = [10, 0, 0, 0]
//	rules = { right-of = "a" }
//
// # Dimensions
//
// The width and height keys accept an integer pixel count, "wrap", or
// "match". Omitted dimensions default to "wrap". The content key gives a
// box child its intrinsic size, consulted when a wrap dimension asks the
// child how big it wants to be.
//
// On the root container the keys declare the constraints the layout
// resolves against by default: a pixel count is exact, "wrap" leaves the
// axis unconstrained, and "match" is rejected since the root has no
// parent. [Blueprint.Width] and [Blueprint.Height] carry the result.
//
// # Rules
//
// The rules table maps rule names to targets. Sibling relations take the
// anchor's tag; container relations take true:
//
//	rules = { below = "header", align-parent-left = true }
//
// Rule names are the kebab-case forms listed by the layout package
// (right-of, align-baseline, center-in-parent, ...).
//
// # Errors
//
// Malformed blueprints fail loading with structured errors from
// [github.com/buwaro/anchor/pkg/errors]; nothing malformed reaches the
// layout engine. Unknown anchors are not an error — the engine resolves
// them through its defined fallbacks.
package blueprint
