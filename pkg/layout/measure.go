package layout

import (
	"fmt"

	"github.com/buwaro/anchor/pkg/geom"
)

// Mode qualifies the size carried by a [Spec].
type Mode uint8

const (
	// Unspecified imposes no constraint; the child may pick any size.
	Unspecified Mode = iota
	// Exactly forces the child to the given size.
	Exactly
	// AtMost allows the child any size up to the given ceiling.
	AtMost
)

// String returns the mode name used in logs and test failures.
func (m Mode) String() string {
	switch m {
	case Exactly:
		return "exactly"
	case AtMost:
		return "atMost"
	default:
		return "unspecified"
	}
}

// Spec is a one-axis measurement constraint handed to a child's
// intrinsic-size query.
type Spec struct {
	Size int
	Mode Mode
}

// MakeSpec builds a Spec from a size and mode.
func MakeSpec(size int, mode Mode) Spec { return Spec{Size: size, Mode: mode} }

// String returns e.g. "exactly(40)".
func (s Spec) String() string { return fmt.Sprintf("%s(%d)", s.Mode, s.Size) }

// Negotiate computes the constraint for one axis of a child in a relative
// container, given the child's (possibly unset) resolved edges, its declared
// size and size policy, and the container's own size along the axis.
//
// container is unset while the container's own extent is still unknown
// (wrap-content measurement in progress). Negotiate is pure: it reads its
// arguments and touches nothing else. It is called once per child per axis
// per pass.
func Negotiate(start, end geom.Coord, declared int, policy SizePolicy,
	startMargin, endMargin, startPad, endPad int, container geom.Coord) Spec {

	cs, known := container.Get()
	if !known {
		if sv, ok := start.Get(); ok {
			if ev, ok := end.Get(); ok {
				return Spec{Size: max(0, ev - sv), Mode: Exactly}
			}
		}
		if policy == SizeFixed {
			return Spec{Size: declared, Mode: Exactly}
		}
		return Spec{Mode: Unspecified}
	}

	s := start.Or(startPad + startMargin)
	e := end.Or(cs - endPad - endMargin)
	available := e - s

	switch {
	case start.IsSet() && end.IsSet():
		// Both edges pinned by rules: the child has no say.
		return Spec{Size: max(0, available), Mode: Exactly}
	case policy == SizeFixed:
		if available >= 0 {
			return Spec{Size: min(available, declared), Mode: Exactly}
		}
		return Spec{Size: declared, Mode: Exactly}
	case policy == SizeMatchParent:
		return Spec{Size: max(0, available), Mode: Exactly}
	default: // SizeWrapContent
		if available >= 0 {
			return Spec{Size: available, Mode: AtMost}
		}
		return Spec{Mode: Unspecified}
	}
}

// childSpec derives a child constraint from the parent constraint, the space
// already consumed on the axis, and the child's declared size. This is the
// negotiation used by the linear container, where edges never pin a child.
func childSpec(parent Spec, used, declared int, policy SizePolicy) Spec {
	size := max(0, parent.Size-used)

	switch parent.Mode {
	case Exactly:
		switch policy {
		case SizeFixed:
			return Spec{Size: declared, Mode: Exactly}
		case SizeMatchParent:
			return Spec{Size: size, Mode: Exactly}
		default:
			return Spec{Size: size, Mode: AtMost}
		}
	case AtMost:
		if policy == SizeFixed {
			return Spec{Size: declared, Mode: Exactly}
		}
		return Spec{Size: size, Mode: AtMost}
	default: // Unspecified
		if policy == SizeFixed {
			return Spec{Size: declared, Mode: Exactly}
		}
		return Spec{Mode: Unspecified}
	}
}

// ResolveSize reconciles a computed size with the incoming constraint:
// Exactly wins outright, AtMost caps, Unspecified passes through.
func ResolveSize(size int, spec Spec) int {
	switch spec.Mode {
	case Exactly:
		return spec.Size
	case AtMost:
		return min(size, spec.Size)
	default:
		return size
	}
}
