package layout

// ConstraintKind identifies how a Constraint sizes its child.
type ConstraintKind int

// Constraint kinds, applied in declaration order when weights are unset.
const (
	ConstraintLength ConstraintKind = iota
	ConstraintPercentage
	ConstraintRatio
	ConstraintMin
	ConstraintMax
	ConstraintFill
)

// Constraint sizes one child of a split along the split axis.
type Constraint struct {
	Kind  ConstraintKind
	Value int
	// Denominator is only used by ConstraintRatio.
	Denominator int
}

// Length is a fixed size in cells.
func Length(n int) Constraint { return Constraint{Kind: ConstraintLength, Value: n} }

// Percentage is a share of the parent extent.
func Percentage(p int) Constraint { return Constraint{Kind: ConstraintPercentage, Value: p} }

// Ratio is num/den of the parent extent.
func Ratio(num, den int) Constraint {
	return Constraint{Kind: ConstraintRatio, Value: num, Denominator: den}
}

// Min is at least n cells, growing with leftover space.
func Min(n int) Constraint { return Constraint{Kind: ConstraintMin, Value: n} }

// Max is at most n cells.
func Max(n int) Constraint { return Constraint{Kind: ConstraintMax, Value: n} }

// Fill takes leftover space proportionally to weight.
func Fill(weight int) Constraint { return Constraint{Kind: ConstraintFill, Value: weight} }

// solveConstraints turns constraints into sizes that sum to total.
// Fixed sizes are honoured first (trimmed from the end when they overflow),
// then leftover space goes to Min and Fill entries by weight. With no
// flexible entry the last child absorbs the remainder.
func solveConstraints(total int, constraints []Constraint) []int {
	n := len(constraints)
	sizes := make([]int, n)
	if n == 0 || total <= 0 {
		return sizes
	}

	flexWeights := make([]int, n)
	fixed := 0
	for i, c := range constraints {
		v := max(c.Value, 0)
		switch c.Kind {
		case ConstraintLength, ConstraintMax:
			sizes[i] = v
		case ConstraintPercentage:
			sizes[i] = total * min(v, 100) / 100
		case ConstraintRatio:
			if c.Denominator > 0 {
				sizes[i] = total * v / c.Denominator
			}
		case ConstraintMin:
			sizes[i] = v
			flexWeights[i] = 1
		case ConstraintFill:
			flexWeights[i] = v
		}
		fixed += sizes[i]
	}

	if fixed > total {
		over := fixed - total
		for i := n - 1; i >= 0 && over > 0; i-- {
			cut := min(sizes[i], over)
			sizes[i] -= cut
			over -= cut
		}
		return sizes
	}

	leftover := total - fixed
	weightSum := 0
	lastFlex := -1
	for i, w := range flexWeights {
		if w > 0 {
			weightSum += w
			lastFlex = i
		}
	}
	if weightSum == 0 {
		sizes[n-1] += leftover
		return sizes
	}
	given := 0
	for i, w := range flexWeights {
		if w == 0 {
			continue
		}
		if i == lastFlex {
			sizes[i] += leftover - given
			break
		}
		share := leftover * w / weightSum
		sizes[i] += share
		given += share
	}
	return sizes
}
