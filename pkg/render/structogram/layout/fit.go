package layout

// Fit stretches sibling widths so they sum to exactly target. Widths that
// already meet the target are returned unchanged, as are empty and
// zero-total sets. Otherwise each width is scaled to its share of target and
// floored, the rounding deficit is handed out one unit at a time starting
// from the first column, and the last column absorbs any remainder.
//
// The result is always a new slice.
func Fit(base []int, target int) []int {
	out := make([]int, len(base))
	copy(out, base)

	total := 0
	for _, w := range base {
		total += w
	}
	if len(base) == 0 || total <= 0 || total >= target {
		return out
	}

	assigned := 0
	for i, w := range base {
		out[i] = w * target / total
		assigned += out[i]
	}
	for i := 0; assigned < target && i < len(out); i++ {
		out[i]++
		assigned++
	}
	if assigned != target {
		out[len(out)-1] += target - assigned
	}
	return out
}
