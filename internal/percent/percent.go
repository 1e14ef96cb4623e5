package percent

// Of returns part/total as a whole percentage rounded half up.
// A non-positive total yields 0.
func Of(part, total int) int {
	if total <= 0 || part <= 0 {
		return 0
	}
	return (200*part + total) / (2 * total)
}
