package ghost

// tabuTimes computes the default tabu countdown constants for a model with
// n variables: tabuTimeLocalMin = max(1, n/2), tabuTimeSelected =
// max(1, tabuTimeLocalMin/2).
func tabuTimes(n int) (localMin, selected int) {
	localMin = n / 2
	if localMin < 1 {
		localMin = 1
	}
	selected = localMin / 2
	if selected < 1 {
		selected = 1
	}
	return localMin, selected
}
