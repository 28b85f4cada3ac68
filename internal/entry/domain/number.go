package domain

import "math/rand/v2"

// DefaultEntryNumberMax is the upper bound of the preferred entry number range.
const DefaultEntryNumberMax = 40

// NextEntryNumber picks the number assigned to a newly approved entry.
//
// While the range [0, max] has free slots the pick is uniformly random among
// them: numbers are printed on public signage and sequential allocation would
// make them predictable. Once the range is exhausted allocation falls back to
// max(used)+1 and keeps incrementing for every approval past the range.
func NextEntryNumber(used []int, max int) int {
	if max < 0 {
		max = DefaultEntryNumberMax
	}

	taken := make(map[int]struct{}, len(used))
	highest := -1
	for _, n := range used {
		taken[n] = struct{}{}
		if n > highest {
			highest = n
		}
	}

	free := make([]int, 0, max+1)
	for n := 0; n <= max; n++ {
		if _, ok := taken[n]; !ok {
			free = append(free, n)
		}
	}

	if len(free) == 0 {
		return highest + 1
	}
	return free[rand.IntN(len(free))]
}
