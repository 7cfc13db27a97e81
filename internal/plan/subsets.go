package plan

import "iter"

// Combinations yields every subset of names with size in [minSize, maxSize],
// smallest first and in lexicographic index order within a size. The
// sequence is lazy, finite and can be ranged over again. Each yielded slice
// is freshly allocated.
func Combinations(names []string, minSize, maxSize int) iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		n := len(names)
		if minSize < 1 {
			minSize = 1
		}
		if maxSize > n {
			maxSize = n
		}

		for k := minSize; k <= maxSize; k++ {
			idx := make([]int, k)
			for i := range idx {
				idx[i] = i
			}

			for {
				combo := make([]string, k)
				for i, j := range idx {
					combo[i] = names[j]
				}
				if !yield(combo) {
					return
				}

				// Advance to the next k-combination.
				i := k - 1
				for i >= 0 && idx[i] == n-k+i {
					i--
				}
				if i < 0 {
					break
				}
				idx[i]++
				for j := i + 1; j < k; j++ {
					idx[j] = idx[j-1] + 1
				}
			}
		}
	}
}

// Singles yields each name as a one-store subset.
func Singles(names []string) iter.Seq[[]string] {
	return Combinations(names, 1, 1)
}
