package render

// Node visit states for the draw-order sort.
const (
	unvisited = iota
	inProgress
	done
)

// topoSort orders node indices so that every index in before[i] appears
// ahead of i in the result. The relation may contain cycles: a dependency
// that is already in progress on the stack imposes no constraint, which
// breaks cycles deterministically in input order instead of failing.
// Iterative depth-first emission keeps deep chains off the call stack.
func topoSort(before [][]int) []int {
	n := len(before)
	state := make([]uint8, n)
	order := make([]int, 0, n)

	type frame struct {
		node int
		next int
	}
	var stack []frame

	for start := 0; start < n; start++ {
		if state[start] != unvisited {
			continue
		}
		state[start] = inProgress
		stack = append(stack[:0], frame{node: start})

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			if f.next < len(before[f.node]) {
				dep := before[f.node][f.next]
				f.next++
				if state[dep] == unvisited {
					state[dep] = inProgress
					stack = append(stack, frame{node: dep})
				}
				continue
			}
			state[f.node] = done
			order = append(order, f.node)
			stack = stack[:len(stack)-1]
		}
	}
	return order
}
