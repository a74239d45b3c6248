package nav

// Squash eliminates cycles from a traversal path, producing a simple
// path with no repeated nodes. The scan keeps an output stack and an
// index of each node's stack position; revisiting a node truncates the
// stack back to that node's earlier position, discarding everything
// walked since. Single pass, O(n).
//
// Squash([A,B,C,B,D]) == [A,B,D]: reintroducing B discards C, then D is
// appended. Squash is idempotent.
func Squash(path []string) []string {
	out := make([]string, 0, len(path))
	pos := make(map[string]int, len(path))

	for _, id := range path {
		if p, ok := pos[id]; ok {
			// Drop everything after the earlier occurrence. The node
			// itself stays at the top of the stack.
			for i := p + 1; i < len(out); i++ {
				delete(pos, out[i])
			}
			out = out[:p+1]
			continue
		}
		pos[id] = len(out)
		out = append(out, id)
	}

	return out
}
