// SPDX-License-Identifier: MIT

package machine

import "slices"

// StateGraph returns, for every controller state, the sorted set of states the
// engine can move to in one step. Edges come from the rule that resolves each
// specific key, so shadowed rules contribute nothing. The halt state has no
// outgoing edges. Tape contents are ignored: an edge means some (prog, mem)
// pair leads there, not that the tapes will ever present that pair.
// Complexity: O(|keys| · |rules|).
func (t *Table) StateGraph(sp Space) [][]int {
	g := make([][]int, sp.States)
	for _, k := range sp.Keys() {
		if k.State == sp.Halt() {
			continue
		}
		r, _, ok := t.Resolve(k.State, k.Prog, k.Mem)
		if !ok || r.Effect.Next < 0 || r.Effect.Next >= sp.States {
			continue
		}
		if !slices.Contains(g[k.State], r.Effect.Next) {
			g[k.State] = append(g[k.State], r.Effect.Next)
		}
	}
	for i := range g {
		slices.Sort(g[i])
	}

	return g
}

// Reach is the result of a breadth-first walk over a StateGraph.
type Reach struct {
	Order  []int // states in visit order
	Depth  []int // steps from start, -1 when unreachable
	Parent []int // BFS tree parent, -1 for start and unreachable states
}

// Reachable reports whether state s was visited.
func (r Reach) Reachable(s int) bool { return s >= 0 && s < len(r.Depth) && r.Depth[s] >= 0 }

// ReachFrom walks the state graph of t breadth-first from start.
// A start outside sp yields an empty walk.
func (t *Table) ReachFrom(sp Space, start int) Reach {
	g := t.StateGraph(sp)
	res := Reach{
		Order:  make([]int, 0, sp.States),
		Depth:  make([]int, sp.States),
		Parent: make([]int, sp.States),
	}
	for i := range res.Depth {
		res.Depth[i], res.Parent[i] = -1, -1
	}
	if start < 0 || start >= sp.States {
		return res
	}

	queue := []int{start}
	res.Depth[start] = 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		res.Order = append(res.Order, cur)
		for _, nb := range g[cur] {
			if res.Depth[nb] >= 0 {
				continue
			}
			res.Depth[nb] = res.Depth[cur] + 1
			res.Parent[nb] = cur
			queue = append(queue, nb)
		}
	}

	return res
}

// HaltReachable reports whether the halt state is reachable from state 0 in
// the state graph. false proves the machine can never halt; true does not
// prove that it will.
func (t *Table) HaltReachable(sp Space) bool {
	return t.ReachFrom(sp, 0).Reachable(sp.Halt())
}
