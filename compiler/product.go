package compiler

import "planc/expr"

// A product enumerates the cartesian product of several disjunct sets, one
// choice per set. Combinations are produced lazily from an index vector, so
// the full product is never materialized.
type product struct {
	sets [][]expr.Node
	idx  []int
	done bool
}

func newProduct(sets [][]expr.Node) *product {
	p := &product{sets: sets, idx: make([]int, len(sets))}
	for _, set := range sets {
		if len(set) == 0 {
			p.done = true
			break
		}
	}
	return p
}

// next returns the following combination. The second return value is false
// once the product is exhausted.
func (p *product) next() ([]expr.Node, bool) {
	if p.done {
		return nil, false
	}
	combo := make([]expr.Node, len(p.sets))
	for i, set := range p.sets {
		combo[i] = set[p.idx[i]]
	}
	for i := len(p.idx) - 1; ; i-- {
		if i < 0 {
			p.done = true
			break
		}
		p.idx[i]++
		if p.idx[i] < len(p.sets[i]) {
			break
		}
		p.idx[i] = 0
	}
	return combo, true
}
