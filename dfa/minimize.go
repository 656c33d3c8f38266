package dfa

import (
	"fmt"

	"github.com/dfalex/dfalex/internal/sortedset"
)

// Minimizer merges equivalent states of a Dfa by Hopcroft-style partition
// refinement: states start grouped by which token (if any) they accept,
// then a worklist repeatedly refines the partition by splitting off, from
// any block containing states that disagree about their predecessors on
// some byte, the subset that agrees.
type Minimizer struct {
	d *Dfa
}

// NewMinimizer creates a Minimizer for d.
func NewMinimizer(d *Dfa) *Minimizer {
	return &Minimizer{d: d}
}

func initialBlocks(d *Dfa) []sortedset.Set {
	keyed := map[string][]uint32{}
	var order []string
	for s := 0; s < d.numStates; s++ {
		var key string
		switch {
		case StateID(s) == DeadState:
			key = "\x00dead"
		case d.hasAccept[s]:
			key = fmt.Sprintf("tok:%d", d.token[s])
		default:
			key = "none"
		}
		if _, ok := keyed[key]; !ok {
			order = append(order, key)
		}
		keyed[key] = append(keyed[key], uint32(s))
	}

	blocks := make([]sortedset.Set, 0, len(order))
	for _, k := range order {
		blocks = append(blocks, sortedset.FromUnsorted(keyed[k]))
	}
	return blocks
}

// Minimize returns a new, equivalent Dfa with as few states as possible.
func (m *Minimizer) Minimize() *Dfa {
	d := m.d
	n := d.numStates

	blocks := initialBlocks(d)
	blockOf := make([]int, n)
	for bi, blk := range blocks {
		for _, s := range blk {
			blockOf[s] = bi
		}
	}

	// incoming[target*256+b] lists every state with a b-transition into
	// target. A reference implementation this was ported from sized
	// this table at numStates*255 and looped bytes 0 through 254,
	// silently losing every transition on byte 255; both are full-width
	// here (states*256, bytes 0 through 255 inclusive).
	incoming := make([][]uint32, n*256)
	for s := 0; s < n; s++ {
		for b := 0; b < 256; b++ {
			t := int(d.Step(StateID(s), byte(b)))
			incoming[t*256+b] = append(incoming[t*256+b], uint32(s))
		}
	}

	worklist := make([]int, len(blocks))
	inWorklist := make([]bool, len(blocks))
	for i := range blocks {
		worklist[i] = i
		inWorklist[i] = true
	}

	var xBuf []uint32
	var scratchA, scratchB sortedset.Set

	for len(worklist) > 0 {
		last := len(worklist) - 1
		a := worklist[last]
		worklist = worklist[:last]
		inWorklist[a] = false

		for b := 0; b < 256; b++ {
			xBuf = xBuf[:0]
			for _, s := range blocks[a] {
				xBuf = append(xBuf, incoming[int(s)*256+b]...)
			}
			if len(xBuf) == 0 {
				continue
			}
			x := sortedset.FromUnsorted(xBuf)

			byBlock := map[int][]uint32{}
			for _, s := range x {
				bi := blockOf[s]
				byBlock[bi] = append(byBlock[bi], s)
			}

			for bi, subsetVals := range byBlock {
				blk := blocks[bi]
				if len(subsetVals) == len(blk) {
					continue
				}

				subset := sortedset.FromUnsorted(subsetVals)
				inter := blk.Intersection(subset, scratchA)
				rest := blk.Difference(subset, scratchB)
				interCopy := append(sortedset.Set(nil), inter...)
				restCopy := append(sortedset.Set(nil), rest...)

				newIdx := len(blocks)
				blocks[bi] = interCopy
				blocks = append(blocks, restCopy)
				inWorklist = append(inWorklist, false)
				for _, s := range restCopy {
					blockOf[s] = newIdx
				}

				switch {
				case inWorklist[bi]:
					worklist = append(worklist, newIdx)
					inWorklist[newIdx] = true
				case len(interCopy) <= len(restCopy):
					worklist = append(worklist, bi)
					inWorklist[bi] = true
				default:
					worklist = append(worklist, newIdx)
					inWorklist[newIdx] = true
				}
			}
		}
	}

	return buildFromBlocks(d, blocks, blockOf)
}

func buildFromBlocks(d *Dfa, blocks []sortedset.Set, blockOf []int) *Dfa {
	numBlocks := len(blocks)
	deadBlock := blockOf[int(DeadState)]
	startBlock := blockOf[int(d.start)]

	newID := make([]int, numBlocks)
	for i := range newID {
		newID[i] = -1
	}
	nextID := 0
	newID[deadBlock] = nextID
	nextID++
	if startBlock != deadBlock {
		newID[startBlock] = nextID
		nextID++
	}
	for bi := 0; bi < numBlocks; bi++ {
		if newID[bi] == -1 {
			newID[bi] = nextID
			nextID++
		}
	}

	out := &Dfa{
		numStates: numBlocks,
		start:     StateID(newID[startBlock]),
		next:      make([]StateID, numBlocks*256),
		hasAccept: make([]bool, numBlocks),
		token:     make([]int, numBlocks),
	}

	for bi, blk := range blocks {
		rep := StateID(blk[0])
		id := StateID(newID[bi])
		out.hasAccept[id], out.token[id] = d.hasAccept[rep], d.token[rep]
		for b := 0; b < 256; b++ {
			destBlock := blockOf[int(d.Step(rep, byte(b)))]
			out.next[int(id)*256+b] = StateID(newID[destBlock])
		}
	}

	return out
}
