package differ

import (
	"sort"

	"github.com/aleister1102/uidiff/internal/models"
)

// Aligner computes the minimal-edit list of operations transforming one
// hash sequence into another, using longest-common-block matching: the
// longest common contiguous block is found first, then the regions before
// and after it are aligned recursively. Every element is significant:
// there is no junk heuristic, so frequently repeated hashes (long static
// scenes) are never discounted.
type Aligner struct{}

// NewAligner creates a new Aligner.
func NewAligner() *Aligner {
	return &Aligner{}
}

type matchingBlock struct {
	a, b, size int
}

// Align returns the ordered edit operations covering both sequences
// completely and contiguously, equal operations included. The output is
// deterministic for identical inputs.
func (al *Aligner) Align(a, b models.HashSequence) []models.EditOperation {
	blocks := al.matchingBlocks(a, b)

	var ops []models.EditOperation
	ai, bj := 0, 0
	for _, block := range blocks {
		var kind models.EditKind
		switch {
		case ai < block.a && bj < block.b:
			kind = models.EditReplace
		case ai < block.a:
			kind = models.EditDelete
		case bj < block.b:
			kind = models.EditInsert
		}
		if kind != "" {
			ops = append(ops, models.EditOperation{
				Kind:   kind,
				AStart: ai, AEnd: block.a,
				BStart: bj, BEnd: block.b,
			})
		}
		ai, bj = block.a+block.size, block.b+block.size
		if block.size > 0 {
			ops = append(ops, models.EditOperation{
				Kind:   models.EditEqual,
				AStart: block.a, AEnd: ai,
				BStart: block.b, BEnd: bj,
			})
		}
	}
	return ops
}

// matchingBlocks returns the maximal matching blocks in increasing order,
// terminated by a zero-size sentinel at (len(a), len(b)).
func (al *Aligner) matchingBlocks(a, b models.HashSequence) []matchingBlock {
	// Index every b element by value so candidate match positions are
	// found without scanning.
	b2j := make(map[models.FrameHash][]int, len(b))
	for j, hash := range b {
		b2j[hash] = append(b2j[hash], j)
	}

	type span struct{ alo, ahi, blo, bhi int }
	queue := []span{{0, len(a), 0, len(b)}}
	var matched []matchingBlock

	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		block := al.longestMatch(a, b2j, s.alo, s.ahi, s.blo, s.bhi)
		if block.size == 0 {
			continue
		}
		matched = append(matched, block)
		if s.alo < block.a && s.blo < block.b {
			queue = append(queue, span{s.alo, block.a, s.blo, block.b})
		}
		if block.a+block.size < s.ahi && block.b+block.size < s.bhi {
			queue = append(queue, span{block.a + block.size, s.ahi, block.b + block.size, s.bhi})
		}
	}

	sortBlocks(matched)

	// Merge adjacent blocks so each run of equal frames is a single block.
	var blocks []matchingBlock
	for _, block := range matched {
		if n := len(blocks); n > 0 &&
			blocks[n-1].a+blocks[n-1].size == block.a &&
			blocks[n-1].b+blocks[n-1].size == block.b {
			blocks[n-1].size += block.size
			continue
		}
		blocks = append(blocks, block)
	}

	blocks = append(blocks, matchingBlock{len(a), len(b), 0})
	return blocks
}

// longestMatch finds the longest matching block within a[alo:ahi] and
// b[blo:bhi]. Of all maximal blocks it prefers the one starting earliest
// in a, and of those the one starting earliest in b, which keeps the
// output stable across runs.
func (al *Aligner) longestMatch(a models.HashSequence, b2j map[models.FrameHash][]int, alo, ahi, blo, bhi int) matchingBlock {
	besti, bestj, bestsize := alo, blo, 0

	// j2len[j] is the length of the longest match ending at a[i-1], b[j].
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}

	return matchingBlock{besti, bestj, bestsize}
}

func sortBlocks(blocks []matchingBlock) {
	// Blocks are disjoint and ordered the same way in both sequences, so
	// ordering by the a position is sufficient.
	sort.Slice(blocks, func(i, j int) bool {
		return blocks[i].a < blocks[j].a
	})
}
