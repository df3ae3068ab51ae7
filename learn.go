package templater

import (
	"sort"

	"git.fractalqb.de/fractalqb/icontainer/islist"
)

// boundary separates the stored literals in the rune sequence that is
// aligned with an example. It never equals a rune decoded from a string.
const boundary rune = -1

// span is a pair of ranges, one in the stored literals and one in the
// example, that is still to be aligned.
type span struct {
	lits, litsEnd int
	exmp, exmpEnd int
	next          *span
}

// ListNext to implement intrusive singly linked list
func (s *span) ListNext() islist.Node {
	if s.next == nil {
		return nil
	}
	return s.next
}

// SetListNext to implement intrusive singly linked list
func (s *span) SetListNext(n islist.Node) {
	if n == nil {
		s.next = nil
	} else {
		s.next = n.(*span)
	}
}

type block struct{ lits, exmp, len int }

// Refine computes the literals of a template that matches everything the
// template with literals lits matches and also example. It repeatedly picks
// the longest common text of a stored literal and the example and continues
// left and right of it. Common texts shorter than minBlockSize runes are
// dropped. Refine does not modify lits.
func Refine(lits []string, example string, minBlockSize int) []string {
	if minBlockSize < 1 {
		minBlockSize = 1
	}
	var a []rune
	for i, l := range lits {
		if i > 0 {
			a = append(a, boundary)
		}
		a = append(a, []rune(l)...)
	}
	b := []rune(example)
	var blocks []block
	work := islist.New(&span{litsEnd: len(a), exmpEnd: len(b)})
	for work.Len() > 0 {
		s := work.Front().(*span)
		work.Drop(1)
		i, j, n := longestCommon(a[s.lits:s.litsEnd], b[s.exmp:s.exmpEnd])
		if n < minBlockSize {
			continue
		}
		i += s.lits
		j += s.exmp
		blocks = append(blocks, block{lits: i, exmp: j, len: n})
		if i > s.lits && j > s.exmp {
			work.PushBack(&span{lits: s.lits, litsEnd: i, exmp: s.exmp, exmpEnd: j})
		}
		if i+n < s.litsEnd && j+n < s.exmpEnd {
			work.PushBack(&span{lits: i + n, litsEnd: s.litsEnd, exmp: j + n, exmpEnd: s.exmpEnd})
		}
	}
	// Spans are disjoint and nested, so blocks are ordered the same way in
	// both texts.
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].lits < blocks[j].lits })
	res := make([]string, len(blocks))
	for i, blk := range blocks {
		res[i] = string(a[blk.lits : blk.lits+blk.len])
	}
	return res
}

// longestCommon finds the longest common substring of a and b that does not
// contain a boundary. Of equally long candidates the one ending first in a
// wins, then the one ending first in b.
func longestCommon(a, b []rune) (ia, ib, n int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		r := a[i-1]
		for j := 1; j <= len(b); j++ {
			if r == boundary || r != b[j-1] {
				curr[j] = 0
				continue
			}
			curr[j] = prev[j-1] + 1
			if curr[j] > n {
				n = curr[j]
				ia, ib = i-n, j-n
			}
		}
		prev, curr = curr, prev
	}
	return ia, ib, n
}
