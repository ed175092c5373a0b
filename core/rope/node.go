package rope

import (
	"strings"
	"unicode/utf8"
)

// Tree shape constants.
const (
	minLeafSize    = 256
	targetLeafSize = 512
	maxLeafSize    = 1024
	minChildren    = 4
	maxChildren    = 8
)

// node is a rope B+ tree node. Leaves (children == nil) hold text;
// internal nodes hold children and the aggregated summary of their subtree.
// All leaves sit at the same depth. Nodes are never modified after
// construction.
type node struct {
	height   int
	sum      summary
	text     string
	children []*node
}

func newLeaf(s string) *node {
	return &node{text: s, sum: computeSummary(s)}
}

func newInternal(children []*node) *node {
	n := &node{children: children}
	for _, c := range children {
		n.sum = n.sum.add(c.sum)
		if c.height >= n.height {
			n.height = c.height + 1
		}
	}
	return n
}

func (n *node) isLeaf() bool {
	return n.children == nil
}

// group packs nodes into parents until one root remains.
func group(nodes []*node) *node {
	if len(nodes) == 0 {
		return nil
	}
	for len(nodes) > 1 {
		nodes = pack(nodes)
	}
	return nodes[0]
}

// pack distributes nodes evenly over as few parents as hold them, so every
// parent of more than maxChildren nodes gets at least minChildren.
func pack(nodes []*node) []*node {
	count := (len(nodes) + maxChildren - 1) / maxChildren
	parents := make([]*node, 0, count)
	start := 0
	for i := range count {
		end := len(nodes) * (i + 1) / count
		children := make([]*node, end-start)
		copy(children, nodes[start:end])
		parents = append(parents, newInternal(children))
		start = end
	}
	return parents
}

func leavesOf(s string) []*node {
	pieces := splitIntoLeaves(s)
	leaves := make([]*node, len(pieces))
	for i, p := range pieces {
		leaves[i] = newLeaf(p)
	}
	return leaves
}

// underfull reports whether n should be merged with a sibling.
func (n *node) underfull() bool {
	if n.isLeaf() {
		return len(n.text) < minLeafSize
	}
	return len(n.children) < minChildren
}

// childAt finds the child containing byte offset. An offset equal to the
// subtree length resolves to the last child.
func (n *node) childAt(offset int) (int, int) {
	acc := 0
	last := len(n.children) - 1
	for i, c := range n.children {
		if offset < acc+c.sum.bytes || i == last {
			return i, offset - acc
		}
		acc += c.sum.bytes
	}
	return last, offset - acc
}

// insert returns the nodes that replace n after inserting text at offset.
// Every returned node has n's height.
func (n *node) insert(offset int, text string) []*node {
	if n.isLeaf() {
		s := n.text[:offset] + text + n.text[offset:]
		if len(s) <= maxLeafSize {
			return []*node{newLeaf(s)}
		}
		return leavesOf(s)
	}

	idx, childOffset := n.childAt(offset)
	replaced := n.children[idx].insert(childOffset, text)

	children := make([]*node, 0, len(n.children)+len(replaced)-1)
	children = append(children, n.children[:idx]...)
	children = append(children, replaced...)
	children = append(children, n.children[idx+1:]...)

	if len(children) <= maxChildren {
		return []*node{newInternal(children)}
	}
	return pack(children)
}

// remove returns n without the bytes in [start, end), or nil when nothing
// remains. The result keeps n's height but may be underfull.
func (n *node) remove(start, end int) *node {
	if start <= 0 && end >= n.sum.bytes {
		return nil
	}
	if n.isLeaf() {
		return newLeaf(n.text[:start] + n.text[end:])
	}

	children := make([]*node, 0, len(n.children))
	acc := 0
	for _, c := range n.children {
		childEnd := acc + c.sum.bytes
		if childEnd <= start || acc >= end {
			children = append(children, c)
		} else if r := c.remove(max(start-acc, 0), min(end-acc, c.sum.bytes)); r != nil {
			children = append(children, r)
		}
		acc = childEnd
	}

	children = rebalance(children)
	if len(children) == 0 {
		return nil
	}
	return newInternal(children)
}

// rebalance merges every underfull node in a run of same-height siblings
// into its left or right neighbour.
func rebalance(nodes []*node) []*node {
	out := make([]*node, 0, len(nodes))
	for _, c := range nodes {
		if len(out) > 0 {
			prev := out[len(out)-1]
			if prev.underfull() || c.underfull() {
				out = append(out[:len(out)-1], merge(prev, c)...)
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// merge joins two siblings of the same height into one node, or into two
// balanced nodes when one would overflow.
func merge(a, b *node) []*node {
	if a.isLeaf() {
		s := a.text + b.text
		if len(s) <= maxLeafSize {
			return []*node{newLeaf(s)}
		}
		mid := floorBoundary(s, len(s)/2)
		return []*node{newLeaf(s[:mid]), newLeaf(s[mid:])}
	}

	children := make([]*node, 0, len(a.children)+len(b.children))
	children = append(children, a.children...)
	children = append(children, b.children...)
	children = rebalance(children)

	if len(children) <= maxChildren {
		return []*node{newInternal(children)}
	}
	return pack(children)
}

// collapse strips single-child roots left behind by deletes.
func collapse(n *node) *node {
	for n != nil && !n.isLeaf() && len(n.children) == 1 {
		n = n.children[0]
	}
	return n
}

func (n *node) appendTo(sb *strings.Builder) {
	if n.isLeaf() {
		sb.WriteString(n.text)
		return
	}
	for _, c := range n.children {
		c.appendTo(sb)
	}
}

func (n *node) appendRange(sb *strings.Builder, start, end int) {
	if start <= 0 && end >= n.sum.bytes {
		n.appendTo(sb)
		return
	}
	if n.isLeaf() {
		sb.WriteString(n.text[max(start, 0):min(end, len(n.text))])
		return
	}
	acc := 0
	for _, c := range n.children {
		childEnd := acc + c.sum.bytes
		if childEnd > start && acc < end {
			c.appendRange(sb, start-acc, end-acc)
		}
		acc = childEnd
	}
}

func (n *node) byteToLine(offset int) int {
	line := 0
	for !n.isLeaf() {
		idx, childOffset := n.childAt(offset)
		for _, c := range n.children[:idx] {
			line += c.sum.lines
		}
		n, offset = n.children[idx], childOffset
	}
	return line + strings.Count(n.text[:offset], "\n")
}

// newlineOffset returns the byte offset of the k-th (1-based) newline.
// k must be within [1, n.sum.lines].
func (n *node) newlineOffset(k int) int {
	acc := 0
	for !n.isLeaf() {
		for _, c := range n.children {
			if k <= c.sum.lines {
				n = c
				break
			}
			k -= c.sum.lines
			acc += c.sum.bytes
		}
	}
	return acc + nthNewline(n.text, k)
}

func (n *node) byteToChar(offset int) int {
	chars := 0
	for !n.isLeaf() {
		idx, childOffset := n.childAt(offset)
		for _, c := range n.children[:idx] {
			chars += c.sum.chars
		}
		n, offset = n.children[idx], childOffset
	}
	offset = floorBoundary(n.text, offset)
	return chars + utf8.RuneCountInString(n.text[:offset])
}

func (n *node) charToByte(char int) int {
	acc := 0
	for !n.isLeaf() {
		last := len(n.children) - 1
		for i, c := range n.children {
			if char < c.sum.chars || i == last {
				n = c
				break
			}
			char -= c.sum.chars
			acc += c.sum.bytes
		}
	}
	i := 0
	for ; char > 0 && i < len(n.text); char-- {
		_, size := utf8.DecodeRuneInString(n.text[i:])
		i += size
	}
	return acc + i
}

// leafAt returns the text of the leaf containing offset and the leaf's start.
func (n *node) leafAt(offset int) (string, int) {
	start := 0
	for !n.isLeaf() {
		idx, childOffset := n.childAt(offset)
		start += offset - childOffset
		n, offset = n.children[idx], childOffset
	}
	return n.text, start
}
