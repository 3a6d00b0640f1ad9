package huffman

import (
	"fmt"
	"slices"
	"sort"

	"github.com/cocosip/go-pcx-codec/codec"
	"github.com/cocosip/go-pcx-codec/pixel"
)

type node struct {
	freq  int
	color pixel.Color
	leaf  bool
	left  *node
	right *node
}

// buildTree builds the Huffman tree for the colors of pix.
//
// Leaves are ordered by ascending frequency, ties keeping first-seen order.
// The two front nodes are merged and the parent is inserted before the first
// node with a strictly greater frequency, so equal-frequency parents queue
// behind existing nodes.
func buildTree(pix []pixel.Color) *node {
	palette, indices := pixel.BuildPalette(pix)
	if len(palette) == 0 {
		return nil
	}
	counts := make([]int, len(palette))
	for _, idx := range indices {
		counts[idx]++
	}

	queue := make([]*node, len(palette))
	for i, c := range palette {
		queue[i] = &node{freq: counts[i], color: c, leaf: true}
	}
	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].freq < queue[j].freq
	})

	for len(queue) > 1 {
		parent := &node{
			freq:  queue[0].freq + queue[1].freq,
			left:  queue[0],
			right: queue[1],
		}
		queue = queue[2:]

		pos := len(queue)
		for i, n := range queue {
			if n.freq > parent.freq {
				pos = i
				break
			}
		}
		queue = slices.Insert(queue, pos, parent)
	}

	return queue[0]
}

// assignCodes walks the tree, appending "0" for left and "1" for right
func assignCodes(root *node) CodeTable {
	table := make(CodeTable)
	if root == nil {
		return table
	}
	if root.leaf {
		table[root.color] = "0"
		return table
	}

	var walk func(n *node, prefix string)
	walk = func(n *node, prefix string) {
		if n.leaf {
			table[n.color] = prefix
			return
		}
		walk(n.left, prefix+"0")
		walk(n.right, prefix+"1")
	}
	walk(root, "")

	return table
}

// decodeNode is a binary trie over the code table
type decodeNode struct {
	child [2]*decodeNode
	color pixel.Color
	leaf  bool
}

// buildDecoder builds a trie from table and rejects tables that are not prefix-free
func buildDecoder(table CodeTable) (*decodeNode, error) {
	root := &decodeNode{}
	for c, code := range table {
		if code == "" {
			return nil, fmt.Errorf("%w: empty code for %v", codec.ErrCorruptStream, c)
		}
		n := root
		for i := 0; i < len(code); i++ {
			if n.leaf {
				return nil, fmt.Errorf("%w: code table is not prefix-free at %q", codec.ErrCorruptStream, code)
			}
			var bit int
			switch code[i] {
			case '0':
				bit = 0
			case '1':
				bit = 1
			default:
				return nil, fmt.Errorf("%w: invalid bit %q in code %q", codec.ErrCorruptStream, code[i], code)
			}
			if n.child[bit] == nil {
				n.child[bit] = &decodeNode{}
			}
			n = n.child[bit]
		}
		if n.leaf || n.child[0] != nil || n.child[1] != nil {
			return nil, fmt.Errorf("%w: code table is not prefix-free at %q", codec.ErrCorruptStream, code)
		}
		n.leaf = true
		n.color = c
	}
	return root, nil
}
