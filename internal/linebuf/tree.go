package linebuf

// node is one line in an implicit AVL tree ordered by line index.
// Subtree aggregates let index and byte-offset lookups run in O(log n).
type node struct {
	text string // line content without terminator
	eol  string // "\n", "\r\n" or "" for an unterminated last line

	left, right *node
	height      int
	lines       int // lines in this subtree
	bytes       int // bytes in this subtree, terminators included
}

func newNode(text, eol string) *node {
	n := &node{text: text, eol: eol}
	n.update()
	return n
}

func (n *node) size() int {
	return len(n.text) + len(n.eol)
}

func lineCount(n *node) int {
	if n == nil {
		return 0
	}
	return n.lines
}

func byteCount(n *node) int {
	if n == nil {
		return 0
	}
	return n.bytes
}

func height(n *node) int {
	if n == nil {
		return 0
	}
	return n.height
}

func (n *node) update() {
	n.lines = lineCount(n.left) + 1 + lineCount(n.right)
	n.bytes = byteCount(n.left) + n.size() + byteCount(n.right)
	n.height = max(height(n.left), height(n.right)) + 1
}

func rotateRight(n *node) *node {
	l := n.left
	n.left = l.right
	n.update()
	l.right = n
	l.update()
	return l
}

func rotateLeft(n *node) *node {
	r := n.right
	n.right = r.left
	n.update()
	r.left = n
	r.update()
	return r
}

// rebalance restores the AVL height invariant at n after a child changed.
func rebalance(n *node) *node {
	n.update()
	balance := height(n.left) - height(n.right)
	switch {
	case balance > 1:
		if height(n.left.left) < height(n.left.right) {
			n.left = rotateLeft(n.left)
		}
		return rotateRight(n)
	case balance < -1:
		if height(n.right.right) < height(n.right.left) {
			n.right = rotateRight(n.right)
		}
		return rotateLeft(n)
	}
	return n
}

// insertAt inserts nn so that it becomes line i of the subtree rooted at n.
func insertAt(n *node, i int, nn *node) *node {
	if n == nil {
		return nn
	}
	if i <= lineCount(n.left) {
		n.left = insertAt(n.left, i, nn)
	} else {
		n.right = insertAt(n.right, i-lineCount(n.left)-1, nn)
	}
	return rebalance(n)
}

// deleteAt removes line i from the subtree rooted at n.
func deleteAt(n *node, i int) *node {
	leftLines := lineCount(n.left)
	switch {
	case i < leftLines:
		n.left = deleteAt(n.left, i)
	case i > leftLines:
		n.right = deleteAt(n.right, i-leftLines-1)
	default:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		var successor *node
		n.right, successor = detachMin(n.right)
		successor.left, successor.right = n.left, n.right
		n = successor
	}
	return rebalance(n)
}

// detachMin removes the first line of the subtree and returns it separately.
func detachMin(n *node) (*node, *node) {
	if n.left == nil {
		right := n.right
		n.right = nil
		n.update()
		return right, n
	}
	var first *node
	n.left, first = detachMin(n.left)
	return rebalance(n), first
}

// at returns line i and the byte offset at which it starts.
func at(n *node, i int) (*node, int) {
	offset := 0
	for n != nil {
		leftLines := lineCount(n.left)
		switch {
		case i < leftLines:
			n = n.left
		case i > leftLines:
			offset += byteCount(n.left) + n.size()
			i -= leftLines + 1
			n = n.right
		default:
			return n, offset + byteCount(n.left)
		}
	}
	return nil, offset
}

// build creates a perfectly balanced tree from an ordered slice of lines.
func build(nodes []*node) *node {
	if len(nodes) == 0 {
		return nil
	}
	mid := len(nodes) / 2
	n := nodes[mid]
	n.left = build(nodes[:mid])
	n.right = build(nodes[mid+1:])
	n.update()
	return n
}

// walk visits every line in order until fn returns false.
func walk(n *node, fn func(*node) bool) bool {
	var stack []*node
	for n != nil || len(stack) > 0 {
		for n != nil {
			stack = append(stack, n)
			n = n.left
		}
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			return false
		}
		n = n.right
	}
	return true
}
