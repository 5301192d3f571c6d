package solver

// Call is one frame of the recursive solution: hanoi(Disks, From, Using, To).
// A frame with Disks == 1 has no children; every frame emits exactly one
// move, identified by MoveIndex.
type Call struct {
	Disks     int     `json:"disks"`
	From      int     `json:"from"`
	Using     int     `json:"using"`
	To        int     `json:"to"`
	MoveIndex int     `json:"move"`
	Children  []*Call `json:"children,omitempty"`
}

// CallTree returns the recursion tree that [Solver.ComputeMove] walks for n
// disks, or nil when n <= 0. The tree has 2^n-1 frames; MoveIndex numbers
// match the positions in the solver's MoveList.
func CallTree(n int) *Call {
	if n <= 0 {
		return nil
	}
	next := 0
	return buildCall(n, Source, Auxiliary, Destination, &next)
}

func buildCall(n, from, using, to int, next *int) *Call {
	c := &Call{Disks: n, From: from, Using: using, To: to}
	if n == 1 {
		c.MoveIndex = *next
		*next++
		return c
	}
	left := buildCall(n-1, from, to, using, next)
	c.MoveIndex = *next
	*next++
	right := buildCall(n-1, using, from, to, next)
	c.Children = []*Call{left, right}
	return c
}

// Walk visits c and its descendants depth-first, parents before children.
// It stops early when fn returns false.
func (c *Call) Walk(fn func(c *Call, depth int) bool) {
	c.walk(fn, 0)
}

func (c *Call) walk(fn func(*Call, int) bool, depth int) bool {
	if c == nil {
		return true
	}
	if !fn(c, depth) {
		return false
	}
	for _, child := range c.Children {
		if !child.walk(fn, depth+1) {
			return false
		}
	}
	return true
}

// Size returns the number of frames in the tree.
func (c *Call) Size() int {
	n := 0
	c.Walk(func(*Call, int) bool { n++; return true })
	return n
}
