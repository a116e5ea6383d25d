package dom

// Point is a boundary position: a rune offset inside a text node or a child
// index inside an element.
type Point struct {
	Node   NodeID
	Offset int
}

// Range is a pair of boundary points. Start is not required to precede End;
// use Document.Ordered to normalize.
type Range struct {
	Start Point
	End   Point
}

// Caret returns a collapsed range at p.
func Caret(p Point) Range { return Range{Start: p, End: p} }

// Collapsed reports whether the range has no extent.
func (r Range) Collapsed() bool { return r.Start == r.End }

// MaxOffset returns the largest valid offset inside id.
func (d *Document) MaxOffset(id NodeID) int {
	if d.IsElement(id) {
		return d.ChildCount(id)
	}
	return d.TextLen(id)
}

// ValidPoint reports whether p addresses an attached node within bounds.
func (d *Document) ValidPoint(p Point) bool {
	if !d.Attached(p.Node) {
		return false
	}
	return p.Offset >= 0 && p.Offset <= d.MaxOffset(p.Node)
}

// PointBefore returns the point just before id in its parent.
func (d *Document) PointBefore(id NodeID) Point {
	return Point{Node: d.Parent(id), Offset: d.Index(id)}
}

// PointAfter returns the point just after id in its parent.
func (d *Document) PointAfter(id NodeID) Point {
	return Point{Node: d.Parent(id), Offset: d.Index(id) + 1}
}

// StartOf returns the first point inside id.
func (d *Document) StartOf(id NodeID) Point { return Point{Node: id} }

// EndOf returns the last point inside id.
func (d *Document) EndOf(id NodeID) Point { return Point{Node: id, Offset: d.MaxOffset(id)} }

// Selection returns the live selection.
func (d *Document) Selection() (Range, bool) {
	if !d.hasSel {
		return Range{}, false
	}
	if !d.ValidPoint(d.sel.Start) || !d.ValidPoint(d.sel.End) {
		return Range{}, false
	}
	return d.sel, true
}

// SetSelection replaces the live selection.
func (d *Document) SetSelection(r Range) error {
	if !d.ValidPoint(r.Start) || !d.ValidPoint(r.End) {
		return ErrOffsetOutOfRange
	}
	d.sel = r
	d.hasSel = true
	return nil
}

// Collapse places a caret at p.
func (d *Document) Collapse(p Point) error {
	return d.SetSelection(Caret(p))
}

// ClearSelection removes the live selection.
func (d *Document) ClearSelection() {
	d.sel = Range{}
	d.hasSel = false
}

// SelectContents selects everything inside id.
func (d *Document) SelectContents(id NodeID) error {
	return d.SetSelection(Range{Start: d.StartOf(id), End: d.EndOf(id)})
}

// path returns child indices from the root down to id.
func (d *Document) path(id NodeID) []int {
	var rev []int
	for cur := id; cur != d.root && cur != NoNode; cur = d.nodes[cur].parent {
		rev = append(rev, d.Index(cur))
	}
	out := make([]int, len(rev))
	for i := range rev {
		out[i] = rev[len(rev)-1-i]
	}
	return out
}

// ComparePoints orders two attached points: -1, 0 or 1.
func (d *Document) ComparePoints(a, b Point) int {
	pa := append(d.path(a.Node), a.Offset)
	pb := append(d.path(b.Node), b.Offset)
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if pa[i] != pb[i] {
			if pa[i] < pb[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(pa) < len(pb):
		return -1
	case len(pa) > len(pb):
		return 1
	}
	return 0
}

// Ordered returns r with Start not after End.
func (d *Document) Ordered(r Range) Range {
	if d.ComparePoints(r.Start, r.End) > 0 {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// CommonAncestor returns the lowest inclusive ancestor of a and b.
func (d *Document) CommonAncestor(a, b NodeID) NodeID {
	for cur := a; cur != NoNode; cur = d.nodes[cur].parent {
		if d.Contains(cur, b) {
			return cur
		}
	}
	return NoNode
}

// span is an inclusive window over the root's preorder list.
type span struct {
	order []NodeID
	first int
	last  int
}

func (d *Document) spanOf(r Range) (span, error) {
	if !d.ValidPoint(r.Start) || !d.ValidPoint(r.End) {
		return span{}, ErrOffsetOutOfRange
	}
	r = d.Ordered(r)
	start, end := r.Start, r.End

	// Split the end boundary first so the start offsets stay valid when
	// both ends share a text node.
	var endNode NodeID = NoNode
	endAfter := false
	if d.IsText(end.Node) {
		n := d.TextLen(end.Node)
		switch {
		case end.Offset == 0:
			endNode = end.Node
		case end.Offset >= n:
			endNode, endAfter = end.Node, true
		default:
			if _, err := d.SplitText(end.Node, end.Offset); err != nil {
				return span{}, err
			}
			endNode, endAfter = end.Node, true
		}
	}

	var startNode NodeID = NoNode
	startAfter := false
	if d.IsText(start.Node) {
		n := d.TextLen(start.Node)
		switch {
		case start.Offset == 0:
			startNode = start.Node
		case start.Offset >= n:
			startNode, startAfter = start.Node, true
		default:
			right, err := d.SplitText(start.Node, start.Offset)
			if err != nil {
				return span{}, err
			}
			if endNode == start.Node && endAfter {
				endNode = right
			}
			startNode = right
		}
	}

	order := d.Preorder(d.root)
	pos := make(map[NodeID]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	afterSubtree := func(id NodeID) int { return pos[d.LastDescendant(id)] }

	s := span{order: order}
	switch {
	case startNode != NoNode && startAfter:
		s.first = afterSubtree(startNode) + 1
	case startNode != NoNode:
		s.first = pos[startNode]
	default:
		if c := d.ChildAt(start.Node, start.Offset); c != NoNode {
			s.first = pos[c]
		} else {
			s.first = afterSubtree(start.Node) + 1
		}
	}
	switch {
	case endNode != NoNode && endAfter:
		s.last = afterSubtree(endNode)
	case endNode != NoNode:
		s.last = pos[endNode] - 1
	default:
		if end.Offset > 0 {
			s.last = afterSubtree(d.ChildAt(end.Node, end.Offset-1))
		} else {
			s.last = pos[end.Node]
		}
	}
	return s, nil
}

// TextRuns splits the text nodes at the range boundaries and returns the
// non-empty text nodes lying inside the range, in document order. The live
// selection is moved to cover exactly those runs.
func (d *Document) TextRuns(r Range) ([]NodeID, error) {
	if r.Collapsed() {
		return nil, ErrEmptyRange
	}
	s, err := d.spanOf(r)
	if err != nil {
		return nil, err
	}
	var runs []NodeID
	for i := s.first; i <= s.last && i < len(s.order); i++ {
		id := s.order[i]
		if d.IsText(id) && d.nodes[id].text != "" {
			runs = append(runs, id)
		}
	}
	if len(runs) == 0 {
		return nil, ErrEmptyRange
	}
	last := runs[len(runs)-1]
	_ = d.SetSelection(Range{Start: Point{Node: runs[0]}, End: Point{Node: last, Offset: d.TextLen(last)}})
	return runs, nil
}

// splitBefore splits the ancestors of n below top so that n starts a child
// of top. It returns that child.
func (d *Document) splitBefore(top, n NodeID) NodeID {
	cur := n
	for p := d.nodes[cur].parent; p != top && p != NoNode; p = d.nodes[cur].parent {
		if d.nodes[cur].prev != NoNode {
			left := d.Clone(p)
			d.link(d.nodes[p].parent, left, p)
			for c := d.nodes[p].first; c != cur; c = d.nodes[p].first {
				d.unlink(c)
				d.link(left, c, NoNode)
			}
		}
		cur = p
	}
	return cur
}

// splitAfter splits the ancestors of n below top so that n ends a child of
// top. It returns that child.
func (d *Document) splitAfter(top, n NodeID) NodeID {
	cur := n
	for p := d.nodes[cur].parent; p != top && p != NoNode; p = d.nodes[cur].parent {
		if d.nodes[cur].next != NoNode {
			right := d.Clone(p)
			d.link(d.nodes[p].parent, right, d.nodes[p].next)
			for c := d.nodes[cur].next; c != NoNode; c = d.nodes[cur].next {
				d.unlink(c)
				d.link(right, c, NoNode)
			}
		}
		cur = p
	}
	return cur
}

// SurroundRuns extracts the content spanning runs (as returned by
// TextRuns) and reinserts it wrapped in wrapper. Partially covered inline
// ancestors are split. It fails with ErrCrossesBlocks when the runs do not
// share one block container; the document is not modified in that case.
func (d *Document) SurroundRuns(runs []NodeID, wrapper NodeID) error {
	if len(runs) == 0 {
		return ErrEmptyRange
	}
	block := d.ClosestBlock(runs[0])
	for _, id := range runs[1:] {
		if d.ClosestBlock(id) != block {
			return ErrCrossesBlocks
		}
	}
	first, last := runs[0], runs[len(runs)-1]
	common := d.CommonAncestor(first, last)
	if first == last {
		common = d.nodes[first].parent
	}
	startTop := d.splitBefore(common, first)
	endTop := d.splitAfter(common, last)
	if err := d.WrapRange(startTop, endTop, wrapper); err != nil {
		return err
	}
	_ = d.SelectContents(wrapper)
	return nil
}

// InsertAt inserts node at p, splitting a text node when p falls inside it.
func (d *Document) InsertAt(p Point, node NodeID) error {
	if !d.ValidPoint(p) {
		return ErrOffsetOutOfRange
	}
	if d.IsText(p.Node) {
		switch {
		case p.Offset == 0:
			return d.InsertBefore(d.nodes[p.Node].parent, node, p.Node)
		case p.Offset >= d.TextLen(p.Node):
			return d.InsertAfter(p.Node, node)
		default:
			right, err := d.SplitText(p.Node, p.Offset)
			if err != nil {
				return err
			}
			return d.InsertBefore(d.nodes[right].parent, node, right)
		}
	}
	return d.InsertBefore(p.Node, node, d.ChildAt(p.Node, p.Offset))
}

// InsertBlockAt inserts a block element at p without nesting it inside a
// paragraph or inline element: inside a text block it lands after that
// block; inside inline content it lands after the outermost inline ancestor
// below the nearest block container.
func (d *Document) InsertBlockAt(p Point, block NodeID) error {
	if !d.ValidPoint(p) {
		return ErrOffsetOutOfRange
	}
	if tb := d.Closest(p.Node, func(c NodeID) bool { return textBlockTags[d.Tag(c)] }); tb != NoNode {
		return d.InsertAfter(tb, block)
	}
	container := d.ClosestBlock(p.Node)
	if p.Node == container {
		return d.InsertAt(p, block)
	}
	top := p.Node
	for d.nodes[top].parent != container {
		top = d.nodes[top].parent
	}
	if d.IsText(p.Node) && p.Node == top && p.Offset > 0 && p.Offset < d.TextLen(top) {
		return d.InsertAt(p, block)
	}
	if d.ComparePoints(p, d.StartOf(top)) <= 0 || (d.IsText(top) && p.Offset == 0) {
		return d.InsertBefore(container, block, top)
	}
	return d.InsertAfter(top, block)
}

// DeleteContents removes everything inside r and collapses the selection
// to where the content was. When r spans two blocks the remainder of the
// end block is merged into the start block.
func (d *Document) DeleteContents(r Range) error {
	if r.Collapsed() {
		return nil
	}
	r = d.Ordered(r)
	startBlock := d.ClosestBlock(r.Start.Node)
	endBlock := d.ClosestBlock(r.End.Node)

	s, err := d.spanOf(r)
	if err != nil {
		return err
	}
	inSpan := make(map[NodeID]bool)
	for i := s.first; i <= s.last && i < len(s.order); i++ {
		inSpan[s.order[i]] = true
	}
	var tops []NodeID
	chosen := make(map[NodeID]bool)
	for i := s.first; i <= s.last && i < len(s.order); i++ {
		id := s.order[i]
		if chosen[d.nodes[id].parent] {
			chosen[id] = true
			continue
		}
		if id != startBlock && id != endBlock && d.fullyIn(id, inSpan) {
			tops = append(tops, id)
			chosen[id] = true
		}
	}

	landing := r.Start
	var fallback Point
	if len(tops) > 0 {
		fallback = d.PointBefore(tops[0])
	} else {
		fallback = d.EndOf(startBlock)
	}
	for _, id := range tops {
		d.unlink(id)
	}
	if startBlock != endBlock && d.Attached(startBlock) && d.Attached(endBlock) &&
		!d.Contains(startBlock, endBlock) && !d.Contains(endBlock, startBlock) &&
		startBlock != d.root && endBlock != d.root {
		for c := d.nodes[endBlock].first; c != NoNode; c = d.nodes[endBlock].first {
			d.unlink(c)
			d.link(startBlock, c, NoNode)
		}
		d.unlink(endBlock)
	}
	d.touch()
	if !d.ValidPoint(landing) {
		landing = fallback
	}
	if !d.ValidPoint(landing) {
		landing = d.EndOf(startBlock)
	}
	return d.Collapse(landing)
}

func (d *Document) fullyIn(id NodeID, set map[NodeID]bool) bool {
	ok := true
	d.Walk(id, func(c NodeID) bool {
		if !set[c] {
			ok = false
		}
		return ok
	})
	return ok
}
