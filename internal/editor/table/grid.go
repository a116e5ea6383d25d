package table

import "github.com/dshills/richedit/internal/engine/dom"

var cellTags = []string{"td", "th"}

// CellOf returns the table cell containing id, or NoNode.
func CellOf(doc *dom.Document, id dom.NodeID) dom.NodeID {
	if !doc.Valid(id) {
		return dom.NoNode
	}
	return doc.ClosestTag(id, cellTags...)
}

// TableOf returns the table owning cell, or NoNode.
func TableOf(doc *dom.Document, cell dom.NodeID) dom.NodeID {
	if cell == dom.NoNode {
		return dom.NoNode
	}
	return doc.ClosestTag(cell, "table")
}

// Rows returns the rows of table, excluding rows of nested tables.
func Rows(doc *dom.Document, table dom.NodeID) []dom.NodeID {
	var rows []dom.NodeID
	doc.Walk(table, func(id dom.NodeID) bool {
		if id != table && doc.Is(id, "table") {
			return false
		}
		if doc.Is(id, "tr") {
			rows = append(rows, id)
			return false
		}
		return true
	})
	return rows
}

// Cells returns the cells of row.
func Cells(doc *dom.Document, row dom.NodeID) []dom.NodeID {
	var cells []dom.NodeID
	for _, c := range doc.Children(row) {
		if doc.Is(c, cellTags...) {
			cells = append(cells, c)
		}
	}
	return cells
}

// Grid returns the cells of table by row.
func Grid(doc *dom.Document, table dom.NodeID) [][]dom.NodeID {
	rows := Rows(doc, table)
	grid := make([][]dom.NodeID, len(rows))
	for i, r := range rows {
		grid[i] = Cells(doc, r)
	}
	return grid
}

// CellPosition returns the row and column of cell within its table.
func CellPosition(doc *dom.Document, cell dom.NodeID) (row, col int, ok bool) {
	table := TableOf(doc, cell)
	if table == dom.NoNode {
		return 0, 0, false
	}
	for r, cells := range Grid(doc, table) {
		for c, id := range cells {
			if id == cell {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// columnCount returns the widest row's cell count.
func columnCount(grid [][]dom.NodeID) int {
	n := 0
	for _, row := range grid {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

// Bounds is an inclusive index rectangle.
type Bounds struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
}

// Contains reports whether (row, col) lies inside b.
func (b Bounds) Contains(row, col int) bool {
	return row >= b.MinRow && row <= b.MaxRow && col >= b.MinCol && col <= b.MaxCol
}

func boundsOf(r1, c1, r2, c2 int) Bounds {
	return Bounds{
		MinRow: min(r1, r2), MaxRow: max(r1, r2),
		MinCol: min(c1, c2), MaxCol: max(c1, c2),
	}
}
