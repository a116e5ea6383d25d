package table

import (
	"github.com/dshills/richedit/internal/engine/dom"
)

type position struct {
	table, row, cell dom.NodeID
	r, c             int
}

func (e *Editor) locate(id dom.NodeID) (position, error) {
	cell := CellOf(e.doc, id)
	if cell == dom.NoNode {
		return position{}, ErrNotInTable
	}
	r, c, ok := CellPosition(e.doc, cell)
	if !ok {
		return position{}, ErrNotInTable
	}
	return position{
		table: TableOf(e.doc, cell),
		row:   e.doc.Parent(cell),
		cell:  cell,
		r:     r,
		c:     c,
	}, nil
}

// InsertRowAbove inserts a row above the row of id with as many cells as
// that row.
func (e *Editor) InsertRowAbove(id dom.NodeID) (dom.NodeID, error) {
	return e.insertRow(id, false)
}

// InsertRowBelow inserts a row below the row of id.
func (e *Editor) InsertRowBelow(id dom.NodeID) (dom.NodeID, error) {
	return e.insertRow(id, true)
}

func (e *Editor) insertRow(id dom.NodeID, below bool) (dom.NodeID, error) {
	pos, err := e.locate(id)
	if err != nil {
		return dom.NoNode, err
	}
	tr := e.newRow(len(Cells(e.doc, pos.row)))
	if below {
		err = e.doc.InsertAfter(pos.row, tr)
	} else {
		err = e.doc.InsertBefore(e.doc.Parent(pos.row), tr, pos.row)
	}
	if err != nil {
		return dom.NoNode, err
	}
	e.ClearSelection()
	return tr, nil
}

// InsertColumnLeft inserts a cell into every row left of id's column.
func (e *Editor) InsertColumnLeft(id dom.NodeID) error {
	return e.insertColumn(id, false)
}

// InsertColumnRight inserts a cell into every row right of id's column.
func (e *Editor) InsertColumnRight(id dom.NodeID) error {
	return e.insertColumn(id, true)
}

func (e *Editor) insertColumn(id dom.NodeID, right bool) error {
	pos, err := e.locate(id)
	if err != nil {
		return err
	}
	for _, row := range Rows(e.doc, pos.table) {
		cells := Cells(e.doc, row)
		cell := e.newCell()
		switch {
		case pos.c < len(cells) && right:
			err = e.doc.InsertAfter(cells[pos.c], cell)
		case pos.c < len(cells):
			err = e.doc.InsertBefore(row, cell, cells[pos.c])
		default:
			err = e.doc.AppendChild(row, cell)
		}
		if err != nil {
			return err
		}
	}
	e.ClearSelection()
	return nil
}

// DeleteRow removes the row of id. The last row of a table is never
// removed.
func (e *Editor) DeleteRow(id dom.NodeID) error {
	pos, err := e.locate(id)
	if err != nil {
		return err
	}
	if len(Rows(e.doc, pos.table)) <= 1 {
		e.alert("Cannot delete the last row of a table.")
		return ErrLastRow
	}
	e.ClearSelection()
	e.moveCaretOut(pos.row, pos.table)
	e.doc.Remove(pos.row)
	return nil
}

// DeleteColumn removes id's column from every row. The last column of a
// table is never removed.
func (e *Editor) DeleteColumn(id dom.NodeID) error {
	pos, err := e.locate(id)
	if err != nil {
		return err
	}
	grid := Grid(e.doc, pos.table)
	if columnCount(grid) <= 1 {
		e.alert("Cannot delete the last column of a table.")
		return ErrLastColumn
	}
	e.ClearSelection()
	for _, cells := range grid {
		if pos.c < len(cells) {
			e.moveCaretOut(cells[pos.c], pos.table)
			e.doc.Remove(cells[pos.c])
		}
	}
	return nil
}

// DeleteTable removes the table containing id.
func (e *Editor) DeleteTable(id dom.NodeID) error {
	pos, err := e.locate(id)
	if err != nil {
		return err
	}
	e.ClearSelection()
	next := e.doc.NextSibling(pos.table)
	e.doc.Remove(pos.table)
	if next != dom.NoNode {
		_ = e.doc.Collapse(e.doc.StartOf(next))
	}
	return nil
}

// moveCaretOut moves a caret inside gone to the start of the table so the
// selection survives the removal.
func (e *Editor) moveCaretOut(gone, table dom.NodeID) {
	r, ok := e.doc.Selection()
	if !ok {
		return
	}
	if e.doc.Contains(gone, r.Start.Node) || e.doc.Contains(gone, r.End.Node) {
		_ = e.doc.Collapse(e.doc.PointBefore(table))
	}
}
