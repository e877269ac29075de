// Package envdata implements the environmental-variable aggregation
// pipeline: per-polygon miscellaneous variables and raster-derived summary
// statistics are fetched as separate tables and merged into a single
// polygon-indexed table.
package envdata

import (
	"slices"
)

// Table is a polygon-indexed table. Columns keeps the caller-facing column
// order; Rows maps entity ID to column values. A missing or nil value is a
// null.
type Table struct {
	Columns []string
	Rows    map[int]map[string]any
}

// NewTable creates an empty table with the given column order.
func NewTable(columns ...string) Table {
	return Table{
		Columns: columns,
		Rows:    make(map[int]map[string]any),
	}
}

// Set stores a value for one polygon and column.
func (t Table) Set(entityID int, column string, value any) {
	row, ok := t.Rows[entityID]
	if !ok {
		row = make(map[string]any)
		t.Rows[entityID] = row
	}
	row[column] = value
}

// Get returns the value for one polygon and column; the boolean is false
// for nulls.
func (t Table) Get(entityID int, column string) (any, bool) {
	row, ok := t.Rows[entityID]
	if !ok {
		return nil, false
	}
	v, ok := row[column]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// EntityIDs returns the IDs of all rows, sorted.
func (t Table) EntityIDs() []int {
	ids := make([]int, 0, len(t.Rows))
	for id := range t.Rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// OuterJoin merges tables on entity ID. Every polygon present in any input
// appears in the output; values missing on one side stay null. Column
// order follows the order of the inputs.
func OuterJoin(tables ...Table) Table {
	res := NewTable()
	for _, t := range tables {
		for _, col := range t.Columns {
			if !slices.Contains(res.Columns, col) {
				res.Columns = append(res.Columns, col)
			}
		}
		for id, row := range t.Rows {
			if _, ok := res.Rows[id]; !ok {
				res.Rows[id] = make(map[string]any, len(row))
			}
			for col, v := range row {
				res.Rows[id][col] = v
			}
		}
	}
	return res
}

// DropAllNull removes rows where every column is null. A polygon with none
// of the requested data contributes nothing.
func (t Table) DropAllNull() Table {
	res := NewTable(t.Columns...)
	for id, row := range t.Rows {
		for _, col := range t.Columns {
			if v, ok := row[col]; ok && v != nil {
				res.Rows[id] = row
				break
			}
		}
	}
	return res
}

// Restrict keeps only rows for the given entity IDs. An empty ID list
// keeps everything.
func (t Table) Restrict(entityIDs []int) Table {
	if len(entityIDs) == 0 {
		return t
	}
	res := NewTable(t.Columns...)
	for _, id := range entityIDs {
		if row, ok := t.Rows[id]; ok {
			res.Rows[id] = row
		}
	}
	return res
}
