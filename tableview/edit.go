package tableview

import (
	"context"
	"fmt"
)

// EditState is the in-place edit machine: Clean until a cell is
// activated, Editing while the user types, Committing for the duration of
// the bridge call. Both commit outcomes land back in Clean; on failure
// the cell keeps its original value because the result set is only
// patched after the bridge accepts the write.
type EditState int

const (
	EditClean EditState = iota
	EditEditing
	EditCommitting
)

type pendingEdit struct {
	row      int
	colIdx   int
	column   string
	original any
	value    any
}

func (v *View) EditState() EditState {
	return v.editState
}

// EditingCell reports the coordinates and current value of the pending
// edit, for rendering. ok is false in the Clean state.
func (v *View) EditingCell() (row int, column string, value any, ok bool) {
	if v.editState == EditClean {
		return 0, "", nil, false
	}
	return v.edit.row, v.edit.column, v.edit.value, true
}

// BeginEdit activates a cell for editing with a proposed new value.
func (v *View) BeginEdit(row int, column string, newValue any) error {
	if v.editState != EditClean {
		return ErrEditInProgress
	}
	if v.rs == nil {
		return ErrNoResultSet
	}
	colIdx := v.rs.ColumnIndex(column)
	if colIdx < 0 {
		return fmt.Errorf("%w: %s", ErrColumnUnknown, column)
	}
	if row < 0 || row >= v.rs.NumRows() {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, row)
	}
	v.edit = pendingEdit{
		row:      row,
		colIdx:   colIdx,
		column:   column,
		original: v.rs.Rows[row][colIdx],
		value:    newValue,
	}
	v.editState = EditEditing
	return nil
}

// SetEditValue replaces the pending value while the user keeps typing.
func (v *View) SetEditValue(value any) error {
	if v.editState != EditEditing {
		return ErrNotEditing
	}
	v.edit.value = value
	return nil
}

// CommitEdit pushes the pending value through the bridge. On success the
// in-memory result set reflects the new value without a refetch. On
// failure nothing was written to the set, so the cell shows its original
// value, and the error is returned for display. Either way the machine
// ends Clean.
func (v *View) CommitEdit(ctx context.Context) error {
	if v.editState != EditEditing {
		return ErrNotEditing
	}
	v.editState = EditCommitting

	keyIdx := v.rs.ColumnIndex(v.keyColumn)
	if keyIdx < 0 {
		v.editState = EditClean
		return fmt.Errorf("%w: key column %s", ErrColumnUnknown, v.keyColumn)
	}
	key := v.rs.Rows[v.edit.row][keyIdx]

	err := v.bridge.Update(ctx, v.table, v.keyColumn, key, v.edit.column, v.edit.value)
	if err != nil {
		v.editState = EditClean
		v.edit = pendingEdit{}
		return fmt.Errorf("edit rejected: %w", err)
	}

	patched, perr := v.rs.Patch(v.edit.row, v.edit.colIdx, v.edit.value)
	if perr != nil {
		v.editState = EditClean
		v.edit = pendingEdit{}
		return perr
	}
	v.rs = patched
	v.editState = EditClean
	v.edit = pendingEdit{}
	return nil
}

// CancelEdit abandons the pending edit without writing anything.
func (v *View) CancelEdit() {
	v.editState = EditClean
	v.edit = pendingEdit{}
}
