// Copyright 2023-present The Stratum Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package core

import (
	"github.com/stratumhq/stratum/structure"
)

// NewTable returns a new table named name.
func NewTable(name string) *Table {
	t := &Table{}
	t.SetName(name)
	return t
}

// SetSchema sets the owning schema and returns the table.
func (t *Table) SetSchema(s *structure.Schema) *Table {
	t.Base.SetSchema(s)
	return t
}

// SetComment sets the table comment and returns the table.
func (t *Table) SetComment(text string) *Table {
	t.Attrs().Set("comment", structure.String{V: text})
	return t
}

// SetTablespace sets the tablespace the table is stored in.
func (t *Table) SetTablespace(name string) *Table {
	t.Attrs().Set("tablespace", structure.String{V: name})
	return t
}

// AddColumns appends the given columns to the table and points each column
// back at it.
func (t *Table) AddColumns(columns ...*Column) *Table {
	for _, c := range columns {
		c.Attrs().Set("table", structure.Ref{O: t})
		appendRef(t, "columns", c)
	}
	return t
}

// Columns returns the table columns in order.
func (t *Table) Columns() []*Column {
	return refsOf[*Column](t, "columns")
}

// Column returns the first column that matches the given name.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns() {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// SetPrimaryKey sets the primary key of the table and points it back at
// the table.
func (t *Table) SetPrimaryKey(pk *PrimaryKey) *Table {
	pk.Attrs().Set("table", structure.Ref{O: t})
	t.Attrs().Set("primaryKey", structure.Ref{O: pk})
	return t
}

// PrimaryKey returns the primary key of the table, or nil when none is set.
func (t *Table) PrimaryKey() *PrimaryKey {
	o, ok := t.Attrs().Object("primaryKey")
	if !ok {
		return nil
	}
	pk, _ := o.(*PrimaryKey)
	return pk
}

// AddIndexes appends the given indexes to the table and points each index
// back at it.
func (t *Table) AddIndexes(indexes ...*Index) *Table {
	for _, idx := range indexes {
		idx.Attrs().Set("table", structure.Ref{O: t})
		appendRef(t, "indexes", idx)
	}
	return t
}

// Indexes returns the table indexes in order.
func (t *Table) Indexes() []*Index {
	return refsOf[*Index](t, "indexes")
}

// Index returns the first index that matches the given name.
func (t *Table) Index(name string) (*Index, bool) {
	for _, idx := range t.Indexes() {
		if idx.Name() == name {
			return idx, true
		}
	}
	return nil, false
}

// AddForeignKeys appends the given foreign keys to the table and points
// each key's referencing side back at it.
func (t *Table) AddForeignKeys(fks ...*ForeignKey) *Table {
	for _, fk := range fks {
		fk.Attrs().Set("foreignKeyTable", structure.Ref{O: t})
		appendRef(t, "foreignKeys", fk)
	}
	return t
}

// ForeignKeys returns the table foreign keys in order.
func (t *Table) ForeignKeys() []*ForeignKey {
	return refsOf[*ForeignKey](t, "foreignKeys")
}

// AddUniqueConstraints appends the given constraints to the table and
// points each constraint back at it.
func (t *Table) AddUniqueConstraints(ucs ...*UniqueConstraint) *Table {
	for _, uc := range ucs {
		uc.Attrs().Set("table", structure.Ref{O: t})
		appendRef(t, "uniqueConstraints", uc)
	}
	return t
}

// UniqueConstraints returns the table unique constraints in order.
func (t *Table) UniqueConstraints() []*UniqueConstraint {
	return refsOf[*UniqueConstraint](t, "uniqueConstraints")
}

// NewColumn returns a new column named name.
func NewColumn(name string) *Column {
	c := &Column{}
	c.SetName(name)
	return c
}

// SetType sets the vendor type literal of the column, e.g. "varchar(255)".
func (c *Column) SetType(t string) *Column {
	c.Attrs().Set("type", structure.String{V: t})
	return c
}

// Type returns the vendor type literal of the column.
func (c *Column) Type() string {
	t, _ := c.Attrs().String("type")
	return t
}

// SetNullable sets whether the column accepts null values.
func (c *Column) SetNullable(v bool) *Column {
	c.Attrs().Set("nullable", structure.Bool{V: v})
	return c
}

// SetAutoIncrement sets whether the column value is generated by the
// database on insert.
func (c *Column) SetAutoIncrement(v bool) *Column {
	c.Attrs().Set("autoIncrement", structure.Bool{V: v})
	return c
}

// SetDefault sets the column default value.
func (c *Column) SetDefault(v structure.Value) *Column {
	c.Attrs().Set("defaultValue", v)
	return c
}

// SetComment sets the column comment and returns the column.
func (c *Column) SetComment(text string) *Column {
	c.Attrs().Set("comment", structure.String{V: text})
	return c
}

// SetOrder sets the ordinal position of the column in its table.
func (c *Column) SetOrder(n int64) *Column {
	c.Attrs().Set("order", structure.Number{V: n})
	return c
}

// Table returns the table the column belongs to, or nil.
func (c *Column) Table() *Table {
	o, ok := c.Attrs().Object("table")
	if !ok {
		return nil
	}
	t, _ := o.(*Table)
	return t
}

// NewIndex returns a new index named name.
func NewIndex(name string) *Index {
	idx := &Index{}
	idx.SetName(name)
	return idx
}

// NewUniqueIndex returns a new unique index named name.
func NewUniqueIndex(name string) *Index {
	return NewIndex(name).SetUnique(true)
}

// AddColumns appends the given columns to the index key.
func (idx *Index) AddColumns(columns ...*Column) *Index {
	for _, c := range columns {
		appendRef(idx, "columns", c)
	}
	return idx
}

// Columns returns the index key columns in order.
func (idx *Index) Columns() []*Column {
	return refsOf[*Column](idx, "columns")
}

// SetUnique sets whether the index enforces uniqueness.
func (idx *Index) SetUnique(v bool) *Index {
	idx.Attrs().Set("unique", structure.Bool{V: v})
	return idx
}

// Unique reports whether the index enforces uniqueness.
func (idx *Index) Unique() bool {
	v, _ := idx.Attrs().Bool("unique")
	return v
}

// SetDirection sets the index ordering.
func (idx *Index) SetDirection(d IndexDirection) *Index {
	idx.Attrs().Set("direction", structure.Enum{Type: IndexDirectionTag, Member: string(d)})
	return idx
}

// SetComment sets the index comment and returns the index.
func (idx *Index) SetComment(text string) *Index {
	idx.Attrs().Set("comment", structure.String{V: text})
	return idx
}

// Table returns the table the index belongs to, or nil.
func (idx *Index) Table() *Table {
	o, ok := idx.Attrs().Object("table")
	if !ok {
		return nil
	}
	t, _ := o.(*Table)
	return t
}

// NewPrimaryKey returns a new primary key over the given columns.
func NewPrimaryKey(columns ...*Column) *PrimaryKey {
	pk := &PrimaryKey{}
	for _, c := range columns {
		appendRef(pk, "columns", c)
	}
	return pk
}

// Columns returns the key columns in order.
func (pk *PrimaryKey) Columns() []*Column {
	return refsOf[*Column](pk, "columns")
}

// SetBackingIndex sets the index implementing the key.
func (pk *PrimaryKey) SetBackingIndex(idx *Index) *PrimaryKey {
	pk.Attrs().Set("backingIndex", structure.Ref{O: idx})
	return pk
}

// Table returns the table the key belongs to, or nil.
func (pk *PrimaryKey) Table() *Table {
	o, ok := pk.Attrs().Object("table")
	if !ok {
		return nil
	}
	t, _ := o.(*Table)
	return t
}

// NewForeignKey returns a new foreign key named name.
func NewForeignKey(name string) *ForeignKey {
	fk := &ForeignKey{}
	fk.SetName(name)
	return fk
}

// AddColumns appends the given columns to the referencing side of the key.
func (fk *ForeignKey) AddColumns(columns ...*Column) *ForeignKey {
	for _, c := range columns {
		appendRef(fk, "foreignKeyColumns", c)
	}
	return fk
}

// Columns returns the referencing columns in order.
func (fk *ForeignKey) Columns() []*Column {
	return refsOf[*Column](fk, "foreignKeyColumns")
}

// SetRefTable sets the table referenced by the key.
func (fk *ForeignKey) SetRefTable(t *Table) *ForeignKey {
	fk.Attrs().Set("primaryKeyTable", structure.Ref{O: t})
	return fk
}

// RefTable returns the table referenced by the key, or nil.
func (fk *ForeignKey) RefTable() *Table {
	o, ok := fk.Attrs().Object("primaryKeyTable")
	if !ok {
		return nil
	}
	t, _ := o.(*Table)
	return t
}

// AddRefColumns appends the given columns to the referenced side of the key.
func (fk *ForeignKey) AddRefColumns(columns ...*Column) *ForeignKey {
	for _, c := range columns {
		appendRef(fk, "primaryKeyColumns", c)
	}
	return fk
}

// RefColumns returns the referenced columns in order.
func (fk *ForeignKey) RefColumns() []*Column {
	return refsOf[*Column](fk, "primaryKeyColumns")
}

// SetOnDelete sets the action taken when referenced rows are deleted.
func (fk *ForeignKey) SetOnDelete(a ReferenceAction) *ForeignKey {
	fk.Attrs().Set("onDelete", structure.Enum{Type: ReferenceActionTag, Member: string(a)})
	return fk
}

// OnDelete returns the delete action and reports whether one is set.
func (fk *ForeignKey) OnDelete() (ReferenceAction, bool) {
	return actionOf(fk, "onDelete")
}

// SetOnUpdate sets the action taken when referenced rows are updated.
func (fk *ForeignKey) SetOnUpdate(a ReferenceAction) *ForeignKey {
	fk.Attrs().Set("onUpdate", structure.Enum{Type: ReferenceActionTag, Member: string(a)})
	return fk
}

// OnUpdate returns the update action and reports whether one is set.
func (fk *ForeignKey) OnUpdate() (ReferenceAction, bool) {
	return actionOf(fk, "onUpdate")
}

// Table returns the table the key is declared on, or nil.
func (fk *ForeignKey) Table() *Table {
	o, ok := fk.Attrs().Object("foreignKeyTable")
	if !ok {
		return nil
	}
	t, _ := o.(*Table)
	return t
}

// NewUniqueConstraint returns a new unique constraint named name.
func NewUniqueConstraint(name string) *UniqueConstraint {
	uc := &UniqueConstraint{}
	uc.SetName(name)
	return uc
}

// AddColumns appends the given columns to the constraint.
func (uc *UniqueConstraint) AddColumns(columns ...*Column) *UniqueConstraint {
	for _, c := range columns {
		appendRef(uc, "columns", c)
	}
	return uc
}

// Columns returns the constrained columns in order.
func (uc *UniqueConstraint) Columns() []*Column {
	return refsOf[*Column](uc, "columns")
}

// SetDeferrable sets whether constraint checking can be deferred.
func (uc *UniqueConstraint) SetDeferrable(v bool) *UniqueConstraint {
	uc.Attrs().Set("deferrable", structure.Bool{V: v})
	return uc
}

// Table returns the table the constraint belongs to, or nil.
func (uc *UniqueConstraint) Table() *Table {
	o, ok := uc.Attrs().Object("table")
	if !ok {
		return nil
	}
	t, _ := o.(*Table)
	return t
}

// NewView returns a new view named name with the given definition.
func NewView(name, def string) *View {
	v := &View{}
	v.SetName(name)
	v.Attrs().Set("definition", structure.String{V: def})
	return v
}

// SetSchema sets the owning schema and returns the view.
func (v *View) SetSchema(s *structure.Schema) *View {
	v.Base.SetSchema(s)
	return v
}

// AddColumns appends the given columns to the view and points each column
// back at it.
func (v *View) AddColumns(columns ...*Column) *View {
	for _, c := range columns {
		c.Attrs().Set("table", structure.Ref{O: v})
		appendRef(v, "columns", c)
	}
	return v
}

// Columns returns the view columns in order.
func (v *View) Columns() []*Column {
	return refsOf[*Column](v, "columns")
}

// Definition returns the view definition.
func (v *View) Definition() string {
	def, _ := v.Attrs().String("definition")
	return def
}

// SetComment sets the view comment and returns the view.
func (v *View) SetComment(text string) *View {
	v.Attrs().Set("comment", structure.String{V: text})
	return v
}

// NewSequence returns a new sequence named name.
func NewSequence(name string) *Sequence {
	s := &Sequence{}
	s.SetName(name)
	return s
}

// SetSchema sets the owning schema and returns the sequence.
func (s *Sequence) SetSchema(sc *structure.Schema) *Sequence {
	s.Base.SetSchema(sc)
	return s
}

// SetStart sets the first value of the sequence.
func (s *Sequence) SetStart(v int64) *Sequence {
	s.Attrs().Set("startValue", structure.Number{V: v})
	return s
}

// SetIncrement sets the step between consecutive sequence values.
func (s *Sequence) SetIncrement(v int64) *Sequence {
	s.Attrs().Set("incrementBy", structure.Number{V: v})
	return s
}

// SetCycle sets whether the sequence restarts after reaching its bound.
func (s *Sequence) SetCycle(v bool) *Sequence {
	s.Attrs().Set("cycle", structure.Bool{V: v})
	return s
}

// appendRef appends a reference to o under the sequence-valued property
// name, starting the sequence on first use.
func appendRef(owner structure.Object, name string, o structure.Object) {
	seq, _ := owner.Attrs().List(name)
	owner.Attrs().Set(name, append(seq, structure.Ref{O: o}))
}

// refsOf returns the elements of type T referenced by the sequence under
// name, skipping members of other kinds.
func refsOf[T structure.Object](o structure.Object, name string) []T {
	objs := o.Attrs().Objects(name)
	out := make([]T, 0, len(objs))
	for _, obj := range objs {
		if t, ok := obj.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// actionOf reads a reference action enum stored under name.
func actionOf(o structure.Object, name string) (ReferenceAction, bool) {
	v, ok := o.Attrs().Get(name)
	if !ok {
		return "", false
	}
	e, ok := v.(structure.Enum)
	if !ok || e.Type != ReferenceActionTag {
		return "", false
	}
	return ReferenceAction(e.Member), true
}
