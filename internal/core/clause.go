// Copyright (c) 2025 COREGX. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package core

import (
	"strings"

	"github.com/coregx/sqlstring/internal/util"
)

// ColumnTypeString marks a ColumnRef as textual. A WHERE condition on such a
// column using the LIKE operator is rendered case-insensitively.
const ColumnTypeString = "string"

// SelectItem is an entry of the SELECT list.
// It is implemented by Column and ColumnRef.
type SelectItem interface {
	selectItem()
}

// TableSource is the FROM target of a query.
// It is implemented by Table and TableRef.
type TableSource interface {
	tableSource()
}

// ColumnExpr is the left-hand side of a WHERE condition.
// It is implemented by Column and ColumnRef.
type ColumnExpr interface {
	columnExpr()
}

// OrderItem is an entry of the ORDER BY list.
// It is implemented by Column and Order.
type OrderItem interface {
	orderItem()
}

// Column is a plain column name (or any raw fragment) rendered verbatim.
//
// Example:
//
//	sqlstring.New().Select(sqlstring.Column("COUNT(*)")).From(sqlstring.Table("users"))
type Column string

func (Column) selectItem() {}
func (Column) columnExpr() {}
func (Column) orderItem()  {}

// ColumnRef is a table-qualified column, rendered as table."column".
//
// Alias is only used in the SELECT list (rendered as AS "alias").
// Type is only used in WHERE conditions; ColumnTypeString combined with
// the LIKE operator renders LOWER (col) LIKE LOWER ('value').
type ColumnRef struct {
	Table  string
	Column string
	Alias  string
	Type   string
}

func (ColumnRef) selectItem() {}
func (ColumnRef) columnExpr() {}

// Table is a plain table name rendered verbatim.
type Table string

func (Table) tableSource() {}

// TableRef is a table with an optional alias, rendered as "table alias".
type TableRef struct {
	Table string
	Alias string
}

func (TableRef) tableSource() {}

// Join describes a JOIN clause.
//
// The joined table is the left side. The ON clause compares LeftKey,
// qualified by LeftAlias (or LeftTable when no alias is set), with
// RightKey, qualified by RightAlias (or RightTable):
//
//	<Type> <LeftTable> <LeftAlias> ON <left>."<LeftKey>" = <right>."<RightKey>"
type Join struct {
	Type       string // e.g. "INNER JOIN", "FULL JOIN"
	LeftTable  string
	LeftAlias  string
	RightTable string
	RightAlias string
	LeftKey    string
	RightKey   string
}

// Condition is a single WHERE predicate. Conditions are combined with AND.
// Value is always rendered inside single quotes.
type Condition struct {
	Column   ColumnExpr
	Operator string
	Value    interface{}
}

// caseInsensitive reports whether the condition must be rendered with LOWER.
func (c Condition) caseInsensitive() bool {
	ref, ok := c.Column.(ColumnRef)
	if !ok {
		return false
	}
	return ref.Type == ColumnTypeString && strings.EqualFold(strings.TrimSpace(c.Operator), "LIKE")
}

// Order is a table-qualified sort key with a direction (ASC or DESC).
type Order struct {
	Column    ColumnRef
	Direction string
}

func (Order) orderItem() {}

// Columns converts plain names to SELECT items.
func Columns(names ...string) []SelectItem {
	items := make([]SelectItem, len(names))
	for i, name := range names {
		items[i] = Column(name)
	}
	return items
}

// ModelColumns derives table-qualified SELECT items from the db tags of a
// struct. Text fields are typed ColumnTypeString.
//
//	type User struct {
//	    ID        int    `db:"id"`
//	    FirstName string `db:"firstName"`
//	}
//	items, _ := ModelColumns("u", User{}) // u."id", u."firstName"
func ModelColumns(table string, model interface{}) ([]SelectItem, error) {
	fields, err := util.StructFields(model)
	if err != nil {
		return nil, err
	}

	items := make([]SelectItem, len(fields))
	for i, f := range fields {
		ref := ColumnRef{Table: table, Column: f.Column}
		if f.String {
			ref.Type = ColumnTypeString
		}
		items[i] = ref
	}
	return items, nil
}
