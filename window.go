package relaypager

import (
	"database/sql/driver"
	"fmt"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Columns names the two columns of the composite sort key.
type Columns struct {
	Timestamp string
	ID        string
}

// DefaultColumns is the sort key used when none is configured.
var DefaultColumns = Columns{
	Timestamp: "created_at",
	ID:        "id",
}

func (c Columns) validate() error {
	if err := validateColumnName(c.Timestamp); err != nil {
		return fmt.Errorf("timestamp column: %w", err)
	}

	if err := validateColumnName(c.ID); err != nil {
		return fmt.Errorf("id column: %w", err)
	}

	if c.Timestamp == c.ID {
		return fmt.Errorf("timestamp and id columns must differ")
	}

	return nil
}

// Window is a contiguous range of the ordered collection that starts right
// next to a boundary key and extends in Direction. It carries everything a
// store needs to run the range query: the filter and the sort order.
type Window struct {
	// Columns are the sort key columns.
	Columns Columns
	// Direction is the sort direction of the query, which is the canonical one
	// for forward paging and its reverse for backward paging.
	Direction Direction
	// Bound is the key the window starts after (exclusive). Nil means the window
	// starts at the beginning of the collection.
	Bound *Key
	// Backward is set when the window was built from a "before" cursor. Rows
	// fetched for such a window come in reverse canonical order.
	Backward bool
}

// BuildWindow translates a traversal request into a Window. order is the
// canonical direction of the collection. If before is set, backward semantics
// win and after is ignored.
//
//   - forward: filter "ts OP cts OR (ts = cts AND id OP cid)", sort by order;
//   - backward: the same filter with the reversed operator, sort reversed.
//
// Where OP is order.ForOperator() for forward windows. The tie-break on id is
// what keeps records sharing a timestamp from being skipped or repeated.
func BuildWindow(order Direction, columns Columns, after, before *Key) Window {
	w := Window{
		Columns:   columns,
		Direction: order,
		Bound:     after,
	}

	if before != nil {
		w.Direction = order.Reverse()
		w.Bound = before
		w.Backward = true
	}

	return w
}

// Orderings returns the sort order of the window: both key columns in Direction.
func (w Window) Orderings() Orderings {
	return Orderings{
		{Column: w.Columns.Timestamp, Direction: w.Direction},
		{Column: w.Columns.ID, Direction: w.Direction},
	}
}

// elements returns the compressed bound conditions:
//
//	[(ts, OP, cts), (id, OP, cid)]
func (w Window) elements() []cursorElement {
	if w.Bound == nil {
		return nil
	}

	op := w.Direction.ForOperator()

	return []cursorElement{
		{Column: w.Columns.Timestamp, Value: w.Bound.CreatedAt, Operator: op},
		{Column: w.Columns.ID, Value: w.Bound.ID, Operator: op},
	}
}

// toDNF inflates the bound elements into a filter. For the elements
//
//	[(C1, O1, V1), (C2, O2, V2)... (Cn, On, Vn)]
//
// the filter is
//
//	(C1 O1 V1) or (C1 = V1 and C2 O2 V2) or ...
//
// which uniquely identifies the position to continue from.
func (w Window) toDNF() tDNF {
	elements := w.elements()
	if len(elements) == 0 {
		return nil
	}

	dnf := make(tDNF, 0, len(elements))
	for i := range elements {
		previousElementsWithEqualityCondition := lo.Map(elements[:i], func(item cursorElement, _ int) tConjunct {
			return item.toConjunctWithEqualityCondition()
		})

		disjunct := make(tDisjunct, 0, len(previousElementsWithEqualityCondition)+1)
		disjunct = append(disjunct, previousElementsWithEqualityCondition...)
		disjunct = append(disjunct, tConjunct(elements[i]))

		dnf = append(dnf, disjunct)
	}

	return dnf
}

// Apply applies the sort order and the bound filter to a gorm query. The limit
// is left to the caller.
func (w Window) Apply(db *gorm.DB) *gorm.DB {
	db = w.Orderings().Apply(db)

	exp := w.toDNF().toGORMExpression()
	if exp == nil {
		return db
	}

	return db.Clauses(exp)
}

// ToSQL returns the filter as an SQL boolean expression with "?" placeholders.
//
// Usage:
//
//	where, args := w.ToSQL()
//	query := fmt.Sprintf("SELECT * FROM table WHERE %s ORDER BY %s", where, w.Orderings().ToSQL())
func (w Window) ToSQL() (string, []driver.Value) {
	return w.toDNF().toSQLClause()
}

// Contains reports whether a record with key k belongs to the window.
func (w Window) Contains(k Key) bool {
	return w.toDNF().eval(func(column string) any {
		switch column {
		case w.Columns.Timestamp:
			return k.CreatedAt
		case w.Columns.ID:
			return k.ID
		default:
			return nil
		}
	})
}

// Less reports whether a sorts before b in the window's order.
func (w Window) Less(a, b Key) bool {
	if w.Direction == DirectionDESC {
		return a.Compare(b) > 0
	}

	return a.Compare(b) < 0
}

// Validate checks the window against SQL-safe column names and consistent
// operators.
func (w Window) Validate() error {
	if err := w.Columns.validate(); err != nil {
		return err
	}

	orderings := w.Orderings()
	if err := orderings.validate(); err != nil {
		return err
	}

	for i, elem := range w.elements() {
		if !elem.Operator.Valid() {
			return fmt.Errorf("invalid window operator '%s'", elem.Operator)
		} else if elem.Operator.ForOrdering() != orderings[i].Direction {
			return fmt.Errorf("unexpected window operator '%s'", elem.Operator)
		}
	}

	return nil
}

// cursorElement is a triple (c, v, o) where "c" is the column, "v" the value
// the column is compared with and "o" the operator applied to (c, v).
type cursorElement struct {
	Column   string
	Value    any
	Operator Operator
}

func (c cursorElement) toConjunctWithEqualityCondition() tConjunct {
	return tConjunct{
		Column:   c.Column,
		Value:    c.Value,
		Operator: operatorEq,
	}
}
