package relaypager

import "fmt"

// Operator defines a comparison operator used by window filters.
type Operator string

func (o Operator) Valid() bool {
	return o == OperatorLT || o == OperatorGT
}

func (o Operator) ForOrdering() Direction {
	switch o {
	case OperatorGT:
		return DirectionASC
	case OperatorLT:
		return DirectionDESC
	default:
		panic(fmt.Errorf("cannot map operator '%s' to ordering", o))
	}
}

// holds reports whether "a o b" is true for a three-way comparison result
// c = compare(a, b).
func (o Operator) holds(c int) bool {
	switch o {
	case OperatorGT:
		return c > 0
	case OperatorLT:
		return c < 0
	case operatorEq:
		return c == 0
	default:
		return false
	}
}

const (
	OperatorGT Operator = ">"
	OperatorLT Operator = "<"

	// operatorEq is private because it is used ONLY while expanding window
	// bounds into filtering conditions.
	operatorEq Operator = "="
)
