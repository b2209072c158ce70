// Package dtype defines the closed set of logical element types a Series may
// hold, along with the numeric promotion rules and the mapping onto physical
// Apache Arrow layouts.
package dtype

import (
	"github.com/apache/arrow-go/v18/arrow"
)

// Dtype identifies the logical element type of a Series.
type Dtype int

const (
	Binary Dtype = iota
	Boolean
	Category
	Date
	Time
	Datetime
	Float
	Integer
	String
)

// All lists every dtype in declaration order.
var All = []Dtype{Binary, Boolean, Category, Date, Time, Datetime, Float, Integer, String}

// String implements fmt.Stringer.
func (d Dtype) String() string {
	switch d {
	case Binary:
		return "binary"
	case Boolean:
		return "boolean"
	case Category:
		return "category"
	case Date:
		return "date"
	case Time:
		return "time"
	case Datetime:
		return "datetime"
	case Float:
		return "float"
	case Integer:
		return "integer"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether d belongs to the numeric family.
func (d Dtype) IsNumeric() bool {
	return d == Integer || d == Float
}

// IsTemporal reports whether d belongs to the temporal family.
func (d Dtype) IsTemporal() bool {
	return d == Date || d == Time || d == Datetime
}

// IsOrdered reports whether d has a natural total order usable by the
// ordering comparisons and min/max style aggregations.
func (d Dtype) IsOrdered() bool {
	return d.IsNumeric() || d.IsTemporal()
}

// IsVariableWidth reports whether d has no fixed per-element byte width.
func (d Dtype) IsVariableWidth() bool {
	return d == String || d == Binary
}

// Width returns the physical element width in bytes for fixed-width dtypes.
// Category reports the width of its dictionary index. Variable-width dtypes
// report zero.
func (d Dtype) Width() int {
	switch d {
	case Boolean:
		return 1
	case Date, Category:
		return 4
	case Integer, Float, Time, Datetime:
		return 8
	default:
		return 0
	}
}

// ArrowType returns the Arrow data type backing d.
func (d Dtype) ArrowType() arrow.DataType {
	switch d {
	case Binary:
		return arrow.BinaryTypes.Binary
	case Boolean:
		return arrow.FixedWidthTypes.Boolean
	case Category:
		return &arrow.DictionaryType{IndexType: arrow.PrimitiveTypes.Uint32, ValueType: arrow.BinaryTypes.String}
	case Date:
		return arrow.FixedWidthTypes.Date32
	case Time:
		return arrow.FixedWidthTypes.Time64us
	case Datetime:
		return arrow.FixedWidthTypes.Timestamp_us
	case Float:
		return arrow.PrimitiveTypes.Float64
	case Integer:
		return arrow.PrimitiveTypes.Int64
	case String:
		return arrow.BinaryTypes.String
	default:
		return nil
	}
}

// Promote resolves the result dtype of mixing a and b. The only cross-dtype
// promotion is integer with float, which yields float; identical dtypes pass
// through unchanged. Every other pairing is incompatible.
func Promote(a, b Dtype) (Dtype, bool) {
	if a == b {
		return a, true
	}
	if a.IsNumeric() && b.IsNumeric() {
		return Float, true
	}
	return 0, false
}
