// Package datatypes defines the logical type tags carried by columnar arrays
// and the physical-representation query used to validate them.
package datatypes

// PhysicalType is the bit-level representation backing a logical type.
type PhysicalType int

const (
	PhysicalUnknown PhysicalType = iota
	PhysicalBoolean
	PhysicalInt32
	PhysicalInt64
	PhysicalFloat64
	PhysicalUtf8
)

// DataType is a logical type tag. Arrays store and compare these values but
// never interpret them beyond the physical-type query.
type DataType int

const (
	Unknown DataType = iota
	Boolean
	Int32
	Int64
	Float64
	Utf8
	// Date is logically distinct from Int32 but shares its physical layout.
	Date
)

// Physical returns the physical representation of the logical type.
func (d DataType) Physical() PhysicalType {
	switch d {
	case Boolean:
		return PhysicalBoolean
	case Int32, Date:
		return PhysicalInt32
	case Int64:
		return PhysicalInt64
	case Float64:
		return PhysicalFloat64
	case Utf8:
		return PhysicalUtf8
	default:
		return PhysicalUnknown
	}
}

func (d DataType) String() string {
	switch d {
	case Boolean:
		return "boolean"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float64:
		return "float64"
	case Utf8:
		return "utf8"
	case Date:
		return "date"
	default:
		return "unknown"
	}
}
