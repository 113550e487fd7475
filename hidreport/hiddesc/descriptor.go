package hiddesc

import (
	"fmt"
)

// CollectionType is the HID collection code carried by a Collection item.
type CollectionType uint8

const (
	CollectionPhysical CollectionType = iota
	CollectionApplication
	CollectionLogical
	CollectionReport
	CollectionNamedArray
	CollectionUsageSwitch
	CollectionUsageModifier
)

func (t CollectionType) String() string {
	switch t {
	case CollectionPhysical:
		return "Physical"
	case CollectionApplication:
		return "Application"
	case CollectionLogical:
		return "Logical"
	case CollectionReport:
		return "Report"
	case CollectionNamedArray:
		return "Named Array"
	case CollectionUsageSwitch:
		return "Usage Switch"
	case CollectionUsageModifier:
		return "Usage Modifier"
	default:
		return "Reserved"
	}
}

// FieldKind distinguishes the three report directions.
type FieldKind uint8

const (
	FieldInput FieldKind = iota
	FieldOutput
	FieldFeature
)

func (k FieldKind) String() string {
	switch k {
	case FieldInput:
		return "Input"
	case FieldOutput:
		return "Output"
	case FieldFeature:
		return "Feature"
	default:
		return "Unknown"
	}
}

// FieldFlags is the data byte of an Input, Output or Feature item.
type FieldFlags uint8

const (
	FlagConstant      FieldFlags = 1 << iota // 0 = Data, 1 = Constant
	FlagVariable                             // 0 = Array, 1 = Variable
	FlagRelative                             // 0 = Absolute, 1 = Relative
	FlagWrap                                 // 0 = No Wrap, 1 = Wrap
	FlagNonLinear                            // 0 = Linear, 1 = Non-linear
	FlagNoPreferred                          // 0 = Preferred State, 1 = No Preferred
	FlagNullState                            // 0 = No Null Position, 1 = Null State
	FlagBufferedBytes                        // Input: 0 = Bitfield, 1 = Buffered Bytes
)

func (f FieldFlags) IsConstant() bool      { return f&FlagConstant != 0 }
func (f FieldFlags) IsVariable() bool      { return f&FlagVariable != 0 }
func (f FieldFlags) IsArray() bool         { return !f.IsVariable() }
func (f FieldFlags) IsRelative() bool      { return f&FlagRelative != 0 }
func (f FieldFlags) IsWrap() bool          { return f&FlagWrap != 0 }
func (f FieldFlags) IsNonLinear() bool     { return f&FlagNonLinear != 0 }
func (f FieldFlags) IsNoPreferred() bool   { return f&FlagNoPreferred != 0 }
func (f FieldFlags) IsNullState() bool     { return f&FlagNullState != 0 }
func (f FieldFlags) IsBufferedBytes() bool { return f&FlagBufferedBytes != 0 }

// Field is one Input, Output or Feature entry. All attributes are a snapshot
// of the parser's global state at the moment the main item was consumed.
type Field struct {
	Kind            FieldKind
	ReportID        uint8 // 0 = no Report ID prefix
	UsagePage       uint16
	Usages          []uint32
	ReportSize      uint32 // bits per field
	ReportCount     uint32
	LogicalMinimum  int32
	LogicalMaximum  int32
	PhysicalMinimum int32
	PhysicalMaximum int32
	Unit            uint32
	UnitExponent    int8
	Flags           FieldFlags
}

// Collection is a descriptor scope holding fields and nested collections.
// UsagePage and Usage are snapshots taken when the collection was opened.
type Collection struct {
	Type      CollectionType
	UsagePage uint16
	Usage     uint32
	Fields    []*Field
	Children  []*Collection
}

// Descriptor is a parsed HID report descriptor: the collection tree, an
// index of fields by Report ID, and a private copy of the source bytes.
// It is immutable after Parse and safe for concurrent reads.
type Descriptor struct {
	root   *Collection // synthetic; Type and Usage are unused
	index  map[uint8][]*Field
	source []byte
}

// Root returns the synthetic root collection. Top-level collections of the
// descriptor are its children.
func (d *Descriptor) Root() *Collection {
	return d.root
}

// FieldsByReportID returns the fields bound to a Report ID in the order they
// appear in the descriptor. The result is nil for unknown IDs and must not
// be modified.
func (d *Descriptor) FieldsByReportID(id uint8) []*Field {
	return d.index[id]
}

// ReportLength returns the byte length of a report of the given kind and
// Report ID, including the leading Report ID byte. It wraps
// ErrInvalidArgument when the descriptor defines no such report.
func (d *Descriptor) ReportLength(kind FieldKind, id uint8) (int, error) {
	bits := uint64(0)
	found := false
	for _, f := range d.index[id] {
		if f.Kind != kind {
			continue
		}
		found = true
		bits += uint64(f.ReportSize) * uint64(f.ReportCount)
	}
	if !found {
		return 0, fmt.Errorf("no %s report with id %d: %w", kind, id, ErrInvalidArgument)
	}
	return 1 + int((bits+7)/8), nil
}
