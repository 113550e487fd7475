package hiddesc

import (
	"fmt"
	"strings"

	"github.com/hidrawctl/hidrawctl/hidreport/hidusage"
)

// Annotate renders the descriptor in the conventional HID documentation
// style: one line per item with the raw bytes on the left and a commented
// interpretation on the right. It re-tokenizes the source bytes and keeps
// its own nesting depth and Usage Page tracker; it does not consult the
// parsed tree.
func (d *Descriptor) Annotate() string {
	var b strings.Builder
	r := itemReader{buf: d.source}
	depth := 0
	var usagePage uint16
	for {
		it, span, ok := r.next()
		if !ok {
			break
		}
		writeItemBytes(&b, span)
		b.WriteString("// ")
		if it.Type == ItemMain && it.Tag == tagEndCollection && depth > 0 {
			depth--
		}
		b.WriteString(strings.Repeat("  ", depth))
		switch it.Type {
		case ItemMain:
			switch it.Tag {
			case tagCollection:
				fmt.Fprintf(&b, "Collection (%s)", CollectionType(it.Data))
				depth++
			case tagEndCollection:
				b.WriteString("End Collection")
			case tagInput:
				fmt.Fprintf(&b, "Input (%s)", flagsText(FieldFlags(it.Data), FieldInput))
			case tagOutput:
				fmt.Fprintf(&b, "Output (%s)", flagsText(FieldFlags(it.Data), FieldOutput))
			case tagFeature:
				fmt.Fprintf(&b, "Feature (%s)", flagsText(FieldFlags(it.Data), FieldFeature))
			default:
				fmt.Fprintf(&b, "Main (tag=0x%X)", it.Tag)
			}
		case ItemGlobal:
			switch it.Tag {
			case tagUsagePage:
				usagePage = uint16(it.Data)
				fmt.Fprintf(&b, "Usage Page (%s)", hidusage.PageName(usagePage))
			case tagLogicalMinimum:
				fmt.Fprintf(&b, "Logical Minimum (%d)", signExtend(it.Data, it.Size))
			case tagLogicalMaximum:
				fmt.Fprintf(&b, "Logical Maximum (%d)", signExtend(it.Data, it.Size))
			case tagPhysicalMinimum:
				fmt.Fprintf(&b, "Physical Minimum (%d)", signExtend(it.Data, it.Size))
			case tagPhysicalMaximum:
				fmt.Fprintf(&b, "Physical Maximum (%d)", signExtend(it.Data, it.Size))
			case tagUnitExponent:
				fmt.Fprintf(&b, "Unit Exponent (%d)", signExtend(it.Data, it.Size))
			case tagUnit:
				// The Unit nibble encoding is not decoded here.
				b.WriteString("Unit (System: SI Linear, Time: Seconds)")
			case tagReportSize:
				fmt.Fprintf(&b, "Report Size (%d)", it.Data)
			case tagReportID:
				fmt.Fprintf(&b, "Report ID (%d)", uint8(it.Data))
			case tagReportCount:
				fmt.Fprintf(&b, "Report Count (%d)", it.Data)
			default:
				fmt.Fprintf(&b, "Global (tag=0x%X)", it.Tag)
			}
		case ItemLocal:
			switch it.Tag {
			case tagUsage:
				fmt.Fprintf(&b, "Usage (%s)", hidusage.UsageName(usagePage, it.Data))
			case tagUsageMinimum:
				fmt.Fprintf(&b, "Usage Minimum (0x%02X)", it.Data)
			case tagUsageMaximum:
				fmt.Fprintf(&b, "Usage Maximum (0x%02X)", it.Data)
			default:
				fmt.Fprintf(&b, "Local (tag=0x%X)", it.Tag)
			}
		default:
			b.WriteString("Reserved")
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "\n// %d bytes\n", len(d.source))
	return b.String()
}

// writeItemBytes emits the raw bytes of one item, padded so the comment
// column starts at column 24; longer spans get a single space.
func writeItemBytes(b *strings.Builder, span []byte) {
	for i, by := range span {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "0x%02X", by)
	}
	pad := 1
	if n := len(span)*6 - 2; n < 24 {
		pad = 24 - n
	}
	b.WriteString(strings.Repeat(" ", pad))
}

func flagsText(f FieldFlags, kind FieldKind) string {
	var parts []string
	pick := func(set bool, on, off string) {
		if set {
			parts = append(parts, on)
		} else {
			parts = append(parts, off)
		}
	}
	pick(f.IsConstant(), "Const", "Data")
	pick(f.IsVariable(), "Var", "Array")
	pick(f.IsRelative(), "Rel", "Abs")
	pick(f.IsWrap(), "Wrap", "No Wrap")
	pick(f.IsNonLinear(), "Non-linear", "Linear")
	pick(f.IsNoPreferred(), "No Preferred State", "Preferred State")
	pick(f.IsNullState(), "Null Position", "No Null Position")
	if kind == FieldInput {
		pick(f.IsBufferedBytes(), "Buffered Bytes", "Bitfield")
	} else {
		pick(f.IsBufferedBytes(), "Non-volatile", "Volatile")
	}
	return strings.Join(parts, ",")
}
