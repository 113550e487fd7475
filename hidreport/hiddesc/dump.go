package hiddesc

import (
	"fmt"
	"strings"
)

// Dump renders the collection tree as an indented diagnostic listing, one
// line per collection and per field, two spaces per nesting level. The
// synthetic root is not labeled; its children start at indent 0. Annotate is
// the authoritative HID-convention rendering; Dump is the abbreviated view
// of what the parser actually built.
func (d *Descriptor) Dump() string {
	var b strings.Builder
	for _, f := range d.root.Fields {
		writeField(&b, f, 0)
	}
	for _, c := range d.root.Children {
		dumpCollection(&b, c, 0)
	}
	return b.String()
}

func dumpCollection(b *strings.Builder, node *Collection, indent int) {
	ind := strings.Repeat("  ", indent)
	fmt.Fprintf(b, "%sCollection(%s)", ind, node.Type)
	if node.UsagePage != 0 || node.Usage != 0 {
		fmt.Fprintf(b, " UsagePage=0x%04X", node.UsagePage)
		if node.Usage != 0 {
			fmt.Fprintf(b, " Usage=0x%X", node.Usage)
		}
	}
	b.WriteByte('\n')
	for _, f := range node.Fields {
		writeField(b, f, indent+1)
	}
	for _, c := range node.Children {
		dumpCollection(b, c, indent+1)
	}
}

func writeField(b *strings.Builder, f *Field, indent int) {
	fmt.Fprintf(b, "%s%s(ReportID=%d, SizeBits=%d, Count=%d, Flags=0x%02X)",
		strings.Repeat("  ", indent), f.Kind, f.ReportID, f.ReportSize, f.ReportCount, uint8(f.Flags))
	if len(f.Usages) > 0 {
		b.WriteString(" Usages=[")
		for i, u := range f.Usages {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(b, "0x%X", u)
		}
		b.WriteByte(']')
	}
	b.WriteByte('\n')
}
