package hiddesc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pad aligns the byte column the way the renderer promises: comments start
// at column 24 for items of up to four bytes.
func pad(bytes string) string {
	if len(bytes) >= 24 {
		return bytes + " "
	}
	return bytes + strings.Repeat(" ", 24-len(bytes))
}

func TestAnnotateMouse(t *testing.T) {
	d := Parse(mouseDesc)
	expected := strings.Join([]string{
		pad("0x05, 0x01") + "// Usage Page (Generic Desktop Ctrls)",
		pad("0x09, 0x02") + "// Usage (Mouse)",
		pad("0xA1, 0x01") + "// Collection (Application)",
		pad("0x09, 0x01") + "//   Usage (Pointer)",
		pad("0xA1, 0x00") + "//   Collection (Physical)",
		pad("0x05, 0x09") + "//     Usage Page (Button)",
		pad("0x19, 0x01") + "//     Usage Minimum (0x01)",
		pad("0x29, 0x03") + "//     Usage Maximum (0x03)",
		pad("0x15, 0x00") + "//     Logical Minimum (0)",
		pad("0x25, 0x01") + "//     Logical Maximum (1)",
		pad("0x95, 0x03") + "//     Report Count (3)",
		pad("0x75, 0x01") + "//     Report Size (1)",
		pad("0x81, 0x02") + "//     Input (Data,Var,Abs,No Wrap,Linear,Preferred State,No Null Position,Bitfield)",
		pad("0x95, 0x01") + "//     Report Count (1)",
		pad("0x75, 0x05") + "//     Report Size (5)",
		pad("0x81, 0x03") + "//     Input (Const,Var,Abs,No Wrap,Linear,Preferred State,No Null Position,Bitfield)",
		pad("0xC0") + "//   End Collection",
		pad("0xC0") + "// End Collection",
		"",
		"// 34 bytes",
		"",
	}, "\n")
	assert.Equal(t, expected, d.Annotate())
}

func TestAnnotateEmpty(t *testing.T) {
	assert.Equal(t, "\n// 0 bytes\n", Parse(nil).Annotate())
}

func TestAnnotateLongItem(t *testing.T) {
	d := Parse([]byte{0xFE, 0x03, 0xAA, 0x11, 0x22, 0x33, 0x05, 0x01})
	expected := strings.Join([]string{
		"0xFE, 0x03, 0xAA, 0x11, 0x22, 0x33 // Reserved",
		pad("0x05, 0x01") + "// Usage Page (Generic Desktop Ctrls)",
		"",
		"// 8 bytes",
		"",
	}, "\n")
	assert.Equal(t, expected, d.Annotate())
}

func TestAnnotateGlobalsAndFallbacks(t *testing.T) {
	desc := []byte{
		0x06, 0x34, 0xFF, // Usage Page (vendor defined 0xFF34)
		0x09, 0x42, // Usage on a vendor page falls back to hex
		0x17, 0x78, 0x56, 0x34, 0x12, // Logical Minimum, 4 bytes
		0x55, 0xFD, // Unit Exponent (-3)
		0x65, 0x11, // Unit stub
		0x85, 0xC8, // Report ID (200)
		0xA9, 0x00, // Delimiter renders generically
		0x35, 0x9C, // Physical Minimum (-100)
	}
	out := Parse(desc).Annotate()
	assert.Contains(t, out, "// Usage Page (Vendor Defined 0xFF34)")
	assert.Contains(t, out, "// Usage (0x42)")
	assert.Contains(t, out, "// Logical Minimum (305419896)")
	assert.Contains(t, out, "// Unit Exponent (-3)")
	assert.Contains(t, out, "// Unit (System: SI Linear, Time: Seconds)")
	assert.Contains(t, out, "// Report ID (200)")
	assert.Contains(t, out, "// Local (tag=0xA)")
	assert.Contains(t, out, "// Physical Minimum (-100)")
	assert.True(t, strings.HasSuffix(out, "\n// 20 bytes\n"))
}

func TestAnnotateDepthFloorsAtZero(t *testing.T) {
	desc := []byte{
		0xC0,       // stray End Collection
		0x05, 0x08, // Usage Page (LEDs)
	}
	out := Parse(desc).Annotate()
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, pad("0xC0")+"// End Collection", lines[0])
	assert.Equal(t, pad("0x05, 0x08")+"// Usage Page (LEDs)", lines[1])
}

func TestAnnotateTruncatedItem(t *testing.T) {
	// A two-byte payload cut short still renders a line and the trailer.
	out := Parse([]byte{0x06, 0xAA}).Annotate()
	assert.Equal(t, pad("0x06, 0xAA")+"// Usage Page (0xAA)\n\n// 2 bytes\n", out)
}
