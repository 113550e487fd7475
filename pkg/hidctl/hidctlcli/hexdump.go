package hidctlcli

import (
	"fmt"
	"strings"
)

// hexdump renders data in 16-byte rows with an offset column and an ASCII
// gutter.
func hexdump(data []byte) string {
	var b strings.Builder
	for offset := 0; offset < len(data); offset += 16 {
		row := data[offset:]
		if len(row) > 16 {
			row = row[:16]
		}
		fmt.Fprintf(&b, "%08x  ", offset)
		for i := 0; i < 16; i++ {
			if i < len(row) {
				fmt.Fprintf(&b, "%02x ", row[i])
			} else {
				b.WriteString("   ")
			}
			if i%8 == 7 {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('|')
		for _, c := range row {
			if c < 32 || c > 126 {
				c = '.'
			}
			b.WriteByte(c)
		}
		b.WriteString("|\n")
	}
	return b.String()
}
