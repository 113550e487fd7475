package hiddesc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDumpMouse(t *testing.T) {
	d := Parse(mouseDesc)
	expected := strings.Join([]string{
		"Collection(Application) UsagePage=0x0001 Usage=0x2",
		"  Collection(Physical) UsagePage=0x0001 Usage=0x1",
		"    Input(ReportID=0, SizeBits=1, Count=3, Flags=0x02) Usages=[0x1,0x2,0x3]",
		"    Input(ReportID=0, SizeBits=5, Count=1, Flags=0x03)",
		"",
	}, "\n")
	assert.Equal(t, expected, d.Dump())
}

func TestDumpRootFields(t *testing.T) {
	desc := []byte{
		0x85, 0x07, // Report ID (7)
		0x75, 0x08, // Report Size (8)
		0x95, 0x02, // Report Count (2)
		0x91, 0x02, // Output outside any collection
	}
	d := Parse(desc)
	assert.Equal(t, "Output(ReportID=7, SizeBits=8, Count=2, Flags=0x02)\n", d.Dump())
}

func TestDumpHasNoTrailingSpaces(t *testing.T) {
	d := Parse(mouseDesc)
	for _, line := range strings.Split(d.Dump(), "\n") {
		assert.Equal(t, strings.TrimRight(line, " "), line)
	}
}
