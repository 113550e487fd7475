package hidraw

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Known request values from linux/hidraw.h on the common _IOC layout.
func TestRequestEncoding(t *testing.T) {
	switch runtime.GOARCH {
	case "386", "amd64", "arm", "arm64", "loong64", "riscv64", "s390x":
	default:
		t.Skipf("reference values are for the common _IOC layout, not %s", runtime.GOARCH)
	}
	assert.Equal(t, uintptr(0x80044801), reqDescSize())
	assert.Equal(t, uintptr(0x90044802), reqDesc())
	assert.Equal(t, uintptr(0x80084803), reqInfo())
	assert.Equal(t, uintptr(0x81004804), reqName(256))
	assert.Equal(t, uintptr(0x81004805), reqPhys(256))
	assert.Equal(t, uintptr(0xC0084806), reqSetFeature(8))
	assert.Equal(t, uintptr(0xC0084807), reqGetFeature(8))
}

func TestDevInfoString(t *testing.T) {
	info := DevInfo{Bus: 0x03, Vendor: 0x046D, Product: -3589}
	assert.Equal(t, "bus 0x0003 vendor 0x046d product 0xf1fb", info.String())
}
