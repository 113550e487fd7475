package hidusage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageName(t *testing.T) {
	assert.Equal(t, "Generic Desktop Ctrls", PageName(0x01))
	assert.Equal(t, "Kbrd/Keypad", PageName(0x07))
	assert.Equal(t, "Button", PageName(0x09))
	assert.Equal(t, "Reserved 0x0E", PageName(0x0E))
	assert.Equal(t, "Vendor Defined 0xFF00", PageName(0xFF00))
	assert.Equal(t, "Vendor Defined 0xFFA7", PageName(0xFFA7))
	assert.Equal(t, "0x42", PageName(0x42))
}

func TestUsageName(t *testing.T) {
	assert.Equal(t, "Mouse", UsageName(0x01, 0x02))
	assert.Equal(t, "Wheel", UsageName(0x01, 0x38))
	assert.Equal(t, "Volume", UsageName(0x0C, 0xE0))
	assert.Equal(t, "Stylus", UsageName(0x0D, 0x20))
	assert.Equal(t, "Repeat Count", UsageName(0x0E, 0x24))
	assert.Equal(t, "Button 3", UsageName(0x09, 3))
	assert.Equal(t, "Instance 2", UsageName(0x0A, 2))
	// Pages without a table fall back to hex, as do unknown usages.
	assert.Equal(t, "0x1E", UsageName(0x07, 0x1E))
	assert.Equal(t, "0x1234", UsageName(0x01, 0x1234))
}

func TestParsePage(t *testing.T) {
	p, err := ParsePage("0x01")
	require.NoError(t, err)
	assert.Equal(t, uint16(0x01), p.Code)

	p, err = ParsePage("GenericDesktopCtrls")
	require.NoError(t, err)
	assert.Equal(t, uint16(0x01), p.Code)

	p, err = ParsePage("0xFF12")
	require.NoError(t, err)
	assert.Equal(t, uint16(0xFF12), p.Code)
	assert.Equal(t, "Vendor Defined 0xFF12", p.Name)

	_, err = ParsePage("NoSuchPage")
	assert.Error(t, err)
	_, err = ParsePage("0xZZ")
	assert.Error(t, err)
}
