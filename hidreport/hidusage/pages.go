// Package hidusage carries the Usage Page and Usage name tables used when
// rendering report descriptors. Missing entries always fall back to hex
// rendering; lookups never fail.
package hidusage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
)

// UsageInfo names a single usage within a page.
type UsageInfo struct {
	ID    uint32
	Name  string
	Alias string
}

// UsageSet resolves usage IDs of one page to their names.
type UsageSet interface {
	Get(id uint32) (UsageInfo, bool)
}

// PageInfo describes one HID usage page.
type PageInfo struct {
	Code   uint16
	Name   string
	Alias  string
	Usages UsageSet
}

type usageTable map[uint32]UsageInfo

func (t usageTable) Get(id uint32) (UsageInfo, bool) {
	u, ok := t[id]
	return u, ok
}

func (t usageTable) usage(id uint32, name string) usageTable {
	t[id] = UsageInfo{ID: id, Name: name, Alias: strcase.ToCamel(name)}
	return t
}

func newUsageTable() usageTable {
	return make(usageTable)
}

// ordinalUsages names every usage of a page "<prefix> <id>", the pattern of
// the Button and Ordinal pages.
type ordinalUsages struct {
	prefix string
}

func (o ordinalUsages) Get(id uint32) (UsageInfo, bool) {
	return UsageInfo{
		ID:    id,
		Name:  fmt.Sprintf("%s %d", o.prefix, id),
		Alias: strconv.FormatUint(uint64(id), 10),
	}, true
}

var pages = map[uint16]PageInfo{}

var pageAliasMap = map[string]uint16{}

func registerPage(code uint16, name string, usages UsageSet) {
	pages[code] = PageInfo{
		Code:   code,
		Name:   name,
		Alias:  strcase.ToCamel(name),
		Usages: usages,
	}
}

func init() {
	registerPage(0x01, "Generic Desktop Ctrls", newUsageTable().
		usage(0x01, "Pointer").
		usage(0x02, "Mouse").
		usage(0x04, "Joystick").
		usage(0x05, "Game Pad").
		usage(0x06, "Keyboard").
		usage(0x07, "Keypad").
		usage(0x30, "X").
		usage(0x31, "Y").
		usage(0x32, "Z").
		usage(0x33, "Rx").
		usage(0x34, "Ry").
		usage(0x35, "Rz").
		usage(0x36, "Slider").
		usage(0x37, "Dial").
		usage(0x38, "Wheel").
		usage(0x39, "Hat Switch"))
	registerPage(0x07, "Kbrd/Keypad", nil)
	registerPage(0x08, "LEDs", newUsageTable().
		usage(0x01, "Num Lock").
		usage(0x02, "Caps Lock").
		usage(0x03, "Scroll Lock").
		usage(0x04, "Compose").
		usage(0x05, "Kana"))
	registerPage(0x09, "Button", ordinalUsages{prefix: "Button"})
	registerPage(0x0A, "Ordinal", ordinalUsages{prefix: "Instance"})
	registerPage(0x0C, "Consumer", newUsageTable().
		usage(0x01, "Consumer Control").
		usage(0xE0, "Volume").
		usage(0xE2, "Mute").
		usage(0xE9, "Volume Increment").
		usage(0xEA, "Volume Decrement"))
	registerPage(0x0D, "Digitizer", newUsageTable().
		usage(0x01, "Digitizer").
		usage(0x02, "Pen").
		usage(0x04, "Touch Screen").
		usage(0x20, "Stylus").
		usage(0x22, "Finger").
		usage(0x30, "Tip Pressure").
		usage(0x32, "In Range").
		usage(0x42, "Tip Switch"))
	// The haptics page still carries its pre-standardization name in most
	// descriptor dumps.
	registerPage(0x0E, "Reserved 0x0E", newUsageTable().
		usage(0x01, "Simple Haptic Controller").
		usage(0x10, "Waveform List").
		usage(0x11, "Duration List").
		usage(0x20, "Auto Trigger").
		usage(0x21, "Manual Trigger").
		usage(0x22, "Auto Trigger Associated Control").
		usage(0x23, "Intensity").
		usage(0x24, "Repeat Count").
		usage(0x25, "Retrigger Period").
		usage(0x28, "Waveform Cutoff Time"))

	for code, page := range pages {
		pageAliasMap[page.Alias] = code
	}
}

// GetPageInfo returns the table entry for a usage page code.
func GetPageInfo(code uint16) (PageInfo, bool) {
	p, ok := pages[code]
	return p, ok
}

// PageName returns the conventional name of a usage page. Vendor-defined
// pages render as "Vendor Defined 0xNNNN"; unknown pages as hex.
func PageName(page uint16) string {
	if page >= 0xFF00 {
		return fmt.Sprintf("Vendor Defined 0x%04X", page)
	}
	if p, ok := pages[page]; ok {
		return p.Name
	}
	return fmt.Sprintf("0x%02X", page)
}

// UsageName returns the name of a usage on a page, or hex when the usage
// (or the whole page) has no table entry.
func UsageName(page uint16, usage uint32) string {
	if p, ok := pages[page]; ok && p.Usages != nil {
		if u, ok := p.Usages.Get(usage); ok {
			return u.Name
		}
	}
	return fmt.Sprintf("0x%X", usage)
}

// ParsePage resolves a user-supplied page reference: either a 0x-prefixed
// hex code or a page alias such as "GenericDesktopCtrls".
func ParsePage(s string) (PageInfo, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		code, err := strconv.ParseUint(s[2:], 16, 16)
		if err != nil {
			return PageInfo{}, fmt.Errorf("invalid usage page %q", s)
		}
		if p, ok := pages[uint16(code)]; ok {
			return p, nil
		}
		return PageInfo{Code: uint16(code), Name: PageName(uint16(code))}, nil
	}
	code, ok := pageAliasMap[s]
	if !ok {
		return PageInfo{}, fmt.Errorf("unknown usage page %q", s)
	}
	return pages[code], nil
}
