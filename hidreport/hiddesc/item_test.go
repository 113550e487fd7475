package hiddesc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemReader(t *testing.T) {
	type testCase struct {
		name  string
		bytes []byte
		item  Item
		span  int
	}

	testCases := []testCase{
		{
			name:  "zero size",
			bytes: []byte{0xC0},
			item:  Item{Type: ItemMain, Tag: tagEndCollection},
			span:  1,
		},
		{
			name:  "one byte payload",
			bytes: []byte{0x05, 0x01},
			item:  Item{Type: ItemGlobal, Tag: tagUsagePage, Size: 1, Data: 0x01},
			span:  2,
		},
		{
			name:  "two byte payload little endian",
			bytes: []byte{0x06, 0x00, 0xFF},
			item:  Item{Type: ItemGlobal, Tag: tagUsagePage, Size: 2, Data: 0xFF00},
			span:  3,
		},
		{
			name:  "four byte payload",
			bytes: []byte{0x17, 0x78, 0x56, 0x34, 0x12},
			item:  Item{Type: ItemGlobal, Tag: tagLogicalMinimum, Size: 4, Data: 0x12345678},
			span:  5,
		},
		{
			name:  "truncated payload reads what remains",
			bytes: []byte{0x06, 0xAA},
			item:  Item{Type: ItemGlobal, Tag: tagUsagePage, Size: 2, Data: 0xAA},
			span:  2,
		},
		{
			name:  "long item is skipped as reserved",
			bytes: []byte{0xFE, 0x03, 0xAA, 0x11, 0x22, 0x33},
			item:  Item{Type: ItemReserved, Size: 0xFF, Tag: 0xFF},
			span:  6,
		},
		{
			name:  "long item with truncated payload",
			bytes: []byte{0xFE, 0x10, 0xAA, 0x11},
			item:  Item{Type: ItemReserved, Size: 0xFF, Tag: 0xFF},
			span:  4,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := itemReader{buf: tc.bytes}
			it, span, ok := r.next()
			require.True(t, ok)
			assert.Equal(t, tc.item, it)
			assert.Len(t, span, tc.span)
		})
	}
}

func TestItemReaderEnd(t *testing.T) {
	r := itemReader{buf: nil}
	_, _, ok := r.next()
	assert.False(t, ok)
}

// Items must tile the input exactly from offset zero, for any byte stream.
func TestItemReaderTilesInput(t *testing.T) {
	buf := make([]byte, 0, 512)
	for b := 0; b < 256; b++ {
		buf = append(buf, byte(b), byte(255-b))
	}
	r := itemReader{buf: buf}
	covered := 0
	for {
		_, span, ok := r.next()
		if !ok {
			break
		}
		require.NotEmpty(t, span)
		require.Equal(t, covered, r.off-len(span))
		covered += len(span)
	}
	assert.LessOrEqual(t, covered, len(buf))
	assert.Equal(t, covered, r.off)
}

func TestSignExtend(t *testing.T) {
	assert.Equal(t, int32(0), signExtend(0, 0))
	assert.Equal(t, int32(-1), signExtend(0xFF, 1))
	assert.Equal(t, int32(127), signExtend(0x7F, 1))
	assert.Equal(t, int32(-1), signExtend(0xFFFF, 2))
	assert.Equal(t, int32(-32768), signExtend(0x8000, 2))
	assert.Equal(t, int32(-1), signExtend(0xFFFFFFFF, 4))
	assert.Equal(t, int32(0x12345678), signExtend(0x12345678, 4))
}
