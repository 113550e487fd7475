package hidctlcli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHexdump(t *testing.T) {
	assert.Equal(t, "", hexdump(nil))

	out := hexdump([]byte("hi"))
	assert.Equal(t, "00000000  68 69                                             |hi|\n", out)

	data := make([]byte, 17)
	for i := range data {
		data[i] = byte(i)
	}
	out = hexdump(data)
	assert.Equal(t,
		"00000000  00 01 02 03 04 05 06 07  08 09 0a 0b 0c 0d 0e 0f  |................|\n"+
			"00000010  10                                                |.|\n",
		out)
}
