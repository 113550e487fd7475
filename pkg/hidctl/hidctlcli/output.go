package hidctlcli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// parseReportID accepts decimal or 0x-prefixed hex, at most 255.
func parseReportID(s string) (uint8, error) {
	base := 10
	digits := s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		digits = s[2:]
	}
	id, err := strconv.ParseUint(digits, base, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid report id %q", s)
	}
	return uint8(id), nil
}

// parseHexBytes turns command-line byte tokens ("1a", "0x1a") into a slice.
func parseHexBytes(args []string) ([]byte, error) {
	buf := make([]byte, 0, len(args))
	for _, arg := range args {
		digits := strings.TrimPrefix(strings.TrimPrefix(arg, "0x"), "0X")
		b, err := strconv.ParseUint(digits, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid byte %q", arg)
		}
		buf = append(buf, byte(b))
	}
	return buf, nil
}

// openOutput resolves the -o flag. An empty path writes to the command's
// stdout; a path naming an existing directory gets a timestamped file name
// inside it.
func openOutput(cmd *cobra.Command, path string, now func() time.Time) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	if st, err := os.Stat(path); err == nil && st.IsDir() {
		path = filepath.Join(path, now().Format("20060102_150405")+"_hid.txt")
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
