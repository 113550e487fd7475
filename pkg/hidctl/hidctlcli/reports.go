package hidctlcli

import (
	"context"
	"fmt"

	"github.com/hidrawctl/hidrawctl/hidreport/hiddesc"
	"github.com/hidrawctl/hidrawctl/internal/hidraw"
	"github.com/spf13/cobra"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

func newSendCmd(app appProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "send <device> <byte>...",
		Short: "Send an output report",
		Long:  `Write an output report to a hidraw device. Bytes are given in hex; prefix the payload with the Report ID byte when the device uses Report IDs.`,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := parseHexBytes(args[1:])
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true
			dev, err := hidraw.Open(args[0])
			if err != nil {
				return err
			}
			defer dev.Close()

			n, err := dev.Write(buf)
			if err != nil {
				return err
			}
			app().Logger().Debug("sent output report", zap.Int("bytes", n))
			return nil
		},
	}
}

func newRecvCmd(app appProvider) *cobra.Command {
	var (
		count  uint64
		output string
	)
	cmd := &cobra.Command{
		Use:   "recv <device>",
		Short: "Receive input reports",
		Long:  `Read input reports from a hidraw device and hexdump each one. With --count 0 the command runs until interrupted.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			dev, err := hidraw.Open(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go func() {
				// Closing the device unblocks the reader on interrupt.
				<-ctx.Done()
				dev.Close()
			}()

			w, done, err := openOutput(cmd, output, app().Now)
			if err != nil {
				return err
			}
			defer done()

			received := atomic.NewUint64(0)
			buf := make([]byte, 4096)
			for count == 0 || received.Load() < count {
				n, err := dev.Read(buf)
				if err != nil {
					if ctx.Err() != nil {
						break
					}
					return err
				}
				fmt.Fprintf(w, "Report %d (%d bytes):\n%s", received.Inc(), n, hexdump(buf[:n]))
			}
			app().Logger().Debug("done receiving", zap.Uint64("reports", received.Load()))
			return nil
		},
	}
	cmd.Flags().Uint64VarP(&count, "count", "c", 1, "number of reports to read, 0 for unlimited")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, or directory for a timestamped file")
	return cmd
}

func newFeatureGetCmd(app appProvider) *cobra.Command {
	var (
		size   int
		output string
	)
	cmd := &cobra.Command{
		Use:   "feature-get <device> <report-id>",
		Short: "Read a feature report",
		Long:  `Read a feature report over the control channel. The buffer size is derived from the parsed report descriptor unless --size is given. Report IDs are decimal or 0x-prefixed hex.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseReportID(args[1])
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true
			dev, err := hidraw.Open(args[0])
			if err != nil {
				return err
			}
			defer dev.Close()

			n := size
			if n < 0 {
				return fmt.Errorf("size must be positive: %w", hiddesc.ErrInvalidArgument)
			}
			if n == 0 {
				raw, err := dev.ReportDescriptor()
				if err != nil {
					return err
				}
				n, err = hiddesc.Parse(raw).ReportLength(hiddesc.FieldFeature, id)
				if err != nil {
					return err
				}
			}

			buf := make([]byte, n)
			buf[0] = id
			read, err := dev.GetFeatureReport(buf)
			if err != nil {
				return err
			}

			w, done, err := openOutput(cmd, output, app().Now)
			if err != nil {
				return err
			}
			defer done()
			fmt.Fprintf(w, "Feature report %d (%d bytes):\n%s", id, read, hexdump(buf[:read]))
			return nil
		},
	}
	cmd.Flags().IntVarP(&size, "size", "n", 0, "buffer size including the report id byte, 0 to derive from the descriptor")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, or directory for a timestamped file")
	return cmd
}

func newFeatureSetCmd(app appProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "feature-set <device> <report-id> <byte>...",
		Short: "Write a feature report",
		Long:  `Send a feature report over the control channel. The Report ID is prepended to the given payload bytes.`,
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseReportID(args[1])
			if err != nil {
				return err
			}
			payload, err := parseHexBytes(args[2:])
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true
			dev, err := hidraw.Open(args[0])
			if err != nil {
				return err
			}
			defer dev.Close()

			buf := append([]byte{id}, payload...)
			n, err := dev.SendFeatureReport(buf)
			if err != nil {
				return err
			}
			app().Logger().Debug("sent feature report", zap.Uint8("reportId", id), zap.Int("bytes", n))
			return nil
		},
	}
}
