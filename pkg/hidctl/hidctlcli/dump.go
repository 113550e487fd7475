package hidctlcli

import (
	"fmt"

	"github.com/hidrawctl/hidrawctl/hidreport/hiddesc"
	"github.com/hidrawctl/hidrawctl/internal/hidraw"
	"github.com/spf13/cobra"
)

func newDumpCmd(app appProvider) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "dump <device>",
		Short: "Dump device metadata and its report descriptor",
		Long:  `Open a hidraw device, print its name, physical address and bus/vendor/product triple, and dump the raw report descriptor together with the parsed collection tree.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			dev, err := hidraw.Open(args[0])
			if err != nil {
				return err
			}
			defer dev.Close()

			name, err := dev.Name()
			if err != nil {
				return err
			}
			phys, err := dev.Phys()
			if err != nil {
				return err
			}
			info, err := dev.Info()
			if err != nil {
				return err
			}
			raw, err := dev.ReportDescriptor()
			if err != nil {
				return err
			}

			w, done, err := openOutput(cmd, output, app().Now)
			if err != nil {
				return err
			}
			defer done()

			fmt.Fprintf(w, "Opened device: %s\n", args[0])
			fmt.Fprintf(w, "Name: %s\n", name)
			fmt.Fprintf(w, "Phys: %s\n", phys)
			fmt.Fprintf(w, "Info: %s\n", info)
			fmt.Fprintf(w, "HID Report Descriptor (%d bytes):\n%s\n", len(raw), hexdump(raw))
			fmt.Fprint(w, hiddesc.Parse(raw).Dump())
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, or directory for a timestamped file")
	return cmd
}

func newDumpHidCmd(app appProvider) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "dumphid <device>",
		Short: "Dump the report descriptor in annotated HID form",
		Long:  `Decode the report descriptor of a hidraw device and print it byte by byte in the conventional annotated HID documentation style.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			dev, err := hidraw.Open(args[0])
			if err != nil {
				return err
			}
			defer dev.Close()

			raw, err := dev.ReportDescriptor()
			if err != nil {
				return err
			}

			w, done, err := openOutput(cmd, output, app().Now)
			if err != nil {
				return err
			}
			defer done()

			fmt.Fprint(w, hiddesc.Parse(raw).Annotate())
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, or directory for a timestamped file")
	return cmd
}
