package hidctlcli

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/hidrawctl/hidrawctl/hidreport/hiddesc"
	"github.com/psanford/uhid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newEmulateCmd(app appProvider) *cobra.Command {
	var (
		vendorID  uint32
		productID uint32
	)
	cmd := &cobra.Command{
		Use:   "emulate <descriptor-file>",
		Short: "Create a virtual HID device from a saved descriptor",
		Long: `Create a uhid virtual device whose report descriptor is read from the
given file (raw bytes or hex text). Lines of hex bytes on stdin are injected
as input reports; output reports from the host are hexdumped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			log := app().Logger().Named("emulate")

			raw, err := readDescriptorFile(args[0])
			if err != nil {
				return err
			}
			desc := hiddesc.Parse(raw)
			log.Info("Loaded descriptor",
				zap.Int("bytes", len(raw)),
				zap.Int("topLevelCollections", len(desc.Root().Children)))

			dev, err := uhid.NewDevice("hidrawctl", raw)
			if err != nil {
				return fmt.Errorf("failed to create uhid device: %w", err)
			}
			dev.Data.Bus = 0x03
			dev.Data.VendorID = vendorID
			dev.Data.ProductID = productID

			group, ctx := errgroup.WithContext(cmd.Context())
			events, err := dev.Open(ctx)
			if err != nil {
				return fmt.Errorf("failed to open uhid device: %w", err)
			}
			defer dev.Close()

			w := cmd.OutOrStdout()
			group.Go(func() error {
				for {
					select {
					case <-ctx.Done():
						return nil
					case event, ok := <-events:
						if !ok {
							return nil
						}
						if event.Type != uhid.Output {
							continue
						}
						fmt.Fprintf(w, "Output report (%d bytes):\n%s", len(event.Data), hexdump(event.Data))
					}
				}
			})
			// The scanner goroutine is detached: a blocking stdin read must
			// not keep the command alive past cancellation.
			lines := make(chan string)
			go func() {
				defer close(lines)
				scanner := bufio.NewScanner(cmd.InOrStdin())
				for scanner.Scan() {
					select {
					case lines <- scanner.Text():
					case <-ctx.Done():
						return
					}
				}
			}()
			group.Go(func() error {
				for {
					select {
					case <-ctx.Done():
						return nil
					case line, ok := <-lines:
						if !ok {
							return nil
						}
						line = strings.TrimSpace(line)
						if line == "" {
							continue
						}
						buf, err := parseHexBytes(strings.Fields(line))
						if err != nil {
							log.Warn("skipping line", zap.Error(err))
							continue
						}
						if err := dev.InjectEvent(buf); err != nil {
							return fmt.Errorf("failed to inject input report: %w", err)
						}
					}
				}
			})
			return group.Wait()
		},
	}
	cmd.Flags().Uint32Var(&vendorID, "vendor-id", 0, "vendor id of the virtual device")
	cmd.Flags().Uint32Var(&productID, "product-id", 0, "product id of the virtual device")
	return cmd
}

// readDescriptorFile accepts raw descriptor bytes or their hex-text form.
func readDescriptorFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', ',':
			return -1
		}
		return r
	}, strings.ReplaceAll(string(data), "0x", ""))
	if decoded, err := hex.DecodeString(text); err == nil && len(decoded) > 0 {
		return decoded, nil
	}
	return data, nil
}
