package hidctlcli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/hidrawctl/hidrawctl/hidreport/hidusage"
	"github.com/hidrawctl/hidrawctl/internal/devstore"
	"github.com/spf13/cobra"
	"github.com/sstallion/go-hid"
	"go.uber.org/zap"
)

func newListCmd(app appProvider) *cobra.Command {
	var page string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List HID devices",
		Long:  `List HID devices connected to the system. Devices already present in the registry are marked as known. --page filters by usage page, given as a 0x code or a page alias such as GenericDesktopCtrls.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var pageFilter uint16
			if page != "" {
				info, err := hidusage.ParsePage(page)
				if err != nil {
					return err
				}
				pageFilter = info.Code
			}
			cmd.SilenceUsage = true

			store, err := app().Store()
			if err != nil {
				// The registry is advisory for listing; keep going.
				app().Logger().Debug("device registry unavailable", zap.Error(err))
				store = nil
			}

			if err := hid.Init(); err != nil {
				return err
			}
			defer hid.Exit()

			known := color.New(color.FgGreen)
			w := cmd.OutOrStdout()
			return hid.Enumerate(hid.VendorIDAny, hid.ProductIDAny, func(info *hid.DeviceInfo) error {
				if pageFilter != 0 && info.UsagePage != pageFilter {
					return nil
				}
				addr := fmt.Sprintf("%04x:%04x:%d", info.VendorID, info.ProductID, info.InterfaceNbr)
				tag := ""
				if store != nil {
					if _, ok, err := store.Get(addr); err == nil && ok {
						tag = "  " + known.Sprint("known")
					}
					rec := devstore.Record{
						Address: addr,
						Name:    generateName(info),
						Vendor:  info.VendorID,
						Product: info.ProductID,
					}
					if err := store.Touch(rec); err != nil {
						app().Logger().Debug("failed to record device", zap.Error(err))
					}
				}
				fmt.Fprintf(w, "%-24s %s  %s%s\n", info.Path, addr, generateName(info), tag)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&page, "page", "", "only list devices on this usage page")
	return cmd
}

func generateName(info *hid.DeviceInfo) string {
	var parts []string
	if info.MfrStr != "" {
		parts = append(parts, info.MfrStr)
	}
	if info.ProductStr != "" {
		parts = append(parts, info.ProductStr)
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%04x:%04x", info.VendorID, info.ProductID)
	}
	return strings.Join(parts, " ")
}
