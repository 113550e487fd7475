// Package hidctlcli is the cobra command tree of the hidrawctl tool.
package hidctlcli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/hidrawctl/hidrawctl/internal/configsvc"
	"github.com/hidrawctl/hidrawctl/pkg/hidctl"
	"github.com/spf13/cobra"
)

func Main(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	dir, err := os.UserConfigDir()
	if err != nil {
		return err
	}
	cmd := NewRootCmd(filepath.Join(dir, "hidrawctl"))
	cmd.SetArgs(args)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	return cmd.ExecuteContext(ctx)
}

type appProvider func() *hidctl.App

func NewRootCmd(configDir string) *cobra.Command {
	cfg := hidctl.Config{
		DataDir: filepath.Join(configDir, "data"),
	}
	configFile := filepath.Join(configDir, "config.yml")
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "hidrawctl",
		Short:         "Inspect and talk to hidraw devices",
		Long:          `hidrawctl opens Linux hidraw character devices, decodes their HID report descriptors and exchanges input, output and feature reports with them.`,
		SilenceErrors: true,
	}

	var a *hidctl.App
	app := func() *hidctl.App {
		return a
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", configFile, "configuration file")
	rootCmd.PersistentFlags().StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		fileCfg, err := configsvc.Load(configFile, cfg)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("data-dir") {
			fileCfg.DataDir = cfg.DataDir
		}
		a, err = hidctl.NewApp(fileCfg, verbose)
		return err
	}
	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if a != nil {
			return a.Close()
		}
		return nil
	}

	rootCmd.AddCommand(newDumpCmd(app))
	rootCmd.AddCommand(newDumpHidCmd(app))
	rootCmd.AddCommand(newSendCmd(app))
	rootCmd.AddCommand(newRecvCmd(app))
	rootCmd.AddCommand(newFeatureGetCmd(app))
	rootCmd.AddCommand(newFeatureSetCmd(app))
	rootCmd.AddCommand(newListCmd(app))
	rootCmd.AddCommand(newWatchCmd(app, func() string { return configFile }))
	rootCmd.AddCommand(newEmulateCmd(app))
	return rootCmd
}
