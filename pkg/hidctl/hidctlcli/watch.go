package hidctlcli

import (
	"fmt"

	"github.com/hidrawctl/hidrawctl/internal/configsvc"
	"github.com/hidrawctl/hidrawctl/internal/devstore"
	"github.com/hidrawctl/hidrawctl/internal/hidraw"
	"github.com/hidrawctl/hidrawctl/pkg/hidctl"
	"github.com/jochenvg/go-udev"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/spf13/cobra"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newWatchCmd(app appProvider, configFile func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch hidraw hotplug events",
		Long:  `Monitor udev for hidraw devices appearing and disappearing, and record every sighting in the device registry. The configuration file's ignore list is re-read on change while the watch is running.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			log := app().Logger().Named("watch")

			store, err := app().Store()
			if err != nil {
				return err
			}

			ignored := xsync.NewMapOf[string, struct{}]()
			setIgnored := func(cfg hidctl.Config) {
				ignored.Clear()
				for _, addr := range cfg.Ignore {
					ignored.Store(addr, struct{}{})
				}
			}
			setIgnored(app().Config())

			configSvc := configsvc.New(log.Named("config"))
			group, ctx := errgroup.WithContext(cmd.Context())
			group.Go(func() error {
				return configSvc.Start(ctx)
			})

			group.Go(func() error {
				select {
				case <-ctx.Done():
					return nil
				case <-configSvc.Ready():
				}
				_, err := configsvc.Register(configSvc, configFile(), app().Config(), func(cfg hidctl.Config, err error) {
					if err != nil {
						log.Error("failed to reload config", zap.Error(err))
						return
					}
					setIgnored(cfg)
					log.Info("Reloaded ignore list", zap.Int("entries", len(cfg.Ignore)))
				})
				if err != nil {
					return fmt.Errorf("failed to register config watch: %w", err)
				}

				u := udev.Udev{}
				monitor := u.NewMonitorFromNetlink("udev")
				devices, err := monitor.DeviceChan(ctx)
				if err != nil {
					return fmt.Errorf("failed to start udev monitor: %w", err)
				}
				log.Info("Watching hidraw hotplug events")

				connected := xsync.NewMapOf[string, string]()
				events := atomic.NewUint64(0)
				for device := range devices {
					events.Inc()
					if device.Subsystem() != "hidraw" {
						continue
					}
					node := device.Devnode()
					if node == "" {
						continue
					}
					switch device.Action() {
					case "add":
						onDeviceAdded(log, store, ignored, connected, node)
					case "remove":
						if addr, ok := connected.LoadAndDelete(node); ok {
							log.Info("Device removed", zap.String("node", node), zap.String("address", addr))
						}
					}
				}
				log.Debug("udev monitor stopped", zap.Uint64("events", events.Load()))
				return nil
			})
			return group.Wait()
		},
	}
}

func onDeviceAdded(log *zap.Logger, store *devstore.Store, ignored *xsync.MapOf[string, struct{}], connected *xsync.MapOf[string, string], node string) {
	dev, err := hidraw.Open(node)
	if err != nil {
		log.Warn("failed to open new device", zap.String("node", node), zap.Error(err))
		return
	}
	defer dev.Close()

	info, err := dev.Info()
	if err != nil {
		log.Warn("failed to query new device", zap.String("node", node), zap.Error(err))
		return
	}
	name, err := dev.Name()
	if err != nil {
		log.Warn("failed to query device name", zap.String("node", node), zap.Error(err))
		return
	}

	addr := fmt.Sprintf("%04x:%04x:0", uint16(info.Vendor), uint16(info.Product))
	if _, ok := ignored.Load(addr); ok {
		log.Debug("Ignoring device", zap.String("address", addr))
		return
	}
	connected.Store(node, addr)
	if err := store.Touch(devstore.Record{
		Address: addr,
		Name:    name,
		Bus:     info.Bus,
		Vendor:  uint16(info.Vendor),
		Product: uint16(info.Product),
	}); err != nil {
		log.Error("failed to record device", zap.Error(err))
	}
	log.Info("Device connected",
		zap.String("node", node),
		zap.String("address", addr),
		zap.String("name", name))
}
