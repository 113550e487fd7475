// Package hidctl wires the shared pieces of the hidrawctl tool: logger,
// configuration and the device registry.
package hidctl

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/hidrawctl/hidrawctl/internal/devstore"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type App struct {
	config Config
	log    *zap.Logger
	now    func() time.Time

	mu    sync.Mutex
	store *devstore.Store
}

func NewApp(config Config, verbose bool) (*App, error) {
	loggerConfig := zap.NewDevelopmentConfig()
	loggerConfig.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000000000")
	loggerConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if !verbose {
		loggerConfig.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return &App{
		config: config,
		log:    logger,
		now:    time.Now,
	}, nil
}

func (a *App) Config() Config {
	return a.config
}

func (a *App) Logger() *zap.Logger {
	return a.log
}

func (a *App) Now() time.Time {
	return a.now()
}

// Store opens the device registry on first use.
func (a *App) Store() (*devstore.Store, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.store != nil {
		return a.store, nil
	}
	store, err := devstore.Open(filepath.Join(a.config.DataDir, "db"), a.log.Named("devstore"), a.now)
	if err != nil {
		return nil, err
	}
	a.store = store
	return a.store, nil
}

func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.store != nil {
		err := a.store.Close()
		a.store = nil
		return err
	}
	return nil
}
