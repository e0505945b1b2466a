package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path"
	"strings"
	"syscall"
	"time"

	"github.com/lanwarden/lanwarden/cli/commands"
	app_info "github.com/lanwarden/lanwarden/internal/app-info"
	"github.com/lanwarden/lanwarden/internal/config"
	"github.com/lanwarden/lanwarden/internal/device"
	"github.com/lanwarden/lanwarden/internal/discovery"
	"github.com/lanwarden/lanwarden/internal/engine"
	"github.com/lanwarden/lanwarden/internal/enrich"
	"github.com/lanwarden/lanwarden/internal/event"
	"github.com/lanwarden/lanwarden/internal/logger"
	"github.com/lanwarden/lanwarden/internal/mdns"
	"github.com/lanwarden/lanwarden/internal/oui"
	"github.com/lanwarden/lanwarden/internal/util"
	"github.com/spf13/viper"
)

/**
 * Main entry point for all commands
 * Here we setup environment config via viper
 */

func setRunTimeConfig() error {
	userHomeDir, err := os.UserHomeDir()

	if err != nil {
		return err
	}

	configDir := path.Join(userHomeDir, ".config", app_info.NAME)

	if err := os.MkdirAll(configDir, 0755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}

	userCacheDir, err := os.UserCacheDir()

	if err != nil {
		return err
	}

	cacheDir := path.Join(userCacheDir, app_info.NAME)

	if err := os.MkdirAll(cacheDir, 0755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}

	logFile := path.Join(configDir, app_info.NAME+".log")

	dbFile := path.Join(cacheDir, app_info.NAME+".db")

	ouiFile := path.Join(configDir, "oui.json")

	// share run-time config globally using viper
	viper.Set("log-file", logFile)
	viper.Set("config-dir", configDir)

	// defaults only, so the config file and environment can override
	viper.SetDefault("database-file", dbFile)
	viper.SetDefault("oui-file", ouiFile)

	viper.SetEnvPrefix(strings.ToUpper(app_info.NAME))
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.AddConfigPath(configDir)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError

		if !errors.As(err, &notFound) {
			return err
		}
	}

	return nil
}

// Entry point for the cli
func main() {
	log := logger.New()

	if err := setRunTimeConfig(); err != nil {
		log.Fatal().Err(err).Msg("")
	}

	conf := config.New()

	db, err := device.NewDBConnection(conf.DatabaseFile)

	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	repo := device.NewSqliteRepo(db)

	events := event.NewEventManager()

	networkInfo, err := util.GetNetworkInfo()

	if err != nil {
		// arp probing needs an interface with a default route, the
		// other techniques still work without one
		log.Warn().Err(err).Msg("no default route detected, arp probing disabled")
		networkInfo = nil
	}

	vendors := oui.NewRegistry(conf.OUIFile)

	neighbors := discovery.NewNeighborCache()

	scanner := discovery.NewDiscoveryService(
		discovery.NewARPProber(networkInfo, conf.ArpRetries, conf.ProbeTimeout),
		discovery.NewArpScanCLI(),
		neighbors,
		discovery.NewPingSweep(neighbors),
		vendors,
	)

	enricher := enrich.NewEnrichmentService(
		mdns.NewAvahiBrowser(),
		mdns.NewZeroconfBrowser(2*time.Second),
		mdns.NewServiceCache(),
		enrich.NewNetworkProber(),
		conf.EnrichConcurrency,
	)

	reconciler := engine.NewReconcilerService(conf, scanner, enricher, repo, events)

	// Get the "root" cobra cli command
	cmd := commands.Root(&commands.CommandProps{
		Engine:  reconciler,
		Devices: repo,
		Events:  events,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// execute the cobra command and exit with error code if necessary
	if err := cmd.ExecuteContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("")
	}
}
