package config

import (
	"time"

	"github.com/spf13/viper"
)

// Defaults applied when no flag, environment variable or config file
// value overrides them
const (
	DefaultScanInterval      = 120 * time.Second
	DefaultProbeTimeout      = 5 * time.Second
	DefaultArpRetries        = 2
	DefaultOfflineGraceScans = 3
	DefaultEnrichConcurrency = 4
)

// Config represents runtime settings for the discovery and
// reconciliation engine
type Config struct {
	// CIDR subnet to scan; empty means autodetect from the default route
	CIDR string
	// ScanInterval delay between reconciliation cycles
	ScanInterval time.Duration
	// ProbeTimeout per-probe timeout for discovery and enrichment
	ProbeTimeout time.Duration
	// ArpRetries number of layer-2 broadcast probe attempts
	ArpRetries int
	// OfflineGraceScans consecutive missed scans tolerated before a
	// device is actively verified and possibly marked offline
	OfflineGraceScans int
	// EnrichConcurrency number of hosts enriched simultaneously
	EnrichConcurrency int
	// DeepScan enables per-host enrichment probes after discovery
	DeepScan bool
	// DatabaseFile path to the sqlite database
	DatabaseFile string
	// OUIFile path to the mac-prefix vendor json database
	OUIFile string
}

// New resolves engine configuration from viper in flag, env, config
// file, default order of precedence
func New() *Config {
	viper.SetDefault("scan-interval", DefaultScanInterval)
	viper.SetDefault("probe-timeout", DefaultProbeTimeout)
	viper.SetDefault("arp-retries", DefaultArpRetries)
	viper.SetDefault("offline-grace-scans", DefaultOfflineGraceScans)
	viper.SetDefault("enrich-concurrency", DefaultEnrichConcurrency)
	viper.SetDefault("deep-scan", true)

	return &Config{
		CIDR:              viper.GetString("cidr"),
		ScanInterval:      viper.GetDuration("scan-interval"),
		ProbeTimeout:      viper.GetDuration("probe-timeout"),
		ArpRetries:        viper.GetInt("arp-retries"),
		OfflineGraceScans: viper.GetInt("offline-grace-scans"),
		EnrichConcurrency: viper.GetInt("enrich-concurrency"),
		DeepScan:          viper.GetBool("deep-scan"),
		DatabaseFile:      viper.GetString("database-file"),
		OUIFile:           viper.GetString("oui-file"),
	}
}
