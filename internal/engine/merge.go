package engine

import (
	"strings"
	"time"

	"github.com/imdario/mergo"
	"github.com/lanwarden/lanwarden/internal/device"
	"github.com/lanwarden/lanwarden/internal/discovery"
	"github.com/lanwarden/lanwarden/internal/enrich"
	"github.com/lanwarden/lanwarden/internal/util"
)

// maxStoredServices caps the services blob persisted per device
const maxStoredServices = 10

// observation is the flattened attribute set one cycle learned about
// a present host, combining the discovery row with its enrichment
type observation struct {
	IP           string
	Hostname     string
	Vendor       string
	Manufacturer string
	Model        string
	FriendlyName string
	DeviceClass  string
	OpenPorts    []int
	Services     []string
	ResponseTime float64
	Method       string
}

// fillPatch carries the attributes that may only fill empty registry
// fields, never replace operator-curated ones
type fillPatch struct {
	Vendor       string
	Manufacturer string
	Model        string
	FriendlyName string
	DeviceClass  string
}

// buildObservation merges one discovered host with its enrichment.
// Enriched attributes win over discovery attributes where both exist:
// a manufacturer read off the device itself beats the oui vendor
// guess.
func buildObservation(
	host *discovery.DiscoveredHost,
	e *enrich.HostEnrichment,
) *observation {
	obs := &observation{
		IP:           host.IP,
		Hostname:     host.Hostname,
		Vendor:       host.Vendor,
		ResponseTime: host.ResponseTime,
		Method:       host.Method,
	}

	if e == nil {
		return obs
	}

	if name := e.PrimaryHostname(); name != "" {
		obs.Hostname = name
	}

	if e.Manufacturer != "" {
		obs.Vendor = e.Manufacturer
	}

	obs.Manufacturer = e.Manufacturer
	obs.Model = e.Model
	obs.FriendlyName = e.FriendlyName()
	obs.DeviceClass = e.DeviceClass
	obs.OpenPorts = e.OpenPorts
	obs.Services = util.SliceLimit(e.Services, maxStoredServices)

	return obs
}

// applyObservation folds one cycle's observation into a registry row.
// The hostname only replaces a missing or mdns-derived name; vendor,
// manufacturer, model, friendly name and device class fill empty
// fields only; ports and services overwrite whenever the cycle
// produced fresh values.
func applyObservation(dev *device.Device, obs *observation, now time.Time) error {
	dev.IP = obs.IP
	dev.IsOnline = true
	dev.MissedScans = 0
	dev.LastSeen = now

	if obs.Hostname != "" &&
		(dev.Hostname == "" || strings.HasSuffix(dev.Hostname, ".local")) {
		dev.Hostname = obs.Hostname
	}

	patch := fillPatch{
		Vendor:       dev.Vendor,
		Manufacturer: dev.Manufacturer,
		Model:        dev.Model,
		FriendlyName: dev.FriendlyName,
		DeviceClass:  dev.DeviceClass,
	}

	err := mergo.Merge(&patch, fillPatch{
		Vendor:       obs.Vendor,
		Manufacturer: obs.Manufacturer,
		Model:        obs.Model,
		FriendlyName: obs.FriendlyName,
		DeviceClass:  obs.DeviceClass,
	})

	if err != nil {
		return err
	}

	dev.Vendor = patch.Vendor
	dev.Manufacturer = patch.Manufacturer
	dev.Model = patch.Model
	dev.FriendlyName = patch.FriendlyName
	dev.DeviceClass = patch.DeviceClass

	if len(obs.OpenPorts) > 0 {
		if err := dev.SetOpenPorts(obs.OpenPorts); err != nil {
			return err
		}
	}

	if len(obs.Services) > 0 {
		if err := dev.SetServices(obs.Services); err != nil {
			return err
		}
	}

	return nil
}
