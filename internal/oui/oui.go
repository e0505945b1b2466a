package oui

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/lanwarden/lanwarden/internal/logger"
)

// Registry resolves mac address prefixes to vendor names. The primary
// table loads once from a json database; a small built-in table covers
// prefixes common on home networks when the database is missing.
type Registry struct {
	vendors map[string]string
	log     logger.Logger
}

// databaseEntry is a single record in the maclookup style json database
type databaseEntry struct {
	MacPrefix  string `json:"macPrefix"`
	VendorName string `json:"vendorName"`
}

// NewRegistry loads the json database at path and returns a registry.
// A missing or corrupt database logs a warning and leaves only the
// built-in fallback table; lookup itself never fails.
func NewRegistry(path string) *Registry {
	log := logger.New()

	registry := &Registry{
		vendors: map[string]string{},
		log:     log,
	}

	if path == "" {
		return registry
	}

	raw, err := os.ReadFile(path)

	if err != nil {
		log.Warn().
			Err(err).
			Str("path", path).
			Msg("vendor database not loaded")
		return registry
	}

	var entries []databaseEntry

	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Warn().
			Err(err).
			Str("path", path).
			Msg("vendor database not parseable")
		return registry
	}

	for _, entry := range entries {
		prefix := normalize(entry.MacPrefix)

		if prefix != "" && entry.VendorName != "" {
			registry.vendors[prefix] = entry.VendorName
		}
	}

	log.Debug().
		Int("vendors", len(registry.vendors)).
		Msg("vendor database loaded")

	return registry
}

// normalize strips separators and uppercases a mac or prefix
func normalize(mac string) string {
	replacer := strings.NewReplacer(":", "", "-", "", ".", "")
	return strings.ToUpper(replacer.Replace(mac))
}

// Lookup returns the vendor name for a mac address or "" when unknown.
// Prefixes match at 6 hex chars first, then the longer MA-M and MA-S
// block sizes since vendors may register sub-blocks of a larger prefix.
func (r *Registry) Lookup(mac string) string {
	if mac == "" {
		return ""
	}

	clean := normalize(mac)

	if len(clean) < 6 {
		return ""
	}

	if vendor, ok := r.vendors[clean[:6]]; ok {
		return vendor
	}

	for _, length := range []int{7, 8, 9} {
		if len(clean) < length {
			break
		}

		if vendor, ok := r.vendors[clean[:length]]; ok {
			return vendor
		}
	}

	if vendor, ok := fallbackVendors[clean[:6]]; ok {
		return vendor
	}

	return ""
}

// Count reports the number of loaded vendor prefixes, excluding the
// built-in fallback table
func (r *Registry) Count() int {
	return len(r.vendors)
}
