package mdns_test

import (
	"testing"

	"github.com/lanwarden/lanwarden/internal/mdns"
	"github.com/stretchr/testify/assert"
)

func TestDecodeServiceString(t *testing.T) {
	t.Run("decodes decimal escapes to bytes", func(st *testing.T) {
		decoded := mdns.DecodeServiceString(`Office\032Speaker`)

		assert.Equal(st, "Office Speaker", decoded)
	})

	t.Run("decodes multi byte utf8 sequences", func(st *testing.T) {
		decoded := mdns.DecodeServiceString(`It\226\128\153s Here`)

		assert.Equal(st, "It’s Here", decoded)
	})

	t.Run("passes literals through unchanged", func(st *testing.T) {
		decoded := mdns.DecodeServiceString("Living Room TV")

		assert.Equal(st, "Living Room TV", decoded)
	})

	t.Run("keeps escapes that are not three digits", func(st *testing.T) {
		decoded := mdns.DecodeServiceString(`a\32b`)

		assert.Equal(st, `a\32b`, decoded)
	})

	t.Run("strips control characters and trims", func(st *testing.T) {
		decoded := mdns.DecodeServiceString("  Printer\\009Name\\013  ")

		assert.Equal(st, "Printer\tName", decoded)
	})
}

func TestParseTxtRecords(t *testing.T) {
	t.Run("parses quoted key value tokens", func(st *testing.T) {
		records := mdns.ParseTxtRecords(`"vendor=Synology" "model=DS413j"`)

		assert.Equal(st, "Synology", records["vendor"])
		assert.Equal(st, "DS413j", records["model"])
	})

	t.Run("treats bare quoted tokens as boolean flags", func(st *testing.T) {
		records := mdns.ParseTxtRecords(`"qotd" "md=One"`)

		assert.Equal(st, "true", records["qotd"])
		assert.Equal(st, "One", records["md"])
	})

	t.Run("parses unquoted pairs without clobbering quoted ones", func(st *testing.T) {
		records := mdns.ParseTxtRecords(`"model=Real" model=Fake fn=Kitchen`)

		assert.Equal(st, "Real", records["model"])
		assert.Equal(st, "Kitchen", records["fn"])
	})
}

const browseOutput = `+;eno1;IPv4;FloNas;_http._tcp;local
=;eno1;IPv4;FloNas;_http._tcp;local;FloNas.local;192.168.1.15;5000;"vendor=Synology" "model=DS413j"
=;eno1;IPv4;Office\032Speaker;_raop._tcp;local;Office-Speaker.local;192.168.1.22;7000;"am=Sonos One" "fn=Office Speaker"
=;eno1;IPv6;FloNas;_http._tcp;local;FloNas.local;fe80::aa12;5000;
=;lo;IPv4;printer;_ipp._tcp;local;localhost.local;127.0.0.1;631;
=;eno1;IPv4;Chromecast-HD;_googlecast._tcp;local;abc123.local;192.168.1.30;8009;"fn=Living Room TV" "md=Chromecast"
`

func TestParseBrowseOutput(t *testing.T) {
	t.Run("aggregates resolved ipv4 records by ip", func(st *testing.T) {
		hosts := mdns.ParseBrowseOutput(browseOutput, nil)

		assert.Len(st, hosts, 3)
		assert.Contains(st, hosts, "192.168.1.15")
		assert.Contains(st, hosts, "192.168.1.22")
		assert.Contains(st, hosts, "192.168.1.30")
	})

	t.Run("ignores unresolved ipv6 and loopback records", func(st *testing.T) {
		hosts := mdns.ParseBrowseOutput(browseOutput, nil)

		assert.NotContains(st, hosts, "fe80::aa12")
		assert.NotContains(st, hosts, "127.0.0.1")
	})

	t.Run("extracts model manufacturer and device class", func(st *testing.T) {
		hosts := mdns.ParseBrowseOutput(browseOutput, nil)

		nas := hosts["192.168.1.15"]
		assert.Equal(st, "DS413j", nas.Model)
		assert.Equal(st, "Synology", nas.Manufacturer)
		// ds model prefix wins over the web server service type
		assert.Equal(st, "NAS", nas.DeviceClass)

		cast := hosts["192.168.1.30"]
		assert.Equal(st, "Chromecast", cast.Model)
		assert.Equal(st, "Chromecast", cast.DeviceClass)
	})

	t.Run("decodes escaped instance names", func(st *testing.T) {
		hosts := mdns.ParseBrowseOutput(browseOutput, nil)

		speaker := hosts["192.168.1.22"]
		assert.Contains(st, speaker.ServiceNames, "Office Speaker")
		assert.Equal(st, "AirPlay Device", speaker.DeviceClass)
		// airplay family txt is unreliable for md but am still applies
		assert.Equal(st, "Sonos One", speaker.Model)
	})

	t.Run("filters to caller supplied target ips", func(st *testing.T) {
		hosts := mdns.ParseBrowseOutput(browseOutput, []string{"192.168.1.15"})

		assert.Len(st, hosts, 1)
		assert.Contains(st, hosts, "192.168.1.15")
	})
}

func TestHostInfoNames(t *testing.T) {
	t.Run("primary hostname prefers non local names", func(st *testing.T) {
		info := &mdns.HostInfo{IP: "192.168.1.5"}
		info.AddHostname("nas.local")
		info.AddHostname("nas.lan")

		assert.Equal(st, "nas.lan", info.PrimaryHostname())
	})

	t.Run("primary hostname falls back to shortest local name", func(st *testing.T) {
		info := &mdns.HostInfo{IP: "192.168.1.5"}
		info.AddHostname("very-long-hostname.local")
		info.AddHostname("nas.local")

		assert.Equal(st, "nas.local", info.PrimaryHostname())
	})

	t.Run("friendly name prefers short names with spaces", func(st *testing.T) {
		info := &mdns.HostInfo{IP: "192.168.1.5"}
		info.AddServiceName("E9E96E-technical-identifier")
		info.AddServiceName("Office")
		info.AddServiceName("Office Speaker")

		assert.Equal(st, "Office Speaker", info.FriendlyName())
	})

	t.Run("friendly name filters uuid and mac like names", func(st *testing.T) {
		info := &mdns.HostInfo{IP: "192.168.1.5"}
		info.AddServiceName("4A8C9D0E-1F2B-3C4D-5E6F-7A8B9C0D1E2F")
		info.AddServiceName("Device-12-34-56-78")
		info.AddHostname("speaker.local")

		assert.Equal(st, "speaker", info.FriendlyName())
	})

	t.Run("friendly name empty when nothing usable", func(st *testing.T) {
		info := &mdns.HostInfo{IP: "192.168.1.5"}
		info.AddServiceName("_internal")
		info.AddHostname("_service.local")

		assert.Equal(st, "", info.FriendlyName())
	})
}

func TestServiceCache(t *testing.T) {
	t.Run("stores and clears per batch", func(st *testing.T) {
		cache := mdns.NewServiceCache()

		cache.Open()
		cache.Populate(map[string]*mdns.HostInfo{
			"192.168.1.9": {IP: "192.168.1.9", Model: "DS920+"},
		})

		assert.Equal(st, 1, cache.Len())
		assert.Equal(st, "DS920+", cache.Get("192.168.1.9").Model)
		assert.Nil(st, cache.Get("192.168.1.10"))

		cache.Close()

		assert.Equal(st, 0, cache.Len())
		assert.Nil(st, cache.Get("192.168.1.9"))
	})
}
