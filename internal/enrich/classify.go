package enrich

import "strings"

// The classification tables below evaluate in fixed priority order,
// first match wins: advertised service signatures, then open port
// signatures, then vendor keywords, model keywords, manufacturer
// keywords, and finally the upnp device type.

var serviceClassRules = []struct {
	substr string
	class  string
}{
	{"airplay", "Apple TV / AirPlay"},
	{"raop", "Apple TV / AirPlay"},
	{"homekit", "HomeKit Device"},
	{"googlecast", "Chromecast"},
	{"chromecast", "Chromecast"},
	{"printer", "Printer"},
	{"ipp", "Printer"},
	{"_pdl", "Printer"},
	{"scanner", "Scanner"},
	{"spotify", "Spotify Connect Device"},
	{"sonos", "Sonos Speaker"},
	{"hue", "Philips Hue"},
	{"smb", "NAS / File Server"},
	{"afp", "NAS / File Server"},
	{"nfs", "NAS / File Server"},
}

var portClassRules = []struct {
	match func(open map[int]bool) bool
	class string
}{
	{func(o map[int]bool) bool { return o[9100] || o[631] }, "Printer"},
	{func(o map[int]bool) bool { return o[32400] }, "Plex Media Server"},
	{func(o map[int]bool) bool { return o[5001] }, "Synology NAS"},
	{func(o map[int]bool) bool { return o[445] || o[3389] }, "Windows PC"},
	{func(o map[int]bool) bool { return o[548] }, "Mac"},
	{func(o map[int]bool) bool { return o[62078] }, "iPhone/iPad"},
	{func(o map[int]bool) bool { return o[22] && !o[80] && !o[443] }, "Linux Server"},
}

// vendorClassRules run against the oui vendor first and the
// manufacturer string second; the philips rule also wants a hue
// service advertised since philips makes plenty of non-hue gear
var vendorClassRules = []struct {
	match func(vendor, services string) bool
	class string
}{
	{func(v, _ string) bool { return strings.Contains(v, "apple") }, "Apple Device"},
	{func(v, _ string) bool { return strings.Contains(v, "samsung") }, "Samsung Device"},
	{func(v, _ string) bool { return strings.Contains(v, "google") }, "Google Device"},
	{func(v, _ string) bool { return strings.Contains(v, "amazon") }, "Amazon Device"},
	{func(v, _ string) bool { return strings.Contains(v, "sonos") }, "Sonos Speaker"},
	{func(v, _ string) bool { return strings.Contains(v, "roku") }, "Roku"},
	{
		func(v, s string) bool {
			return strings.Contains(v, "philips") && strings.Contains(s, "hue")
		},
		"Philips Hue",
	},
	{
		func(v, _ string) bool {
			return containsAny(v, "netgear", "tp-link", "asus", "linksys", "ubiquiti", "cisco")
		},
		"Network Equipment",
	},
	{func(v, _ string) bool { return strings.Contains(v, "raspberry") }, "Raspberry Pi"},
	{
		func(v, _ string) bool { return containsAny(v, "espressif", "tuya") },
		"IoT Device",
	},
}

var modelClassRules = []struct {
	substr string
	class  string
}{
	{"macbook", "MacBook"},
	{"imac", "iMac"},
	{"appletv", "Apple TV"},
	{"apple tv", "Apple TV"},
	{"homepod", "HomePod"},
	{"iphone", "iPhone"},
	{"ipad", "iPad"},
	{"nas", "NAS / File Server"},
}

var upnpClassRules = []struct {
	substr string
	class  string
}{
	{"MediaRenderer", "Media Renderer"},
	{"MediaServer", "Media Server"},
	{"InternetGateway", "Router"},
}

func containsAny(s string, substrs ...string) bool {
	for _, substr := range substrs {
		if strings.Contains(s, substr) {
			return true
		}
	}

	return false
}

// Classify derives a device class from everything the probes
// gathered; "" means no signature matched
func Classify(e *HostEnrichment) string {
	all := append(append([]string{}, e.Services...), e.PortServices...)
	services := strings.ToLower(strings.Join(all, " "))

	for _, rule := range serviceClassRules {
		if strings.Contains(services, rule.substr) {
			return rule.class
		}
	}

	open := map[int]bool{}

	for _, port := range e.OpenPorts {
		open[port] = true
	}

	for _, rule := range portClassRules {
		if rule.match(open) {
			return rule.class
		}
	}

	vendor := strings.ToLower(e.Vendor)

	if vendor != "" {
		for _, rule := range vendorClassRules {
			if rule.match(vendor, services) {
				return rule.class
			}
		}
	}

	model := strings.ToLower(e.Model)

	if model != "" {
		for _, rule := range modelClassRules {
			if strings.Contains(model, rule.substr) {
				return rule.class
			}
		}
	}

	manufacturer := strings.ToLower(e.Manufacturer)

	if manufacturer != "" {
		for _, rule := range vendorClassRules {
			if rule.match(manufacturer, services) {
				return rule.class
			}
		}
	}

	deviceType := e.SSDPInfo["device_type"]

	for _, rule := range upnpClassRules {
		if strings.Contains(deviceType, rule.substr) {
			return rule.class
		}
	}

	return ""
}

// serverClassHints map the http server header to a class; only firm
// hints may overwrite a class another source already derived
var serverClassHints = []struct {
	substr string
	class  string
	firm   bool
}{
	{"synology", "Synology NAS", true},
	{"nginx", "Web Server", false},
	{"apache", "Web Server", false},
	{"lighttpd", "Embedded Device", false},
}

// titleClassHints match the landing page title; a recognizable title
// names the product outright, so these are always firm
var titleClassHints = []struct {
	substr string
	class  string
}{
	{"synology", "Synology NAS"},
	{"router", "Router"},
	{"gateway", "Router"},
	{"printer", "Printer"},
	{"unifi", "Ubiquiti UniFi"},
	{"plex", "Plex Media Server"},
	{"home assistant", "Home Assistant"},
	{"pi-hole", "Pi-hole"},
}

// HTTPClassHint maps the http probe attributes to a class hint; a
// title hint wins over a server header hint
func HTTPClassHint(info map[string]string) (string, bool) {
	class := ""
	firm := false

	server := strings.ToLower(info["server"])

	for _, rule := range serverClassHints {
		if strings.Contains(server, rule.substr) {
			class, firm = rule.class, rule.firm
			break
		}
	}

	title := strings.ToLower(info["title"])

	for _, rule := range titleClassHints {
		if strings.Contains(title, rule.substr) {
			return rule.class, true
		}
	}

	return class, firm
}
