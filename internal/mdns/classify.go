package mdns

import "strings"

// serviceClassRules map service-type substrings to a device class;
// rules evaluate in fixed priority order, first match wins
var serviceClassRules = []struct {
	substr string
	class  string
}{
	{"_hap._tcp", "HomeKit Device"},
	{"_homekit", "HomeKit Device"},
	{"_airplay", "AirPlay Device"},
	{"_raop", "AirPlay Device"},
	{"_googlecast", "Chromecast"},
	{"_printer", "Printer"},
	{"_ipp", "Printer"},
	{"_pdl", "Printer"},
	{"_smb", "File Server (SMB)"},
	{"_afp", "File Server (AFP)"},
	{"_ssh", "SSH Server"},
	{"_sftp", "SSH Server"},
	{"_http", "Web Server"},
	{"_matter", "Matter Device"},
	{"_spotify", "Spotify Connect"},
	{"_sonos", "Sonos Speaker"},
	{"_lg-smart", "LG Smart Device"},
	{"_meshcop", "Thread Border Router"},
	{"_trel", "Thread Border Router"},
	{"_companion-link", "Apple Device"},
	{"_sleep-proxy", "Sleep Proxy (Apple)"},
}

// modelRule classifies from a lowercased model string; model derived
// classes override service-type derived ones
type modelRule struct {
	class string
	match func(model string) bool
}

func modelContains(substrs ...string) func(string) bool {
	return func(model string) bool {
		for _, s := range substrs {
			if !strings.Contains(model, s) {
				return false
			}
		}
		return true
	}
}

var modelClassRules = []modelRule{
	{"Apple TV", modelContains("appletv")},
	{"MacBook", modelContains("macbook")},
	{"iMac", modelContains("imac")},
	{"Mac Pro", modelContains("mac", "pro")},
	{"Mac mini", modelContains("mac", "mini")},
	{"HomePod", modelContains("homepod")},
	{"iPhone", modelContains("iphone")},
	{"iPad", modelContains("ipad")},
	{"NAS", func(m string) bool {
		return strings.Contains(m, "xserve") || strings.HasPrefix(m, "ds")
	}},
	{"NVR (Security Camera Recorder)", modelContains("nvr")},
	{"Nanoleaf Light", modelContains("nanoleaf")},
	{"Meross Smart Device", func(m string) bool {
		return strings.Contains(m, "meross") ||
			strings.HasPrefix(m, "mss") ||
			strings.HasPrefix(m, "msg")
	}},
	{"Eufy Device", modelContains("eufy")},
	{"Scrypted Server", modelContains("scrypted")},
	{"LG Soundbar", func(m string) bool {
		return strings.Contains(m, "lg sn") || strings.Contains(m, "lg soundbar")
	}},
}

// manufacturerClassRules apply last and only when nothing else set a
// class
var manufacturerClassRules = []struct {
	substr string
	class  string
}{
	{"synology", "Synology NAS"},
	{"apple", "Apple Device"},
	{"lg", "LG Device"},
}

// the airplay family advertises speaker model strings that do not
// describe the device itself
var modelSkipServices = []string{"_raop._tcp", "_airplay._tcp", "airtunes"}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// applyServiceInfo folds one service record into the per-ip aggregate:
// model and manufacturer from TXT keys, candidate friendly names, and
// the device class via the ordered rule tables
func applyServiceInfo(info *HostInfo, svc *ServiceRecord) {
	txt := svc.TxtRecords
	serviceType := strings.ToLower(svc.Type)
	serviceName := strings.ToLower(svc.Name)

	skipModel := false

	for _, s := range modelSkipServices {
		if strings.Contains(serviceType, s) || strings.Contains(serviceName, s) {
			skipModel = true
			break
		}
	}

	if info.Model == "" && !skipModel {
		for _, key := range []string{"model", "md"} {
			value := txt[key]

			if value != "" && !strings.HasPrefix(value, "0,") && len(value) > 1 {
				info.Model = value
				break
			}
		}
	}

	// apple's am key is more reliable than md for hardware models
	if info.Model == "" {
		if value := txt["am"]; len(value) > 2 {
			info.Model = value
		}
	}

	if info.Manufacturer == "" {
		for _, key := range []string{"vendor", "manufacturer"} {
			value := txt[key]

			if value != "" && !isAllDigits(value) {
				info.Manufacturer = value
				break
			}
		}
	}

	// companion-link devices carry the model in rpMd
	if info.Model == "" {
		if value := txt["rpMd"]; value != "" {
			info.Model = value
		}
	}

	// googlecast friendly names ride in fn
	if value := txt["fn"]; value != "" {
		info.AddServiceName(value)
	}

	if info.DeviceClass == "" {
		for _, rule := range serviceClassRules {
			if strings.Contains(serviceType, rule.substr) {
				info.DeviceClass = rule.class
				break
			}
		}
	}

	if info.Model != "" {
		model := strings.ToLower(info.Model)

		for _, rule := range modelClassRules {
			if rule.match(model) {
				info.DeviceClass = rule.class
				break
			}
		}
	}

	if info.DeviceClass == "" && info.Manufacturer != "" {
		manufacturer := strings.ToLower(info.Manufacturer)

		for _, rule := range manufacturerClassRules {
			if strings.Contains(manufacturer, rule.substr) {
				info.DeviceClass = rule.class
				break
			}
		}
	}
}
