package oui

// fallbackVendors maps normalized 6-char mac prefixes to vendors seen
// on most home networks; consulted only when the primary database has
// no answer
var fallbackVendors = map[string]string{
	// Raspberry Pi Foundation
	"B827EB": "Raspberry Pi",
	"DCA632": "Raspberry Pi",
	"E45F01": "Raspberry Pi",

	// Apple
	"003065": "Apple",
	"0050E4": "Apple",
	"0C4DE9": "Apple",
	"14998E": "Apple",
	"3C22FB": "Apple",
	"683E34": "Apple",
	"787B8A": "Apple",
	"8C8590": "Apple",
	"A4B197": "Apple",
	"BC9FEF": "Apple",
	"F0DBE2": "Apple",

	// Samsung
	"001247": "Samsung",
	"0021D1": "Samsung",
	"002490": "Samsung",
	"8425DB": "Samsung",

	// Google
	"001A11": "Google",
	"3C5AB4": "Google",
	"546009": "Google",
	"94EB2C": "Google",
	"F4F5D8": "Google",

	// Amazon
	"00FC8B": "Amazon",
	"0C47C9": "Amazon",
	"44650D": "Amazon",
	"6837E9": "Amazon",

	// Sonos
	"000E58": "Sonos",
	"347E5C": "Sonos",
	"48A6B8": "Sonos",
	"5CAAFD": "Sonos",
	"949F3E": "Sonos",
	"B8E937": "Sonos",

	// Espressif (ESP8266/ESP32 smart devices)
	"240AC4": "Espressif",
	"30AEA4": "Espressif",
	"5CCF7F": "Espressif",
	"840D8E": "Espressif",
	"A020A6": "Espressif",
	"CC50E3": "Espressif",

	// Philips Hue
	"001788": "Philips Hue",
	"ECB5FA": "Philips Hue",

	// Ubiquiti
	"00156D": "Ubiquiti",
	"0418D6": "Ubiquiti",
	"788A20": "Ubiquiti",
	"DC9FDB": "Ubiquiti",
	"F09FC2": "Ubiquiti",

	// TP-Link
	"14CC20": "TP-Link",
	"503EAA": "TP-Link",
	"98DAC4": "TP-Link",
	"D807B6": "TP-Link",
	"EC086B": "TP-Link",

	// Synology
	"001132": "Synology",
}
