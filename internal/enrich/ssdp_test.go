package enrich_test

import (
	"testing"

	"github.com/lanwarden/lanwarden/internal/enrich"
	"github.com/stretchr/testify/assert"
)

const ssdpResponse = "HTTP/1.1 200 OK\r\n" +
	"CACHE-CONTROL: max-age=1800\r\n" +
	"LOCATION: http://192.168.1.1:5000/rootDesc.xml\r\n" +
	"Server: Linux/3.10 UPnP/1.1 Synology/1.0\r\n" +
	"ST: upnp:rootdevice\r\n" +
	"USN: uuid:5d2a8b1e::upnp:rootdevice\r\n" +
	"\r\n"

func TestParseSSDPResponse(t *testing.T) {
	headers := enrich.ParseSSDPResponse(ssdpResponse)

	t.Run("lowercases header names", func(st *testing.T) {
		assert.Equal(st, "max-age=1800", headers["cache-control"])
		assert.Equal(st, "Linux/3.10 UPnP/1.1 Synology/1.0", headers["server"])
	})

	t.Run("splits on the first colon only", func(st *testing.T) {
		assert.Equal(st, "http://192.168.1.1:5000/rootDesc.xml", headers["location"])
		assert.Equal(st, "uuid:5d2a8b1e::upnp:rootdevice", headers["usn"])
	})

	t.Run("ignores the status line", func(st *testing.T) {
		assert.NotContains(st, headers, "http/1.1 200 ok")
	})

	t.Run("empty input parses to an empty map", func(st *testing.T) {
		assert.Empty(st, enrich.ParseSSDPResponse(""))
	})
}
