package enrich

import (
	"context"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/huin/goupnp"
)

const ssdpPort = "1900"

// ssdpSearch is a standard m-search request; it is sent unicast,
// straight to the target, instead of to the multicast group
const ssdpSearch = "M-SEARCH * HTTP/1.1\r\n" +
	"HOST: 239.255.255.250:1900\r\n" +
	"MAN: \"ssdp:discover\"\r\n" +
	"MX: 1\r\n" +
	"ST: ssdp:all\r\n" +
	"\r\n"

// QuerySSDP sends a unicast m-search to ip and parses the first
// response into a lowercase header map. A location header is followed
// to the upnp description document, whose friendly name, manufacturer,
// model and device type fold into the same map.
func (p *NetworkProber) QuerySSDP(ctx context.Context, ip string) map[string]string {
	var d net.Dialer

	conn, err := d.DialContext(ctx, "udp", net.JoinHostPort(ip, ssdpPort))

	if err != nil {
		return nil
	}

	defer conn.Close()

	conn.SetDeadline(time.Now().Add(ssdpWait))

	if _, err := conn.Write([]byte(ssdpSearch)); err != nil {
		return nil
	}

	buf := make([]byte, 2048)

	n, err := conn.Read(buf)

	if err != nil {
		return nil
	}

	headers := ParseSSDPResponse(string(buf[:n]))

	if location := headers["location"]; location != "" {
		p.describeUPnP(ctx, location, headers)
	}

	return headers
}

// ParseSSDPResponse splits response header lines into a map with
// lowercase keys
func ParseSSDPResponse(response string) map[string]string {
	headers := map[string]string{}

	for _, line := range strings.Split(response, "\r\n") {
		if key, value, found := strings.Cut(line, ":"); found {
			headers[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
		}
	}

	return headers
}

// describeUPnP merges the description document fields into headers
func (p *NetworkProber) describeUPnP(
	ctx context.Context,
	location string,
	headers map[string]string,
) {
	describeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	loc, err := url.Parse(location)

	if err != nil {
		return
	}

	root, err := goupnp.DeviceByURLCtx(describeCtx, loc)

	if err != nil {
		p.log.Debug().
			Err(err).
			Str("location", location).
			Msg("upnp description fetch failed")
		return
	}

	device := root.Device

	if device.FriendlyName != "" {
		headers["friendly_name"] = device.FriendlyName
	}

	if device.Manufacturer != "" {
		headers["manufacturer"] = device.Manufacturer
	}

	if device.ModelName != "" {
		headers["model"] = device.ModelName
	}

	if device.DeviceType != "" {
		headers["device_type"] = device.DeviceType
	}
}
