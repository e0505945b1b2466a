package enrich

import (
	"context"
	"net"
	"strings"
	"time"
)

const netbiosPort = "137"

// NBStatQuery builds a wildcard NBSTAT name query: transaction id 1,
// one question, the '*' name half-ascii encoded with a length prefix
// of 0x20, query type 0x21
func NBStatQuery() []byte {
	packet := []byte{
		0x00, 0x01, // transaction id
		0x00, 0x00, // flags
		0x00, 0x01, // questions
		0x00, 0x00, // answers
		0x00, 0x00, // authority
		0x00, 0x00, // additional
	}

	packet = append(packet, 0x20)

	name := "*" + strings.Repeat("\x00", 15)

	for _, c := range []byte(name) {
		packet = append(packet, ((c>>4)&0x0F)+0x41, (c&0x0F)+0x41)
	}

	packet = append(packet, 0x00)       // name terminator
	packet = append(packet, 0x00, 0x21) // NBSTAT
	packet = append(packet, 0x00, 0x01) // IN

	return packet
}

// QueryNetBIOS asks ip for its netbios name table and returns the
// first workstation or file server name
func (p *NetworkProber) QueryNetBIOS(ctx context.Context, ip string) string {
	var d net.Dialer

	conn, err := d.DialContext(ctx, "udp", net.JoinHostPort(ip, netbiosPort))

	if err != nil {
		return ""
	}

	defer conn.Close()

	conn.SetDeadline(time.Now().Add(datagramTimeout))

	if _, err := conn.Write(NBStatQuery()); err != nil {
		return ""
	}

	buf := make([]byte, 1024)

	n, err := conn.Read(buf)

	if err != nil {
		return ""
	}

	return ParseNetBIOSReply(buf[:n])
}

// ParseNetBIOSReply walks the name table of an NBSTAT response. The
// name count sits at byte 56; each entry is 15 name bytes, one type
// byte and two flag bytes. Types 0x00 (workstation) and 0x20 (file
// server) carry usable names.
func ParseNetBIOSReply(data []byte) string {
	if len(data) <= 56 {
		return ""
	}

	count := int(data[56])
	offset := 57

	for i := 0; i < count; i++ {
		if offset+18 > len(data) {
			break
		}

		nameType := data[offset+15]

		if nameType == 0x00 || nameType == 0x20 {
			name := strings.Trim(string(data[offset:offset+15]), "\x00 ")

			if name != "" && name != "*" {
				return name
			}
		}

		offset += 18
	}

	return ""
}
