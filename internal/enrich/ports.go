package enrich

import (
	"context"
	"fmt"
	"net"
	"sort"
	"sync"
)

// commonPorts maps well known ports to coarse service names; a
// successful connect feeds both the open port list and the port
// signature classifier
var commonPorts = map[int]string{
	22:    "ssh",
	23:    "telnet",
	53:    "dns",
	80:    "http",
	443:   "https",
	445:   "smb",
	548:   "afp",
	631:   "ipp",
	3389:  "rdp",
	5000:  "upnp",
	5001:  "synology",
	7000:  "airtunes",
	8080:  "http-alt",
	8443:  "https-alt",
	9100:  "jetdirect",
	32400: "plex",
	49152: "upnp",
	62078: "iphone-sync",
}

// ScanPorts tries a tcp connect against every common port
// concurrently and reports the open ports with their coarse service
// names, ordered by port number
func (p *NetworkProber) ScanPorts(ctx context.Context, ip string) ([]int, []string) {
	mux := sync.Mutex{}
	wg := sync.WaitGroup{}

	open := []int{}

	dialer := net.Dialer{Timeout: p.timeout}

	for port := range commonPorts {
		wg.Add(1)

		go func(port int) {
			defer wg.Done()

			address := fmt.Sprintf("%s:%d", ip, port)

			conn, err := dialer.DialContext(ctx, "tcp", address)

			if err != nil {
				return
			}

			conn.Close()

			mux.Lock()
			open = append(open, port)
			mux.Unlock()
		}(port)
	}

	wg.Wait()

	sort.Ints(open)

	services := make([]string, 0, len(open))

	for _, port := range open {
		services = append(services, commonPorts[port])
	}

	return open, services
}
