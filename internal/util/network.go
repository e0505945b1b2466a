package util

import (
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/jackpal/gateway"
)

// NetworkInfo describes the preferred outbound network of this machine
type NetworkInfo struct {
	Hostname  string
	Interface *net.Interface
	Gateway   net.IP
	UserIP    net.IP
	Cidr      string
}

// get network interface associated with ip
func getIPNetByIP(ip net.IP) (*net.Interface, *net.IPNet, error) {
	interfaces, err := net.Interfaces()

	if err != nil {
		return nil, nil, err
	}

	for _, iface := range interfaces {
		addrs, err := iface.Addrs()

		if err != nil {
			continue
		}

		for _, addr := range addrs {
			_, ipnet, err := net.ParseCIDR(addr.String())

			if err != nil {
				continue
			}

			if ipnet.Contains(ip) {
				return &iface, ipnet, nil
			}
		}
	}

	return nil, nil, errors.New("failed to find IPNet")
}

// GetNetworkInfo returns hostname, interface, gateway and cidr block for
// the preferred outbound ip of this machine
func GetNetworkInfo() (*NetworkInfo, error) {
	gw, err := gateway.DiscoverGateway()

	if err != nil {
		return nil, err
	}

	hostname, err := os.Hostname()

	if err != nil {
		return nil, err
	}

	// udp doesn't make a full connection and will find the default ip
	// that traffic will use if say 2 are configured (wired and wireless)
	conn, err := net.Dial("udp", gw.String()+":80")

	if err != nil {
		return nil, err
	}

	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)
	userIP := localAddr.IP

	iface, ipnet, err := getIPNetByIP(userIP)

	if err != nil {
		return nil, err
	}

	size, _ := ipnet.Mask.Size()
	network := userIP.Mask(ipnet.Mask)
	cidr := fmt.Sprintf("%s/%d", network.String(), size)

	return &NetworkInfo{
		Hostname:  hostname,
		Interface: iface,
		Gateway:   gw,
		UserIP:    userIP,
		Cidr:      cidr,
	}, nil
}
