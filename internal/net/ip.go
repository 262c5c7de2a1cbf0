package net

import (
	"log"
	"net"
	"strconv"
)

// GetOutgoingIP finds the preferred local IP address for viewers to connect to.
func GetOutgoingIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// If we can't reach the internet, fall back to checking local interfaces.
		return firstIPv4().String(), nil
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)
	return localAddr.IP.String(), nil
}

// firstIPv4 returns the first address of an interface that is up and not
// loopback.
func firstIPv4() net.IP {
	ifaces, _ := net.Interfaces()
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.To4()
			}
		}
	}
	log.Println("No suitable local IP found, feed links may not work from other hosts.")
	return net.IPv4(127, 0, 0, 1)
}

// FeedURL returns the ws:// URL viewers use for a feed bound to addr. An
// unspecified host is replaced with the outgoing IP.
func FeedURL(addr net.Addr) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return ""
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host, _ = GetOutgoingIP()
	}
	return "ws://" + net.JoinHostPort(host, port) + FeedPath
}

// Port returns the TCP port of addr, or 0.
func Port(addr net.Addr) int {
	_, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return 0
	}
	p, _ := strconv.Atoi(port)
	return p
}
