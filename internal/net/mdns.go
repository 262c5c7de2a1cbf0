package net

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/mdns"
)

// ServiceType is the mDNS service the change feed is announced under.
const ServiceType = "_drawpad._tcp"

// Feed is a change feed found on the network.
type Feed struct {
	Instance string
	Addr     string
	Session  string
	URL      string
}

// Advertise announces a feed on port. An empty instance uses the host name.
func Advertise(instance string, port int, session string) (*mdns.Server, error) {
	if instance == "" {
		host, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("could not get hostname: %w", err)
		}
		instance = host
	}

	info := []string{"path=" + FeedPath, "session=" + session}
	service, err := mdns.NewMDNSService(instance, ServiceType, "", "", port, nil, info)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Browse looks for feeds for up to timeout and calls found for each one.
func Browse(ctx context.Context, timeout time.Duration, found func(Feed)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if f, ok := feedFromEntry(e); ok {
				found(f)
			}
		}
	}()

	params := mdns.DefaultParams(ServiceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		params.Timeout = time.Until(deadline)
	}
	err := mdns.Query(params)
	close(entries)
	<-done
	return err
}

func feedFromEntry(e *mdns.ServiceEntry) (Feed, bool) {
	if e.AddrV4 == nil || e.Port == 0 {
		return Feed{}, false
	}
	f := Feed{
		Instance: strings.TrimSuffix(e.Name, "."+ServiceType+".local."),
		Addr:     net.JoinHostPort(e.AddrV4.String(), fmt.Sprint(e.Port)),
	}
	path := FeedPath
	for _, field := range e.InfoFields {
		k, v, _ := strings.Cut(field, "=")
		switch k {
		case "path":
			path = v
		case "session":
			f.Session = v
		}
	}
	f.URL = "ws://" + f.Addr + path
	return f, true
}
