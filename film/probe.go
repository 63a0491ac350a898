package film

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/nathants/filmsync/lib"
)

// Probe is the outcome of a best effort dns and tcp check against the
// database endpoint. It never gates the connection attempt.
type Probe struct {
	Host      string   `json:"host"`
	Addresses []string `json:"addresses"`
	Reachable bool     `json:"reachable"`
	Error     string   `json:"error,omitempty"`
}

type Prober interface {
	Probe(ctx context.Context, host string) *Probe
}

type NetProber struct {
	Port     int
	Timeout  time.Duration
	Resolver *net.Resolver
}

func (p *NetProber) Probe(ctx context.Context, host string) *Probe {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = ProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	resolver := p.Resolver
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	result := &Probe{Host: host}
	addrs, err := resolver.LookupHost(ctx, host)
	if err == nil && len(addrs) == 0 {
		err = fmt.Errorf("no addresses for %s", host)
	}
	if err != nil {
		result.Error = err.Error()
		lib.Logger.Println("probe: dns failed:", host, err)
		return result
	}
	result.Addresses = addrs
	lib.Logger.Println("probe: dns resolved:", host, addrs)
	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(addrs[0], strconv.Itoa(p.Port)))
	if err != nil {
		result.Error = err.Error()
		lib.Logger.Println("probe: unreachable:", host, err)
		return result
	}
	_ = conn.Close()
	result.Reachable = true
	lib.Logger.Println("probe: reachable:", host)
	return result
}
