package fetch

import (
	"context"
	"fmt"
	"net"
)

// guardedDialer wraps dialer so that, unless allowPrivate is set, connections
// to loopback, link-local, and private-range addresses are refused. This
// runs after DNS resolution so it also catches rebinding attacks where a
// public hostname resolves to an internal address.
func guardedDialer(allowPrivate bool, dialer *net.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	if allowPrivate {
		return dialer.DialContext
	}
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		host, port, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, fmt.Errorf("fetch: split host port: %w", err)
		}

		ips, err := net.DefaultResolver.LookupIP(ctx, "ip", host)
		if err != nil {
			return nil, fmt.Errorf("fetch: resolve %s: %w", host, err)
		}

		var safe net.IP
		for _, ip := range ips {
			if !isBlockedIP(ip) {
				safe = ip
				break
			}
		}
		if safe == nil {
			return nil, fmt.Errorf("fetch: %s resolves only to blocked addresses", host)
		}

		return dialer.DialContext(ctx, network, net.JoinHostPort(safe.String(), port))
	}
}

var blockedCIDRs = mustParseCIDRs(
	"127.0.0.0/8",    // loopback
	"10.0.0.0/8",     // private
	"172.16.0.0/12",  // private
	"192.168.0.0/16", // private
	"169.254.0.0/16", // link-local, includes cloud metadata endpoints
	"100.64.0.0/10",  // carrier-grade NAT
	"::1/128",        // loopback v6
	"fc00::/7",       // unique local v6
	"fe80::/10",      // link-local v6
)

func mustParseCIDRs(cidrs ...string) []*net.IPNet {
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, c := range cidrs {
		_, n, err := net.ParseCIDR(c)
		if err != nil {
			panic(fmt.Sprintf("fetch: invalid CIDR literal %q: %v", c, err))
		}
		nets = append(nets, n)
	}
	return nets
}

func isBlockedIP(ip net.IP) bool {
	if ip.IsUnspecified() || ip.IsMulticast() {
		return true
	}
	for _, n := range blockedCIDRs {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
