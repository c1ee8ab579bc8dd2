// internal/app/system/ratelimit/proxy.go
package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// Proxies is the set of peers whose X-Forwarded-For and X-Real-IP headers
// are believed. A nil or empty set believes no one.
type Proxies struct {
	prefixes []netip.Prefix
}

// ParseProxies parses IPs and CIDR ranges such as "10.0.0.0/8" or
// "127.0.0.1".
func ParseProxies(entries []string) (*Proxies, error) {
	p := &Proxies{}
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if strings.Contains(e, "/") {
			pfx, err := netip.ParsePrefix(e)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", e, err)
			}
			p.prefixes = append(p.prefixes, pfx.Masked())
			continue
		}
		addr, err := netip.ParseAddr(e)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", e, err)
		}
		addr = addr.Unmap()
		p.prefixes = append(p.prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return p, nil
}

// Len reports how many ranges are trusted.
func (p *Proxies) Len() int {
	if p == nil {
		return 0
	}
	return len(p.prefixes)
}

// Trusted reports whether addr (an IP, with or without a port) is a
// configured proxy.
func (p *Proxies) Trusted(addr string) bool {
	if p.Len() == 0 {
		return false
	}
	ip, ok := parseIP(addr)
	if !ok {
		return false
	}
	for _, pfx := range p.prefixes {
		if pfx.Contains(ip) {
			return true
		}
	}
	return false
}

// Resolve returns the client address for r. The forwarding headers count
// only when the direct peer is trusted. X-Forwarded-For is read right to
// left and the first hop that is not itself a trusted proxy wins.
func (p *Proxies) Resolve(r *http.Request) string {
	peer := hostOnly(r.RemoteAddr)
	if !p.Trusted(peer) {
		return peer
	}

	var hops []string
	for _, v := range r.Header.Values("X-Forwarded-For") {
		for _, h := range strings.Split(v, ",") {
			hops = append(hops, strings.TrimSpace(h))
		}
	}
	if len(hops) > 0 {
		client := ""
		for i := len(hops) - 1; i >= 0; i-- {
			ip, ok := parseIP(hops[i])
			if !ok {
				break
			}
			client = ip.String()
			if !p.Trusted(client) {
				return client
			}
		}
		if client != "" {
			return client
		}
	}

	if ip, ok := parseIP(strings.TrimSpace(r.Header.Get("X-Real-IP"))); ok {
		return ip.String()
	}
	return peer
}

// Middleware rewrites r.RemoteAddr to the resolved client address so the
// request log, audit log and limiters all see the same IP. With no trusted
// proxies it is a pass-through.
func (p *Proxies) Middleware(next http.Handler) http.Handler {
	if p.Len() == 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ip := p.Resolve(r); ip != hostOnly(r.RemoteAddr) {
			r.RemoteAddr = ip
		}
		next.ServeHTTP(w, r)
	})
}

func hostOnly(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

func parseIP(s string) (netip.Addr, bool) {
	ip, err := netip.ParseAddr(hostOnly(s))
	if err != nil {
		return netip.Addr{}, false
	}
	return ip.Unmap(), true
}
