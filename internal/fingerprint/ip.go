package fingerprint

import (
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// ipv4Pattern accepts a bare dotted-quad response and nothing else, so an
// endpoint serving an HTML error page never ends up on the panel.
var ipv4Pattern = regexp.MustCompile(`^(\d{1,3}\.){3}\d{1,3}$`)

// ipClient keeps the lookup short; public-IP discovery is cosmetic and must
// never stall fingerprinting.
var ipClient = &http.Client{Timeout: 2 * time.Second}

// lookupPublicIP tries each endpoint in order and returns the first
// response that looks like an IPv4 address. All endpoints failing is a
// distinct condition from a missing tool, hence its own sentinel.
func lookupPublicIP(endpoints []string) string {
	for _, url := range endpoints {
		resp, err := ipClient.Get(url)
		if err != nil {
			continue
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
		resp.Body.Close()
		if err != nil {
			continue
		}
		candidate := strings.TrimSpace(string(body))
		if ipv4Pattern.MatchString(candidate) {
			return candidate
		}
	}
	return BlockedOrFail
}

// localIP picks the most plausible primary IPv4 address: up, non-loopback,
// private ranges preferred over anything else.
func localIP() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return Unknown
	}

	var candidates []net.IP
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			ip := ipNet.IP.To4()
			if ip == nil || ip.IsLoopback() || ip.IsLinkLocalUnicast() {
				continue
			}
			candidates = append(candidates, ip)
		}
	}

	for _, ip := range candidates {
		if ip.IsPrivate() {
			return ip.String()
		}
	}
	if len(candidates) > 0 {
		return candidates[0].String()
	}
	return Unknown
}
