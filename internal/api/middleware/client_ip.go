package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ClientIPResolver определяет IP клиента. Заголовки X-Forwarded-For и X-Real-IP
// учитываются только для запросов, пришедших с адреса доверенного прокси.
type ClientIPResolver struct {
	trusted []*net.IPNet
}

// NewClientIPResolver принимает адреса и подсети прокси: "10.0.0.1", "172.16.0.0/12".
// Пустой список значит, что заголовкам не доверяем.
func NewClientIPResolver(trustedProxies []string) (*ClientIPResolver, error) {
	nets := make([]*net.IPNet, 0, len(trustedProxies))
	for _, raw := range trustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		if !strings.Contains(raw, "/") {
			ip := net.ParseIP(raw)
			if ip == nil {
				return nil, fmt.Errorf("invalid trusted proxy %q", raw)
			}
			bits := 128
			if ip.To4() != nil {
				ip = ip.To4()
				bits = 32
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}

		_, ipNet, err := net.ParseCIDR(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", raw, err)
		}
		nets = append(nets, ipNet)
	}
	return &ClientIPResolver{trusted: nets}, nil
}

// Resolve IP клиента для запроса.
// X-Forwarded-For читается справа налево, доверенные прокси пропускаются.
func (c *ClientIPResolver) Resolve(r *http.Request) string {
	remote := remoteHost(r)
	if !c.isTrusted(remote) {
		return remote
	}

	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		hops := strings.Split(fwd, ",")
		client := remote
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if net.ParseIP(hop) == nil {
				break
			}
			client = hop
			if !c.isTrusted(hop) {
				break
			}
		}
		return client
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(realIP) != nil {
		return realIP
	}

	return remote
}

// Middleware кладет IP клиента в контекст запроса, дальше его читает ClientIP
func (c *ClientIPResolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ctxKeyClientIP, c.Resolve(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (c *ClientIPResolver) isTrusted(addr string) bool {
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	for _, n := range c.trusted {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// ClientIP IP клиента, определенный ClientIPResolver.
// Без резолвера в цепочке используется адрес соединения.
func ClientIP(r *http.Request) string {
	if ip, ok := r.Context().Value(ctxKeyClientIP).(string); ok && ip != "" {
		return ip
	}
	return remoteHost(r)
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
