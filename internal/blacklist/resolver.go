package blacklist

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"

	"github.com/tinytelemetry/webstat/internal/model"
)

// Resolver answers reverse-DNS queries: given an IP, return zero or more
// domain names. Implementations must honor ctx for cancellation; latency
// and failure are expected and handled fail-open by the Filter.
type Resolver interface {
	LookupAddr(ctx context.Context, ip string) ([]string, error)
}

// SystemResolver performs reverse lookups through the OS resolver with a
// bounded per-lookup timeout.
type SystemResolver struct {
	Timeout time.Duration
}

func (r SystemResolver) LookupAddr(ctx context.Context, ip string) ([]string, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = model.DefaultDNSTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	names, err := net.DefaultResolver.LookupAddr(ctx, ip)
	if err != nil {
		return nil, err
	}
	return names, nil
}

// DirectResolver sends PTR queries straight to a configured DNS server,
// bypassing the OS resolver. Useful when the host resolver is slow or the
// operator wants lookups pinned to a specific server.
type DirectResolver struct {
	server string
	client *dns.Client
}

// NewDirectResolver creates a resolver querying server (host or host:port;
// port 53 is assumed when missing).
func NewDirectResolver(server string, timeout time.Duration) *DirectResolver {
	if !strings.Contains(server, ":") {
		server = net.JoinHostPort(server, "53")
	}
	if timeout <= 0 {
		timeout = model.DefaultDNSTimeout
	}
	return &DirectResolver{
		server: server,
		client: &dns.Client{Timeout: timeout},
	}
}

func (r *DirectResolver) LookupAddr(ctx context.Context, ip string) ([]string, error) {
	arpa, err := dns.ReverseAddr(ip)
	if err != nil {
		return nil, err
	}

	msg := new(dns.Msg)
	msg.SetQuestion(arpa, dns.TypePTR)
	msg.RecursionDesired = true

	resp, _, err := r.client.ExchangeContext(ctx, msg, r.server)
	if err != nil {
		return nil, err
	}
	if resp.Rcode != dns.RcodeSuccess {
		return nil, nil
	}

	var names []string
	for _, rr := range resp.Answer {
		if ptr, ok := rr.(*dns.PTR); ok {
			names = append(names, ptr.Ptr)
		}
	}
	return names, nil
}
