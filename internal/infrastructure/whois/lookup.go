package whois

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
	"github.com/sirupsen/logrus"
	"github.com/weppos/publicsuffix-go/publicsuffix"

	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
)

var ErrNoData = errors.New("whois: no registration data")

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05 MST",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Client resolves registrar, dates and name servers of a domain.
type Client struct {
	Timeout time.Duration
	Logger  *logrus.Logger

	query    func(domain string) (string, error)
	lookupNS func(ctx context.Context, host string) ([]*net.NS, error)
}

func NewClient(timeout time.Duration, logger *logrus.Logger) *Client {
	c := &Client{Timeout: timeout, Logger: logger}
	c.query = func(domain string) (string, error) {
		wc := whois.NewClient()
		if c.Timeout > 0 {
			wc.SetTimeout(c.Timeout)
		}
		return wc.Whois(domain)
	}
	c.lookupNS = net.DefaultResolver.LookupNS
	return c
}

// RootDomain returns the registrable part of domain:
// "api.internal.example.co.uk" becomes "example.co.uk".
func RootDomain(domain string) string {
	domain = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(domain)), ".")
	if dn, err := publicsuffix.Parse(domain); err == nil && dn.SLD != "" && dn.TLD != "" {
		return dn.SLD + "." + dn.TLD
	}
	return domain
}

func (c *Client) Lookup(ctx context.Context, domain string) (*entity.DomainLookup, error) {
	root := RootDomain(domain)
	log := c.log().WithField("domain", root)

	type result struct {
		raw string
		err error
	}
	ch := make(chan result, 1)
	go func() {
		raw, err := c.query(root)
		ch <- result{raw, err}
	}()

	var raw string
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.err != nil {
			log.WithError(r.err).Warn("whois query failed")
			return nil, r.err
		}
		raw = r.raw
	}

	out, err := parse(root, raw)
	if err != nil {
		log.WithError(err).Warn("whois parse failed")
		return nil, err
	}
	if len(out.Nameservers) == 0 && c.lookupNS != nil {
		if records, err := c.lookupNS(ctx, root); err == nil {
			for _, r := range records {
				if h := cleanHost(r.Host); h != "" {
					out.Nameservers = append(out.Nameservers, h)
				}
			}
		} else {
			log.WithError(err).Debug("ns lookup failed")
		}
	}
	return out, nil
}

func parse(root, raw string) (*entity.DomainLookup, error) {
	info, err := whoisparser.Parse(raw)
	if err != nil {
		return nil, err
	}
	if info.Domain == nil {
		return nil, ErrNoData
	}
	out := &entity.DomainLookup{DomainName: root, Nameservers: []string{}}
	if info.Registrar != nil {
		out.Registrar = info.Registrar.Name
	}
	out.RegisterDate = parseDate(info.Domain.CreatedDate)
	out.ExpireDate = parseDate(info.Domain.ExpirationDate)
	for _, ns := range info.Domain.NameServers {
		if h := cleanHost(ns); h != "" {
			out.Nameservers = append(out.Nameservers, h)
		}
	}
	return out, nil
}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func cleanHost(h string) string {
	return strings.ToLower(strings.TrimSuffix(strings.TrimSpace(h), "."))
}

func (c *Client) log() logrus.FieldLogger {
	if c.Logger == nil {
		return logrus.StandardLogger()
	}
	return c.Logger
}
