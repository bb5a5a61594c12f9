package application

import (
	"context"
	"strings"
	"time"

	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	repo "github.com/AcasisDev/siteguard-hub/internal/domain/repository"
)

// WhoisLookup fetches registration data for a domain name.
type WhoisLookup interface {
	Lookup(ctx context.Context, domain string) (*entity.DomainLookup, error)
}

type DomainInput struct {
	WebsiteID    string              `json:"website_id" binding:"required,uuid"`
	DomainName   string              `json:"domain_name" binding:"required,fqdn"`
	Registrar    string              `json:"registrar" binding:"required,max=200"`
	RegisterDate Date                `json:"register_date"`
	ExpireDate   Date                `json:"expire_date"`
	Nameservers  []string            `json:"nameservers" binding:"omitempty,dive,fqdn"`
	Status       entity.DomainStatus `json:"status" binding:"omitempty,domain_status"`
}

// Date accepts a calendar date ("2006-01-02") or an RFC 3339 timestamp.
type Date struct{ time.Time }

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (in DomainInput) validate() error {
	if in.RegisterDate.IsZero() || in.ExpireDate.IsZero() {
		return ErrInvalidDates
	}
	if !in.ExpireDate.After(in.RegisterDate.Time) {
		return ErrInvalidDates
	}
	return nil
}

func (in DomainInput) apply(d *entity.Domain) {
	d.WebsiteID = in.WebsiteID
	d.DomainName = strings.ToLower(strings.TrimSpace(in.DomainName))
	d.Registrar = strings.TrimSpace(in.Registrar)
	d.RegisterDate = in.RegisterDate.Time
	d.ExpireDate = in.ExpireDate.Time
	d.Nameservers = in.Nameservers
	if d.Nameservers == nil {
		d.Nameservers = []string{}
	}
	d.Status = in.Status
	if d.Status == "" {
		d.Status = entity.DomainActive
	}
}

// DomainView is a domain with its expiry badge.
type DomainView struct {
	entity.Domain
	ExpiryState     string `json:"expiry_state"`
	DaysUntilExpiry int    `json:"days_until_expiry"`
}

func NewDomainView(d entity.Domain, now time.Time) DomainView {
	return DomainView{Domain: d, ExpiryState: d.ExpiryState(now), DaysUntilExpiry: d.DaysUntilExpiry(now)}
}

type DomainService struct {
	Repo     repo.DomainRepository
	Websites repo.WebsiteRepository
	Whois    WhoisLookup
	Activity *ActivityRecorder
	Now      func() time.Time
}

func NewDomainService(r repo.DomainRepository, websites repo.WebsiteRepository, whois WhoisLookup, activity *ActivityRecorder) *DomainService {
	return &DomainService{Repo: r, Websites: websites, Whois: whois, Activity: activity, Now: time.Now}
}

func (s *DomainService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *DomainService) views(list []entity.Domain) []DomainView {
	now := s.now()
	out := make([]DomainView, 0, len(list))
	for _, d := range list {
		out = append(out, NewDomainView(d, now))
	}
	return out
}

func (s *DomainService) List(ctx context.Context, f repo.ListFilter) ([]DomainView, error) {
	list, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.views(list), nil
}

// Expiring lists active domains that expire within the badge window,
// soonest first.
func (s *DomainService) Expiring(ctx context.Context, limit int) ([]DomainView, error) {
	list, err := s.Repo.ExpiringBefore(ctx, s.now().Add(entity.ExpiringSoonWindow), limit)
	if err != nil {
		return nil, err
	}
	return s.views(list), nil
}

func (s *DomainService) Get(ctx context.Context, id string) (*DomainView, error) {
	d, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := NewDomainView(*d, s.now())
	return &v, nil
}

func (s *DomainService) Create(ctx context.Context, actor *entity.Principal, in DomainInput) (*DomainView, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := requireWebsite(ctx, s.Websites, in.WebsiteID); err != nil {
		return nil, err
	}
	d := &entity.Domain{UserID: actor.ID}
	in.apply(d)
	if err := s.Repo.Create(ctx, d); err != nil {
		return nil, err
	}
	s.Activity.Record(ctx, actor, access.ActionCreate, access.ResourceDomains, d.ID, d.DomainName)
	v := NewDomainView(*d, s.now())
	return &v, nil
}

func (s *DomainService) Update(ctx context.Context, actor *entity.Principal, id string, in DomainInput) (*DomainView, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	d, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireWebsite(ctx, s.Websites, in.WebsiteID); err != nil {
		return nil, err
	}
	in.apply(d)
	if err := s.Repo.Update(ctx, d); err != nil {
		return nil, err
	}
	s.Activity.Record(ctx, actor, access.ActionUpdate, access.ResourceDomains, d.ID, d.DomainName)
	v := NewDomainView(*d, s.now())
	return &v, nil
}

func (s *DomainService) Delete(ctx context.Context, actor *entity.Principal, id string) error {
	d, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Activity.Record(ctx, actor, access.ActionDelete, access.ResourceDomains, d.ID, d.DomainName)
	return nil
}

// Lookup returns WHOIS data used to prefill the domain form.
func (s *DomainService) Lookup(ctx context.Context, domain string) (*entity.DomainLookup, error) {
	if s.Whois == nil {
		return nil, ErrNotConfigured
	}
	return s.Whois.Lookup(ctx, strings.ToLower(strings.TrimSpace(domain)))
}
