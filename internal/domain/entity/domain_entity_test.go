package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
)

func TestDomainExpiryState(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name   string
		status entity.DomainStatus
		expire time.Time
		want   string
	}{
		{"expired status wins", entity.DomainExpired, now.AddDate(1, 0, 0), "expired"},
		{"within window", entity.DomainActive, now.AddDate(0, 0, 10), "expiring_soon"},
		{"window edge", entity.DomainActive, now.AddDate(0, 0, 30), "expiring_soon"},
		{"outside window", entity.DomainActive, now.AddDate(0, 0, 31), "active"},
		{"past date keeps status", entity.DomainActive, now.AddDate(0, 0, -3), "active"},
		{"pending far out", entity.DomainPending, now.AddDate(2, 0, 0), "pending"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := entity.Domain{Status: tc.status, ExpireDate: tc.expire}
			assert.Equal(t, tc.want, d.ExpiryState(now))
		})
	}
}

func TestPrincipalPermissionsNil(t *testing.T) {
	var p *entity.Principal
	assert.False(t, p.Permissions().Dashboard)
}
