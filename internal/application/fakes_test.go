package application_test

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	repo "github.com/AcasisDev/siteguard-hub/internal/domain/repository"
)

type fakeRoles struct {
	mu    sync.Mutex
	roles map[string]access.BackendRole
	err   error
	delay time.Duration
	calls int
	// assignErr fails every Assign call.
	assignErr error
}

func (f *fakeRoles) GetByUserID(ctx context.Context, userID string) (*entity.RoleAssignment, error) {
	f.mu.Lock()
	f.calls++
	delay, err := f.delay, f.err
	role, ok := f.roles[userID]
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &entity.RoleAssignment{UserID: userID, Role: role}, nil
}

func (f *fakeRoles) Assign(ctx context.Context, userID string, role access.BackendRole) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.assignErr != nil {
		return f.assignErr
	}
	if f.roles == nil {
		f.roles = map[string]access.BackendRole{}
	}
	f.roles[userID] = role
	return nil
}

type fakeProfiles struct {
	mu       sync.Mutex
	profiles map[string]*entity.Profile
	err      error
}

func (f *fakeProfiles) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) Upsert(ctx context.Context, p *entity.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.profiles == nil {
		f.profiles = map[string]*entity.Profile{}
	}
	cp := *p
	cp.UpdatedAt = time.Now()
	f.profiles[p.UserID] = &cp
	p.UpdatedAt = cp.UpdatedAt
	return nil
}

type fakeUsers struct {
	mu     sync.Mutex
	byID   map[string]*entity.User
	nextID int
}

func (f *fakeUsers) Create(ctx context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.byID == nil {
		f.byID = map[string]*entity.User{}
	}
	for _, x := range f.byID {
		if strings.EqualFold(x.Email, u.Email) {
			return repo.ErrConflict
		}
	}
	f.nextID++
	u.ID = "user-" + strconv.Itoa(f.nextID)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUsers) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeUsers) List(ctx context.Context, lf repo.ListFilter) ([]entity.UserSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.UserSummary, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, entity.UserSummary{ID: u.ID, Email: u.Email})
	}
	return out, nil
}

type fakeActivity struct {
	mu      sync.Mutex
	entries []entity.Activity
}

func (f *fakeActivity) Record(ctx context.Context, a *entity.Activity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = "act"
	a.CreatedAt = time.Now()
	f.entries = append(f.entries, *a)
	return nil
}

func (f *fakeActivity) Recent(ctx context.Context, limit int) ([]entity.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Activity(nil), f.entries...), nil
}
