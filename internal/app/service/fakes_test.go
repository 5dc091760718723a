package service

import (
	"context"
	"time"

	"driveloop_admin/internal/common"
	"driveloop_admin/internal/domain/model"
)

// Hand-written fakes standing in for the external store and identity
// provider. Failure fields simulate remote errors.

type fakeIdentityProvider struct {
	identities map[string]*model.Identity // by id
	passwords  map[string]string          // email -> plaintext (fakes skip hashing)
	signOutErr error
	findErr    error
	signOuts   int
}

func newFakeIdentityProvider() *fakeIdentityProvider {
	return &fakeIdentityProvider{
		identities: map[string]*model.Identity{},
		passwords:  map[string]string{},
	}
}

func (p *fakeIdentityProvider) add(id, email, password string) {
	p.identities[id] = &model.Identity{ID: id, Email: email, CreatedAt: time.Now()}
	p.passwords[email] = password
}

func (p *fakeIdentityProvider) Authenticate(ctx context.Context, email, password string) (*model.Identity, error) {
	stored, ok := p.passwords[email]
	if !ok || stored != password {
		return nil, common.ErrUnauthorized
	}
	for _, identity := range p.identities {
		if identity.Email == email {
			copied := *identity
			return &copied, nil
		}
	}
	return nil, common.ErrUnauthorized
}

func (p *fakeIdentityProvider) FindIdentity(ctx context.Context, id string) (*model.Identity, error) {
	if p.findErr != nil {
		return nil, p.findErr
	}
	identity, ok := p.identities[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *identity
	return &copied, nil
}

func (p *fakeIdentityProvider) CreateIdentity(ctx context.Context, identity *model.Identity, password string) error {
	for _, existing := range p.identities {
		if existing.Email == identity.Email {
			return common.ErrConflict
		}
	}
	p.add(identity.ID, identity.Email, password)
	return nil
}

func (p *fakeIdentityProvider) SignOut(ctx context.Context) error {
	p.signOuts++
	return p.signOutErr
}

type fakeAdminRepo struct {
	records   map[string]*model.Operator
	createErr error
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{records: map[string]*model.Operator{}}
}

func (r *fakeAdminRepo) FindByID(ctx context.Context, id string) (*model.Operator, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *record
	return &copied, nil
}

func (r *fakeAdminRepo) Create(ctx context.Context, operator *model.Operator) error {
	if r.createErr != nil {
		return r.createErr
	}
	copied := *operator
	r.records[operator.ID] = &copied
	return nil
}

func (r *fakeAdminRepo) Count(ctx context.Context) (int, error) {
	return len(r.records), nil
}

type fakeOperatorCache struct {
	operator *model.Operator
	getErr   error
	clearErr error
	puts     int
	clears   int
}

func (c *fakeOperatorCache) Get(ctx context.Context) (*model.Operator, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	if c.operator == nil {
		return nil, common.ErrNotFound
	}
	copied := *c.operator
	return &copied, nil
}

func (c *fakeOperatorCache) Put(ctx context.Context, operator *model.Operator) error {
	copied := *operator
	c.operator = &copied
	c.puts++
	return nil
}

func (c *fakeOperatorCache) Clear(ctx context.Context) error {
	if c.clearErr != nil {
		return c.clearErr
	}
	c.operator = nil
	c.clears++
	return nil
}

type fakeListingRepo struct {
	listings  []model.CarListing
	listErr   error
	updateErr error
	updates   int
}

func (r *fakeListingRepo) ListAll(ctx context.Context) ([]model.CarListing, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]model.CarListing, len(r.listings))
	copy(out, r.listings)
	return out, nil
}

func (r *fakeListingRepo) UpdateStatus(ctx context.Context, id string, status model.ListingStatus, revision int64) (int64, time.Time, error) {
	if r.updateErr != nil {
		return 0, time.Time{}, r.updateErr
	}
	for i := range r.listings {
		if r.listings[i].ID != id {
			continue
		}
		if r.listings[i].Revision != revision {
			return 0, time.Time{}, common.ErrConflict
		}
		r.listings[i].Status = status
		r.listings[i].Revision++
		r.listings[i].UpdatedAt = time.Now()
		r.updates++
		return r.listings[i].Revision, r.listings[i].UpdatedAt, nil
	}
	return 0, time.Time{}, common.ErrNotFound
}

type fakeUserRepo struct {
	users     []model.User
	listErr   error
	updateErr error
	updates   int
}

func (r *fakeUserRepo) ListAll(ctx context.Context) ([]model.User, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]model.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *fakeUserRepo) UpdateStatus(ctx context.Context, id string, status model.UserStatus) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i].Status = status
			r.updates++
			return nil
		}
	}
	return common.ErrNotFound
}

type fakeTripRepo struct {
	trips   []model.Trip
	listErr error
}

func (r *fakeTripRepo) ListAll(ctx context.Context) ([]model.Trip, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]model.Trip, len(r.trips))
	copy(out, r.trips)
	return out, nil
}
