package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmart/grocery-api/internal/core/domain"
)

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[int64]*domain.Customer
	nextID    int64
}

func newFakeCustomerRepo(customers ...domain.Customer) *fakeCustomerRepo {
	repo := &fakeCustomerRepo{
		customers: make(map[int64]*domain.Customer),
		nextID:    1,
	}
	for i := range customers {
		c := customers[i]
		repo.customers[c.ID] = &c
		if c.ID >= repo.nextID {
			repo.nextID = c.ID + 1
		}
	}
	return repo
}

func (f *fakeCustomerRepo) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Customer, 0, len(f.customers))
	for _, c := range f.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCustomerRepo) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.customers[id]; ok {
		cc := *c
		return &cc, nil
	}
	return nil, nil
}

func (f *fakeCustomerRepo) GetCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.customers {
		if c.Email == email {
			cc := *c
			return &cc, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.customers {
		if existing.Email == c.Email {
			return fmt.Errorf("%s: %w", c.Email, domain.ErrEmailTaken)
		}
	}
	c.ID = f.nextID
	f.nextID++
	stored := *c
	f.customers[c.ID] = &stored
	return nil
}

func (f *fakeCustomerRepo) UpdateCustomer(ctx context.Context, id int64, patch domain.CustomerPatch) (*domain.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.customers[id]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	cc := *c
	return &cc, nil
}

func (f *fakeCustomerRepo) DeleteCustomer(ctx context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.customers[id]; !ok {
		return false, nil
	}
	delete(f.customers, id)
	return true, nil
}

// fakeTokenMaker encodes the customer id as the token itself.
type fakeTokenMaker struct {
	issued int
}

func (f *fakeTokenMaker) CreateToken(customerID int64) (string, error) {
	f.issued++
	return fmt.Sprintf("token-%d", customerID), nil
}

func (f *fakeTokenMaker) VerifyToken(token string) (int64, error) {
	var id int64
	if _, err := fmt.Sscanf(token, "token-%d", &id); err != nil {
		return 0, fmt.Errorf("bad token")
	}
	return id, nil
}

func TestRegister_HashesPassword(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewAuthService(repo, &fakeTokenMaker{}, zerolog.Nop())

	customer, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, customer.PasswordHash)
	assert.NotContains(t, customer.PasswordHash, "s3cret")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewAuthService(repo, &fakeTokenMaker{}, zerolog.Nop())

	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Other Alice", "alice@example.com", "different")
	require.ErrorIs(t, err, domain.ErrEmailTaken)

	customers, err := repo.ListCustomers(context.Background())
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}

func TestRegister_Validation(t *testing.T) {
	svc := NewAuthService(newFakeCustomerRepo(), &fakeTokenMaker{}, zerolog.Nop())

	_, err := svc.Register(context.Background(), "", "a@b.com", "pw")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Register(context.Background(), "Alice", "not-an-email", "pw")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Register(context.Background(), "Alice", "a@b.com", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_RoundTrip(t *testing.T) {
	repo := newFakeCustomerRepo()
	maker := &fakeTokenMaker{}
	svc := NewAuthService(repo, maker, zerolog.Nop())

	registered, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	token, customer, err := svc.Login(context.Background(), "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, registered.ID, customer.ID)

	actor, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, actor.ID)
}

func TestLogin_WrongPasswordIssuesNoToken(t *testing.T) {
	repo := newFakeCustomerRepo()
	maker := &fakeTokenMaker{}
	svc := NewAuthService(repo, maker, zerolog.Nop())

	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	maker.issued = 0

	token, _, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Empty(t, token)
	assert.Zero(t, maker.issued)
}

func TestLogin_SeededCustomerWithoutCredentials(t *testing.T) {
	repo := newFakeCustomerRepo(domain.Customer{ID: 1, Name: "John Doe", Email: "john@example.com"})
	svc := NewAuthService(repo, &fakeTokenMaker{}, zerolog.Nop())

	_, _, err := svc.Login(context.Background(), "john@example.com", "anything")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticate_UnknownSubject(t *testing.T) {
	svc := NewAuthService(newFakeCustomerRepo(), &fakeTokenMaker{}, zerolog.Nop())

	_, err := svc.Authenticate(context.Background(), "token-99")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "garbage")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
