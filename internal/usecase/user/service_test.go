package user

import (
	"context"
	"testing"

	domain "userhub/backend/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memRepo struct {
	users map[string]*domain.User
}

func newMemRepo() *memRepo {
	return &memRepo{users: make(map[string]*domain.User)}
}

func (m *memRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return domain.ErrEmailExists
		}
	}
	clone := *u
	m.users[u.ID] = &clone
	return nil
}

func (m *memRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := m.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (m *memRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := m.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *u
	m.users[u.ID] = &clone
	return nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

const validPassword = "Str0ng#pass"

func TestCreate(t *testing.T) {
	svc := NewService(newMemRepo())

	created, err := svc.Create(context.Background(), CreateInput{
		Email:    "  Alex@Example.COM ",
		Name:     "Alex",
		Password: validPassword,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "alex@example.com", created.Email)
	assert.Equal(t, "Alex", created.Name)
	assert.False(t, created.CreatedAt.IsZero())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte(validPassword)))
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateInput
	}{
		{"missing email", CreateInput{Name: "A", Password: validPassword}},
		{"bad email", CreateInput{Email: "not-an-email", Name: "A", Password: validPassword}},
		{"missing name", CreateInput{Email: "a@example.com", Password: validPassword}},
		{"short password", CreateInput{Email: "a@example.com", Name: "A", Password: "Ab#1"}},
		{"no uppercase", CreateInput{Email: "a@example.com", Name: "A", Password: "weak#pass1"}},
		{"no special symbol", CreateInput{Email: "a@example.com", Name: "A", Password: "Weakpass1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.input)
			assert.Error(t, err)
		})
	}
}

func TestCreate_WeakPasswordMessage(t *testing.T) {
	svc := NewService(newMemRepo())

	_, err := svc.Create(context.Background(), CreateInput{
		Email:    "a@example.com",
		Name:     "A",
		Password: "short",
	})
	assert.ErrorIs(t, err, ErrWeakPassword)
	assert.Contains(t, err.Error(), "8 characters minimum")
}

func TestCreate_DuplicateEmail(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Email: "a@example.com", Name: "A", Password: validPassword})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInput{Email: "a@example.com", Name: "B", Password: validPassword})
	assert.ErrorIs(t, err, domain.ErrEmailExists)
}

func TestUpdate(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Email: "a@example.com", Name: "A", Password: validPassword})
	require.NoError(t, err)

	name := "Alexandra"
	email := "alexandra@example.com"
	updated, err := svc.Update(ctx, created.ID, UpdateInput{Email: &email, Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "alexandra@example.com", updated.Email)
	assert.Equal(t, "Alexandra", updated.Name)
	// Untouched fields survive a partial update.
	assert.Equal(t, created.PasswordHash, updated.PasswordHash)
}

func TestNonUUIDIDTreatedAsMissing(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	// A malformed id must never reach the store: the id column is typed
	// UUID and the driver would fail with a syntax error instead of a
	// clean not-found.
	_, err := svc.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	name := "X"
	_, err = svc.Update(ctx, "42", UpdateInput{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "drop table users"), domain.ErrNotFound)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(newMemRepo())

	name := "X"
	_, err := svc.Update(context.Background(), "missing-id", UpdateInput{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_EmailConflict(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Email: "taken@example.com", Name: "A", Password: validPassword})
	require.NoError(t, err)
	second, err := svc.Create(ctx, CreateInput{Email: "b@example.com", Name: "B", Password: validPassword})
	require.NoError(t, err)

	taken := "taken@example.com"
	_, err = svc.Update(ctx, second.ID, UpdateInput{Email: &taken})
	assert.ErrorIs(t, err, domain.ErrEmailExists)

	// Keeping your own email is not a conflict.
	own := "b@example.com"
	_, err = svc.Update(ctx, second.ID, UpdateInput{Email: &own})
	assert.NoError(t, err)
}

func TestUpdate_PasswordRehash(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Email: "a@example.com", Name: "A", Password: validPassword})
	require.NoError(t, err)

	next := "N3w#secret"
	updated, err := svc.Update(ctx, created.ID, UpdateInput{Password: &next})
	require.NoError(t, err)

	assert.NotEqual(t, created.PasswordHash, updated.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte(next)))

	weak := "weak"
	_, err = svc.Update(ctx, created.ID, UpdateInput{Password: &weak})
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestDelete(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Email: "a@example.com", Name: "A", Password: validPassword})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), domain.ErrNotFound)
}
