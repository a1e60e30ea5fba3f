package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vincehvac/servicepro-crm/internal/domain/auth"
	"github.com/vincehvac/servicepro-crm/internal/domain/customer"
	xerrors "github.com/vincehvac/servicepro-crm/internal/pkg/errors"
	"github.com/vincehvac/servicepro-crm/internal/pkg/jwt"
	"github.com/vincehvac/servicepro-crm/internal/pkg/session"
)

type fakeUserRepo struct {
	byEmail map[string]*auth.User
	calls   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*auth.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *auth.User) error {
	f.calls++
	u.ID = fmt.Sprintf("user-%d", len(f.byEmail)+1)
	u.CreatedAt = time.Now()
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	f.calls++
	u, ok := f.byEmail[email]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	f.calls++
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.calls++
	_, ok := f.byEmail[email]
	return ok, nil
}

type fakeCustomerCreator struct {
	created []*customer.CreateRequest
	err     error
}

func (f *fakeCustomerCreator) Create(_ context.Context, req *customer.CreateRequest) (*customer.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, req)
	return &customer.Customer{ID: "cust-1", Name: req.Name, Email: req.Email}, nil
}

func newTestService(t *testing.T, users UserRepository, customers CustomerCreator) *Service {
	t.Helper()
	tokens, err := jwt.NewManager("test-secret", time.Hour)
	require.NoError(t, err)
	sessions := session.NewManager(session.NewMemoryStore(), time.Hour)
	return NewService(users, customers, tokens, sessions, zap.NewNop())
}

func registerReq() *auth.RegisterRequest {
	return &auth.RegisterRequest{
		Name:            "John Doe",
		Email:           "john@x.com",
		Role:            "dispatcher",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}
}

func TestRegisterShortPasswordRejectedBeforeAnyRepoCall(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(t, repo, &fakeCustomerCreator{})

	req := registerReq()
	req.Password = "12345"
	req.ConfirmPassword = "12345"

	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "Password must be at least 6 characters", err.Error())
	assert.Zero(t, repo.calls, "no repository call should be made")
}

func TestRegisterMismatchedPasswordsRejectedBeforeAnyRepoCall(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(t, repo, &fakeCustomerCreator{})

	req := registerReq()
	req.ConfirmPassword = "different"

	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "Passwords do not match", err.Error())
	assert.Zero(t, repo.calls)
}

func TestRegisterDefaultRoleAndAutoLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(t, repo, &fakeCustomerCreator{})

	req := registerReq()
	req.Role = ""

	resp, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleTechnician, resp.User.Role)
	assert.NotEmpty(t, resp.Token)

	claims, err := svc.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := newTestService(t, newFakeUserRepo(), &fakeCustomerCreator{})

	req := registerReq()
	req.Role = "superuser"

	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(t, repo, &fakeCustomerCreator{})

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerReq())
	assert.ErrorIs(t, err, xerrors.ErrDuplicateEntry)
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(t, repo, &fakeCustomerCreator{})

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &auth.LoginRequest{Email: "john@x.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "john@x.com", resp.User.Email)

	_, err = svc.Login(context.Background(), &auth.LoginRequest{Email: "john@x.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, err = svc.Login(context.Background(), &auth.LoginRequest{Email: "nobody@x.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc := newTestService(t, newFakeUserRepo(), &fakeCustomerCreator{})

	resp, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), claims.ID))

	_, err = svc.ValidateToken(context.Background(), resp.Token)
	assert.Error(t, err, "revoked session must no longer validate")
}

func TestPortalRegisterCreatesCustomerRecord(t *testing.T) {
	creator := &fakeCustomerCreator{}
	svc := newTestService(t, newFakeUserRepo(), creator)

	resp, err := svc.PortalRegister(context.Background(), &auth.PortalRegisterRequest{
		Name:            "Jane Doe",
		Email:           "jane@x.com",
		Phone:           "555-0100",
		Address:         "1 Elm St",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleCustomer, resp.User.Role)

	require.Len(t, creator.created, 1)
	assert.Equal(t, "jane@x.com", creator.created[0].Email)
	assert.Equal(t, "555-0100", creator.created[0].Phone)
}

func TestPortalRegisterSurvivesCustomerRecordFailure(t *testing.T) {
	creator := &fakeCustomerCreator{err: errors.New("insert failed")}
	svc := newTestService(t, newFakeUserRepo(), creator)

	resp, err := svc.PortalRegister(context.Background(), &auth.PortalRegisterRequest{
		Name:            "Jane Doe",
		Email:           "jane@x.com",
		Phone:           "555-0100",
		Address:         "1 Elm St",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	require.NoError(t, err, "registration succeeds even when the customer record insert fails")
	assert.NotEmpty(t, resp.Token)
}
