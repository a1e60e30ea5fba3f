package customer

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vincehvac/servicepro-crm/internal/domain/customer"
	xerrors "github.com/vincehvac/servicepro-crm/internal/pkg/errors"
	"github.com/vincehvac/servicepro-crm/internal/pkg/listing"
)

type fakeRepo struct {
	customers map[string]*customer.Customer
	next      int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{customers: map[string]*customer.Customer{}}
}

func (f *fakeRepo) List(_ context.Context) ([]customer.Customer, error) {
	out := []customer.Customer{}
	for _, c := range f.customers {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*customer.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return c, nil
}

func (f *fakeRepo) Create(_ context.Context, c *customer.Customer) error {
	f.next++
	c.ID = fmt.Sprintf("cust-%d", f.next)
	c.CreatedAt = time.Now()
	f.customers[c.ID] = c
	return nil
}

func (f *fakeRepo) Update(_ context.Context, id string, upd *customer.UpdateRequest) (*customer.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Phone != nil {
		c.Phone = *upd.Phone
	}
	if upd.Email != nil {
		c.Email = *upd.Email
	}
	if upd.Address != nil {
		c.Address = *upd.Address
	}
	return c, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.customers[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(f.customers, id)
	return nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, zap.NewNop()), repo
}

func seed(t *testing.T, svc *Service) {
	t.Helper()
	for _, req := range []*customer.CreateRequest{
		{Name: "Alice Smith", Phone: "555-0101", Email: "alice@x.com", Address: "2 Oak St"},
		{Name: "Jane Doe", Phone: "555-0100", Email: "jane@x.com", Address: "1 Elm St"},
		{Name: "Bob Jones", Phone: "555-0102", Email: "bob@y.com", Address: "3 Pine St"},
	} {
		_, err := svc.Create(context.Background(), req)
		require.NoError(t, err)
	}
}

func TestCreateAddsExactlyOne(t *testing.T) {
	svc, repo := newTestService()

	c, err := svc.Create(context.Background(), &customer.CreateRequest{
		Name: "Jane Doe", Phone: "555-0100", Email: "jane@x.com", Address: "1 Elm St",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.False(t, c.CreatedAt.IsZero())
	assert.Equal(t, "Jane Doe", c.Name)
	assert.Equal(t, "555-0100", c.Phone)
	assert.Equal(t, "jane@x.com", c.Email)
	assert.Equal(t, "1 Elm St", c.Address)
	assert.Len(t, repo.customers, 1)

	// The new record appears in the reloaded collection
	list, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)
}

func TestListSearchMatchesSubstring(t *testing.T) {
	svc, _ := newTestService()
	seed(t, svc)

	// Substring present in exactly one record's name
	list, err := svc.List(context.Background(), &listing.Options{Search: "jane"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Jane Doe", list[0].Name)

	// Search spans email and phone too
	list, err = svc.List(context.Background(), &listing.Options{Search: "555-0102"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Bob Jones", list[0].Name)

	// No match returns an empty collection, not an error
	list, err = svc.List(context.Background(), &listing.Options{Search: "zzz"})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListOrderedByName(t *testing.T) {
	svc, _ := newTestService()
	seed(t, svc)

	list, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Alice Smith", list[0].Name)
	assert.Equal(t, "Bob Jones", list[1].Name)
	assert.Equal(t, "Jane Doe", list[2].Name)
}

func TestDeleteRemovesRecord(t *testing.T) {
	svc, _ := newTestService()
	seed(t, svc)

	list, _ := svc.List(context.Background(), nil)
	target := list[0].ID

	require.NoError(t, svc.Delete(context.Background(), target))

	list, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	for _, c := range list {
		assert.NotEqual(t, target, c.ID)
	}

	assert.ErrorIs(t, svc.Delete(context.Background(), target), xerrors.ErrNotFound)
}

func TestUpdatePartialFields(t *testing.T) {
	svc, _ := newTestService()
	seed(t, svc)

	list, _ := svc.List(context.Background(), nil)
	id := list[0].ID

	phone := "555-9999"
	updated, err := svc.Update(context.Background(), id, &customer.UpdateRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "555-9999", updated.Phone)
	assert.Equal(t, list[0].Name, updated.Name, "untouched fields keep their value")

	_, err = svc.Update(context.Background(), "missing", &customer.UpdateRequest{Phone: &phone})
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}
