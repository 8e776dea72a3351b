package service

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/foodventory/internal/db"
	"github.com/vbonduro/foodventory/internal/domain"
	"github.com/vbonduro/foodventory/internal/form"
	"github.com/vbonduro/foodventory/internal/store"
)

type itemFixture struct {
	svc   *ItemService
	items *store.ItemStore
	users *store.UserStore
	d     *sql.DB
}

func newItemFixture(t *testing.T) *itemFixture {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	items := store.NewItemStore(d)
	users := store.NewUserStore(d)
	return &itemFixture{
		svc:   NewItemService(items, users, slog.Default()),
		items: items,
		users: users,
		d:     d,
	}
}

func (f *itemFixture) createUser(t *testing.T, username string) *domain.User {
	t.Helper()
	user, err := f.users.Create(context.Background(), username, "", "x")
	require.NoError(t, err)
	return user
}

func (f *itemFixture) itemCount(t *testing.T, ownerID string) int {
	t.Helper()
	items, err := f.items.ListByOwnerID(context.Background(), ownerID)
	require.NoError(t, err)
	return len(items)
}

func TestSubmitItemCreate(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")

	redirect, err := f.svc.SubmitItem(ctx, alice.ID, form.ItemEditor{
		Title:        "Flour",
		Quantity:     "2",
		QuantityUnit: "lbs",
	})
	require.NoError(t, err)

	items, err := f.items.ListByOwnerID(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, alice.ID, items[0].OwnerID)
	assert.Equal(t, "Flour", items[0].Title)
	assert.Equal(t, "/users/alice/items/"+items[0].ID, redirect)
}

func TestSubmitItemCreatePinsQuantityDefaults(t *testing.T) {
	// The submitted quantity fields validate but do not persist; creation
	// stores the fixed defaults. Pinned so a future change is deliberate.
	f := newItemFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")

	_, err := f.svc.SubmitItem(ctx, alice.ID, form.ItemEditor{
		Title:        "Flour",
		Quantity:     "2",
		QuantityUnit: "lbs",
	})
	require.NoError(t, err)

	items, err := f.items.ListByOwnerID(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, float64(domain.DefaultQuantity), items[0].Quantity)
	assert.Equal(t, domain.DefaultQuantityUnit, items[0].QuantityUnit)
}

func TestSubmitItemUpdate(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")

	existing, err := f.items.Create(ctx, alice.ID, nil, "Flour", "plain", 1, "count")
	require.NoError(t, err)

	redirect, err := f.svc.SubmitItem(ctx, alice.ID, form.ItemEditor{
		ID:           existing.ID,
		Title:        "Bread Flour",
		Content:      "strong white",
		Quantity:     "3",
		QuantityUnit: "kg",
	})
	require.NoError(t, err)
	assert.Equal(t, "/users/alice/items/"+existing.ID, redirect)

	// Same record mutated, no new record created.
	assert.Equal(t, 1, f.itemCount(t, alice.ID))

	got, err := f.items.GetByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bread Flour", got.Title)
	assert.Equal(t, "strong white", got.Content)
}

func TestSubmitItemUpdateResetsQuantity(t *testing.T) {
	// Update writes the same pinned defaults as create, clobbering whatever
	// the record held. Pinned so a future change is deliberate.
	f := newItemFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")

	existing, err := f.items.Create(ctx, alice.ID, nil, "Flour", "", 5, "kg")
	require.NoError(t, err)

	_, err = f.svc.SubmitItem(ctx, alice.ID, form.ItemEditor{
		ID:           existing.ID,
		Title:        "Flour",
		Quantity:     "5",
		QuantityUnit: "kg",
	})
	require.NoError(t, err)

	got, err := f.items.GetByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(domain.DefaultQuantity), got.Quantity)
	assert.Equal(t, domain.DefaultQuantityUnit, got.QuantityUnit)
}

func TestSubmitItemUpdateForeignItem(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	theirs, err := f.items.Create(ctx, bob.ID, nil, "Milk", "", 1, "count")
	require.NoError(t, err)

	_, err = f.svc.SubmitItem(ctx, alice.ID, form.ItemEditor{
		ID:           theirs.ID,
		Title:        "Hijacked",
		Quantity:     "1",
		QuantityUnit: "count",
	})
	assert.ErrorIs(t, err, ErrNotFound)

	// No mutation on either side.
	got, err := f.items.GetByID(ctx, theirs.ID)
	require.NoError(t, err)
	assert.Equal(t, "Milk", got.Title)
	assert.Equal(t, 0, f.itemCount(t, alice.ID))
}

func TestSubmitItemUpdateMissingItem(t *testing.T) {
	f := newItemFixture(t)
	alice := f.createUser(t, "alice")

	_, err := f.svc.SubmitItem(context.Background(), alice.ID, form.ItemEditor{
		ID:           "no-such-item",
		Title:        "Ghost",
		Quantity:     "1",
		QuantityUnit: "count",
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, f.itemCount(t, alice.ID))
}

func TestSubmitItemUpdateIdempotent(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")

	existing, err := f.items.Create(ctx, alice.ID, nil, "Flour", "", 1, "count")
	require.NoError(t, err)

	payload := form.ItemEditor{
		ID:           existing.ID,
		Title:        "Bread Flour",
		Content:      "strong white",
		Quantity:     "3",
		QuantityUnit: "kg",
	}

	first, err := f.svc.SubmitItem(ctx, alice.ID, payload)
	require.NoError(t, err)
	firstState, err := f.items.GetByID(ctx, existing.ID)
	require.NoError(t, err)

	second, err := f.svc.SubmitItem(ctx, alice.ID, payload)
	require.NoError(t, err)
	secondState, err := f.items.GetByID(ctx, existing.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstState.Title, secondState.Title)
	assert.Equal(t, firstState.Content, secondState.Content)
	assert.Equal(t, firstState.Quantity, secondState.Quantity)
	assert.Equal(t, firstState.QuantityUnit, secondState.QuantityUnit)
	assert.Equal(t, 1, f.itemCount(t, alice.ID))
}

func TestDeleteItem(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")

	item, err := f.items.Create(ctx, alice.ID, nil, "Eggs", "", 1, "count")
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteItem(ctx, alice.ID, item.ID))
	assert.Equal(t, 0, f.itemCount(t, alice.ID))
}

func TestDeleteItemForeignItem(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	theirs, err := f.items.Create(ctx, bob.ID, nil, "Milk", "", 1, "count")
	require.NoError(t, err)

	err = f.svc.DeleteItem(ctx, alice.ID, theirs.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, f.itemCount(t, bob.ID))
}

func TestOwnerItems(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")

	_, err := f.items.Create(ctx, alice.ID, nil, "Rice", "", 1, "count")
	require.NoError(t, err)

	owner, items, err := f.svc.OwnerItems(ctx, "alice", "")
	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.Equal(t, alice.ID, owner.ID)
	assert.Len(t, items, 1)
}

func TestOwnerItemsSearch(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	_, err := f.items.Create(ctx, alice.ID, nil, "Whole Milk", "", 1, "count")
	require.NoError(t, err)
	_, err = f.items.Create(ctx, alice.ID, nil, "Oat Milk", "", 1, "count")
	require.NoError(t, err)
	_, err = f.items.Create(ctx, alice.ID, nil, "Butter", "", 1, "count")
	require.NoError(t, err)
	// Another owner's match must stay out of the results.
	_, err = f.items.Create(ctx, bob.ID, nil, "Goat Milk", "", 1, "count")
	require.NoError(t, err)

	_, results, err := f.svc.OwnerItems(ctx, "alice", "milk")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	_, all, err := f.svc.OwnerItems(ctx, "alice", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestOwnerItemsUnknownUser(t *testing.T) {
	f := newItemFixture(t)

	owner, items, err := f.svc.OwnerItems(context.Background(), "nobody", "")
	require.NoError(t, err)
	assert.Nil(t, owner)
	assert.Nil(t, items)
}
