package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/foodventory/internal/db"
	"github.com/vbonduro/foodventory/internal/domain"
	"github.com/vbonduro/foodventory/internal/form"
	"github.com/vbonduro/foodventory/internal/store"
	"github.com/vbonduro/foodventory/internal/vision"
)

// stubAnalyzer is a minimal vision.Analyzer for tests.
type stubAnalyzer struct {
	result *vision.Result
	err    error
}

func (s *stubAnalyzer) Analyze(_ context.Context, _ io.Reader, _ string) (*vision.Result, error) {
	return s.result, s.err
}

// stubPhotoStore is a minimal in-memory photostore.PhotoStore for tests.
type stubPhotoStore struct {
	saved   map[string][]byte
	saveErr error
	counter int
}

func newStubPhotoStore() *stubPhotoStore {
	return &stubPhotoStore{saved: make(map[string][]byte)}
}

func (s *stubPhotoStore) Save(_ context.Context, prefix, _ string, r io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	data, _ := io.ReadAll(r)
	s.counter++
	key := prefix + "/photo"
	s.saved[key] = data
	return key, nil
}

func (s *stubPhotoStore) Get(_ context.Context, key string) (io.ReadCloser, string, error) {
	data, ok := s.saved[key]
	if !ok {
		return nil, "", errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), "image/jpeg", nil
}

func (s *stubPhotoStore) Delete(_ context.Context, key string) error {
	delete(s.saved, key)
	return nil
}

type pantryFixture struct {
	svc      *PantryService
	pantries *store.PantryStore
	items    *store.ItemStore
	users    *store.UserStore
	analyzer *stubAnalyzer
	photos   *stubPhotoStore
	d        *sql.DB
}

func newPantryFixture(t *testing.T) *pantryFixture {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	pantries := store.NewPantryStore(d)
	items := store.NewItemStore(d)
	users := store.NewUserStore(d)
	analyzer := &stubAnalyzer{result: &vision.Result{}}
	photos := newStubPhotoStore()

	svc := NewPantryService(pantries, items, users, store.NewImageStore(d), analyzer, photos, slog.Default())
	return &pantryFixture{
		svc:      svc,
		pantries: pantries,
		items:    items,
		users:    users,
		analyzer: analyzer,
		photos:   photos,
		d:        d,
	}
}

func (f *pantryFixture) createUser(t *testing.T, username string) *domain.User {
	t.Helper()
	user, err := f.users.Create(context.Background(), username, "", "x")
	require.NoError(t, err)
	return user
}

func TestSubmitPantryCreate(t *testing.T) {
	f := newPantryFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")

	redirect, err := f.svc.SubmitPantry(ctx, alice.ID, form.PantryEditor{Title: "Baking shelf"})
	require.NoError(t, err)

	pantries, err := f.pantries.ListByOwnerID(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, pantries, 1)
	assert.Equal(t, "Baking shelf", pantries[0].Title)
	assert.Equal(t, "/users/alice/pantries/"+pantries[0].ID, redirect)
}

func TestSubmitPantryUpdate(t *testing.T) {
	f := newPantryFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")

	pantry, err := f.pantries.Create(ctx, alice.ID, "Fridge")
	require.NoError(t, err)

	redirect, err := f.svc.SubmitPantry(ctx, alice.ID, form.PantryEditor{ID: pantry.ID, Title: "Garage Fridge"})
	require.NoError(t, err)
	assert.Equal(t, "/users/alice/pantries/"+pantry.ID, redirect)

	got, err := f.pantries.GetByID(ctx, pantry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Garage Fridge", got.Title)
}

func TestSubmitPantryUpdateForeignPantry(t *testing.T) {
	f := newPantryFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	theirs, err := f.pantries.Create(ctx, bob.ID, "Cellar")
	require.NoError(t, err)

	_, err = f.svc.SubmitPantry(ctx, alice.ID, form.PantryEditor{ID: theirs.ID, Title: "Hijacked"})
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := f.pantries.GetByID(ctx, theirs.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cellar", got.Title)
}

func TestGetPantryWithItems(t *testing.T) {
	f := newPantryFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")

	pantry, err := f.pantries.Create(ctx, alice.ID, "Fridge")
	require.NoError(t, err)
	_, err = f.items.Create(ctx, alice.ID, &pantry.ID, "Butter", "", 1, "count")
	require.NoError(t, err)

	got, items, err := f.svc.GetPantry(ctx, pantry.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, items, 1)
}

func TestGetPantryMissing(t *testing.T) {
	f := newPantryFixture(t)

	pantry, items, err := f.svc.GetPantry(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, pantry)
	assert.Nil(t, items)
}

func TestOwnerPantries(t *testing.T) {
	f := newPantryFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")

	pantry, err := f.pantries.Create(ctx, alice.ID, "Fridge")
	require.NoError(t, err)
	_, err = f.items.Create(ctx, alice.ID, &pantry.ID, "Butter", "", 1, "count")
	require.NoError(t, err)

	owner, summaries, err := f.svc.OwnerPantries(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, owner)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Fridge", summaries[0].Title)
	assert.Len(t, summaries[0].Items, 1)
}

func TestScanPhoto(t *testing.T) {
	f := newPantryFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")

	pantry, err := f.pantries.Create(ctx, alice.ID, "Fridge")
	require.NoError(t, err)

	f.analyzer.result = &vision.Result{Suggestions: []vision.Suggestion{
		{Title: "Flour", Quantity: "2", QuantityUnit: "lbs"},
	}}

	suggestions, err := f.svc.ScanPhoto(ctx, alice.ID, pantry.ID, []byte("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Flour", suggestions[0].Title)
	assert.Len(t, f.photos.saved, 1)
}

func TestScanPhotoForeignPantry(t *testing.T) {
	f := newPantryFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	theirs, err := f.pantries.Create(ctx, bob.ID, "Cellar")
	require.NoError(t, err)

	_, err = f.svc.ScanPhoto(ctx, alice.ID, theirs.ID, []byte("jpeg-bytes"), "image/jpeg")
	assert.ErrorIs(t, err, ErrNotFound)
	// Nothing stored for a rejected scan.
	assert.Empty(t, f.photos.saved)
}

func TestScanPhotoNoAnalyzer(t *testing.T) {
	f := newPantryFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")

	pantry, err := f.pantries.Create(ctx, alice.ID, "Fridge")
	require.NoError(t, err)

	svc := NewPantryService(f.pantries, f.items, f.users, store.NewImageStore(f.d), nil, f.photos, slog.Default())
	_, err = svc.ScanPhoto(ctx, alice.ID, pantry.ID, []byte("x"), "image/jpeg")
	assert.ErrorIs(t, err, ErrScanUnavailable)
}
