package service_test

import (
	"testing"

	"github.com/mdouchement/bucketlist/internal/blerror"
	"github.com/mdouchement/bucketlist/internal/server/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemCreate(t *testing.T) {
	f := setup(t)
	lena := f.user(t, "lena", false)
	george := f.user(t, "george", false)
	list := f.list(t, lena.ID, "Extreme sports")

	// The list is checked before the parameters.
	_, err := f.items.Create(lena.ID, 42, service.CreateItemParams{})
	assert.True(t, blerror.Is(err, blerror.KindNotFound))

	_, err = f.items.Create(george.ID, list.ID, service.CreateItemParams{})
	assert.True(t, blerror.Is(err, blerror.KindAuthorization))

	_, err = f.items.Create(lena.ID, list.ID, service.CreateItemParams{})
	assert.EqualError(t, err, "Bucketlist item name is required")

	for _, name := range []string{"Dive", "Paragliding in the Alps", "123456"} {
		_, err = f.items.Create(lena.ID, list.ID, service.CreateItemParams{Name: name})
		assert.True(t, blerror.Is(err, blerror.KindValidation), name)
	}

	item, err := f.items.Create(lena.ID, list.ID, service.CreateItemParams{
		Name:        "paraGliding",
		Description: "from the top of the dune",
	})
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.Equal(t, list.ID, item.ListID)
	assert.Equal(t, "paraGliding", item.Name)
	assert.Equal(t, "from the top of the dune", item.Description)
	assert.False(t, item.Completed)

	_, err = f.items.Create(lena.ID, list.ID, service.CreateItemParams{Name: "PARAGLIDING"})
	assert.True(t, blerror.Is(err, blerror.KindConflict))
	assert.EqualError(t, err, "Bucketlist item already exists")

	// Names are unique per list.
	other := f.list(t, lena.ID, "Trip to Japan")
	_, err = f.items.Create(lena.ID, other.ID, service.CreateItemParams{Name: "Paragliding"})
	assert.NoError(t, err)
}

func TestItemGet(t *testing.T) {
	f := setup(t)
	lena := f.user(t, "lena", false)
	george := f.user(t, "george", false)
	list := f.list(t, lena.ID, "Extreme sports")
	item := f.item(t, lena.ID, list.ID, "Paragliding")

	got, err := f.items.Get(lena.ID, list.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Paragliding", got.Name)

	_, err = f.items.Get(george.ID, list.ID, item.ID)
	assert.True(t, blerror.Is(err, blerror.KindAuthorization))

	_, err = f.items.Get(lena.ID, list.ID, 42)
	assert.True(t, blerror.Is(err, blerror.KindNotFound))
}

func TestItemUpdate(t *testing.T) {
	f := setup(t)
	lena := f.user(t, "lena", false)
	george := f.user(t, "george", false)
	list := f.list(t, lena.ID, "Extreme sports")
	item := f.item(t, lena.ID, list.ID, "Paragliding")
	f.item(t, lena.ID, list.ID, "Scuba diving")

	_, err := f.items.Update(george.ID, list.ID, item.ID, service.UpdateItemParams{Name: "Hijacked"})
	assert.True(t, blerror.Is(err, blerror.KindAuthorization))

	_, err = f.items.Update(lena.ID, list.ID, item.ID, service.UpdateItemParams{Name: "Dive"})
	assert.True(t, blerror.Is(err, blerror.KindValidation))

	_, err = f.items.Update(lena.ID, list.ID, item.ID, service.UpdateItemParams{Name: "SCUBA diving"})
	assert.True(t, blerror.Is(err, blerror.KindConflict))

	// Renaming an item to itself is not a duplicate.
	updated, err := f.items.Update(lena.ID, list.ID, item.ID, service.UpdateItemParams{Name: "PARAGLIDING"})
	require.NoError(t, err)
	assert.Equal(t, "PARAGLIDING", updated.Name)

	updated, err = f.items.Update(lena.ID, list.ID, item.ID, service.UpdateItemParams{
		Name:        "Skydiving",
		Description: "Tandem jump",
		Done:        service.True(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Skydiving", updated.Name)
	assert.Equal(t, "Tandem jump", updated.Description)
	assert.True(t, updated.Completed)

	updated, err = f.items.Update(lena.ID, list.ID, item.ID, service.UpdateItemParams{Done: service.False()})
	require.NoError(t, err)
	assert.False(t, updated.Completed)
	assert.Equal(t, "Skydiving", updated.Name)

	stored, err := f.db.FindItemByName(list.ID, "skydiving")
	require.NoError(t, err)
	assert.Equal(t, item.ID, stored.ID)
}

func TestItemUpdateReassign(t *testing.T) {
	f := setup(t)
	lena := f.user(t, "lena", false)
	george := f.user(t, "george", false)
	sports := f.list(t, lena.ID, "Extreme sports")
	trip := f.list(t, lena.ID, "Trip to Japan")
	item := f.item(t, lena.ID, sports.ID, "Paragliding")
	f.item(t, lena.ID, trip.ID, "Climb Mount Fuji")

	_, err := f.items.Update(lena.ID, sports.ID, item.ID, service.UpdateItemParams{ListID: 42})
	assert.True(t, blerror.Is(err, blerror.KindNotFound))
	assert.EqualError(t, err, "Destination bucketlist does not exist")

	// The name must be free in the destination list.
	_, err = f.items.Update(lena.ID, sports.ID, item.ID, service.UpdateItemParams{ListID: trip.ID, Name: "Climb MOUNT Fuji"})
	assert.True(t, blerror.Is(err, blerror.KindConflict))

	moved, err := f.items.Update(lena.ID, sports.ID, item.ID, service.UpdateItemParams{ListID: trip.ID})
	require.NoError(t, err)
	assert.Equal(t, trip.ID, moved.ListID)

	_, err = f.items.Get(lena.ID, sports.ID, item.ID)
	assert.True(t, blerror.Is(err, blerror.KindNotFound))
	_, err = f.items.Get(lena.ID, trip.ID, item.ID)
	assert.NoError(t, err)

	// The destination owner is not checked.
	reading := f.list(t, george.ID, "Reading list")
	moved, err = f.items.Update(lena.ID, trip.ID, item.ID, service.UpdateItemParams{ListID: reading.ID})
	require.NoError(t, err)
	assert.Equal(t, reading.ID, moved.ListID)
}

func TestItemIntoCompletedBucketlist(t *testing.T) {
	f := setup(t)
	lena := f.user(t, "lena", false)
	done := f.list(t, lena.ID, "Extreme sports")
	trip := f.list(t, lena.ID, "Trip to Japan")
	item := f.item(t, lena.ID, trip.ID, "Climb Mount Fuji")

	_, err := f.lists.Update(lena.ID, done.ID, service.UpdateBucketlistParams{Done: service.True()})
	require.NoError(t, err)

	// Only completing a bucketlist is guarded, not filling a completed one.
	created, err := f.items.Create(lena.ID, done.ID, service.CreateItemParams{Name: "Paragliding"})
	require.NoError(t, err)
	assert.False(t, created.Completed)

	moved, err := f.items.Update(lena.ID, trip.ID, item.ID, service.UpdateItemParams{ListID: done.ID})
	require.NoError(t, err)
	assert.Equal(t, done.ID, moved.ListID)
	assert.False(t, moved.Completed)

	list, err := f.db.FindBucketlist(done.ID)
	require.NoError(t, err)
	assert.True(t, list.Completed)
}

func TestItemDelete(t *testing.T) {
	f := setup(t)
	lena := f.user(t, "lena", false)
	george := f.user(t, "george", false)
	list := f.list(t, lena.ID, "Extreme sports")
	item := f.item(t, lena.ID, list.ID, "Paragliding")

	// Ownership is enforced on deletion too.
	_, err := f.items.Delete(george.ID, list.ID, item.ID)
	assert.True(t, blerror.Is(err, blerror.KindAuthorization))

	_, err = f.items.Delete(lena.ID, list.ID, 42)
	assert.True(t, blerror.Is(err, blerror.KindNotFound))

	deleted, err := f.items.Delete(lena.ID, list.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, deleted.ID)

	_, err = f.db.FindItem(item.ID)
	assert.True(t, f.db.IsNotFound(err))

	_, err = f.items.Delete(lena.ID, list.ID, item.ID)
	assert.True(t, blerror.Is(err, blerror.KindNotFound))
}
