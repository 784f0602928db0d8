package service_test

import (
	"path/filepath"
	"testing"

	"github.com/mdouchement/bucketlist/internal/database"
	"github.com/mdouchement/bucketlist/internal/model"
	"github.com/mdouchement/bucketlist/internal/server/service"
	"github.com/mdouchement/bucketlist/internal/token"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db     database.Client
	tokens *token.Manager
	guard  *service.Guard
	users  *service.UserService
	lists  *service.BucketlistService
	items  *service.ItemService
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db, err := database.StormOpen(filepath.Join(t.TempDir(), "bucketlist.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	tokens := token.NewManager([]byte("secret"))
	guard := service.NewGuard(db, tokens)

	return &fixture{
		db:     db,
		tokens: tokens,
		guard:  guard,
		users:  service.NewUser(db, tokens),
		lists:  service.NewBucketlist(db, guard),
		items:  service.NewItem(db, guard),
	}
}

func (f *fixture) user(t *testing.T, username string, admin bool) *model.User {
	t.Helper()

	user := model.NewUser(username, username+"@nowhere.lan")
	user.Admin = admin
	require.NoError(t, f.db.Save(user))
	return user
}

func (f *fixture) list(t *testing.T, ownerID int, name string) *model.Bucketlist {
	t.Helper()

	list, err := f.lists.Create(ownerID, service.CreateBucketlistParams{Name: name})
	require.NoError(t, err)
	return list
}

func (f *fixture) item(t *testing.T, ownerID, listID int, name string) *model.Item {
	t.Helper()

	item, err := f.items.Create(ownerID, listID, service.CreateItemParams{Name: name})
	require.NoError(t, err)
	return item
}
