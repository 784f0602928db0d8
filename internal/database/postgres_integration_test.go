//go:build integration

package database_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/mdouchement/bucketlist/internal/database"
	"github.com/mdouchement/bucketlist/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "bucketlist_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/bucketlist_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestPostgresIntegration(t *testing.T) {
	require.NoError(t, database.PostgresMigrate(dsn))

	db, err := database.PostgresOpen(dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	user := model.NewUser("lena", "lena@nowhere.lan")
	user.Password = "hash"
	require.NoError(t, db.Save(user))

	err = db.Save(model.NewUser("LENA", "other@nowhere.lan"))
	assert.True(t, db.IsAlreadyExists(err))

	list := model.NewBucketlist(user.ID, "Extreme sports", "")
	require.NoError(t, db.Save(list))
	err = db.Save(model.NewBucketlist(user.ID, "EXTREME SPORTS", ""))
	assert.True(t, db.IsAlreadyExists(err))

	for _, name := range []string{"Paragliding", "Bungee jumping"} {
		require.NoError(t, db.Save(model.NewItem(list.ID, name, "")))
	}

	lists, total, err := db.FindBucketlistsByParams(user.ID, "sports", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, lists, 1)
	assert.Equal(t, list.ID, lists[0].ID)

	item, err := db.FindIncompleteItem(list.ID)
	require.NoError(t, err)
	assert.Equal(t, "Paragliding", item.Name)

	err = db.Transaction(func(tx database.Client) error {
		if err := tx.DeleteItemsByListID(list.ID); err != nil {
			return err
		}
		return tx.Delete(list)
	})
	require.NoError(t, err)

	_, err = db.FindBucketlist(list.ID)
	assert.True(t, db.IsNotFound(err))
	items, err := db.FindItemsByListID(list.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
