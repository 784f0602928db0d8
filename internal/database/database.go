package database

import (
	"github.com/mdouchement/bucketlist/internal/model"
)

type (
	// A Client can interacts with the database.
	Client interface {
		// Save inserts or updates the entry in database with the given model.
		Save(m model.Model) error
		// Delete deletes the entry in database with the given model.
		Delete(m model.Model) error
		// Transaction runs fn inside a writable transaction.
		// The transaction is committed when fn returns nil, otherwise it is rolled back.
		Transaction(fn func(tx Client) error) error
		// Close the database.
		Close() error
		// IsNotFound returns true if err is a not found error.
		IsNotFound(err error) bool
		// IsAlreadyExists returns true if err is a unique constraint violation.
		IsAlreadyExists(err error) bool

		UserInteraction
		BucketlistInteraction
		ItemInteraction
	}

	// An UserInteraction defines all the methods used to interact with a user record.
	UserInteraction interface {
		// FindUser returns the user for the given id.
		FindUser(id int) (*model.User, error)
		// FindUserByUsername returns the user for the given username (case-insensitive).
		FindUserByUsername(username string) (*model.User, error)
		// FindUserByMail returns the user for the given email (case-insensitive).
		FindUserByMail(email string) (*model.User, error)
		// FindUsers returns all the users ordered by username.
		FindUsers() ([]*model.User, error)
	}

	// A BucketlistInteraction defines all the methods used to interact with a bucketlist record(s).
	BucketlistInteraction interface {
		// FindBucketlist returns the bucketlist for the given id.
		FindBucketlist(id int) (*model.Bucketlist, error)
		// FindBucketlistByName returns the owner's bucketlist matching the given name (case-insensitive).
		FindBucketlistByName(ownerID int, name string) (*model.Bucketlist, error)
		// FindBucketlistsByOwnerID returns all the bucketlists of the given owner ordered by id.
		FindBucketlistsByOwnerID(ownerID int) ([]*model.Bucketlist, error)
		// FindBucketlistsByParams returns a page of the owner's bucketlists ordered by id
		// and the total number of matching bucketlists.
		// An empty query matches all names, otherwise a case-insensitive substring match is performed.
		FindBucketlistsByParams(ownerID int, query string, offset, limit int) ([]*model.Bucketlist, int, error)
		// DeleteBucketlistsByOwnerID deletes all the bucketlists of the given owner.
		DeleteBucketlistsByOwnerID(ownerID int) error
	}

	// An ItemInteraction defines all the methods used to interact with a item record(s).
	ItemInteraction interface {
		// FindItem returns the item for the given id.
		FindItem(id int) (*model.Item, error)
		// FindItemByListID returns the item for the given id and list id.
		FindItemByListID(id, listID int) (*model.Item, error)
		// FindItemByName returns the list's item matching the given name (case-insensitive).
		FindItemByName(listID int, name string) (*model.Item, error)
		// FindItemsByListID returns all the items of the given list ordered by id.
		FindItemsByListID(listID int) ([]*model.Item, error)
		// FindIncompleteItem returns the first item of the given list that is not completed.
		FindIncompleteItem(listID int) (*model.Item, error)
		// DeleteItemsByListID deletes all the items of the given list.
		DeleteItemsByListID(listID int) error
	}
)
