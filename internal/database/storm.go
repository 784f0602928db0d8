package database

import (
	"regexp"
	"time"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/codec/msgpack"
	"github.com/asdine/storm/v3/q"
	"github.com/mdouchement/bucketlist/internal/model"
	"github.com/pkg/errors"
)

type strm struct {
	db   *storm.DB
	node storm.Node
	tx   bool
}

// StormCodec is the format used to store data in the database.
var StormCodec = storm.Codec(msgpack.Codec)

var stormModels = []any{
	&model.User{},
	&model.Bucketlist{},
	&model.Item{},
}

// StormInit initializes Storm database.
func StormInit(database string) error {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	for _, m := range stormModels {
		if err := db.Init(m); err != nil {
			return errors.Wrapf(err, "could not init %T index", m)
		}
	}
	return nil
}

// StormReIndex reindex Storm database.
func StormReIndex(database string) error {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	for _, m := range stormModels {
		if err := db.ReIndex(m); err != nil {
			return errors.Wrapf(err, "could not ReIndex %T", m)
		}
	}
	return nil
}

// StormOpen returns a new Storm database connection.
func StormOpen(database string) (Client, error) {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return nil, errors.Wrap(err, "could not get database connection")
	}

	return &strm{
		db:   db,
		node: db,
	}, nil
}

// Save inserts or updates the entry in database with the given model.
func (c *strm) Save(m model.Model) error {
	t := time.Now().UTC()
	m.SetUpdatedAt(t)

	if m.GetID() == 0 {
		m.SetCreatedAt(t)
	}

	return errors.Wrap(c.node.Save(m), "could not save the model")
}

// Delete deletes the entry in database with the given model.
func (c *strm) Delete(m model.Model) error {
	return errors.Wrap(c.node.DeleteStruct(m), "could not delete the model")
}

// Transaction runs fn inside a writable transaction.
func (c *strm) Transaction(fn func(tx Client) error) (err error) {
	if c.tx {
		// Already inside a transaction, storm does not support nested ones.
		return fn(c)
	}

	node, err := c.node.Begin(true)
	if err != nil {
		return errors.Wrap(err, "could not begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = node.Rollback()
			panic(p)
		}
	}()

	if err = fn(&strm{db: c.db, node: node, tx: true}); err != nil {
		_ = node.Rollback()
		return err
	}

	return errors.Wrap(node.Commit(), "could not commit transaction")
}

// Close the database.
func (c *strm) Close() error {
	return c.db.Close()
}

// IsNotFound returns true if err is nil or a not found error.
func (c *strm) IsNotFound(err error) bool {
	return errors.Cause(err) == storm.ErrNotFound
}

// IsAlreadyExists returns true if err is a unique index violation.
func (c *strm) IsAlreadyExists(err error) bool {
	return errors.Cause(err) == storm.ErrAlreadyExists
}

//
// Users
//

// FindUser returns the user for the given id.
func (c *strm) FindUser(id int) (*model.User, error) {
	var user model.User
	if err := c.node.One("ID", id, &user); err != nil {
		return nil, errors.Wrap(err, "find user by id")
	}
	return &user, nil
}

// FindUserByUsername returns the user for the given username.
func (c *strm) FindUserByUsername(username string) (*model.User, error) {
	var user model.User
	if err := c.node.One("Username", model.NormalizeUsername(username), &user); err != nil {
		return nil, errors.Wrap(err, "find user by username")
	}
	return &user, nil
}

// FindUserByMail returns the user for the given email.
func (c *strm) FindUserByMail(email string) (*model.User, error) {
	var user model.User
	if err := c.node.One("Email", model.NormalizeEmail(email), &user); err != nil {
		return nil, errors.Wrap(err, "find user by mail")
	}
	return &user, nil
}

// FindUsers returns all the users ordered by username.
func (c *strm) FindUsers() ([]*model.User, error) {
	users := make([]*model.User, 0)
	err := c.node.Select().OrderBy("Username").Find(&users)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find users")
	}
	return users, nil
}

//
// Bucketlists
//

// FindBucketlist returns the bucketlist for the given id.
func (c *strm) FindBucketlist(id int) (*model.Bucketlist, error) {
	var list model.Bucketlist
	if err := c.node.One("ID", id, &list); err != nil {
		return nil, errors.Wrap(err, "find bucketlist by id")
	}
	return &list, nil
}

// FindBucketlistByName returns the owner's bucketlist matching the given name.
func (c *strm) FindBucketlistByName(ownerID int, name string) (*model.Bucketlist, error) {
	var list model.Bucketlist
	if err := c.node.One("NameKey", model.ScopedNameKey(ownerID, name), &list); err != nil {
		return nil, errors.Wrap(err, "find bucketlist by name")
	}
	return &list, nil
}

// FindBucketlistsByOwnerID returns all the bucketlists of the given owner.
func (c *strm) FindBucketlistsByOwnerID(ownerID int) ([]*model.Bucketlist, error) {
	lists := make([]*model.Bucketlist, 0)
	err := c.node.Select(q.Eq("OwnerID", ownerID)).OrderBy("ID").Find(&lists)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find bucketlists by owner id")
	}
	return lists, nil
}

// FindBucketlistsByParams returns a page of the owner's bucketlists and the total of matching bucketlists.
func (c *strm) FindBucketlistsByParams(ownerID int, query string, offset, limit int) ([]*model.Bucketlist, int, error) {
	matchers := []q.Matcher{q.Eq("OwnerID", ownerID)}
	if query != "" {
		matchers = append(matchers, q.Re("Name", "(?i)"+regexp.QuoteMeta(query)))
	}

	total, err := c.node.Select(matchers...).Count(&model.Bucketlist{})
	if err != nil && !c.IsNotFound(err) {
		return nil, 0, errors.Wrap(err, "could not count bucketlists")
	}

	lists := make([]*model.Bucketlist, 0)
	if total == 0 || offset >= total {
		return lists, total, nil
	}

	stmt := c.node.Select(matchers...).OrderBy("ID").Skip(offset)
	if limit > 0 {
		stmt = stmt.Limit(limit)
	}
	err = stmt.Find(&lists)
	if err != nil && !c.IsNotFound(err) {
		return nil, 0, errors.Wrap(err, "could not find bucketlists")
	}

	return lists, total, nil
}

// DeleteBucketlistsByOwnerID deletes all the bucketlists of the given owner.
func (c *strm) DeleteBucketlistsByOwnerID(ownerID int) error {
	err := c.node.Select(q.Eq("OwnerID", ownerID)).Delete(&model.Bucketlist{})
	if err != nil && !c.IsNotFound(err) {
		return errors.Wrap(err, "could not delete bucketlists")
	}
	return nil
}

//
// Items
//

// FindItem returns the item for the given id.
func (c *strm) FindItem(id int) (*model.Item, error) {
	var item model.Item
	if err := c.node.One("ID", id, &item); err != nil {
		return nil, errors.Wrap(err, "could not find item")
	}
	return &item, nil
}

// FindItemByListID returns the item for the given id and list id.
func (c *strm) FindItemByListID(id, listID int) (*model.Item, error) {
	var item model.Item
	err := c.node.Select(q.Eq("ID", id), q.Eq("ListID", listID)).First(&item)
	if err != nil {
		return nil, errors.Wrap(err, "could not find item by list id")
	}
	return &item, nil
}

// FindItemByName returns the list's item matching the given name.
func (c *strm) FindItemByName(listID int, name string) (*model.Item, error) {
	var item model.Item
	if err := c.node.One("NameKey", model.ScopedNameKey(listID, name), &item); err != nil {
		return nil, errors.Wrap(err, "could not find item by name")
	}
	return &item, nil
}

// FindItemsByListID returns all the items of the given list ordered by id.
func (c *strm) FindItemsByListID(listID int) ([]*model.Item, error) {
	items := make([]*model.Item, 0)
	err := c.node.Select(q.Eq("ListID", listID)).OrderBy("ID").Find(&items)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find items")
	}
	return items, nil
}

// FindIncompleteItem returns the first item of the given list that is not completed.
func (c *strm) FindIncompleteItem(listID int) (*model.Item, error) {
	var item model.Item
	err := c.node.Select(q.Eq("ListID", listID), q.Eq("Completed", false)).OrderBy("ID").First(&item)
	if err != nil {
		return nil, errors.Wrap(err, "could not find incomplete item")
	}
	return &item, nil
}

// DeleteItemsByListID deletes all the items of the given list.
func (c *strm) DeleteItemsByListID(listID int) error {
	err := c.node.Select(q.Eq("ListID", listID)).Delete(&model.Item{})
	if err != nil && !c.IsNotFound(err) {
		return errors.Wrap(err, "could not delete items")
	}
	return nil
}
