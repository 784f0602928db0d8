package database

import (
	"database/sql"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver
	"github.com/mdouchement/bucketlist/internal/database/migrations"
	"github.com/mdouchement/bucketlist/internal/model"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

const pgUniqueViolation = "23505"

const (
	userColumns       = "id, username, email, password, active, admin, created_at, updated_at"
	bucketlistColumns = "id, owner_id, name, description, completed, created_at, updated_at"
	itemColumns       = "id, list_id, name, description, completed, created_at, updated_at"
)

type (
	// querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
	querier interface {
		Exec(query string, args ...any) (sql.Result, error)
		Query(query string, args ...any) (*sql.Rows, error)
		QueryRow(query string, args ...any) *sql.Row
	}

	scanner interface {
		Scan(dest ...any) error
	}

	pg struct {
		db *sql.DB
		q  querier
	}
)

// PostgresMigrate applies all the pending migrations on the given database.
func PostgresMigrate(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	return migrate(db)
}

// PostgresOpen returns a new PostgreSQL database connection with an up to date schema.
func PostgresOpen(dsn string) (Client, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "could not get database connection")
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "could not reach database")
	}

	if err = migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return NewPostgresClient(db), nil
}

// NewPostgresClient returns a Client on top of an already opened database.
func NewPostgresClient(db *sql.DB) Client {
	return &pg{
		db: db,
		q:  db,
	}
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "could not set migration dialect")
	}

	return errors.Wrap(goose.Up(db, "."), "could not migrate database")
}

// Save inserts or updates the entry in database with the given model.
func (c *pg) Save(m model.Model) error {
	t := time.Now().UTC()
	m.SetUpdatedAt(t)

	insert := m.GetID() == 0
	if insert {
		m.SetCreatedAt(t)
	}

	var err error
	switch v := m.(type) {
	case *model.User:
		err = c.saveUser(v, insert)
	case *model.Bucketlist:
		err = c.saveBucketlist(v, insert)
	case *model.Item:
		err = c.saveItem(v, insert)
	default:
		return errors.Errorf("unsupported model %T", m)
	}

	return errors.Wrap(err, "could not save the model")
}

func (c *pg) saveUser(u *model.User, insert bool) error {
	if insert {
		return c.q.QueryRow(
			`INSERT INTO users (username, email, password, active, admin, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
			u.Username, u.Email, u.Password, u.Active, u.Admin, *u.CreatedAt, *u.UpdatedAt,
		).Scan(&u.ID)
	}

	return c.exec(
		`UPDATE users SET username = $1, email = $2, password = $3, active = $4, admin = $5, updated_at = $6
		 WHERE id = $7`,
		u.Username, u.Email, u.Password, u.Active, u.Admin, *u.UpdatedAt, u.ID,
	)
}

func (c *pg) saveBucketlist(l *model.Bucketlist, insert bool) error {
	if insert {
		return c.q.QueryRow(
			`INSERT INTO bucketlists (owner_id, name, description, completed, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			l.OwnerID, l.Name, l.Description, l.Completed, *l.CreatedAt, *l.UpdatedAt,
		).Scan(&l.ID)
	}

	return c.exec(
		`UPDATE bucketlists SET name = $1, description = $2, completed = $3, updated_at = $4
		 WHERE id = $5`,
		l.Name, l.Description, l.Completed, *l.UpdatedAt, l.ID,
	)
}

func (c *pg) saveItem(i *model.Item, insert bool) error {
	if insert {
		return c.q.QueryRow(
			`INSERT INTO items (list_id, name, description, completed, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			i.ListID, i.Name, i.Description, i.Completed, *i.CreatedAt, *i.UpdatedAt,
		).Scan(&i.ID)
	}

	return c.exec(
		`UPDATE items SET list_id = $1, name = $2, description = $3, completed = $4, updated_at = $5
		 WHERE id = $6`,
		i.ListID, i.Name, i.Description, i.Completed, *i.UpdatedAt, i.ID,
	)
}

// exec runs a statement that must affect at least one row.
func (c *pg) exec(query string, args ...any) error {
	result, err := c.q.Exec(query, args...)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete deletes the entry in database with the given model.
func (c *pg) Delete(m model.Model) error {
	var table string
	switch m.(type) {
	case *model.User:
		table = "users"
	case *model.Bucketlist:
		table = "bucketlists"
	case *model.Item:
		table = "items"
	default:
		return errors.Errorf("unsupported model %T", m)
	}

	err := c.exec("DELETE FROM "+table+" WHERE id = $1", m.GetID())
	return errors.Wrap(err, "could not delete the model")
}

// Transaction runs fn inside a writable transaction.
func (c *pg) Transaction(fn func(tx Client) error) (err error) {
	if _, ok := c.q.(*sql.Tx); ok {
		return fn(c)
	}

	tx, err := c.db.Begin()
	if err != nil {
		return errors.Wrap(err, "could not begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(&pg{db: c.db, q: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}

	return errors.Wrap(tx.Commit(), "could not commit transaction")
}

// Close the database.
func (c *pg) Close() error {
	return c.db.Close()
}

// IsNotFound returns true if err is a not found error.
func (c *pg) IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// IsAlreadyExists returns true if err is a unique constraint violation.
func (c *pg) IsAlreadyExists(err error) bool {
	var pgerr *pgconn.PgError
	return errors.As(err, &pgerr) && pgerr.Code == pgUniqueViolation
}

//
// Users
//

// FindUser returns the user for the given id.
func (c *pg) FindUser(id int) (*model.User, error) {
	user, err := scanUser(c.q.QueryRow("SELECT "+userColumns+" FROM users WHERE id = $1", id))
	return user, errors.Wrap(err, "find user by id")
}

// FindUserByUsername returns the user for the given username.
func (c *pg) FindUserByUsername(username string) (*model.User, error) {
	user, err := scanUser(c.q.QueryRow(
		"SELECT "+userColumns+" FROM users WHERE lower(username) = $1",
		model.NormalizeUsername(username),
	))
	return user, errors.Wrap(err, "find user by username")
}

// FindUserByMail returns the user for the given email.
func (c *pg) FindUserByMail(email string) (*model.User, error) {
	user, err := scanUser(c.q.QueryRow(
		"SELECT "+userColumns+" FROM users WHERE lower(email) = $1",
		model.NormalizeEmail(email),
	))
	return user, errors.Wrap(err, "find user by mail")
}

// FindUsers returns all the users ordered by username.
func (c *pg) FindUsers() ([]*model.User, error) {
	rows, err := c.q.Query("SELECT " + userColumns + " FROM users ORDER BY username")
	if err != nil {
		return nil, errors.Wrap(err, "could not find users")
	}
	defer rows.Close()

	users := make([]*model.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, errors.Wrap(err, "could not scan user")
		}
		users = append(users, user)
	}
	return users, errors.Wrap(rows.Err(), "could not find users")
}

//
// Bucketlists
//

// FindBucketlist returns the bucketlist for the given id.
func (c *pg) FindBucketlist(id int) (*model.Bucketlist, error) {
	list, err := scanBucketlist(c.q.QueryRow("SELECT "+bucketlistColumns+" FROM bucketlists WHERE id = $1", id))
	return list, errors.Wrap(err, "find bucketlist by id")
}

// FindBucketlistByName returns the owner's bucketlist matching the given name.
func (c *pg) FindBucketlistByName(ownerID int, name string) (*model.Bucketlist, error) {
	list, err := scanBucketlist(c.q.QueryRow(
		"SELECT "+bucketlistColumns+" FROM bucketlists WHERE owner_id = $1 AND lower(name) = lower($2)",
		ownerID, name,
	))
	return list, errors.Wrap(err, "find bucketlist by name")
}

// FindBucketlistsByOwnerID returns all the bucketlists of the given owner.
func (c *pg) FindBucketlistsByOwnerID(ownerID int) ([]*model.Bucketlist, error) {
	rows, err := c.q.Query("SELECT "+bucketlistColumns+" FROM bucketlists WHERE owner_id = $1 ORDER BY id", ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "could not find bucketlists by owner id")
	}
	return collectBucketlists(rows)
}

// FindBucketlistsByParams returns a page of the owner's bucketlists and the total of matching bucketlists.
func (c *pg) FindBucketlistsByParams(ownerID int, query string, offset, limit int) ([]*model.Bucketlist, int, error) {
	pattern := "%" + escapeLike(query) + "%"

	var total int
	err := c.q.QueryRow(
		"SELECT count(*) FROM bucketlists WHERE owner_id = $1 AND name ILIKE $2",
		ownerID, pattern,
	).Scan(&total)
	if err != nil {
		return nil, 0, errors.Wrap(err, "could not count bucketlists")
	}

	if total == 0 || offset >= total {
		return make([]*model.Bucketlist, 0), total, nil
	}

	var rowcount any // NULL means no limit
	if limit > 0 {
		rowcount = limit
	}

	rows, err := c.q.Query(
		"SELECT "+bucketlistColumns+" FROM bucketlists WHERE owner_id = $1 AND name ILIKE $2 ORDER BY id LIMIT $3 OFFSET $4",
		ownerID, pattern, rowcount, offset,
	)
	if err != nil {
		return nil, 0, errors.Wrap(err, "could not find bucketlists")
	}

	lists, err := collectBucketlists(rows)
	return lists, total, err
}

// DeleteBucketlistsByOwnerID deletes all the bucketlists of the given owner.
func (c *pg) DeleteBucketlistsByOwnerID(ownerID int) error {
	_, err := c.q.Exec("DELETE FROM bucketlists WHERE owner_id = $1", ownerID)
	return errors.Wrap(err, "could not delete bucketlists")
}

//
// Items
//

// FindItem returns the item for the given id.
func (c *pg) FindItem(id int) (*model.Item, error) {
	item, err := scanItem(c.q.QueryRow("SELECT "+itemColumns+" FROM items WHERE id = $1", id))
	return item, errors.Wrap(err, "could not find item")
}

// FindItemByListID returns the item for the given id and list id.
func (c *pg) FindItemByListID(id, listID int) (*model.Item, error) {
	item, err := scanItem(c.q.QueryRow("SELECT "+itemColumns+" FROM items WHERE id = $1 AND list_id = $2", id, listID))
	return item, errors.Wrap(err, "could not find item by list id")
}

// FindItemByName returns the list's item matching the given name.
func (c *pg) FindItemByName(listID int, name string) (*model.Item, error) {
	item, err := scanItem(c.q.QueryRow(
		"SELECT "+itemColumns+" FROM items WHERE list_id = $1 AND lower(name) = lower($2)",
		listID, name,
	))
	return item, errors.Wrap(err, "could not find item by name")
}

// FindItemsByListID returns all the items of the given list ordered by id.
func (c *pg) FindItemsByListID(listID int) ([]*model.Item, error) {
	rows, err := c.q.Query("SELECT "+itemColumns+" FROM items WHERE list_id = $1 ORDER BY id", listID)
	if err != nil {
		return nil, errors.Wrap(err, "could not find items")
	}
	defer rows.Close()

	items := make([]*model.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, errors.Wrap(err, "could not scan item")
		}
		items = append(items, item)
	}
	return items, errors.Wrap(rows.Err(), "could not find items")
}

// FindIncompleteItem returns the first item of the given list that is not completed.
func (c *pg) FindIncompleteItem(listID int) (*model.Item, error) {
	item, err := scanItem(c.q.QueryRow(
		"SELECT "+itemColumns+" FROM items WHERE list_id = $1 AND completed = FALSE ORDER BY id LIMIT 1",
		listID,
	))
	return item, errors.Wrap(err, "could not find incomplete item")
}

// DeleteItemsByListID deletes all the items of the given list.
func (c *pg) DeleteItemsByListID(listID int) error {
	_, err := c.q.Exec("DELETE FROM items WHERE list_id = $1", listID)
	return errors.Wrap(err, "could not delete items")
}

//
// Scanning
//

func scanUser(s scanner) (*model.User, error) {
	var user model.User
	var created, updated time.Time
	err := s.Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.Active, &user.Admin, &created, &updated)
	if err != nil {
		return nil, err
	}
	user.SetCreatedAt(created.UTC())
	user.SetUpdatedAt(updated.UTC())
	return &user, nil
}

func scanBucketlist(s scanner) (*model.Bucketlist, error) {
	var list model.Bucketlist
	var created, updated time.Time
	err := s.Scan(&list.ID, &list.OwnerID, &list.Name, &list.Description, &list.Completed, &created, &updated)
	if err != nil {
		return nil, err
	}
	list.NameKey = model.ScopedNameKey(list.OwnerID, list.Name)
	list.SetCreatedAt(created.UTC())
	list.SetUpdatedAt(updated.UTC())
	return &list, nil
}

func scanItem(s scanner) (*model.Item, error) {
	var item model.Item
	var created, updated time.Time
	err := s.Scan(&item.ID, &item.ListID, &item.Name, &item.Description, &item.Completed, &created, &updated)
	if err != nil {
		return nil, err
	}
	item.NameKey = model.ScopedNameKey(item.ListID, item.Name)
	item.SetCreatedAt(created.UTC())
	item.SetUpdatedAt(updated.UTC())
	return &item, nil
}

func collectBucketlists(rows *sql.Rows) ([]*model.Bucketlist, error) {
	defer rows.Close()

	lists := make([]*model.Bucketlist, 0)
	for rows.Next() {
		list, err := scanBucketlist(rows)
		if err != nil {
			return nil, errors.Wrap(err, "could not scan bucketlist")
		}
		lists = append(lists, list)
	}
	return lists, errors.Wrap(rows.Err(), "could not find bucketlists")
}

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes the LIKE wildcards of a user query.
func escapeLike(s string) string {
	return likeReplacer.Replace(s)
}
