package service

import (
	"strings"

	"github.com/mdouchement/bucketlist/internal/blerror"
	"github.com/mdouchement/bucketlist/internal/database"
	"github.com/mdouchement/bucketlist/internal/model"
	"github.com/mdouchement/bucketlist/internal/token"
	"github.com/pkg/errors"
)

const (
	msgUnauthorised = "Unauthorised access"
	msgNoSuchUser   = "No such user for given token."
	msgListNotFound = "Bucketlist does not exist"
	msgItemNotFound = "Bucketlist item does not exist"
	msgUserNotFound = "User does not exist"
	authScheme      = "bearer"
)

// A Guard resolves the caller identity and checks its rights on the resources.
type Guard struct {
	db     database.Client
	tokens *token.Manager
}

// NewGuard returns a new Guard.
func NewGuard(db database.Client, tokens *token.Manager) *Guard {
	return &Guard{
		db:     db,
		tokens: tokens,
	}
}

// on returns a Guard working with the given database client (e.g. a transaction).
func (g *Guard) on(db database.Client) *Guard {
	return &Guard{
		db:     db,
		tokens: g.tokens,
	}
}

// Authenticate returns the id of the user carried by the given Authorization header value.
// The token may be prefixed by its "Bearer" type.
func (g *Guard) Authenticate(authorization string) (int, error) {
	raw := strings.TrimSpace(authorization)
	if scheme, credentials, ok := strings.Cut(raw, " "); ok && strings.EqualFold(scheme, authScheme) {
		raw = strings.TrimSpace(credentials)
	} else if strings.EqualFold(raw, authScheme) {
		raw = ""
	}

	id, err := g.tokens.Verify(raw)
	if err != nil {
		return 0, blerror.Authentication(err.Error())
	}

	// The token outlives a deleted user.
	if _, err = g.db.FindUser(id); err != nil {
		if g.db.IsNotFound(err) {
			return 0, blerror.Authentication(msgNoSuchUser)
		}
		return 0, errors.Wrap(err, "could not get access to database")
	}

	return id, nil
}

// AuthorizeList checks that the given user owns the list.
func (g *Guard) AuthorizeList(userID int, list *model.Bucketlist) error {
	if list.OwnerID != userID {
		return blerror.Authorization(msgUnauthorised)
	}
	return nil
}

// AuthorizeListID returns the list for the given id if it is owned by the given user.
func (g *Guard) AuthorizeListID(userID, listID int) (*model.Bucketlist, error) {
	list, err := g.db.FindBucketlist(listID)
	if err != nil {
		if g.db.IsNotFound(err) {
			return nil, blerror.NotFound(msgListNotFound)
		}
		return nil, errors.Wrap(err, "could not get bucketlist")
	}

	if err = g.AuthorizeList(userID, list); err != nil {
		return nil, err
	}
	return list, nil
}

// AuthorizeItem returns the list and the item for the given ids if the list is owned by the given user.
func (g *Guard) AuthorizeItem(userID, listID, itemID int) (*model.Bucketlist, *model.Item, error) {
	list, err := g.AuthorizeListID(userID, listID)
	if err != nil {
		return nil, nil, err
	}

	item, err := g.db.FindItemByListID(itemID, list.ID)
	if err != nil {
		if g.db.IsNotFound(err) {
			return nil, nil, blerror.NotFound(msgItemNotFound)
		}
		return nil, nil, errors.Wrap(err, "could not get item")
	}

	return list, item, nil
}

// RequireAdmin returns the given user if it has the admin role.
func (g *Guard) RequireAdmin(userID int) (*model.User, error) {
	user, err := g.db.FindUser(userID)
	if err != nil {
		if g.db.IsNotFound(err) {
			return nil, blerror.Authentication(msgNoSuchUser)
		}
		return nil, errors.Wrap(err, "could not get user")
	}

	if !user.Admin {
		return nil, blerror.Authorization(msgUnauthorised)
	}
	return user, nil
}
