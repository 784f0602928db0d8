package service

import (
	"fmt"

	"github.com/mdouchement/bucketlist/internal/blerror"
	"github.com/mdouchement/bucketlist/internal/database"
	"github.com/mdouchement/bucketlist/internal/model"
	"github.com/pkg/errors"
)

const (
	msgListExists       = "Bucketlist already exists"
	msgListIncomplete   = "Bucketlist has incomplete items/activities"
	msgListNotModified  = "Bucketlist name not modified"
	msgNoListsAvailable = "No bucketlists available for current user"
)

// Default pagination limits.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

type (
	// A BucketlistService handles the bucketlists of the users.
	BucketlistService struct {
		db           database.Client
		guard        *Guard
		defaultLimit int
		maxLimit     int
	}

	// A BucketlistOption configures a BucketlistService.
	BucketlistOption func(*BucketlistService)

	// CreateBucketlistParams are used to create a bucketlist.
	CreateBucketlistParams struct {
		Name        string `json:"bucketlist"  form:"bucketlist"`
		Description string `json:"description" form:"description"`
	}

	// UpdateBucketlistParams are used to update a bucketlist.
	// Empty fields are left unchanged.
	UpdateBucketlistParams struct {
		Name        string `json:"bucketlist"  form:"bucketlist"`
		Description string `json:"description" form:"description"`
		Done        Flag   `json:"done"        form:"done"`
	}

	// ListBucketlistsParams are used to search the bucketlists.
	ListBucketlistsParams struct {
		Query string
		Page  int
		Limit int
	}

	// A Pagination describes a page of results.
	Pagination struct {
		Page       int
		Limit      int
		Total      int
		TotalPages int
		HasPrev    bool
		HasNext    bool
	}

	// A BucketlistPage is a page of bucketlists.
	BucketlistPage struct {
		Bucketlists []*model.Bucketlist
		Pagination  Pagination
	}

	// A BucketlistDetails is a bucketlist with its items.
	BucketlistDetails struct {
		*model.Bucketlist
		Items []*model.Item
	}
)

// WithPageLimits overrides the default and the maximum number of bucketlists per page.
func WithPageLimits(defaultLimit, maxLimit int) BucketlistOption {
	return func(s *BucketlistService) {
		if defaultLimit > 0 {
			s.defaultLimit = defaultLimit
		}
		if maxLimit > 0 {
			s.maxLimit = maxLimit
		}
	}
}

// NewBucketlist returns a new BucketlistService.
func NewBucketlist(db database.Client, guard *Guard, opts ...BucketlistOption) *BucketlistService {
	s := &BucketlistService{
		db:           db,
		guard:        guard,
		defaultLimit: DefaultPageLimit,
		maxLimit:     MaxPageLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create adds a new bucketlist to the given owner.
// The name and the description are capitalized.
func (s *BucketlistService) Create(ownerID int, params CreateBucketlistParams) (*model.Bucketlist, error) {
	if err := validateName(params.Name, "bucketlist"); err != nil {
		return nil, err
	}
	if err := validateDescription(params.Description); err != nil {
		return nil, err
	}

	list := model.NewBucketlist(ownerID, capitalize(params.Name), capitalize(params.Description))

	err := s.db.Transaction(func(tx database.Client) error {
		if err := s.available(tx, ownerID, params.Name); err != nil {
			return err
		}

		if err := tx.Save(list); err != nil {
			if tx.IsAlreadyExists(err) {
				return blerror.Conflict(msgListExists)
			}
			return errors.Wrap(err, "could not persist bucketlist")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return list, nil
}

// ListParams returns the search parameters of the first page.
func (s *BucketlistService) ListParams() ListBucketlistsParams {
	return ListBucketlistsParams{
		Page:  1,
		Limit: s.defaultLimit,
	}
}

// List returns a page of the owner's bucketlists whose name contains the query (case-insensitive).
func (s *BucketlistService) List(ownerID int, params ListBucketlistsParams) (*BucketlistPage, error) {
	if params.Limit > s.maxLimit {
		return nil, blerror.Validation(fmt.Sprintf("Maximum limit per page is %d", s.maxLimit))
	}
	if params.Page < 1 || params.Limit < 1 {
		return nil, blerror.Validation("Page and limit should be positive")
	}

	offset := (params.Page - 1) * params.Limit
	lists, total, err := s.db.FindBucketlistsByParams(ownerID, params.Query, offset, params.Limit)
	if err != nil {
		return nil, errors.Wrap(err, "could not get bucketlists")
	}

	if len(lists) == 0 {
		return nil, blerror.NotFound(msgNoListsAvailable)
	}

	pages := (total + params.Limit - 1) / params.Limit
	return &BucketlistPage{
		Bucketlists: lists,
		Pagination: Pagination{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      total,
			TotalPages: pages,
			HasPrev:    params.Page > 1,
			HasNext:    params.Page < pages,
		},
	}, nil
}

// Get returns the given bucketlist with its items.
func (s *BucketlistService) Get(ownerID, id int) (*BucketlistDetails, error) {
	list, err := s.guard.AuthorizeListID(ownerID, id)
	if err != nil {
		return nil, err
	}

	items, err := s.db.FindItemsByListID(list.ID)
	if err != nil {
		return nil, errors.Wrap(err, "could not get items")
	}

	return &BucketlistDetails{
		Bucketlist: list,
		Items:      items,
	}, nil
}

// Update renames, describes and/or completes the given bucketlist.
// A bucketlist can be marked as done only when all its items are completed.
func (s *BucketlistService) Update(ownerID, id int, params UpdateBucketlistParams) (*model.Bucketlist, error) {
	var list *model.Bucketlist
	err := s.db.Transaction(func(tx database.Client) (err error) {
		list, err = s.guard.on(tx).AuthorizeListID(ownerID, id)
		if err != nil {
			return err
		}

		if params.Name != "" {
			if err := validateName(params.Name, "bucketlist"); err != nil {
				return err
			}

			if model.ScopedNameKey(ownerID, params.Name) == list.NameKey {
				return blerror.NotModified(msgListNotModified)
			}

			if err := s.available(tx, ownerID, params.Name); err != nil {
				return err
			}
			list.Rename(capitalize(params.Name))
		}

		if params.Description != "" {
			if err := validateDescription(params.Description); err != nil {
				return err
			}
			list.Description = capitalize(params.Description)
		}

		if params.Done.Set {
			if params.Done.Value {
				if err := s.completable(tx, list); err != nil {
					return err
				}
			}
			list.Completed = params.Done.Value
		}

		if err := tx.Save(list); err != nil {
			if tx.IsAlreadyExists(err) {
				return blerror.Conflict(msgListExists)
			}
			return errors.Wrap(err, "could not persist bucketlist")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return list, nil
}

// Delete removes the given bucketlist and its items.
func (s *BucketlistService) Delete(ownerID, id int) (*model.Bucketlist, error) {
	var list *model.Bucketlist
	err := s.db.Transaction(func(tx database.Client) (err error) {
		list, err = s.guard.on(tx).AuthorizeListID(ownerID, id)
		if err != nil {
			return err
		}

		if err := tx.DeleteItemsByListID(list.ID); err != nil {
			return err
		}
		return errors.Wrap(tx.Delete(list), "could not delete bucketlist")
	})
	if err != nil {
		return nil, err
	}

	return list, nil
}

func (s *BucketlistService) available(tx database.Client, ownerID int, name string) error {
	_, err := tx.FindBucketlistByName(ownerID, name)
	if err == nil {
		return blerror.Conflict(msgListExists)
	}
	if !tx.IsNotFound(err) {
		return errors.Wrap(err, "could not get bucketlist")
	}
	return nil
}

func (s *BucketlistService) completable(tx database.Client, list *model.Bucketlist) error {
	_, err := tx.FindIncompleteItem(list.ID)
	if err == nil {
		return blerror.State(msgListIncomplete)
	}
	if !tx.IsNotFound(err) {
		return errors.Wrap(err, "could not get items")
	}
	return nil
}
