package service

import (
	"github.com/mdouchement/bucketlist/internal/blerror"
	"github.com/mdouchement/bucketlist/internal/database"
	"github.com/mdouchement/bucketlist/internal/model"
	"github.com/pkg/errors"
)

const msgItemExists = "Bucketlist item already exists"

type (
	// An ItemService handles the items of the bucketlists.
	ItemService struct {
		db    database.Client
		guard *Guard
	}

	// CreateItemParams are used to create an item.
	CreateItemParams struct {
		Name        string `json:"item"        form:"item"`
		Description string `json:"description" form:"description"`
	}

	// UpdateItemParams are used to update an item.
	// Empty fields are left unchanged.
	UpdateItemParams struct {
		Name        string `json:"item"          form:"item"`
		Description string `json:"description"   form:"description"`
		Done        Flag   `json:"done"          form:"done"`
		ListID      int    `json:"bucketlist_id" form:"bucketlist_id"`
	}
)

// NewItem returns a new ItemService.
func NewItem(db database.Client, guard *Guard) *ItemService {
	return &ItemService{
		db:    db,
		guard: guard,
	}
}

// Create adds a new item to the given bucketlist.
func (s *ItemService) Create(ownerID, listID int, params CreateItemParams) (*model.Item, error) {
	var item *model.Item
	err := s.db.Transaction(func(tx database.Client) error {
		list, err := s.guard.on(tx).AuthorizeListID(ownerID, listID)
		if err != nil {
			return err
		}

		if err = validateName(params.Name, "bucketlist item"); err != nil {
			return err
		}
		if err = validateDescription(params.Description); err != nil {
			return err
		}

		item = model.NewItem(list.ID, params.Name, params.Description)
		if err = s.available(tx, item); err != nil {
			return err
		}

		return s.save(tx, item)
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// Get returns the given item.
func (s *ItemService) Get(ownerID, listID, itemID int) (*model.Item, error) {
	_, item, err := s.guard.AuthorizeItem(ownerID, listID, itemID)
	return item, err
}

// Update renames, describes, completes and/or moves the given item to another bucketlist.
func (s *ItemService) Update(ownerID, listID, itemID int, params UpdateItemParams) (*model.Item, error) {
	var item *model.Item
	err := s.db.Transaction(func(tx database.Client) (err error) {
		_, item, err = s.guard.on(tx).AuthorizeItem(ownerID, listID, itemID)
		if err != nil {
			return err
		}

		key := item.NameKey

		if params.ListID != 0 && params.ListID != item.ListID {
			// The destination is not checked against the caller.
			if _, err := tx.FindBucketlist(params.ListID); err != nil {
				if tx.IsNotFound(err) {
					return blerror.NotFound("Destination bucketlist does not exist")
				}
				return errors.Wrap(err, "could not get bucketlist")
			}
			item.MoveTo(params.ListID)
		}

		if params.Name != "" {
			if err := validateName(params.Name, "bucketlist item"); err != nil {
				return err
			}
			item.Rename(params.Name)
		}

		if item.NameKey != key {
			if err := s.available(tx, item); err != nil {
				return err
			}
		}

		if params.Description != "" {
			if err := validateDescription(params.Description); err != nil {
				return err
			}
			item.Description = params.Description
		}

		if params.Done.Set {
			item.Completed = params.Done.Value
		}

		return s.save(tx, item)
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// Delete removes the given item.
func (s *ItemService) Delete(ownerID, listID, itemID int) (*model.Item, error) {
	var item *model.Item
	err := s.db.Transaction(func(tx database.Client) (err error) {
		_, item, err = s.guard.on(tx).AuthorizeItem(ownerID, listID, itemID)
		if err != nil {
			return err
		}

		return errors.Wrap(tx.Delete(item), "could not delete item")
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// available checks that no other item of the same list has the item's name.
func (s *ItemService) available(tx database.Client, item *model.Item) error {
	other, err := tx.FindItemByName(item.ListID, item.Name)
	if err == nil {
		if other.ID == item.ID {
			return nil
		}
		return blerror.Conflict(msgItemExists)
	}
	if !tx.IsNotFound(err) {
		return errors.Wrap(err, "could not get item")
	}
	return nil
}

func (s *ItemService) save(tx database.Client, item *model.Item) error {
	if err := tx.Save(item); err != nil {
		if tx.IsAlreadyExists(err) {
			return blerror.Conflict(msgItemExists)
		}
		return errors.Wrap(err, "could not persist item")
	}
	return nil
}
