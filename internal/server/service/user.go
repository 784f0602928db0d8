package service

import (
	"strings"

	"github.com/mdouchement/bucketlist/internal/blerror"
	"github.com/mdouchement/bucketlist/internal/database"
	"github.com/mdouchement/bucketlist/internal/model"
	"github.com/mdouchement/bucketlist/internal/token"
	argon2 "github.com/mdouchement/simple-argon2"
	"github.com/pkg/errors"
)

const (
	msgIncorrectLogin = "Incorrect login details"
	msgUserExists     = "Username or email already exists"
)

type (
	// A UserService handles the accounts and their credentials.
	UserService struct {
		db     database.Client
		tokens *token.Manager
		guard  *Guard
	}

	// RegisterParams are used to register a user.
	RegisterParams struct {
		Username string `json:"username" form:"username"`
		Email    string `json:"email"    form:"email"`
		Password string `json:"password" form:"password"`
	}

	// LoginParams are used to login a user.
	LoginParams struct {
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
	}

	// UpdateUserParams are used to update a user.
	// Empty fields are left unchanged.
	UpdateUserParams struct {
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
	}
)

// NewUser returns a new UserService.
func NewUser(db database.Client, tokens *token.Manager) *UserService {
	return &UserService{
		db:     db,
		tokens: tokens,
		guard:  NewGuard(db, tokens),
	}
}

// Register creates a new active user.
func (s *UserService) Register(params RegisterParams) (*model.User, error) {
	return s.create(params, false)
}

// CreateAdmin creates a new active user with the admin role.
func (s *UserService) CreateAdmin(params RegisterParams) (*model.User, error) {
	return s.create(params, true)
}

func (s *UserService) create(params RegisterParams, admin bool) (*model.User, error) {
	if strings.TrimSpace(params.Username) == "" || params.Email == "" || params.Password == "" {
		return nil, blerror.Validation("All fields are required")
	}
	if err := validateUsername(params.Username); err != nil {
		return nil, err
	}
	if err := validateEmail(params.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(params.Password); err != nil {
		return nil, err
	}

	user := model.NewUser(params.Username, params.Email)
	user.Admin = admin

	var err error
	user.Password, err = argon2.GenerateFromPasswordString(params.Password, argon2.Default)
	if err != nil {
		return nil, errors.Wrap(err, "could not store user password safe")
	}

	err = s.db.Transaction(func(tx database.Client) error {
		// Check if the username and the email are free to use.
		if err := s.available(tx, user.Username, user.Email); err != nil {
			return err
		}

		if err := tx.Save(user); err != nil {
			if tx.IsAlreadyExists(err) {
				return blerror.Conflict(msgUserExists)
			}
			return errors.Wrap(err, "could not persist user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) available(tx database.Client, username, email string) error {
	if _, err := tx.FindUserByUsername(username); err == nil {
		return blerror.Conflict(msgUserExists)
	} else if !tx.IsNotFound(err) {
		return errors.Wrap(err, "could not get access to database")
	}

	if email == "" {
		return nil
	}

	if _, err := tx.FindUserByMail(email); err == nil {
		return blerror.Conflict(msgUserExists)
	} else if !tx.IsNotFound(err) {
		return errors.Wrap(err, "could not get access to database")
	}
	return nil
}

// Login checks the given credentials and returns a welcome message with a new token.
func (s *UserService) Login(params LoginParams) (Render, error) {
	if params.Username == "" || params.Password == "" {
		return nil, blerror.Validation("Username and password are required")
	}

	// Retrieve user
	user, err := s.db.FindUserByUsername(params.Username)
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, blerror.Authentication(msgIncorrectLogin)
		}
		return nil, errors.Wrap(err, "could not get user")
	}

	// Verify password
	if err = argon2.CompareHashAndPasswordString(user.Password, params.Password); err != nil {
		if err == argon2.ErrMismatchedHashAndPassword {
			return nil, blerror.Authentication(msgIncorrectLogin)
		}
		return nil, errors.Wrap(err, "could not validate password")
	}

	t, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return M{
		"Message": "Welcome " + params.Username,
		"Token":   t,
	}, nil
}

// List returns all the users. Only an admin can list users.
func (s *UserService) List(callerID int) ([]*model.User, error) {
	if _, err := s.guard.RequireAdmin(callerID); err != nil {
		return nil, err
	}

	users, err := s.db.FindUsers()
	return users, errors.Wrap(err, "could not get users")
}

// Get returns the user for the given id. A user can only see itself unless it is an admin.
func (s *UserService) Get(callerID, id int) (*model.User, error) {
	if callerID != id {
		if _, err := s.guard.RequireAdmin(callerID); err != nil {
			return nil, err
		}
	}

	return s.find(s.db, id)
}

// Update changes the username and/or the password of the given user.
// A user can only update itself.
func (s *UserService) Update(callerID, id int, params UpdateUserParams) (*model.User, error) {
	if callerID != id {
		return nil, blerror.Authorization(msgUnauthorised)
	}

	var user *model.User
	err := s.db.Transaction(func(tx database.Client) (err error) {
		user, err = s.find(tx, id)
		if err != nil {
			return err
		}

		if strings.TrimSpace(params.Username) != "" {
			if err := validateUsername(params.Username); err != nil {
				return err
			}

			username := model.NormalizeUsername(params.Username)
			if username == user.Username {
				return blerror.NotModified("Username not modified")
			}

			if err := s.available(tx, username, ""); err != nil {
				return err
			}
			user.Username = username
		}

		if params.Password != "" {
			if err := validatePassword(params.Password); err != nil {
				return err
			}

			user.Password, err = argon2.GenerateFromPasswordString(params.Password, argon2.Default)
			if err != nil {
				return errors.Wrap(err, "could not store user password safe")
			}
		}

		if err := tx.Save(user); err != nil {
			if tx.IsAlreadyExists(err) {
				return blerror.Conflict(msgUserExists)
			}
			return errors.Wrap(err, "could not persist user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes the given user with all its bucketlists and their items.
// Only an admin can delete users.
func (s *UserService) Delete(callerID, id int) (*model.User, error) {
	if _, err := s.guard.RequireAdmin(callerID); err != nil {
		return nil, err
	}

	var user *model.User
	err := s.db.Transaction(func(tx database.Client) (err error) {
		user, err = s.find(tx, id)
		if err != nil {
			return err
		}

		_, err = s.purge(tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Remove removes the user with the given username, all its bucketlists and their items.
// It returns the removed user and the number of removed bucketlists.
// There is no admin check, it is used by the server-side tooling.
func (s *UserService) Remove(username string) (*model.User, int, error) {
	var user *model.User
	var n int
	err := s.db.Transaction(func(tx database.Client) (err error) {
		user, err = tx.FindUserByUsername(username)
		if err != nil {
			if tx.IsNotFound(err) {
				return blerror.NotFound(msgUserNotFound)
			}
			return errors.Wrap(err, "could not get user")
		}

		n, err = s.purge(tx, user)
		return err
	})
	if err != nil {
		return nil, 0, err
	}

	return user, n, nil
}

// purge deletes the user along with its bucketlists and their items.
func (s *UserService) purge(tx database.Client, user *model.User) (int, error) {
	lists, err := tx.FindBucketlistsByOwnerID(user.ID)
	if err != nil {
		return 0, err
	}
	for _, list := range lists {
		if err := tx.DeleteItemsByListID(list.ID); err != nil {
			return 0, err
		}
	}

	if err := tx.DeleteBucketlistsByOwnerID(user.ID); err != nil {
		return 0, err
	}

	return len(lists), errors.Wrap(tx.Delete(user), "could not delete user")
}

func (s *UserService) find(db database.Client, id int) (*model.User, error) {
	user, err := db.FindUser(id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, blerror.NotFound(msgUserNotFound)
		}
		return nil, errors.Wrap(err, "could not get user")
	}
	return user, nil
}
