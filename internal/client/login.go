package client

import (
	"github.com/chzyer/readline"
	"github.com/mdouchement/bucketlist/pkg/libbl"
	"github.com/pkg/errors"
)

// Login connects to a bucketlist server.
func Login() error {
	cfg := Config{}

	endpoint, err := readline.Line("Endpoint: ")
	if err != nil {
		return errors.Wrap(err, "could not read endpoint from stdin")
	}
	cfg.Endpoint = endpoint

	client, err := libbl.NewDefaultClient(cfg.Endpoint)
	if err != nil {
		return errors.Wrap(err, "could not reach given endpoint")
	}

	cfg.Username, err = readline.Line("Username: ")
	if err != nil {
		return errors.Wrap(err, "could not read username from stdin")
	}

	password, err := readline.Password("Password: ")
	if err != nil {
		return errors.Wrap(err, "could not read password from stdin")
	}

	err = client.Login(cfg.Username, string(password))
	if err != nil {
		return errors.Wrap(err, "could not login")
	}
	cfg.BearerToken = client.BearerToken()

	return Save(cfg)
}

// Register creates an account on a bucketlist server.
func Register() error {
	endpoint, err := readline.Line("Endpoint: ")
	if err != nil {
		return errors.Wrap(err, "could not read endpoint from stdin")
	}

	client, err := libbl.NewDefaultClient(endpoint)
	if err != nil {
		return errors.Wrap(err, "could not reach given endpoint")
	}

	username, err := readline.Line("Username: ")
	if err != nil {
		return errors.Wrap(err, "could not read username from stdin")
	}

	email, err := readline.Line("Email: ")
	if err != nil {
		return errors.Wrap(err, "could not read email from stdin")
	}

	password, err := readline.Password("Password: ")
	if err != nil {
		return errors.Wrap(err, "could not read password from stdin")
	}

	return errors.Wrap(client.Register(username, email, string(password)), "could not register")
}
