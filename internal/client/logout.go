package client

import (
	"github.com/pkg/errors"
)

// Logout disconnects from a bucketlist server.
func Logout() error {
	client, err := connect()
	if err != nil {
		return err
	}

	if err = client.Logout(); err != nil {
		return errors.Wrap(err, "could not logout")
	}

	return errors.Wrap(Remove(), "could not remove credential file")
}
