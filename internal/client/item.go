package client

import (
	"fmt"
	"io"
	"os"

	"github.com/mdouchement/bucketlist/pkg/libbl"
	"github.com/pkg/errors"
)

// ShowItem prints the item of the given bucketlist.
func ShowItem(listID, id int) error {
	client, err := connect()
	if err != nil {
		return err
	}

	item, err := client.Item(listID, id)
	if err != nil {
		return errors.Wrap(err, "could not get item")
	}

	PrintItem(os.Stdout, item)
	return nil
}

// CreateItem adds an item to the given bucketlist.
func CreateItem(listID int, name, description string) error {
	client, err := connect()
	if err != nil {
		return err
	}

	item, err := client.CreateItem(listID, name, description)
	if err != nil {
		return errors.Wrap(err, "could not create item")
	}

	PrintItem(os.Stdout, item)
	return nil
}

// UpdateItem updates the given item.
func UpdateItem(listID, id int, params libbl.UpdateItem) error {
	client, err := connect()
	if err != nil {
		return err
	}

	item, err := client.UpdateItem(listID, id, params)
	if err != nil {
		return errors.Wrap(err, "could not update item")
	}

	PrintItem(os.Stdout, item)
	return nil
}

// DeleteItem deletes the given item.
func DeleteItem(listID, id int) error {
	client, err := connect()
	if err != nil {
		return err
	}

	if err = client.DeleteItem(listID, id); err != nil {
		return errors.Wrap(err, "could not delete item")
	}

	fmt.Println("Item", id, "deleted")
	return nil
}

// PrintItem writes an item.
func PrintItem(w io.Writer, item *libbl.Item) {
	fmt.Fprintf(w, "#%d %s %s (bucketlist #%d)\n", item.ID, check(item.Done), item.Name, item.ListID)
	if item.Description != "" {
		fmt.Fprintln(w, item.Description)
	}
}
