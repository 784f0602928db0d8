package client

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mdouchement/bucketlist/pkg/libbl"
	"github.com/pkg/errors"
)

const timeFormat = "2006-01-02 15:04"

// ListBucketlists prints a page of the user's bucketlists.
func ListBucketlists(params libbl.ListParams) error {
	client, err := connect()
	if err != nil {
		return err
	}

	page, err := client.Bucketlists(params)
	if err != nil {
		return errors.Wrap(err, "could not list bucketlists")
	}

	PrintBucketlistPage(os.Stdout, page)
	return nil
}

// ShowBucketlist prints the bucketlist and its items.
func ShowBucketlist(id int) error {
	client, err := connect()
	if err != nil {
		return err
	}

	list, err := client.Bucketlist(id)
	if err != nil {
		return errors.Wrap(err, "could not get bucketlist")
	}

	PrintBucketlist(os.Stdout, list)
	return nil
}

// CreateBucketlist creates a new bucketlist.
func CreateBucketlist(name, description string) error {
	client, err := connect()
	if err != nil {
		return err
	}

	list, err := client.CreateBucketlist(name, description)
	if err != nil {
		return errors.Wrap(err, "could not create bucketlist")
	}

	PrintBucketlist(os.Stdout, list)
	return nil
}

// UpdateBucketlist updates the given bucketlist.
func UpdateBucketlist(id int, params libbl.UpdateBucketlist) error {
	client, err := connect()
	if err != nil {
		return err
	}

	list, err := client.UpdateBucketlist(id, params)
	if libbl.IsNotModified(err) {
		fmt.Println("Nothing to update")
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "could not update bucketlist")
	}

	PrintBucketlist(os.Stdout, list)
	return nil
}

// DeleteBucketlist deletes the given bucketlist and its items.
func DeleteBucketlist(id int) error {
	client, err := connect()
	if err != nil {
		return err
	}

	if err = client.DeleteBucketlist(id); err != nil {
		return errors.Wrap(err, "could not delete bucketlist")
	}

	fmt.Println("Bucketlist", id, "deleted")
	return nil
}

// PrintBucketlistPage writes a page of bucketlists as a table.
func PrintBucketlistPage(w io.Writer, page *libbl.BucketlistPage) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDONE\tMODIFIED")
	for _, list := range page.Bucketlists {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", list.ID, list.Name, check(list.Done), list.UpdatedAt.Local().Format(timeFormat))
	}
	tw.Flush()

	p := page.Pagination
	fmt.Fprintf(w, "Page %d/%d (%d bucketlists)\n", p.Page, p.TotalPages, p.Total)
}

// PrintBucketlist writes a bucketlist and its items.
func PrintBucketlist(w io.Writer, list *libbl.Bucketlist) {
	fmt.Fprintf(w, "#%d %s %s\n", list.ID, check(list.Done), list.Name)
	if list.Description != "" {
		fmt.Fprintln(w, list.Description)
	}

	if len(list.Items) == 0 {
		return
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDONE\tDESCRIPTION")
	for _, item := range list.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", item.ID, item.Name, check(item.Done), item.Description)
	}
	tw.Flush()
}

func check(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
