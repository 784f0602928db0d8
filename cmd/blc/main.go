package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mdouchement/bucketlist/internal/client"
	"github.com/mdouchement/bucketlist/pkg/libbl"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"
)

func main() {
	c := &cobra.Command{
		Use:     "blc",
		Short:   "Bucketlist client",
		Version: fmt.Sprintf("%s - build %.7s @ %s", version, revision, date),
		Args:    cobra.NoArgs,
	}
	c.AddCommand(registerCmd)
	c.AddCommand(loginCmd)
	c.AddCommand(logoutCmd)

	listCmd.Flags().StringP("query", "q", "", "Search bucketlists by name")
	listCmd.Flags().IntP("page", "p", 0, "Page number")
	listCmd.Flags().IntP("limit", "l", 0, "Bucketlists per page")
	c.AddCommand(listCmd)
	c.AddCommand(showCmd)

	createCmd.Flags().StringP("description", "d", "", "Bucketlist description")
	c.AddCommand(createCmd)

	updateCmd.Flags().String("name", "", "New name")
	updateCmd.Flags().StringP("description", "d", "", "New description")
	updateCmd.Flags().Bool("done", false, "Mark the bucketlist as done")
	c.AddCommand(updateCmd)
	c.AddCommand(deleteCmd)

	itemAddCmd.Flags().StringP("description", "d", "", "Item description")
	itemCmd.AddCommand(itemAddCmd)
	itemCmd.AddCommand(itemShowCmd)
	itemUpdateCmd.Flags().String("name", "", "New name")
	itemUpdateCmd.Flags().StringP("description", "d", "", "New description")
	itemUpdateCmd.Flags().Bool("done", false, "Mark the item as done")
	itemUpdateCmd.Flags().Int("move", 0, "Move the item to the given bucketlist")
	itemCmd.AddCommand(itemUpdateCmd)
	itemCmd.AddCommand(itemDeleteCmd)
	c.AddCommand(itemCmd)

	if err := c.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, len(args))
	for i, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return nil, errors.Errorf("invalid id: %s", arg)
		}
		ids[i] = id
	}
	return ids, nil
}

var (
	registerCmd = &cobra.Command{
		Use:   "register",
		Short: "Register to a bucketlist server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Register()
		},
	}

	loginCmd = &cobra.Command{
		Use:   "login",
		Short: "Login to a bucketlist server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Login()
		},
	}

	logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Logout from the bucketlist server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Logout()
		},
	}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List your bucketlists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var params libbl.ListParams
			params.Query, _ = cmd.Flags().GetString("query")
			params.Page, _ = cmd.Flags().GetInt("page")
			params.Limit, _ = cmd.Flags().GetInt("limit")

			return client.ListBucketlists(params)
		},
	}

	showCmd = &cobra.Command{
		Use:   "show ID",
		Short: "Show a bucketlist and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return client.ShowBucketlist(ids[0])
		},
	}

	createCmd = &cobra.Command{
		Use:   "create NAME",
		Short: "Create a bucketlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description, _ := cmd.Flags().GetString("description")
			return client.CreateBucketlist(args[0], description)
		},
	}

	updateCmd = &cobra.Command{
		Use:   "update ID",
		Short: "Update a bucketlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			var params libbl.UpdateBucketlist
			flags := cmd.Flags()
			if flags.Changed("name") {
				name, _ := flags.GetString("name")
				params.Name = &name
			}
			if flags.Changed("description") {
				description, _ := flags.GetString("description")
				params.Description = &description
			}
			if flags.Changed("done") {
				done, _ := flags.GetBool("done")
				params.Done = &done
			}

			return client.UpdateBucketlist(ids[0], params)
		},
	}

	deleteCmd = &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a bucketlist and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return client.DeleteBucketlist(ids[0])
		},
	}

	//
	// Items
	//

	itemCmd = &cobra.Command{
		Use:   "item",
		Short: "Manage the items of a bucketlist",
	}

	itemAddCmd = &cobra.Command{
		Use:   "add LIST_ID NAME",
		Short: "Add an item to a bucketlist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args[:1])
			if err != nil {
				return err
			}

			description, _ := cmd.Flags().GetString("description")
			return client.CreateItem(ids[0], args[1], description)
		},
	}

	itemShowCmd = &cobra.Command{
		Use:   "show LIST_ID ITEM_ID",
		Short: "Show an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return client.ShowItem(ids[0], ids[1])
		},
	}

	itemUpdateCmd = &cobra.Command{
		Use:   "update LIST_ID ITEM_ID",
		Short: "Update an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			var params libbl.UpdateItem
			flags := cmd.Flags()
			if flags.Changed("name") {
				name, _ := flags.GetString("name")
				params.Name = &name
			}
			if flags.Changed("description") {
				description, _ := flags.GetString("description")
				params.Description = &description
			}
			if flags.Changed("done") {
				done, _ := flags.GetBool("done")
				params.Done = &done
			}
			if flags.Changed("move") {
				listID, _ := flags.GetInt("move")
				params.ListID = &listID
			}

			return client.UpdateItem(ids[0], ids[1], params)
		},
	}

	itemDeleteCmd = &cobra.Command{
		Use:   "delete LIST_ID ITEM_ID",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return client.DeleteItem(ids[0], ids[1])
		},
	}
)
