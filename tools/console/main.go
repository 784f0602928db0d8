package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/asdine/storm/v3"
	"github.com/mdouchement/bucketlist/internal/database"
	"github.com/mdouchement/bucketlist/internal/model"
	"github.com/mdouchement/bucketlist/pkg/stormsql"
	"github.com/pkg/errors"
	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"
)

// go run tools/console/main.go bucketlist.db " SELECT count(*) FROM items WHERE list_id = 4 AND completed = false AND updated_at > '2024-02-16 20:52:55';  "

var schema = stormsql.Schema{
	"users": {
		New:      func() any { return &model.User{} },
		NewSlice: func() any { return &[]*model.User{} },
		Columns: map[string]string{
			"id":         "ID",
			"username":   "Username",
			"email":      "Email",
			"active":     "Active",
			"admin":      "Admin",
			"created_at": "CreatedAt",
			"updated_at": "UpdatedAt",
		},
	},
	"bucketlists": {
		New:      func() any { return &model.Bucketlist{} },
		NewSlice: func() any { return &[]*model.Bucketlist{} },
		Columns: map[string]string{
			"id":          "ID",
			"owner_id":    "OwnerID",
			"name":        "Name",
			"description": "Description",
			"completed":   "Completed",
			"created_at":  "CreatedAt",
			"updated_at":  "UpdatedAt",
		},
	},
	"items": {
		New:      func() any { return &model.Item{} },
		NewSlice: func() any { return &[]*model.Item{} },
		Columns: map[string]string{
			"id":          "ID",
			"list_id":     "ListID",
			"name":        "Name",
			"description": "Description",
			"completed":   "Completed",
			"created_at":  "CreatedAt",
			"updated_at":  "UpdatedAt",
		},
	},
}

func main() {
	c := &cobra.Command{
		Use:   "console DATABASE QUERY",
		Short: "SQL console for bucketlist storm database",
		Long:  "SQL console for bucketlist storm database.\nAvailable tables: " + strings.Join(schema.Tablenames(), ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			//
			//
			sc, err := stormsql.ParseSelect(schema, args[1])
			if err != nil {
				return err
			}

			//
			//
			fmt.Println("Opening", args[0])
			db, err := storm.Open(args[0], database.StormCodec)
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			result, err := sc.Execute(db)
			if err != nil {
				return err
			}

			if sc.Count {
				fmt.Println("Count:", result)
				return nil
			}

			litter.Dump(result)
			return nil
		},
	}

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}
