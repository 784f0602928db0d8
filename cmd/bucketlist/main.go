package main

import (
	"fmt"
	"hash"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mdouchement/bucketlist/internal/blerror"
	"github.com/mdouchement/bucketlist/internal/config"
	"github.com/mdouchement/bucketlist/internal/database"
	"github.com/mdouchement/bucketlist/internal/logger"
	"github.com/mdouchement/bucketlist/internal/server"
	"github.com/mdouchement/bucketlist/internal/server/service"
	"github.com/mdouchement/bucketlist/internal/token"
	"github.com/muesli/coral"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/hkdf"
)

const dbname = "bucketlist.db"

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	cfg      string
	username string
	email    string
)

func main() {
	c := &coral.Command{
		Use:     "bucketlist",
		Short:   "Bucketlist API server",
		Version: fmt.Sprintf("%s - build %.7s @ %s - %s", version, revision, date, runtime.Version()),
		Args:    coral.ExactArgs(0),
	}
	c.PersistentFlags().StringVarP(&cfg, "config", "c", "", "Configuration file")

	c.AddCommand(initCmd)
	c.AddCommand(reindexCmd)
	c.AddCommand(migrateCmd)
	c.AddCommand(serverCmd)

	createadminCmd.Flags().StringVarP(&username, "username", "u", "", "Administrator's username")
	createadminCmd.Flags().StringVarP(&email, "email", "e", "", "Administrator's email")
	c.AddCommand(createadminCmd)

	c.AddCommand(rmuserCmd)

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func dbnameWithPath(path string) string {
	if len(path) == 0 {
		return dbname
	}
	return filepath.Join(path, dbname)
}

func kdf(l int, k []byte) []byte {
	nhash := func() hash.Hash {
		h, err := blake2b.New256(nil)
		if err != nil {
			panic(err)
		}
		return h
	}

	payload := make([]byte, l)

	kdf := hkdf.New(nhash, k, nil, nil)
	_, err := io.ReadFull(kdf, payload)
	if err != nil {
		panic(err)
	}

	return payload
}

func open(konf *config.Config) (database.Client, error) {
	switch konf.Database.Driver {
	case config.DriverPostgres:
		return database.PostgresOpen(konf.Database.DSN)
	case config.DriverStorm:
		return database.StormOpen(dbnameWithPath(konf.Database.Path))
	default:
		return nil, errors.Errorf("unsupported database driver: %s", konf.Database.Driver)
	}
}

var (
	initCmd = &coral.Command{
		Use:   "init",
		Short: "Init the database",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, err := config.Load(cfg)
			if err != nil {
				return err
			}

			if konf.Database.Driver == config.DriverPostgres {
				return database.PostgresMigrate(konf.Database.DSN)
			}
			return database.StormInit(dbnameWithPath(konf.Database.Path))
		},
	}

	//
	reindexCmd = &coral.Command{
		Use:   "reindex",
		Short: "Reindex the database",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, err := config.Load(cfg)
			if err != nil {
				return err
			}

			if konf.Database.Driver != config.DriverStorm {
				return errors.Errorf("reindex is not supported by the %s driver", konf.Database.Driver)
			}
			return database.StormReIndex(dbnameWithPath(konf.Database.Path))
		},
	}

	//
	migrateCmd = &coral.Command{
		Use:   "migrate",
		Short: "Apply the pending PostgreSQL migrations",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, err := config.Load(cfg)
			if err != nil {
				return err
			}

			if konf.Database.Driver != config.DriverPostgres {
				return errors.Errorf("migrate is not supported by the %s driver", konf.Database.Driver)
			}
			return database.PostgresMigrate(konf.Database.DSN)
		},
	}

	//
	createadminCmd = &coral.Command{
		Use:   "createadmin",
		Short: "Create an administrator",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, err := config.Load(cfg)
			if err != nil {
				return err
			}
			if err = konf.Validate(); err != nil {
				return err
			}

			password, err := readline.Password("Password: ")
			if err != nil {
				return errors.Wrap(err, "could not read password from stdin")
			}

			db, err := open(konf)
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			users := service.NewUser(db, token.NewManager(kdf(32, []byte(konf.SecretKey))))
			user, err := users.CreateAdmin(service.RegisterParams{
				Username: username,
				Email:    email,
				Password: string(password),
			})
			if err != nil {
				return err
			}

			fmt.Println("Administrator created:", user.ID)
			return nil
		},
	}

	//
	rmuserCmd = &coral.Command{
		Use:   "rmuser USERNAME",
		Short: "Remove a user and its bucketlists from the database",
		Args:  coral.ExactArgs(1),
		RunE: func(_ *coral.Command, args []string) error {
			konf, err := config.Load(cfg)
			if err != nil {
				return err
			}

			db, err := open(konf)
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			users := service.NewUser(db, token.NewManager(kdf(32, []byte(konf.SecretKey))))
			user, n, err := users.Remove(args[0])
			if err != nil {
				if blerror.Is(err, blerror.KindNotFound) {
					fmt.Println("No account for this username")
					return nil
				}
				return err
			}

			fmt.Println("User removed:", user.ID)
			fmt.Println("Bucketlists removed:", n)
			return nil
		},
	}

	//
	//
	serverCmd = &coral.Command{
		Use:   "server",
		Short: "Start server",
		Args:  coral.ExactArgs(0),
		RunE: func(_ *coral.Command, _ []string) error {
			konf, err := config.Load(cfg)
			if err != nil {
				return err
			}
			if err = konf.Validate(); err != nil {
				return err
			}

			logr, err := logger.New(konf.Log)
			if err != nil {
				return err
			}

			db, err := open(konf)
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			engine := server.EchoEngine(server.IOC{
				Version:          version,
				Database:         db,
				Tokens:           token.NewManager(kdf(32, []byte(konf.SecretKey)), token.WithTTL(konf.Token.TTL)),
				Logger:           logr,
				NoRegistration:   konf.NoRegistration,
				DefaultPageLimit: konf.Pagination.DefaultLimit,
				MaxPageLimit:     konf.Pagination.MaxLimit,
			})
			server.PrintRoutes(engine)

			address := konf.Address
			message := "could not run server"
			logr.Infof("Server listening on %s", address)
			parts := strings.Split(address, ":")
			if len(parts) == 2 && parts[0] == "unix" {
				socketFile := parts[1]
				if _, err := os.Stat(socketFile); err == nil {
					logr.Infof("Removing existing %s", socketFile)
					os.Remove(socketFile)
				}
				defer os.Remove(socketFile)
				listener, err := net.Listen(parts[0], socketFile)
				if err != nil {
					return err
				}
				return errors.Wrap(engine.Server.Serve(listener), message)
			}
			return errors.Wrap(engine.Start(address), message)
		},
	}
)
