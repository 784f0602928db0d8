package server

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mdouchement/bucketlist/internal/blerror"
	"github.com/mdouchement/bucketlist/internal/database"
	"github.com/mdouchement/bucketlist/internal/server/middlewares"
	"github.com/mdouchement/bucketlist/internal/server/service"
	"github.com/mdouchement/bucketlist/internal/token"
	"github.com/sirupsen/logrus"
)

// An IOC is an Iversion Of Control pattern used to init the server package.
type IOC struct {
	Version        string
	Database       database.Client
	Tokens         *token.Manager
	Logger         logrus.FieldLogger
	NoRegistration bool
	// Pagination params
	DefaultPageLimit int
	MaxPageLimit     int
}

// EchoEngine instantiates the wep server.
func EchoEngine(ctrl IOC) *echo.Echo {
	engine := echo.New()
	engine.HideBanner = true
	engine.Use(middleware.Recover())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	engine.Use(middleware.Gzip())
	engine.Use(middlewares.Logger(ctrl.Logger))

	engine.Binder = middlewares.NewBinder()
	// Error handler
	engine.HTTPErrorHandler = middlewares.HTTPErrorHandler(ctrl.Logger)

	////////////
	// Router //
	////////////

	guard := service.NewGuard(ctrl.Database, ctrl.Tokens)

	router := engine.Group("")
	restricted := router.Group("")
	restricted.Use(middlewares.Authenticate(guard))

	// generic handlers
	//
	version := func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version": ctrl.Version,
		})
	}
	router.GET("/", version)
	router.GET("/version", version)

	//
	// auth handlers
	//
	auth := &auth{
		users: service.NewUser(ctrl.Database, ctrl.Tokens),
	}
	if !ctrl.NoRegistration {
		router.POST("/auth/register", auth.Register)
	}
	router.POST("/auth/login", auth.Login)
	restricted.POST("/auth/logout", auth.Logout)

	//
	// user handlers
	//
	user := &user{
		users: auth.users,
	}
	restricted.GET("/users", user.List)
	restricted.GET("/users/:id", user.Show)
	restricted.PUT("/users/:id", user.Update)
	restricted.DELETE("/users/:id", user.Delete)

	//
	// bucketlist handlers
	//
	bucketlist := &bucketlist{
		lists: service.NewBucketlist(ctrl.Database, guard, service.WithPageLimits(ctrl.DefaultPageLimit, ctrl.MaxPageLimit)),
	}
	restricted.GET("/bucketlists", bucketlist.List)
	restricted.POST("/bucketlists", bucketlist.Create)
	restricted.GET("/bucketlists/:id", bucketlist.Show)
	restricted.PUT("/bucketlists/:id", bucketlist.Update)
	restricted.DELETE("/bucketlists/:id", bucketlist.Delete)

	//
	// item handlers
	//
	item := &item{
		items: service.NewItem(ctrl.Database, guard),
	}
	restricted.POST("/bucketlists/:id/items", item.Create)
	restricted.GET("/bucketlists/:id/items/:item_id", item.Show)
	restricted.PUT("/bucketlists/:id/items/:item_id", item.Update)
	restricted.DELETE("/bucketlists/:id/items/:item_id", item.Delete)

	return engine
}

// PrintRoutes prints the Echo engin exposed routes.
func PrintRoutes(e *echo.Echo) {
	ignored := map[string]bool{
		"":   true,
		".":  true,
		"/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})

	fmt.Println("Routes:")
	for _, route := range routes {
		if ignored[route.Path] {
			continue
		}
		fmt.Printf("%6s %s\n", route.Method, route.Path)
	}
}

func currentUserID(c echo.Context) int {
	id, ok := c.Get(middlewares.CurrentUserIDContextKey).(int)
	if ok {
		return id
	}
	return 0
}

// paramID returns the positive integer path parameter of the given name.
// A malformed id cannot match any record.
func paramID(c echo.Context, name, notFound string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		return 0, blerror.NotFound(notFound)
	}
	return id, nil
}
