package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/bucketlist/internal/blerror"
)

type binder struct {
	echo.DefaultBinder
	methodsWithBody map[string]bool
}

// NewBinder returns a wrapp of the default binder implementation with extra checks.
// Binding failures are rendered as validation errors.
func NewBinder() echo.Binder {
	return &binder{
		methodsWithBody: map[string]bool{
			http.MethodPost:  true,
			http.MethodPatch: true,
			http.MethodPut:   true,
		},
	}
}

// Bind implements the echo.Bind interface.
func (b *binder) Bind(i any, c echo.Context) error {
	if c.Request().ContentLength == 0 && b.methodsWithBody[c.Request().Method] {
		return blerror.Validation("Request body can't be empty")
	}

	if err := b.DefaultBinder.Bind(i, c); err != nil {
		if herr, ok := err.(*echo.HTTPError); ok && herr.Code == http.StatusUnsupportedMediaType {
			return err
		}
		return blerror.Validation("Could not parse the request parameters")
	}
	return nil
}
