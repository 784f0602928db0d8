package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/bucketlist/internal/blerror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// HTTPErrorHandler returns a handler that formats rendered errors.
func HTTPErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var blerr *blerror.BLError
		if errors.As(err, &blerr) {
			switch status := blerror.StatusCode(blerr); {
			case status == http.StatusNotModified:
				// No body allowed.
				_ = c.NoContent(status)
			case status < 500:
				_ = c.JSON(status, blerr)
			default:
				internal(log, err, c)
			}
			return
		}

		var herr *echo.HTTPError
		if errors.As(err, &herr) {
			if herr.Internal != nil {
				log.WithError(herr.Internal).Warn("echo error")
			}
			_ = c.JSON(herr.Code, echo.Map{
				"error": echo.Map{
					"message": fmt.Sprint(herr.Message),
				},
			})
			return
		}

		internal(log, err, c)
	}
}

func internal(log logrus.FieldLogger, err error, c echo.Context) {
	id := uuid.Must(uuid.NewV4()).String()
	log.WithField("id", id).WithError(err).Error("unexpected error")

	_ = c.JSON(http.StatusInternalServerError, echo.Map{
		"error": echo.Map{
			"message": fmt.Sprintf("Unexpected error (id: %s)", id),
		},
	})
}
