package libbl

import (
	"encoding/json"
	"io"
	"net/http"
)

// A BLError reprensents an HTTP error returned by the bucketlist server.
type BLError struct {
	StatusCode int
	Err        struct {
		Tag     string `json:"tag"`
		Message string `json:"message"`
	} `json:"error"`
}

func parseBLError(r io.Reader, code int) error {
	blerr := BLError{StatusCode: code}
	if code == http.StatusNotModified {
		blerr.Err.Tag = "not-modified"
		blerr.Err.Message = http.StatusText(code)
		return &blerr
	}

	dec := json.NewDecoder(r)
	if err := dec.Decode(&blerr); err != nil || blerr.Err.Message == "" {
		blerr.Err.Message = http.StatusText(code)
	}
	return &blerr
}

func (e *BLError) Error() string {
	return e.Err.Message
}

// IsNotModified returns true if err is a BLError telling nothing has been modified.
func IsNotModified(err error) bool {
	blerr, ok := err.(*BLError)
	return ok && blerr.StatusCode == http.StatusNotModified
}
