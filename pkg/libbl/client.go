package libbl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"github.com/pkg/errors"
)

type (
	// A Client defines all interactions that can be performed on a bucketlist server.
	Client interface {
		// Register creates a new account on the bucketlist server.
		Register(username, email, password string) error
		// Login connects the Client to the bucketlist server.
		Login(username, password string) error
		// Logout disconnects the client. The server does not revoke the token.
		Logout() error
		// BearerToken returns the token used for requests sent to the bucketlist server.
		BearerToken() string
		// SetBearerToken sets the token used for requests sent to the bucketlist server.
		SetBearerToken(token string)

		// Bucketlists returns a page of the bucketlists matching the given params.
		Bucketlists(params ListParams) (*BucketlistPage, error)
		// Bucketlist returns the bucketlist and its items.
		Bucketlist(id int) (*Bucketlist, error)
		// CreateBucketlist creates a new bucketlist.
		CreateBucketlist(name, description string) (*Bucketlist, error)
		// UpdateBucketlist updates the given bucketlist.
		UpdateBucketlist(id int, params UpdateBucketlist) (*Bucketlist, error)
		// DeleteBucketlist deletes the given bucketlist and its items.
		DeleteBucketlist(id int) error

		// Item returns the item of the given bucketlist.
		Item(listID, id int) (*Item, error)
		// CreateItem creates a new item in the given bucketlist.
		CreateItem(listID int, name, description string) (*Item, error)
		// UpdateItem updates the given item.
		UpdateItem(listID, id int, params UpdateItem) (*Item, error)
		// DeleteItem deletes the given item.
		DeleteItem(listID, id int) error
	}

	p      map[string]any
	client struct {
		http     *http.Client
		endpoint string
		bearer   string
	}
)

// NewDefaultClient returns a new Client with default HTTP client.
func NewDefaultClient(endpoint string) (Client, error) {
	return NewClient(http.DefaultClient, endpoint)
}

// NewClient returns a new Client.
func NewClient(c *http.Client, endpoint string) (Client, error) {
	_, err := url.Parse(endpoint)
	return &client{endpoint: endpoint, http: c}, errors.Wrap(err, "could not parse endpoint")
}

func (c *client) Register(username, email, password string) error {
	return c.do(http.MethodPost, "/auth/register", nil, p{"username": username, "email": email, "password": password}, nil)
}

func (c *client) Login(username, password string) error {
	var login struct {
		Token string `json:"Token"`
	}

	err := c.do(http.MethodPost, "/auth/login", nil, p{"username": username, "password": password}, &login)
	if err != nil {
		return err
	}

	c.bearer = login.Token
	return nil
}

func (c *client) Logout() error {
	if c.bearer == "" {
		return errors.New("no token defined")
	}

	if err := c.do(http.MethodPost, "/auth/logout", nil, nil, nil); err != nil {
		return err
	}

	c.bearer = ""
	return nil
}

func (c *client) BearerToken() string {
	return c.bearer
}

func (c *client) SetBearerToken(token string) {
	c.bearer = token
}

func (c *client) Bucketlists(params ListParams) (*BucketlistPage, error) {
	query := url.Values{}
	if params.Query != "" {
		query.Set("q", params.Query)
	}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}

	var page BucketlistPage
	return &page, c.do(http.MethodGet, "/bucketlists", query, nil, &page)
}

func (c *client) Bucketlist(id int) (*Bucketlist, error) {
	var list Bucketlist
	return &list, c.do(http.MethodGet, bucketlistPath(id), nil, nil, &list)
}

func (c *client) CreateBucketlist(name, description string) (*Bucketlist, error) {
	var created struct {
		Bucketlist Bucketlist `json:"bucketlist"`
	}

	err := c.do(http.MethodPost, "/bucketlists", nil, p{"bucketlist": name, "description": description}, &created)
	return &created.Bucketlist, err
}

func (c *client) UpdateBucketlist(id int, params UpdateBucketlist) (*Bucketlist, error) {
	var list Bucketlist
	return &list, c.do(http.MethodPut, bucketlistPath(id), nil, params, &list)
}

func (c *client) DeleteBucketlist(id int) error {
	return c.do(http.MethodDelete, bucketlistPath(id), nil, nil, nil)
}

func (c *client) Item(listID, id int) (*Item, error) {
	var item Item
	return &item, c.do(http.MethodGet, itemPath(listID, id), nil, nil, &item)
}

func (c *client) CreateItem(listID int, name, description string) (*Item, error) {
	var created struct {
		Item Item `json:"item"`
	}

	err := c.do(http.MethodPost, path.Join(bucketlistPath(listID), "items"), nil, p{"item": name, "description": description}, &created)
	return &created.Item, err
}

func (c *client) UpdateItem(listID, id int, params UpdateItem) (*Item, error) {
	var item Item
	return &item, c.do(http.MethodPut, itemPath(listID, id), nil, params, &item)
}

func (c *client) DeleteItem(listID, id int) error {
	return c.do(http.MethodDelete, itemPath(listID, id), nil, nil, nil)
}

func (c *client) do(method, route string, query url.Values, payload, v any) error {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return errors.Wrap(err, "could not parse endpoint")
	}
	u.Path = path.Join(u.Path, route)
	u.RawQuery = query.Encode()

	//
	// Build request
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "could not serialize payload")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, u.String(), body)
	if err != nil {
		return errors.Wrap(err, "could not build request")
	}
	req.Close = true
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	if c.bearer != "" {
		req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.bearer))
	}

	//
	// Perform request
	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "could not perform request")
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		return parseBLError(res.Body, res.StatusCode)
	}

	//
	// Process response
	if v == nil {
		return nil
	}

	dec := json.NewDecoder(res.Body)
	return errors.Wrap(dec.Decode(v), "could not parse response")
}

func bucketlistPath(id int) string {
	return path.Join("/bucketlists", strconv.Itoa(id))
}

func itemPath(listID, id int) string {
	return path.Join(bucketlistPath(listID), "items", strconv.Itoa(id))
}
