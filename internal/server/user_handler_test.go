package server_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/appleboy/gofight/v2"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fastjson"
)

func TestRequestUserList(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()
	admin := createUser(ioc, "root", true)
	lena := createUser(ioc, "lena", false)

	header := gofight.H{"Authorization": accessToken(ioc, lena)}
	r.GET("/users").SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"unauthorized","message":"Unauthorised access"}}`, r.Body.String())
	})

	header = gofight.H{"Authorization": accessToken(ioc, admin)}
	r.GET("/users").SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)

		users := v.GetArray()
		assert.Len(t, users, 2)
		assert.Equal(t, "lena", string(users[0].GetStringBytes("username")))
		assert.Equal(t, "root", string(users[1].GetStringBytes("username")))
		assert.True(t, users[1].GetBool("admin"))
		assert.Nil(t, users[0].Get("password"))
	})
}

func TestRequestUserShow(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()
	lena := createUser(ioc, "lena", false)
	george := createUser(ioc, "george", false)

	header := gofight.H{"Authorization": accessToken(ioc, lena)}
	r.GET(fmt.Sprintf("/users/%d", lena.ID)).SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)
		assert.Equal(t, lena.ID, v.GetInt("user_id"))
		assert.Equal(t, "lena@nowhere.lan", string(v.GetStringBytes("email")))
		assert.True(t, v.GetBool("active"))
	})

	r.GET(fmt.Sprintf("/users/%d", george.ID)).SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
	})

	r.GET("/users/abc").SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"not-found","message":"User does not exist"}}`, r.Body.String())
	})
}

func TestRequestUserUpdate(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()
	lena := createUser(ioc, "lena", false)
	createUser(ioc, "george", false)

	header := gofight.H{"Authorization": accessToken(ioc, lena)}
	path := fmt.Sprintf("/users/%d", lena.ID)

	r.PUT(path).SetHeader(header).SetJSON(gofight.D{"username": "Lena"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotModified, r.Code)
		assert.Empty(t, r.Body.String())
	})

	r.PUT(path).SetHeader(header).SetJSON(gofight.D{"username": "george"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusConflict, r.Code)
	})

	r.PUT(path).SetHeader(header).SetJSON(gofight.D{"password": "1234"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
	})

	r.PUT(path).SetHeader(header).SetJSON(gofight.D{"username": "lenny"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)
		assert.Equal(t, "lenny", string(v.GetStringBytes("username")))
	})

	r.PUT("/users/42").SetHeader(header).SetJSON(gofight.D{"username": "other"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
	})
}

func TestRequestUserDelete(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()
	admin := createUser(ioc, "root", true)
	lena := createUser(ioc, "lena", false)
	list := createBucketlist(ioc, lena, "Paragliding")
	item := createItem(ioc, list, "Iten Paragliding", false)

	path := fmt.Sprintf("/users/%d", lena.ID)

	header := gofight.H{"Authorization": accessToken(ioc, lena)}
	r.DELETE(path).SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
	})

	header = gofight.H{"Authorization": accessToken(ioc, admin)}
	r.DELETE(path).SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"Message":"User lena deleted successfully"}`, r.Body.String())
	})

	r.DELETE(path).SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
	})

	_, err := ioc.Database.FindBucketlist(list.ID)
	assert.True(t, ioc.Database.IsNotFound(err))
	_, err = ioc.Database.FindItem(item.ID)
	assert.True(t, ioc.Database.IsNotFound(err))
}
