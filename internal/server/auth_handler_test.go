package server_test

import (
	"net/http"
	"testing"

	"github.com/appleboy/gofight/v2"
	"github.com/mdouchement/bucketlist/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fastjson"
)

func TestRequestRegistration(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()

	r.POST("/auth/register").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"validation","message":"Request body can't be empty"}}`, r.Body.String())
	})

	params := gofight.D{
		"username": "lena",
		"email":    "lena@x.com",
	}
	r.POST("/auth/register").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"validation","message":"All fields are required"}}`, r.Body.String())
	})

	params["password"] = "short"
	r.POST("/auth/register").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"validation","message":"Password should have 8-15 characters"}}`, r.Body.String())
	})

	params["password"] = "sfnbsdfiruio3r"
	params["username"] = "lena_with_a_very_long_name"
	r.POST("/auth/register").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"validation","message":"Username should have at most 20 characters"}}`, r.Body.String())
	})

	params["username"] = "lena"
	r.POST("/auth/register").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusCreated, r.Code)
		assert.JSONEq(t, `{"Message":"New user registered successfully"}`, r.Body.String())
	})

	user, err := ioc.Database.FindUserByUsername("lena")
	assert.NoError(t, err)
	assert.Equal(t, "lena@x.com", user.Email)

	params["username"] = "LENA"
	params["email"] = "other@x.com"
	r.POST("/auth/register").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusConflict, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"conflict","message":"Username or email already exists"}}`, r.Body.String())
	})
}

func TestRequestRegistrationWithForm(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	params := gofight.H{
		"username": "george",
		"email":    "george@nowhere.lan",
		"password": "password42",
	}
	r.POST("/auth/register").SetForm(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusCreated, r.Code)
	})
}

func TestRequestRegistrationDisabled(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()

	ioc.NoRegistration = true
	engine = server.EchoEngine(ioc)

	params := gofight.D{
		"username": "lena",
		"email":    "lena@x.com",
		"password": "sfnbsdfiruio3r",
	}
	r.POST("/auth/register").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.NotEqual(t, http.StatusCreated, r.Code)
	})

	_, err := ioc.Database.FindUserByUsername("lena")
	assert.True(t, ioc.Database.IsNotFound(err))
}

func TestRequestLogin(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()
	user := createUser(ioc, "lena", false)

	params := gofight.D{
		"username": "lena",
	}
	r.POST("/auth/login").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"validation","message":"Username and password are required"}}`, r.Body.String())
	})

	params["password"] = "password43"
	r.POST("/auth/login").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid-auth","message":"Incorrect login details"}}`, r.Body.String())
	})

	params["password"] = "password42"
	r.POST("/auth/login").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)

		assert.Equal(t, "Welcome lena", string(v.GetStringBytes("Message")))

		token := string(v.GetStringBytes("Token"))
		assert.Regexp(t, `.*\..*\..*`, token)

		id, err := ioc.Tokens.Verify(token)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, id)
	})
}

func TestRequestLogout(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()
	user := createUser(ioc, "lena", false)

	r.POST("/auth/logout").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid-auth","message":"Please login"}}`, r.Body.String())
	})

	header := gofight.H{"Authorization": accessToken(ioc, user)}
	r.POST("/auth/logout").SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"Message":"Logged out. The token remains valid until its expiration"}`, r.Body.String())
	})
}

func TestRequestWithInvalidToken(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()
	user := createUser(ioc, "lena", false)

	header := gofight.H{"Authorization": "Bearer not.a.token"}
	r.GET("/bucketlists").SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid-auth","message":"Invalid token. Please log in again"}}`, r.Body.String())
	})

	header = gofight.H{"Authorization": "Bearer " + accessToken(ioc, user)}
	assert.NoError(t, ioc.Database.Delete(user))
	r.GET("/bucketlists").SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid-auth","message":"No such user for given token."}}`, r.Body.String())
	})
}
