package service

import (
	"strings"
	"testing"

	"github.com/mdouchement/bucketlist/internal/blerror"
	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	assert.EqualError(t, validateName("", "bucketlist"), "Bucketlist name is required")
	assert.EqualError(t, validateName("", "bucketlist item"), "Bucketlist item name is required")

	for _, name := range []string{"Trip", "abcdefghijklmnopqrstu", "123456", "٣٤٥٦٧٨"} {
		err := validateName(name, "bucketlist")
		assert.True(t, blerror.Is(err, blerror.KindValidation), name)
		assert.EqualError(t, err, "Invalid bucketlist name or length (5-20 characters)", name)
	}

	for _, name := range []string{"Trips", "abcdefghijklmnopqrst", "12345a", "Café!", "Été en Provence"} {
		assert.NoError(t, validateName(name, "bucketlist"), name)
	}
}

func TestValidateDescription(t *testing.T) {
	assert.NoError(t, validateDescription(""))
	assert.NoError(t, validateDescription(string(make([]byte, 100))))
	assert.Error(t, validateDescription(string(make([]byte, 101))))
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, validatePassword("1234567"))
	assert.NoError(t, validatePassword("12345678"))
	assert.NoError(t, validatePassword("123456789012345"))
	assert.Error(t, validatePassword("1234567890123456"))
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, validateUsername("lena"))
	assert.NoError(t, validateUsername(" abcdefghijklmnopqrst "))
	assert.NoError(t, validateUsername("éééééééééééééééééééé"))

	err := validateUsername("abcdefghijklmnopqrstu")
	assert.True(t, blerror.Is(err, blerror.KindValidation))
	assert.EqualError(t, err, "Username should have at most 20 characters")
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, validateEmail("lena@nowhere.lan"))
	assert.NoError(t, validateEmail("lena.s+list@no-where.co.uk"))
	assert.EqualError(t, validateEmail("lena"), "Not a valid email")
	assert.Error(t, validateEmail("lena@nowhere"))
	assert.Error(t, validateEmail("le na@nowhere.lan"))

	local := strings.Repeat("a", 38)
	assert.NoError(t, validateEmail(local+"@nowhere.lan"))
	err := validateEmail(local + "a@nowhere.lan")
	assert.True(t, blerror.Is(err, blerror.KindValidation))
	assert.EqualError(t, err, "Email should have at most 50 characters")
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "", capitalize(""))
	assert.Equal(t, "Paragliding", capitalize("paraGLIDING"))
	assert.Equal(t, "Été", capitalize("éTÉ"))
	assert.Equal(t, "1 trip", capitalize("1 Trip"))
}
