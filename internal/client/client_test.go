package client_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/mdouchement/bucketlist/internal/client"
	"github.com/mdouchement/bucketlist/pkg/libbl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealUnseal(t *testing.T) {
	cfg := client.Config{
		Endpoint:    "http://localhost:5000",
		Username:    "lena",
		BearerToken: "token",
	}

	ciphertext, err := client.Seal([]byte("passphrase"), cfg)
	require.NoError(t, err)
	assert.NotContains(t, string(ciphertext), "lena")

	unsealed, err := client.Unseal([]byte("passphrase"), ciphertext)
	require.NoError(t, err)
	assert.Equal(t, cfg, unsealed)

	_, err = client.Unseal([]byte("wrong"), ciphertext)
	assert.EqualError(t, err, "could not decrypt credentials file: chacha20poly1305: message authentication failed")

	_, err = client.Unseal([]byte("passphrase"), ciphertext[:10])
	assert.EqualError(t, err, "credentials file is too short")
}

func TestPrintBucketlistPage(t *testing.T) {
	modified := time.Date(2024, 5, 1, 12, 30, 0, 0, time.Local)
	page := &libbl.BucketlistPage{
		Bucketlists: []libbl.Bucketlist{
			{ID: 1, Name: "Extreme sports", Done: true, UpdatedAt: modified},
			{ID: 12, Name: "Trip to Japan", UpdatedAt: modified},
		},
		Pagination: libbl.Pagination{Page: 1, Limit: 2, Total: 3, TotalPages: 2, HasNext: true},
	}

	var buf bytes.Buffer
	client.PrintBucketlistPage(&buf, page)
	assert.Equal(t, ""+
		"ID  NAME            DONE  MODIFIED\n"+
		"1   Extreme sports  [x]   2024-05-01 12:30\n"+
		"12  Trip to Japan   [ ]   2024-05-01 12:30\n"+
		"Page 1/2 (3 bucketlists)\n", buf.String())
}

func TestPrintBucketlist(t *testing.T) {
	list := &libbl.Bucketlist{
		ID:          1,
		Name:        "Extreme sports",
		Description: "Before 40",
	}

	var buf bytes.Buffer
	client.PrintBucketlist(&buf, list)
	assert.Equal(t, "#1 [ ] Extreme sports\nBefore 40\n", buf.String())

	list.Items = libbl.Items{
		{ID: 3, Name: "Paragliding", Done: true},
		{ID: 4, Name: "Bungee jumping", Description: "Over a bridge"},
	}

	buf.Reset()
	client.PrintBucketlist(&buf, list)
	assert.Equal(t, ""+
		"#1 [ ] Extreme sports\n"+
		"Before 40\n"+
		"\n"+
		"ID  NAME            DONE  DESCRIPTION\n"+
		"3   Paragliding     [x]   \n"+
		"4   Bungee jumping  [ ]   Over a bridge\n", buf.String())
}

func TestPrintItem(t *testing.T) {
	var buf bytes.Buffer
	client.PrintItem(&buf, &libbl.Item{ID: 3, ListID: 1, Name: "Paragliding"})
	assert.Equal(t, "#3 [ ] Paragliding (bucketlist #1)\n", buf.String())
}
