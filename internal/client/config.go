package client

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/mdouchement/bucketlist/pkg/libbl"
	sargon2 "github.com/mdouchement/simple-argon2"
	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	saltKeyLength   = 16
	credentialsfile = ".bucketlist"
)

// A Config holds client's configuration.
type Config struct {
	Endpoint    string `json:"endpoint"`
	Username    string `json:"username"`
	BearerToken string `json:"bearer_token"`
}

// Remove removes the credential files from the current directory.
func Remove() error {
	return os.Remove(credentialsfile)
}

// Load gets the configuration from the current folder according to `credentialsfile` const.
func Load() (Config, error) {
	fmt.Println("Loading credentials from " + credentialsfile)

	ciphertext, err := os.ReadFile(credentialsfile)
	if err != nil {
		return Config{}, errors.Wrap(err, "could not read credentials file")
	}

	passphrase, err := readline.Password("passphrase: ")
	if err != nil {
		return Config{}, errors.Wrap(err, "could not read passphrase from stdin")
	}

	return Unseal(passphrase, ciphertext)
}

// Save stores the configuration in the current folder according to `credentialsfile` const.
func Save(cfg Config) error {
	fmt.Println("Storing credentials in current directory as " + credentialsfile)
	passphrase, err := readline.Password("passphrase: ")
	if err != nil {
		return errors.Wrap(err, "could not read passphrase from stdin")
	}

	ciphertext, err := Seal(passphrase, cfg)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(credentialsfile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", credentialsfile)
	}
	defer f.Close()

	_, err = f.Write(ciphertext)
	if err != nil {
		return errors.Wrap(err, "could not store credentials")
	}

	return errors.Wrap(f.Sync(), "could not store credentials")
}

// Seal encrypts the configuration with a key derived from the passphrase.
// The output is salt || nonce || ciphertext.
func Seal(passphrase []byte, cfg Config) ([]byte, error) {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "could not serialize config")
	}

	//
	// Key derivation of passphrase

	salt, err := sargon2.GenerateRandomBytes(saltKeyLength)
	if err != nil {
		return nil, errors.Wrap(err, "could not generate salt for credentials")
	}
	hash := argon2.IDKey(passphrase, salt, 3, 64<<10, 2, 32)

	//
	// Seal config

	aead, err := chacha20poly1305.NewX(hash)
	if err != nil {
		return nil, errors.Wrap(err, "could not create AEAD")
	}
	nonce, err := sargon2.GenerateRandomBytes(uint32(aead.NonceSize()))
	if err != nil {
		return nil, errors.Wrap(err, "could not generate nonce for credentials")
	}

	ciphertext := aead.Seal(nil, nonce, payload, nil)
	ciphertext = append(nonce, ciphertext...)
	return append(salt, ciphertext...), nil
}

// Unseal decrypts a configuration sealed by Seal.
func Unseal(passphrase, ciphertext []byte) (Config, error) {
	var cfg Config

	if len(ciphertext) < saltKeyLength+chacha20poly1305.NonceSizeX {
		return cfg, errors.New("credentials file is too short")
	}

	//
	// Key derivation of passphrase

	salt := ciphertext[:saltKeyLength]
	ciphertext = ciphertext[saltKeyLength:]
	hash := argon2.IDKey(passphrase, salt, 3, 64<<10, 2, 32)

	//
	// Unseal config

	aead, err := chacha20poly1305.NewX(hash)
	if err != nil {
		return cfg, errors.Wrap(err, "could not create AEAD")
	}

	nonce := ciphertext[:aead.NonceSize()]
	ciphertext = ciphertext[aead.NonceSize():]

	payload, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return cfg, errors.Wrap(err, "could not decrypt credentials file")
	}

	err = json.Unmarshal(payload, &cfg)
	return cfg, errors.Wrap(err, "could not parse config")
}

// connect returns a client authenticated with the stored credentials.
func connect() (libbl.Client, error) {
	cfg, err := Load()
	if err != nil {
		return nil, errors.Wrap(err, "could not load config")
	}

	client, err := libbl.NewDefaultClient(cfg.Endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "could not reach bucketlist endpoint")
	}
	client.SetBearerToken(cfg.BearerToken)

	return client, nil
}
