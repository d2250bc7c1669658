package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"io"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize   = 16
	iterations = 100000
	keySize    = 32 // AES-256
)

var (
	// ErrNoPassphrase is returned by NewSealer for an empty passphrase.
	ErrNoPassphrase = errors.New("encryption passphrase not set")
	// ErrOpen means sealed data is corrupt or was sealed with another passphrase.
	ErrOpen = errors.New("cannot open sealed data")
)

// Sealer encrypts small secrets such as OAuth tokens with a passphrase.
// Each Seal derives a fresh key from a random salt stored with the ciphertext.
type Sealer struct {
	passphrase []byte
}

// NewSealer creates a Sealer for passphrase.
func NewSealer(passphrase string) (*Sealer, error) {
	if passphrase == "" {
		return nil, ErrNoPassphrase
	}
	return &Sealer{passphrase: []byte(passphrase)}, nil
}

func (s *Sealer) gcm(salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key(s.passphrase, salt, iterations, keySize, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts plaintext with AES-GCM and returns base64(salt | nonce | ciphertext).
func (s *Sealer) Seal(plaintext []byte) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", errors.Wrap(err, "reading salt")
	}

	gcm, err := s.gcm(salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Wrap(err, "reading nonce")
	}

	out := make([]byte, 0, saltSize+len(nonce)+len(plaintext)+gcm.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	out = gcm.Seal(out, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Open reverses Seal.
func (s *Sealer) Open(sealed string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, errors.Wrap(ErrOpen, "not base64")
	}
	if len(data) < saltSize {
		return nil, errors.Wrap(ErrOpen, "too short")
	}

	salt, rest := data[:saltSize], data[saltSize:]
	gcm, err := s.gcm(salt)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(rest) < nonceSize {
		return nil, errors.Wrap(ErrOpen, "too short")
	}

	plaintext, err := gcm.Open(nil, rest[:nonceSize], rest[nonceSize:], nil)
	if err != nil {
		return nil, errors.Wrap(ErrOpen, "authentication failed")
	}
	return plaintext, nil
}
