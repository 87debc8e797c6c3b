// Package crypto seals files at rest with AES-256-GCM.
package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// sealedPrefix marks sealed blobs so Open can pass plain data through.
var sealedPrefix = []byte("SPv1:")

var ErrNotConfigured = errors.New("encryption key is not configured")

type Service struct {
	aead cipher.AEAD
}

// New accepts a 32-byte key encoded as hex, base64 or raw text. An empty key
// yields an unconfigured service that seals nothing.
func New(key string) (*Service, error) {
	if key == "" {
		return &Service{}, nil
	}
	decoded := decodeKey(key)
	if len(decoded) != 32 {
		return nil, fmt.Errorf("DATA_ENCRYPTION_KEY must be 32 bytes after decoding, got %d", len(decoded))
	}
	block, err := aes.NewCipher(decoded)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Service{aead: aead}, nil
}

func (s *Service) Configured() bool {
	return s != nil && s.aead != nil
}

// Seal returns prefix || nonce || ciphertext.
func (s *Service) Seal(plain []byte) ([]byte, error) {
	if !s.Configured() {
		return nil, ErrNotConfigured
	}
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(sealedPrefix)+len(nonce)+len(plain)+s.aead.Overhead())
	out = append(out, sealedPrefix...)
	out = append(out, nonce...)
	return s.aead.Seal(out, nonce, plain, nil), nil
}

// Open reverses Seal. Data without the sealed prefix is returned unchanged.
func (s *Service) Open(data []byte) ([]byte, error) {
	if !IsSealed(data) {
		return data, nil
	}
	if !s.Configured() {
		return nil, ErrNotConfigured
	}
	body := data[len(sealedPrefix):]
	if len(body) < s.aead.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}
	nonce, ciphertext := body[:s.aead.NonceSize()], body[s.aead.NonceSize():]
	return s.aead.Open(nil, nonce, ciphertext, nil)
}

func IsSealed(data []byte) bool {
	return bytes.HasPrefix(data, sealedPrefix)
}

func decodeKey(raw string) []byte {
	if len(raw) == 64 {
		if decoded, err := hex.DecodeString(raw); err == nil {
			return decoded
		}
	}
	if decoded, err := base64.StdEncoding.DecodeString(raw); err == nil && len(decoded) == 32 {
		return decoded
	}
	if decoded, err := base64.RawStdEncoding.DecodeString(raw); err == nil && len(decoded) == 32 {
		return decoded
	}
	return []byte(raw)
}
