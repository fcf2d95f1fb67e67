package datastore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
)

// sealer wraps AES-256-GCM with a key hashed from arbitrary key material.
// One static key, no rotation: re-keying requires re-encrypting the file.
type sealer struct {
	aead cipher.AEAD
}

func newSealer(keyMaterial []byte) (*sealer, error) {
	sum := sha256.Sum256(keyMaterial)
	block, err := aes.NewCipher(sum[:])
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &sealer{aead: aead}, nil
}

// seal encrypts plain and prepends the random nonce.
func (s *sealer) seal(plain []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return s.aead.Seal(nonce, nonce, plain, nil), nil
}

// open decrypts a blob produced by seal.
func (s *sealer) open(blob []byte) ([]byte, error) {
	if len(blob) < s.aead.NonceSize() {
		return nil, fmt.Errorf("blob too short")
	}
	nonce, ciphertext := blob[:s.aead.NonceSize()], blob[s.aead.NonceSize():]
	return s.aead.Open(nil, nonce, ciphertext, nil)
}
