package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"social-hub/domain/model"
	"social-hub/domain/repository"
)

// TokenCodec encrypts credential tokens with AES-256-CBC. The stored format
// is "iv:ciphertext", both hex-encoded, with a fresh random IV per call and
// PKCS#7 padding.
type TokenCodec struct {
	key []byte
}

var _ repository.ICredentialCodec = (*TokenCodec)(nil)

// NewTokenCodec expects a 64-character hex string (32-byte key). An empty or
// malformed key returns model.ErrEncryptionKeyNotSet so callers can refuse to
// start instead of silently skipping encryption.
func NewTokenCodec(hexKey string) (*TokenCodec, error) {
	if hexKey == "" {
		return nil, model.ErrEncryptionKeyNotSet
	}
	key, err := hex.DecodeString(hexKey)
	if err != nil || len(key) != 32 {
		return nil, model.ErrEncryptionKeyNotSet
	}
	return &TokenCodec{key: key}, nil
}

func (c *TokenCodec) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}
	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}
	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)
	return fmt.Sprintf("%s:%s", hex.EncodeToString(iv), hex.EncodeToString(ciphertext)), nil
}

func (c *TokenCodec) Decrypt(payload string) (string, error) {
	parts := strings.SplitN(payload, ":", 2)
	if len(parts) != 2 {
		return "", &model.DecryptionError{Cause: errors.New("malformed payload: missing iv separator")}
	}
	iv, err := hex.DecodeString(parts[0])
	if err != nil || len(iv) != aes.BlockSize {
		return "", &model.DecryptionError{Cause: errors.New("malformed iv")}
	}
	ciphertext, err := hex.DecodeString(parts[1])
	if err != nil || len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", &model.DecryptionError{Cause: errors.New("malformed ciphertext")}
	}
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", &model.DecryptionError{Cause: err}
	}
	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)
	unpadded, err := pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return "", &model.DecryptionError{Cause: err}
	}
	return string(unpadded), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padded length")
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize || padding > len(data) {
		return nil, errors.New("invalid padding")
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-padding], nil
}
