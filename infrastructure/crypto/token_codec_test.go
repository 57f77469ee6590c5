package crypto_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"social-hub/domain/model"
	"social-hub/infrastructure/crypto"
)

const testKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec, err := crypto.NewTokenCodec(testKey)
	assert.NoError(t, err)

	for _, token := range []string{"THQVJ...", "short", strings.Repeat("x", 300)} {
		encrypted, err := codec.Encrypt(token)
		assert.NoError(t, err)
		assert.NotEqual(t, token, encrypted)
		assert.Contains(t, encrypted, ":")

		decrypted, err := codec.Decrypt(encrypted)
		assert.NoError(t, err)
		assert.Equal(t, token, decrypted)
	}
}

func TestTokenCodec_FreshIVPerEncryption(t *testing.T) {
	codec, err := crypto.NewTokenCodec(testKey)
	assert.NoError(t, err)

	first, err := codec.Encrypt("same-token")
	assert.NoError(t, err)
	second, err := codec.Encrypt("same-token")
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestTokenCodec_MissingOrMalformedKey(t *testing.T) {
	for _, key := range []string{"", "not-hex", "abcd", testKey + "00"} {
		_, err := crypto.NewTokenCodec(key)
		assert.ErrorIs(t, err, model.ErrEncryptionKeyNotSet, "key %q", key)
	}
}

func TestTokenCodec_MalformedPayload(t *testing.T) {
	codec, err := crypto.NewTokenCodec(testKey)
	assert.NoError(t, err)

	for _, payload := range []string{
		"",
		"no-separator",
		"zz:zz",
		"00112233445566778899aabbccddeeff:zz",
		"00112233445566778899aabbccddeeff:0011",
	} {
		_, err := codec.Decrypt(payload)
		var decryptionErr *model.DecryptionError
		assert.True(t, errors.As(err, &decryptionErr), "payload %q should fail with DecryptionError, got %v", payload, err)
		assert.Equal(t, "credential decryption failed", err.Error())
	}
}

func TestTokenCodec_WrongKeyFailsDecryption(t *testing.T) {
	codec, err := crypto.NewTokenCodec(testKey)
	assert.NoError(t, err)
	other, err := crypto.NewTokenCodec(strings.Repeat("ff", 32))
	assert.NoError(t, err)

	encrypted, err := codec.Encrypt("token-under-test")
	assert.NoError(t, err)

	if decrypted, err := other.Decrypt(encrypted); err == nil {
		// CBC with a wrong key usually breaks the padding; when it does
		// not, the plaintext still must not match.
		assert.NotEqual(t, "token-under-test", decrypted)
	} else {
		var decryptionErr *model.DecryptionError
		assert.True(t, errors.As(err, &decryptionErr))
	}
}
