package lib

import (
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestEncryptDecrypt(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		ciphertext, err := Encrypt("Priya Sharma, +91 98765 43210", testKey)
		require.NoError(t, err)
		assert.NotEqual(t, "Priya Sharma, +91 98765 43210", ciphertext)

		plaintext, err := Decrypt(ciphertext, testKey)
		require.NoError(t, err)
		assert.Equal(t, "Priya Sharma, +91 98765 43210", plaintext)
	})

	t.Run("empty passes through", func(t *testing.T) {
		ciphertext, err := Encrypt("", testKey)
		require.NoError(t, err)
		assert.Equal(t, "", ciphertext)
	})

	t.Run("wrong key length rejected", func(t *testing.T) {
		_, err := Encrypt("data", "short")
		assert.Error(t, err)
	})

	t.Run("tampered ciphertext rejected", func(t *testing.T) {
		ciphertext, err := Encrypt("data", testKey)
		require.NoError(t, err)

		_, err = Decrypt("AAAA"+ciphertext[4:], testKey)
		assert.Error(t, err)
	})
}

func TestGenerateOrderNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^KL-[A-Z0-9]{4}$`)
	for i := 0; i < 20; i++ {
		assert.Regexp(t, pattern, GenerateOrderNumber())
	}
}

func TestGenerateProductCode(t *testing.T) {
	code, err := GenerateProductCode("Banarasi Silk Saree", 4)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^BAN-[A-Z0-9]{4}$`), code)

	code, err = GenerateProductCode("---", 4)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(code, "-"))
}

func TestMakeProductSlug(t *testing.T) {
	assert.Equal(t, "banarasi-silk-saree-sar-7kq2", MakeProductSlug("Banarasi Silk Saree", "SAR-7KQ2"))
	assert.Equal(t, "kota-doria-kurta-kur-1a2b", MakeProductSlug("  Kota Doria Kurta  ", "KUR-1A2B"))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello world", SanitizeString("  hello \t\n world  "))
	assert.Equal(t, "abc", SanitizeString("a\x00b\x1bc"))
	assert.Equal(t, "", SanitizeString("   "))
}

type echoBody struct {
	Email string `json:"email" validate:"required,email"`
	Qty   int    `json:"qty" validate:"gte=1"`
}

func TestExtractAndValidateBody(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.in","qty":2}`))
		body, err := ExtractAndValidateBody[echoBody](r)
		require.NoError(t, err)
		assert.Equal(t, "a@b.in", body.Email)
	})

	t.Run("validation failure maps field errors", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"nope","qty":0}`))
		_, err := ExtractAndValidateBody[echoBody](r)
		require.Error(t, err)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Len(t, ve.Errors, 2)
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.in","qty":1,"admin":true}`))
		_, err := ExtractAndValidateBody[echoBody](r)
		assert.Error(t, err)
	})
}

func TestDecodeArgon2Hash(t *testing.T) {
	t.Run("well formed hash", func(t *testing.T) {
		encoded := "$argon2id$v=19$m=65536,t=1,p=4$c29tZXNhbHQ$aGFzaGJ5dGVzaGFzaGJ5dGVz"
		parts, err := DecodeArgon2Hash(encoded)
		require.NoError(t, err)
		assert.Equal(t, uint32(65536), parts.Memory)
		assert.Equal(t, uint32(1), parts.Time)
		assert.Equal(t, uint8(4), parts.Threads)
		assert.Equal(t, []byte("somesalt"), parts.Salt)
	})

	t.Run("malformed hash", func(t *testing.T) {
		_, err := DecodeArgon2Hash("$bcrypt$whatever")
		assert.ErrorIs(t, err, ErrInvalidHash)
	})
}
