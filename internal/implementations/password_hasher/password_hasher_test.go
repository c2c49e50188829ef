package passwordhasher

import (
	e "kedilabs/internal/core/domain/errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestVerifyPassword(t *testing.T) {
	bcryptHash, err := HashBcrypt("s3cret-pass", bcrypt.MinCost)
	require.Nil(t, err)

	cases := []struct {
		id       string
		hash     string
		password string
		expected bool
	}{
		{id: "bcrypt-match", hash: bcryptHash, password: "s3cret-pass", expected: true},
		{id: "bcrypt-mismatch", hash: bcryptHash, password: "wrong", expected: false},
		{id: "sha256-match", hash: HashSHA256("s3cret-pass"), password: "s3cret-pass", expected: true},
		{id: "sha256-mismatch", hash: HashSHA256("s3cret-pass"), password: "wrong", expected: false},
		{
			id:       "sha256-known-digest",
			hash:     "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8",
			password: "password",
			expected: true,
		},
		{id: "empty-password", hash: HashSHA256("s3cret-pass"), password: "", expected: false},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			ok, err := New(testcase.hash).VerifyPassword(testcase.password)
			require.Nil(t, err)
			assert.Equal(t, testcase.expected, ok)
		})
	}
}

func TestVerifyPasswordNotConfigured(t *testing.T) {
	_, err := New("").VerifyPassword("anything")

	assert.ErrorIs(t, err, e.ErrNotConfigured)
}

func TestVerifyPasswordUnsupportedHash(t *testing.T) {
	_, err := New("plaintext").VerifyPassword("plaintext")

	assert.ErrorIs(t, err, ErrUnsupportedHash)
}
