package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedacted(t *testing.T) {
	cases := []struct {
		secret   string
		expected string
	}{
		{secret: "", expected: "***"},
		{secret: "abcdefgh", expected: "***"},
		{secret: "abcdefghijklmnop", expected: "abcdefgh***"},
	}
	for _, c := range cases {
		t.Run(c.secret, func(t *testing.T) {
			assert.Equal(t, c.expected, Redacted(c.secret))
		})
	}
}
