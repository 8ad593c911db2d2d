package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple words", "My List", "my-list"},
		{"camel case split", "myCoolList", "my-cool-list"},
		{"underscores and spaces collapse", "a_b c", "a-b-c"},
		{"repeated separators", "a -- b", "a-b"},
		{"special characters removed", "Hello, World!", "hello-world"},
		{"leading and trailing dashes trimmed", " trimmed ", "trimmed"},
		{"already a slug", "other-list", "other-list"},
		{"digits kept", "Top 10", "top-10"},
		{"nothing usable", "!!!", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}
