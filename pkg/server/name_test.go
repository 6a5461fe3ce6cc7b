package server

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	tests := []struct {
		user string
		want string
	}{
		{"alice", "alice"},
		{"  bob  ", "bob"},
		{"eve;rm -rf", "everm-rf"},
		{"a_b-c", "a_b-c"},
		{"abcdefghijklmnopqrstuvwxyz", "abcdefghijklmnop"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Name(tt.user), tt.user)
	}
}

func TestNameFallsBackToRandom(t *testing.T) {
	for _, user := range []string{"", "root", "$$$", "   "} {
		name := Name(user)
		assert.NotEmpty(t, name, "user %q", user)
		assert.NotEqual(t, "root", name)
		assert.Len(t, strings.Split(name, "-"), 2, "user %q got %q", user, name)
	}
}
