package server

import (
	"regexp"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
)

const MaxNameLength = 16

var nameRegexp = regexp.MustCompile(`[^a-zA-Z0-9_\-]+`)

// RandomName returns a two word name such as "happy-otter".
func RandomName() string {
	return petname.Generate(2, "-")
}

// Name cleans a player name taken from an SSH login. Empty names and root
// get a random name instead.
func Name(user string) string {
	name := nameRegexp.ReplaceAllString(strings.TrimSpace(user), "")
	if len(name) > MaxNameLength {
		name = name[:MaxNameLength]
	}
	if name == "" || name == "root" {
		return RandomName()
	}
	return name
}
