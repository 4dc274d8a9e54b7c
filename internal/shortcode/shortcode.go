// Package shortcode draws random base62 short codes.
package shortcode

import (
	"errors"
	"math/rand/v2"
	"regexp"
	"strings"
)

const (
	// Alphabet holds the 62 symbols a generated code is made of.
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	// Length of a generated code.
	Length = 6
	// MaxAttempts caps the draws of a single Generate call.
	MaxAttempts = 1000
)

// ErrExhausted means no free code was drawn within MaxAttempts.
// With 62^6 codes it only happens when a set answers Contains wrongly.
var ErrExhausted = errors.New("short code attempts exhausted")

var validCode = regexp.MustCompile(`^[A-Za-z0-9]{1,10}$`)

// DefaultReservedWords are the routing names a code must never take.
var DefaultReservedWords = []string{
	"health", "stats", "info", "shorten",
	"static", "api", "admin", "login", "register",
	"user", "users", "dashboard", "profile",
	"metrics", "ping", "favicon",
}

// Set answers membership of a code.
type Set interface {
	Contains(code string) bool
}

// Codes is a plain set of codes.
type Codes map[string]struct{}

// Contains implements Set.
func (c Codes) Contains(code string) bool {
	_, ok := c[code]
	return ok
}

// Reserved is a case-insensitive set of words.
type Reserved map[string]struct{}

// NewReserved builds a reserved set from words.
func NewReserved(words ...string) Reserved {
	r := make(Reserved, len(words))
	for _, w := range words {
		r[strings.ToLower(w)] = struct{}{}
	}
	return r
}

// Contains implements Set.
func (r Reserved) Contains(code string) bool {
	_, ok := r[strings.ToLower(code)]
	return ok
}

// Generate draws a code that neither existing nor reserved contains.
// A nil set is treated as empty.
func Generate(existing, reserved Set) (string, error) {
	for range MaxAttempts {
		code := draw()
		if reserved != nil && reserved.Contains(code) {
			continue
		}
		if existing != nil && existing.Contains(code) {
			continue
		}
		return code, nil
	}
	return "", ErrExhausted
}

// Valid reports whether s has the shape of a short code.
func Valid(s string) bool {
	return validCode.MatchString(s)
}

func draw() string {
	b := make([]byte, Length)
	for i := range b {
		b[i] = Alphabet[rand.IntN(len(Alphabet))]
	}
	return string(b)
}
