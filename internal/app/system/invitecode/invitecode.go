// internal/app/system/invitecode/invitecode.go

// Package invitecode generates shareable group invite codes.
//
// Codes are short enough to read over the phone: a fixed "TG-" prefix plus
// five characters from an alphabet that excludes I, O, 0 and 1 to avoid
// transcription mistakes. Uniqueness is probabilistic: with 32^5 possible
// suffixes and low invite volume, collisions among active invites are
// accepted as negligible rather than enforced with an index.
package invitecode

import "crypto/rand"

// Prefix is prepended to every generated code.
const Prefix = "TG-"

// Alphabet is the set of characters used for the random suffix. Visually
// ambiguous characters (I, O, 0, 1) are excluded.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// suffixLen is the number of random characters after the prefix.
const suffixLen = 5

// New generates a fresh invite code, e.g. "TG-8K2P9".
// Panics if the system's cryptographic random number generator fails.
func New() string {
	b := make([]byte, suffixLen)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand.Read failed: " + err.Error())
	}
	out := make([]byte, 0, len(Prefix)+suffixLen)
	out = append(out, Prefix...)
	for _, c := range b {
		out = append(out, Alphabet[int(c)%len(Alphabet)])
	}
	return string(out)
}

// Valid reports whether s has the shape of a generated code: the prefix
// followed by exactly five alphabet characters. Redemption still accepts the
// code as typed; this is a cheap pre-check for input forms.
func Valid(s string) bool {
	if len(s) != len(Prefix)+suffixLen {
		return false
	}
	if s[:len(Prefix)] != Prefix {
		return false
	}
	for i := len(Prefix); i < len(s); i++ {
		if !inAlphabet(s[i]) {
			return false
		}
	}
	return true
}

func inAlphabet(c byte) bool {
	for i := 0; i < len(Alphabet); i++ {
		if Alphabet[i] == c {
			return true
		}
	}
	return false
}
