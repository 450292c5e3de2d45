package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
	"unicode"
)

var avatarPalette = []string{
	"#e53935", "#8e24aa", "#3949ab", "#039be5",
	"#00897b", "#7cb342", "#fb8c00", "#6d4c41",
}

// AvatarInitials derives up to two uppercase initials from a display name.
// Falls back to the first letter of the username when the name is empty.
func AvatarInitials(displayName, username string) string {
	fields := strings.Fields(displayName)
	if len(fields) == 0 {
		if username == "" {
			return "?"
		}
		return strings.ToUpper(username[:1])
	}

	initials := []rune{unicode.ToUpper([]rune(fields[0])[0])}
	if len(fields) > 1 {
		last := fields[len(fields)-1]
		initials = append(initials, unicode.ToUpper([]rune(last)[0]))
	}
	return string(initials)
}

// AvatarColor picks a random color from the avatar palette.
func AvatarColor() string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(avatarPalette))))
	if err != nil {
		return avatarPalette[0]
	}
	return avatarPalette[n.Int64()]
}
