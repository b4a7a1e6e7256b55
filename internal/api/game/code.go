package game

import (
	"math/rand/v2"
	"regexp"
	"strings"

	"drawguess-service/domain"
)

const roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var roomCodePattern = regexp.MustCompile(`^[A-Z0-9]{4,10}$`)

// GenerateRoomCode samples domain.RoomCodeLength characters uniformly from A-Z0-9.
func GenerateRoomCode() string {
	b := make([]byte, domain.RoomCodeLength)
	for i := range b {
		b[i] = roomCodeAlphabet[rand.IntN(len(roomCodeAlphabet))]
	}
	return string(b)
}

func CanonicalRoomCode(code string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if !roomCodePattern.MatchString(c) {
		return "", domain.ErrInvalidRoomCode
	}
	return c, nil
}
