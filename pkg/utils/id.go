package utils

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const characters = "abcdefghijklmnopqrstuvwxyz0123456789"

func GenerateID(size int) (string, error) {
	return gonanoid.Generate(characters, size)
}

// PrefixedID builds ids like user_1705400000000_k3j9x0a2q.
func PrefixedID(prefix string, now time.Time, randomSize int) (string, error) {
	suffix, err := GenerateID(randomSize)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%d_%s", prefix, now.UnixMilli(), suffix), nil
}

// TimestampID builds ids like ad_1705400000000.
func TimestampID(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%d", prefix, now.UnixMilli())
}
