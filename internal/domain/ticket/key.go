package ticket

import (
	"fmt"
	"strconv"
	"strings"
)

// KeyPrefix is the prefix of every ticket key, e.g. TCK-42.
const KeyPrefix = "TCK-"

// FormatKey builds a ticket key from a sequence number.
func FormatKey(n int64) string {
	return fmt.Sprintf("%s%d", KeyPrefix, n)
}

// ParseKey extracts the sequence number from a ticket key.
func ParseKey(key string) (int64, error) {
	if !strings.HasPrefix(key, KeyPrefix) {
		return 0, fmt.Errorf("invalid ticket key: %s", key)
	}
	n, err := strconv.ParseInt(strings.TrimPrefix(key, KeyPrefix), 10, 64)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid ticket key: %s", key)
	}
	return n, nil
}

// IsValidKey reports whether the string is a well-formed ticket key.
func IsValidKey(key string) bool {
	_, err := ParseKey(key)
	return err == nil
}
