package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind indicates that a string does not name a record kind.
var ErrUnknownKind = errors.New("unknown record kind")

// Kind is the punishment category of a moderation record.
type Kind string

const (
	KindBan  Kind = "ban"
	KindMute Kind = "mute"
	KindKick Kind = "kick"
)

// Kinds returns every record kind in display order.
func Kinds() []Kind {
	return []Kind{KindBan, KindMute, KindKick}
}

// Collection returns the plural path segment used by the public API.
func (k Kind) Collection() string {
	return string(k) + "s"
}

// SupportsExpiry reports whether records of this kind can carry an expiry instant.
// Kicks are instantaneous.
func (k Kind) SupportsExpiry() bool {
	return k == KindBan || k == KindMute
}

// ParseKind accepts a singular or plural kind name in any case.
func ParseKind(s string) (Kind, error) {
	name := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s")
	for _, k := range Kinds() {
		if string(k) == name {
			return k, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}
