package collection

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Identity is an opaque, stable node key derived from the node's position
// in the hierarchy. It does not depend on settings, so it survives edits.
type Identity string

// String returns the hex form.
func (id Identity) String() string {
	return string(id)
}

// Short returns the first 12 hex characters for display.
func (id Identity) Short() string {
	if len(id) <= 12 {
		return string(id)
	}
	return string(id[:12])
}

const identitySeparator = "#"

func hashIdentity(parts ...string) Identity {
	h := blake3.New()
	for i, p := range parts {
		if i > 0 {
			h.Write([]byte(identitySeparator))
		}
		h.Write([]byte(p))
	}
	return Identity(hex.EncodeToString(h.Sum(nil)))
}

func rootIdentity(source string) Identity {
	return hashIdentity("collection", source)
}

func childIdentity(parent Identity, name string) Identity {
	return hashIdentity(string(parent), name)
}

func environmentIdentity(root Identity, name string) Identity {
	return hashIdentity(string(root), "environment", name)
}
