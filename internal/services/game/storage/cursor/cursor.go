// Package cursor encodes opaque pagination tokens for saved game listings.
//
// A token captures the keyset position of the last row on a page together
// with a fingerprint of the filter that produced the page. Replaying a token
// under a different filter would silently skip or repeat rows, so decode
// callers compare fingerprints before resuming.
package cursor

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"hash/fnv"
)

// Cursor marks a resume position in a saved game listing.
type Cursor struct {
	// UpdatedAt is the UTC millisecond timestamp of the last row on the page.
	UpdatedAt int64 `json:"updated_at"`
	// LastID breaks ties between rows sharing an UpdatedAt value.
	LastID string `json:"last_id"`
	// FilterHash fingerprints the filter the page was produced under.
	FilterHash string `json:"filter_hash,omitempty"`
}

// HashFilter fingerprints a filter expression so tokens cannot cross listings.
func HashFilter(expr string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(expr))
	return fmt.Sprintf("%016x", h.Sum64())
}

// Encode serializes the cursor into an opaque page token.
func Encode(c Cursor) (string, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal cursor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Decode parses an opaque page token back into a cursor.
func Decode(token string) (Cursor, error) {
	if token == "" {
		return Cursor{}, fmt.Errorf("page token is empty")
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("decode page token: %w", err)
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return Cursor{}, fmt.Errorf("unmarshal page token: %w", err)
	}
	if c.LastID == "" {
		return Cursor{}, fmt.Errorf("page token is missing a position")
	}
	return c, nil
}
