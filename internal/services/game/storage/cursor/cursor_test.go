package cursor

import (
	"encoding/base64"
	"encoding/json"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := Cursor{
		UpdatedAt:  1755856800000,
		LastID:     "g7f3k2m9",
		FilterHash: HashFilter(`difficulty = "easy"`),
	}

	token, err := Encode(original)
	if err != nil {
		t.Fatalf("encode cursor: %v", err)
	}

	decoded, err := Decode(token)
	if err != nil {
		t.Fatalf("decode cursor: %v", err)
	}

	if decoded != original {
		t.Fatalf("cursor mismatch: %+v != %+v", decoded, original)
	}
}

func TestDecodeEmptyToken(t *testing.T) {
	_, err := Decode("")
	if err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestDecodeInvalidBase64(t *testing.T) {
	_, err := Decode("not-base64@@")
	if err == nil {
		t.Fatal("expected error for invalid base64")
	}
}

func TestDecodeMissingPosition(t *testing.T) {
	raw, err := json.Marshal(Cursor{UpdatedAt: 42})
	if err != nil {
		t.Fatalf("marshal cursor: %v", err)
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	if _, err := Decode(token); err == nil {
		t.Fatal("expected error for cursor without a last id")
	}
}

func TestHashFilterDistinguishesExpressions(t *testing.T) {
	a := HashFilter(`difficulty = "easy"`)
	b := HashFilter(`difficulty = "hard"`)
	if a == b {
		t.Fatalf("expected distinct hashes, got %s for both", a)
	}
	if a != HashFilter(`difficulty = "easy"`) {
		t.Fatal("expected hash to be stable for the same expression")
	}
}
