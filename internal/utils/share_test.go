package utils

import "testing"

func TestShareRoundTrip(t *testing.T) {
	token, err := EncodeShare(SharePayload{
		Query:   "all active users",
		SQL:     "SELECT id FROM users WHERE active = true",
		Dialect: "postgresql",
	})
	if err != nil {
		t.Fatalf("EncodeShare: %v", err)
	}

	decoded, err := DecodeShare(token)
	if err != nil {
		t.Fatalf("DecodeShare: %v", err)
	}
	if decoded.SQL != "SELECT id FROM users WHERE active = true" {
		t.Errorf("sql = %q", decoded.SQL)
	}
	if decoded.Query != "all active users" || decoded.Dialect != "postgresql" {
		t.Errorf("payload = %+v", decoded)
	}
	if decoded.Timestamp == 0 {
		t.Errorf("timestamp should be stamped on encode")
	}
}

func TestEncodeShareRequiresSQL(t *testing.T) {
	if _, err := EncodeShare(SharePayload{Query: "x"}); err == nil {
		t.Errorf("expected error for missing sql")
	}
}

func TestDecodeShareRejectsGarbage(t *testing.T) {
	for _, token := range []string{"", "!!!not-base64!!!", "aGVsbG8"} {
		if _, err := DecodeShare(token); err == nil {
			t.Errorf("expected error for token %q", token)
		}
	}
}
