package utils

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"
)

// SharePayload is the blob embedded in shareable links: the prompt, the
// generated SQL, and enough context to restore the editor state.
type SharePayload struct {
	Query     string `json:"query,omitempty"`
	SQL       string `json:"sql"`
	Dialect   string `json:"dialect,omitempty"`
	Schema    string `json:"schema,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// EncodeShare serializes the payload into a URL-safe base64 token. The
// timestamp is stamped here so callers only fill the content fields.
func EncodeShare(p SharePayload) (string, error) {
	if p.SQL == "" {
		return "", errors.New("sql is required")
	}
	p.Timestamp = time.Now().Unix()

	raw, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodeShare reverses EncodeShare.
func DecodeShare(token string) (*SharePayload, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, errors.New("malformed share token")
	}

	var p SharePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, errors.New("malformed share payload")
	}
	if p.SQL == "" {
		return nil, errors.New("share payload missing sql")
	}
	return &p, nil
}
