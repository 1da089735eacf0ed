package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachmentEqual(t *testing.T) {
	a := Attachment{ID: 1, FileURL: "http://x/a", FileName: "report", FileExtension: "pdf", FileSize: 42}
	b := Attachment{ID: 2, FileURL: "http://x/b", FileName: "report", FileExtension: "pdf", FileSize: 42}
	assert.True(t, a.Equal(b), "identifiers must not affect equality")

	b.FileSize = 43
	assert.False(t, a.Equal(b))
}

func TestUserJSONHidesPasswordHash(t *testing.T) {
	user := User{ID: 1, FirstName: "Ana", PasswordHash: "$2a$10$secret"}
	data, err := json.Marshal(user)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "secret"))
	assert.False(t, strings.Contains(string(data), "password_hash"))
}
