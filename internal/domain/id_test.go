package domain

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	id := NewID()

	assert.Len(t, id, IDLength)
	assert.True(t, IsValidID(id))
	_, err := hex.DecodeString(id)
	assert.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		assert.False(t, seen[id], "generated ids should be unique")
		seen[id] = true
	}
}

func TestNewIDEncodesTimestamp(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	id := newIDAt(at)

	raw, err := hex.DecodeString(id[:8])
	require.NoError(t, err)
	seconds := uint32(raw[0])<<24 | uint32(raw[1])<<16 | uint32(raw[2])<<8 | uint32(raw[3])
	assert.Equal(t, uint32(at.Unix()), seconds)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"lower case", "5f8d0d55b54764421b7156c3", "5f8d0d55b54764421b7156c3", false},
		{"upper case is normalized", "5F8D0D55B54764421B7156C3", "5f8d0d55b54764421b7156c3", false},
		{"too short", "5f8d0d55b54764421b7156c", "", true},
		{"too long", "5f8d0d55b54764421b7156c3a", "", true},
		{"non hex", "zzzzzzzzzzzzzzzzzzzzzzzz", "", true},
		{"hex prefix", "0x8d0d55b54764421b7156c3", "", true},
		{"empty", "", "", true},
		{"uuid", "0f8fad5b-d9cb-469f-a165-70867728950e", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseID(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
