package game

import (
	"testing"

	"drawguess-service/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRoomCode(t *testing.T) {
	for i := 0; i < 200; i++ {
		code := GenerateRoomCode()
		require.Len(t, code, domain.RoomCodeLength)
		canonical, err := CanonicalRoomCode(code)
		require.NoError(t, err)
		assert.Equal(t, code, canonical)
	}
}

func TestCanonicalRoomCode(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "abc123", want: "ABC123"},
		{in: "  XYZW ", want: "XYZW"},
		{in: "ABCDEFGHIJ", want: "ABCDEFGHIJ"},
		{in: "ABC", wantErr: true},
		{in: "ABCDEFGHIJK", wantErr: true},
		{in: "AB-123", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range tests {
		got, err := CanonicalRoomCode(tc.in)
		if tc.wantErr {
			assert.ErrorIs(t, err, domain.ErrInvalidRoomCode, "input %q", tc.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}
