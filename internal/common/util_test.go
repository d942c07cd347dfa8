package common

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{name: "zero", size: 0},
		{name: "refresh token size", size: 32},
		{name: "odd size", size: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := MakeRandHexString(tt.size)
			require.NoError(t, err)
			require.Len(t, s, tt.size*2)
			_, err = hex.DecodeString(s)
			require.NoError(t, err)
		})
	}
}

func TestGenerateRandByteArray_Length(t *testing.T) {
	require.Len(t, GenerateRandByteArray(24), 24)
	require.Empty(t, GenerateRandByteArray(0))
}

func TestGenerateRandByteArray_Differs(t *testing.T) {
	a := GenerateRandByteArray(32)
	b := GenerateRandByteArray(32)
	require.NotEqual(t, a, b)
}

func TestWipeByteArray(t *testing.T) {
	buf := []byte("secret")
	WipeByteArray(buf)
	require.Equal(t, make([]byte, 6), buf)

	require.NotPanics(t, func() { WipeByteArray(nil) })
}
