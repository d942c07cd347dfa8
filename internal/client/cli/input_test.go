package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("  hello world \n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.ErrorIs(t, err, io.EOF)
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("pw"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, []byte("pw"), pw)
	assert.Equal(t, "Enter password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword(&out)
	require.Error(t, err)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{" YES \r\n", true},
		{"n\n", false},
		{"\n", false},
		{"nope\n", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got, err := Confirm(rdr(tt.input), "Delete?", &out)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Equal(t, "Delete? [y/N] ", out.String())
	}

	_, err := Confirm(rdr(""), "Delete?", &bytes.Buffer{})
	require.ErrorIs(t, err, io.EOF)
}
