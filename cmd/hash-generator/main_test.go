package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipeWith returns the read end of a pipe that yields input and then EOF.
func pipeWith(t *testing.T, input string) *os.File {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	_, err = w.WriteString(input)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return r
}

func TestReadPassword(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{name: "line with newline", input: "password1\n", want: "password1"},
		{name: "CRLF line ending", input: "password1\r\n", want: "password1"},
		{name: "no trailing newline", input: "password1", want: "password1"},
		{name: "only first line is used", input: "first-pass\nsecond-pass\n", want: "first-pass"},
		{name: "inner spaces kept", input: " pass word \n", want: " pass word "},
		{name: "empty input", input: "", wantErr: "password must not be empty"},
		{name: "blank line", input: "\n", wantErr: "password must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var prompt bytes.Buffer

			got, err := readPassword(pipeWith(t, tt.input), &prompt)

			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Empty(t, prompt.String(), "no prompt when stdin is not a terminal")
		})
	}
}
