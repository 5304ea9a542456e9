package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogTypeFromString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected LogType
		wantErr  bool
	}{
		{name: "empty defaults to clf", input: "", expected: LogCLF},
		{name: "clf", input: "clf", expected: LogCLF},
		{name: "ftp upper case", input: "FTP", expected: LogFTP},
		{name: "squid with spaces", input: "  squid ", expected: LogSquid},
		{name: "w3c", input: "w3c", expected: LogW3C},
		{name: "unknown", input: "nginx", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NewLogTypeFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid log type")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLogType_FTPDisablesNavigationFeatures(t *testing.T) {
	t.Parallel()

	assert.False(t, LogFTP.TracksEntryExit())
	assert.False(t, LogFTP.ExtractsSearchStrings())
	assert.Equal(t, []string{"txt"}, LogFTP.DefaultPageTypes())

	for _, lt := range []LogType{LogCLF, LogSquid, LogW3C} {
		assert.True(t, lt.TracksEntryExit(), string(lt))
		assert.True(t, lt.ExtractsSearchStrings(), string(lt))
		assert.Equal(t, []string{"htm*", "cgi"}, lt.DefaultPageTypes(), string(lt))
	}
}
