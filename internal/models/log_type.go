package models

import (
	"fmt"
	"strings"
)

type LogType string

const (
	LogCLF   LogType = "clf"
	LogFTP   LogType = "ftp"
	LogSquid LogType = "squid"
	LogW3C   LogType = "w3c"
)

func NewLogTypeFromString(s string) (LogType, error) {
	switch LogType(strings.ToLower(strings.TrimSpace(s))) {
	case LogCLF, "":
		return LogCLF, nil
	case LogFTP:
		return LogFTP, nil
	case LogSquid:
		return LogSquid, nil
	case LogW3C:
		return LogW3C, nil
	}
	return "", fmt.Errorf("invalid log type: %q", s)
}

// DefaultPageTypes are the extensions counted as pages when none are configured.
func (t LogType) DefaultPageTypes() []string {
	if t == LogFTP {
		return []string{"txt"}
	}
	return []string{"htm*", "cgi"}
}

// TracksEntryExit reports whether visits maintain entry and exit page counters.
// FTP transfer logs have no notion of navigation.
func (t LogType) TracksEntryExit() bool {
	return t != LogFTP
}

// ExtractsSearchStrings reports whether referrers can carry search engine queries.
func (t LogType) ExtractsSearchStrings() bool {
	return t != LogFTP
}
