package common

import (
	"os"
	"path/filepath"
)

// HistoryFile is the shell history file name, relative to the home directory.
const HistoryFile = ".bloomset_history"

// HistoryPath returns the absolute path of the shell history file.
func HistoryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, HistoryFile), nil
}
