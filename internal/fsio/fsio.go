package fsio

import (
	"os"
	"path/filepath"
)

// Hooks for filesystem operations
// used for testing
var (
	ReadFile   = os.ReadFile
	WriteFile  = os.WriteFile
	Stat       = os.Stat
	Lstat      = os.Lstat
	Remove     = os.Remove
	Rename     = os.Rename
	CreateTemp = os.CreateTemp
	Getwd      = os.Getwd
	WalkDir    = filepath.WalkDir
	IsNotExist = os.IsNotExist
	Exists     = func(path string) bool { _, err := Stat(path); return err == nil }
	IsDir      = func(path string) bool { fi, err := Stat(path); return err == nil && fi.IsDir() }
)

// Reset restores all hooks to their os/filepath defaults.
func Reset() {
	ReadFile = os.ReadFile
	WriteFile = os.WriteFile
	Stat = os.Stat
	Lstat = os.Lstat
	Remove = os.Remove
	Rename = os.Rename
	CreateTemp = os.CreateTemp
	Getwd = os.Getwd
	WalkDir = filepath.WalkDir
	IsNotExist = os.IsNotExist
}
