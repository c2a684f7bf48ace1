// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files
// and from dotenv files. In a secrets directory the filename is the key name
// and the trimmed file contents are the value.
//
// Supported keys: ads-api-token.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// ADSToken is the key of the ADS API token.
const ADSToken = "ads-api-token"

// envNames maps secret keys to the variable names looked up in dotenv files.
var envNames = map[string]string{
	ADSToken: "ADS_API_TOKEN",
}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// MergeDotEnv reads the dotenv file at path and adds the known variables to
// secrets under their key names. Values already in secrets win. A missing
// file is not an error.
func MergeDotEnv(path string, secrets map[string]string) error {
	vals, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}
	for key, env := range envNames {
		if v := strings.TrimSpace(vals[env]); v != "" && secrets[key] == "" {
			secrets[key] = v
		}
	}
	return nil
}
