package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Env resolves settings from a .env file first and the process environment second.
type Env struct {
	values map[string]string
	lookup func(string) (string, bool)
}

// LoadEnv reads the .env file at path. A missing file is not an error.
func LoadEnv(path string) (*Env, error) {
	values, err := readEnvFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error reading env file %s: %w", path, err)
		}
		values = make(map[string]string)
	}
	return &Env{values: values, lookup: os.LookupEnv}, nil
}

// NewEnv returns an Env backed only by values, ignoring the process environment.
func NewEnv(values map[string]string) *Env {
	if values == nil {
		values = make(map[string]string)
	}
	return &Env{values: values}
}

// Lookup returns the value for key and whether it was set.
func (e *Env) Lookup(key string) (string, bool) {
	if e == nil {
		return "", false
	}
	if val, ok := e.values[key]; ok {
		return val, true
	}
	if e.lookup != nil {
		return e.lookup(key)
	}
	return "", false
}

// Get returns the value for key, or "" when it is unset.
func (e *Env) Get(key string) string {
	val, _ := e.Lookup(key)
	return val
}

// readEnvFile parses a .env file and returns a map of key-value pairs.
func readEnvFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	envMap := make(map[string]string)
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if len(value) > 1 && ((value[0] == '"' && value[len(value)-1] == '"') || (value[0] == '\'' && value[len(value)-1] == '\'')) {
			value = value[1 : len(value)-1]
		}

		envMap[key] = value
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return envMap, nil
}
