package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-multierror"
)

// DotEnvCandidates returns the default locations of the .env file: the
// working directory and its parent.
func DotEnvCandidates() []string {
	wd, err := os.Getwd()
	if err != nil {
		return []string{".env"}
	}
	return []string{
		filepath.Join(wd, ".env"),
		filepath.Join(filepath.Dir(wd), ".env"),
	}
}

// ReadDotEnv parses a .env file. Blank lines, lines starting with "#" and
// lines without "=" are skipped. Keys and values are trimmed.
func ReadDotEnv(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read only

	values := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return values, nil
}

// LoadEnvironment applies the environment to all registered options that
// name an EnvVar. Options whose variable is not set are reset to their
// default, so values from an earlier load do not linger. The first of the
// given .env files that exists is merged into the process environment;
// variables already set in the process environment take precedence. All
// errors are collected and returned together.
func LoadEnvironment(dotEnvFiles ...string) error {
	var result *multierror.Error

	environ := env.ToMap(os.Environ())
	for _, path := range dotEnvFiles {
		values, err := ReadDotEnv(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			result = multierror.Append(result, err)
			break
		}
		for key, value := range values {
			if _, ok := environ[key]; !ok {
				environ[key] = value
			}
		}
		break
	}

	var changed bool
	for _, option := range ListOptions() {
		if option.EnvVar == "" {
			continue
		}
		raw, ok := environ[option.EnvVar]
		if !ok {
			// unset variables fall back to the default
			_ = setOptionValue(option, nil)
			changed = true
			continue
		}

		value, err := parseEnvValue(option, raw)
		if err == nil {
			err = setOptionValue(option, value)
		}
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", option.EnvVar, err))
			continue
		}
		changed = true
	}

	if changed {
		signalChanges()
	}
	return result.ErrorOrNil()
}

func parseEnvValue(option *Option, raw string) (interface{}, error) {
	switch option.OptType {
	case OptTypeString:
		return raw, nil
	case OptTypeInt:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, newInvalidValueError(option.Key, raw, "not an integer")
		}
		return v, nil
	case OptTypeBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, newInvalidValueError(option.Key, raw, "not a boolean")
		}
		return v, nil
	default:
		return nil, ErrUnsupportedType
	}
}
