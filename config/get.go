package config

import (
	"github.com/safing/cfrand/log"
)

type (
	// StringOption defines the returned function by GetAsString.
	StringOption func() string
	// IntOption defines the returned function by GetAsInt.
	IntOption func() int64
	// BoolOption defines the returned function by GetAsBool.
	BoolOption func() bool
)

// GetAsString returns a function that returns the wanted string with high performance.
// The returned function is not safe for concurrent use.
func GetAsString(name string, fallback string) StringOption {
	valid := getValidityFlag()
	value := findStringValue(name, fallback)
	return func() string {
		if !valid.IsSet() {
			valid = getValidityFlag()
			value = findStringValue(name, fallback)
		}
		return value
	}
}

// GetAsInt returns a function that returns the wanted int with high performance.
// The returned function is not safe for concurrent use.
func GetAsInt(name string, fallback int64) IntOption {
	valid := getValidityFlag()
	value := findIntValue(name, fallback)
	return func() int64 {
		if !valid.IsSet() {
			valid = getValidityFlag()
			value = findIntValue(name, fallback)
		}
		return value
	}
}

// GetAsBool returns a function that returns the wanted bool with high performance.
// The returned function is not safe for concurrent use.
func GetAsBool(name string, fallback bool) BoolOption {
	valid := getValidityFlag()
	value := findBoolValue(name, fallback)
	return func() bool {
		if !valid.IsSet() {
			valid = getValidityFlag()
			value = findBoolValue(name, fallback)
		}
		return value
	}
}

// findValue finds the active value or the default of the option with the given key.
func findValue(key string) (*Option, *valueCache) {
	optionsLock.RLock()
	option, ok := options[key]
	optionsLock.RUnlock()
	if !ok {
		log.Errorf("config: request for unregistered option: %s", key)
		return nil, nil
	}

	option.Lock()
	defer option.Unlock()

	if option.activeValue != nil {
		return option, option.activeValue
	}
	return option, option.activeDefaultValue
}

// findStringValue validates and returns the value with the given key.
func findStringValue(key string, fallback string) (value string) {
	option, vc := findValue(key)
	if vc == nil || option.OptType != OptTypeString {
		return fallback
	}
	return vc.stringVal
}

// findIntValue validates and returns the value with the given key.
func findIntValue(key string, fallback int64) (value int64) {
	option, vc := findValue(key)
	if vc == nil || option.OptType != OptTypeInt {
		return fallback
	}
	return vc.intVal
}

// findBoolValue validates and returns the value with the given key.
func findBoolValue(key string, fallback bool) (value bool) {
	option, vc := findValue(key)
	if vc == nil || option.OptType != OptTypeBool {
		return fallback
	}
	return vc.boolVal
}

// GetActiveValue returns the currently active value of an option, falling
// back to its default.
func GetActiveValue(key string) (interface{}, error) {
	option, err := GetOption(key)
	if err != nil {
		return nil, err
	}

	option.Lock()
	defer option.Unlock()

	switch {
	case option.activeValue != nil:
		return option.activeValue.getData(option), nil
	case option.activeDefaultValue != nil:
		return option.activeDefaultValue.getData(option), nil
	default:
		return nil, nil
	}
}
