package config

import (
	"errors"
	"fmt"
	"regexp"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Variable Type IDs.
const (
	OptTypeString uint8 = 1
	OptTypeInt    uint8 = 3
	OptTypeBool   uint8 = 4
)

var (
	optionsLock sync.RWMutex
	options     = make(map[string]*Option)

	// ErrIncompleteCall is return when Register is called with empty mandatory values.
	ErrIncompleteCall = errors.New("could not register config option: all fields, except for the validationRegex and envVar are mandatory")
)

// Option describes a configuration option.
type Option struct {
	sync.Mutex

	Name            string
	Key             string // category/key
	Description     string
	OptType         uint8
	DefaultValue    interface{}
	ValidationRegex string
	// EnvVar names the environment variable that sets this option in LoadEnvironment.
	EnvVar string

	compiledRegex      *regexp.Regexp
	activeValue        *valueCache
	activeDefaultValue *valueCache
}

func getTypeName(t uint8) string {
	switch t {
	case OptTypeString:
		return "string"
	case OptTypeInt:
		return "int"
	case OptTypeBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Register registers a new configuration option.
func Register(option *Option) error {
	if option.Name == "" ||
		option.Key == "" ||
		option.Description == "" ||
		option.OptType == 0 {
		return ErrIncompleteCall
	}

	if option.ValidationRegex != "" {
		var err error
		option.compiledRegex, err = regexp.Compile(option.ValidationRegex)
		if err != nil {
			return newInvalidOptionError(fmt.Sprintf("%s: could not compile validation regex", option.Key), err)
		}
	}

	if option.DefaultValue != nil {
		vc, err := validateValue(option, option.DefaultValue)
		if err != nil {
			return newInvalidOptionError(fmt.Sprintf("%s: invalid default value", option.Key), err)
		}
		option.activeDefaultValue = vc
	}

	optionsLock.Lock()
	defer optionsLock.Unlock()

	if _, ok := options[option.Key]; ok {
		return newInvalidOptionError(option.Key, ErrDuplicateOption)
	}
	options[option.Key] = option

	return nil
}

// GetOption returns the option with name or an error
// if the option does not exist.
func GetOption(key string) (*Option, error) {
	optionsLock.RLock()
	defer optionsLock.RUnlock()

	opt, ok := options[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOption, key)
	}
	return opt, nil
}

// ListOptions returns all registered options sorted by key.
func ListOptions() []*Option {
	optionsLock.RLock()
	defer optionsLock.RUnlock()

	keys := maps.Keys(options)
	slices.Sort(keys)

	list := make([]*Option, 0, len(keys))
	for _, key := range keys {
		list = append(list, options[key])
	}
	return list
}
