package config

import (
	"sync"

	"github.com/tevino/abool"
)

var (
	validityFlag     = abool.NewBool(true)
	validityFlagLock sync.RWMutex
)

// getValidityFlag returns a flag that signifies if the configuration has been changed. This flag must not be changed, only read.
func getValidityFlag() *abool.AtomicBool {
	validityFlagLock.RLock()
	defer validityFlagLock.RUnlock()
	return validityFlag
}

// signalChanges marks the configs validtityFlag as dirty.
func signalChanges() {
	validityFlagLock.Lock()
	defer validityFlagLock.Unlock()

	validityFlag.SetTo(false)
	validityFlag = abool.NewBool(true)
}

// SetConfigOption sets a single value in the (prioritized) user defined config.
// A nil value resets the option to its default.
func SetConfigOption(key string, value interface{}) error {
	option, err := GetOption(key)
	if err != nil {
		return err
	}

	err = setOptionValue(option, value)
	if err != nil {
		return err
	}

	// finalize change
	signalChanges()
	return nil
}

// ResetConfigOption removes the user defined value of an option.
func ResetConfigOption(key string) error {
	return SetConfigOption(key, nil)
}

func setOptionValue(option *Option, value interface{}) error {
	option.Lock()
	defer option.Unlock()

	if value == nil {
		option.activeValue = nil
		return nil
	}

	vc, err := validateValue(option, value)
	if err != nil {
		return err
	}
	option.activeValue = vc
	return nil
}
