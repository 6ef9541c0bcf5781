package config

import (
	"fmt"
	"strconv"
)

type valueCache struct {
	stringVal string
	intVal    int64
	boolVal   bool
}

func (vc *valueCache) getData(opt *Option) interface{} {
	switch opt.OptType {
	case OptTypeBool:
		return vc.boolVal
	case OptTypeInt:
		return vc.intVal
	case OptTypeString:
		return vc.stringVal
	default:
		return nil
	}
}

// validateValue checks value against the type and regex of option.
// Accepted Go types are string, int, int64 and bool.
func validateValue(option *Option, value interface{}) (*valueCache, error) {
	var (
		vc      valueCache
		rawType uint8
		text    string
	)

	switch v := value.(type) {
	case string:
		vc.stringVal, rawType, text = v, OptTypeString, v
	case int:
		vc.intVal, rawType = int64(v), OptTypeInt
		text = strconv.FormatInt(vc.intVal, 10)
	case int64:
		vc.intVal, rawType = v, OptTypeInt
		text = strconv.FormatInt(v, 10)
	case bool:
		vc.boolVal, rawType = v, OptTypeBool
		text = strconv.FormatBool(v)
	default:
		return nil, newInvalidValueError(option.Key, fmt.Sprintf("%T", v), "invalid value")
	}

	if rawType != option.OptType {
		return nil, newInvalidValueError(option.Key, fmt.Sprintf("%T", value), "expected type "+getTypeName(option.OptType))
	}
	if option.compiledRegex != nil && !option.compiledRegex.MatchString(text) {
		return nil, newInvalidValueError(option.Key, value, "validation regex failed")
	}

	return &vc, nil
}
