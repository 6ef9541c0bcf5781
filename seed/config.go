package seed

import (
	"time"

	"github.com/safing/cfrand/config"
)

// Configuration keys.
const (
	CfgURLKey            = "cfrand/url"
	CfgTimeoutSecondsKey = "cfrand/timeout_seconds"
	CfgUserAgentKey      = "cfrand/user_agent"
)

func init() {
	if err := registerConfig(); err != nil {
		panic(err)
	}
}

func registerConfig() error {
	err := config.Register(&config.Option{
		Name:        "Seed Source URL",
		Key:         CfgURLKey,
		Description: "Address of the seed source. Required.",
		OptType:     config.OptTypeString,
		EnvVar:      "CFRAND_URL",
	})
	if err != nil {
		return err
	}

	err = config.Register(&config.Option{
		Name:            "Seed Request Timeout",
		Key:             CfgTimeoutSecondsKey,
		Description:     "Seconds until a seed request is abandoned.",
		OptType:         config.OptTypeInt,
		DefaultValue:    int64(DefaultTimeout / time.Second),
		ValidationRegex: "^[1-9][0-9]{0,3}$",
		EnvVar:          "CFRAND_TIMEOUT_SECONDS",
	})
	if err != nil {
		return err
	}

	return config.Register(&config.Option{
		Name:            "Seed Request User-Agent",
		Key:             CfgUserAgentKey,
		Description:     "User-Agent header sent to the seed source.",
		OptType:         config.OptTypeString,
		DefaultValue:    DefaultUserAgent,
		ValidationRegex: "^[\\x21-\\x7E][\\x20-\\x7E]*$",
		EnvVar:          "CFRAND_USER_AGENT",
	})
}

// FetcherFromConfig returns an HTTPFetcher set up from the current
// configuration. A missing URL is reported when fetching.
func FetcherFromConfig() *HTTPFetcher {
	return &HTTPFetcher{
		URL:       config.GetAsString(CfgURLKey, "")(),
		UserAgent: config.GetAsString(CfgUserAgentKey, DefaultUserAgent)(),
		Timeout:   time.Duration(config.GetAsInt(CfgTimeoutSecondsKey, int64(DefaultTimeout/time.Second))()) * time.Second,
	}
}
