package entropy

import (
	"time"

	"github.com/safing/cfrand/config"
)

// Configuration keys.
const (
	CfgLocalSourceKey        = "random/local_source"
	CfgCipherKey             = "random/rng_cipher"
	CfgMinFeedEntropyKey     = "random/min_feed_entropy"
	CfgReseedAfterSecondsKey = "random/reseed_after_seconds"
	CfgReseedAfterBytesKey   = "random/reseed_after_bytes"
)

// Local entropy source names.
const (
	LocalSourceOS      = "os"
	LocalSourceFortuna = "fortuna"
)

func init() {
	if err := registerConfig(); err != nil {
		panic(err)
	}
}

func registerConfig() error {
	err := config.Register(&config.Option{
		Name:            "Local Entropy Source",
		Key:             CfgLocalSourceKey,
		Description:     "Where local entropy is drawn from: the OS RNG or a fortuna RNG fed by the OS and goroutine ticks.",
		OptType:         config.OptTypeString,
		DefaultValue:    LocalSourceOS,
		ValidationRegex: "^(os|fortuna)$",
		EnvVar:          "CFRAND_LOCAL_SOURCE",
	})
	if err != nil {
		return err
	}

	err = config.Register(&config.Option{
		Name:            "RNG Cipher",
		Key:             CfgCipherKey,
		Description:     "Cipher to use for the Fortuna RNG.",
		OptType:         config.OptTypeString,
		DefaultValue:    "aes",
		ValidationRegex: "^(aes|serpent)$",
		EnvVar:          "CFRAND_RNG_CIPHER",
	})
	if err != nil {
		return err
	}

	err = config.Register(&config.Option{
		Name:            "Minimum Feed Entropy",
		Key:             CfgMinFeedEntropyKey,
		Description:     "The minimum amount of entropy before a entropy source is feed to the RNG, in bits.",
		OptType:         config.OptTypeInt,
		DefaultValue:    256,
		ValidationRegex: "^[0-9]{3,5}$",
		EnvVar:          "CFRAND_MIN_FEED_ENTROPY",
	})
	if err != nil {
		return err
	}

	err = config.Register(&config.Option{
		Name:            "Reseed after x seconds",
		Key:             CfgReseedAfterSecondsKey,
		Description:     "Number of seconds until reseed",
		OptType:         config.OptTypeInt,
		DefaultValue:    360, // six minutes
		ValidationRegex: "^[1-9][0-9]{1,5}$",
		EnvVar:          "CFRAND_RESEED_AFTER_SECONDS",
	})
	if err != nil {
		return err
	}

	return config.Register(&config.Option{
		Name:            "Reseed after x bytes",
		Key:             CfgReseedAfterBytesKey,
		Description:     "Number of fetched bytes until reseed",
		OptType:         config.OptTypeInt,
		DefaultValue:    1000000, // one megabyte
		ValidationRegex: "^[1-9][0-9]{2,9}$",
		EnvVar:          "CFRAND_RESEED_AFTER_BYTES",
	})
}

// FortunaOptionsFromConfig returns the fortuna settings of the current
// configuration.
func FortunaOptionsFromConfig() FortunaOptions {
	return FortunaOptions{
		Cipher:           config.GetAsString(CfgCipherKey, "aes")(),
		MinFeedEntropy:   config.GetAsInt(CfgMinFeedEntropyKey, 256)(),
		ReseedAfter:      time.Duration(config.GetAsInt(CfgReseedAfterSecondsKey, 360)()) * time.Second,
		ReseedAfterBytes: config.GetAsInt(CfgReseedAfterBytesKey, 1000000)(),
	}
}
