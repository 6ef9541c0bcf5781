package entropy

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/safing/cfrand/config"
)

// NewLocalReader returns the local entropy reader of the given kind:
// LocalSourceOS or LocalSourceFortuna. Fortuna readers are set up from the
// current configuration and must be closed.
func NewLocalReader(kind string) (io.Reader, error) {
	switch kind {
	case LocalSourceOS, "":
		return rand.Reader, nil
	case LocalSourceFortuna:
		return NewFortunaReader(FortunaOptionsFromConfig())
	default:
		return nil, fmt.Errorf("entropy: unknown local source %q", kind)
	}
}

// LocalReaderFromConfig returns the local entropy reader selected in the
// configuration.
func LocalReaderFromConfig() (io.Reader, error) {
	return NewLocalReader(config.GetAsString(CfgLocalSourceKey, LocalSourceOS)())
}
