package commands

import (
	"github.com/ruminaider/devlinks/internal/platforms"
)

// CheckURL reports whether url is a valid link for the platform. Unknown
// platforms are an error rather than a negative answer.
func CheckURL(reg *platforms.Registry, platformID, url string) (bool, error) {
	if _, err := reg.Get(platformID); err != nil {
		return false, err
	}
	return reg.ValidateURL(platformID, url), nil
}
