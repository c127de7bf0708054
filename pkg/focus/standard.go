package focus

import (
	"embed"
	"fmt"
	"sync"

	"github.com/younsl/awsinspector/internal/models"
)

// Keys of the built-in focuses
const (
	EverythingInDefaultRegion  = "everything-in-default-region"
	EverythingInDefaultProfile = "everything-in-default-profile"
	EverythingInAllProfiles    = "everything-in-all-profiles"
)

// StandardFocus names a built-in focus
type StandardFocus struct {
	Key   string
	Label string
}

var standardFocuses = []StandardFocus{
	{Key: EverythingInDefaultRegion, Label: "All Services in Default Region"},
	{Key: EverythingInDefaultProfile, Label: "All Regions in Default Profile"},
	{Key: EverythingInAllProfiles, Label: "Everything in all Profiles"},
}

//go:embed standard/*.focus.json
var standardFS embed.FS

var (
	standardMu    sync.Mutex
	standardCache = make(map[string]*models.Focus)
)

// StandardFocuses returns the built-in focuses in display order
func StandardFocuses() []StandardFocus {
	return append([]StandardFocus(nil), standardFocuses...)
}

// LoadStandard returns the built-in focus for key. Results are cached and
// shared, callers must not modify them.
func LoadStandard(key string) (*models.Focus, error) {
	standardMu.Lock()
	defer standardMu.Unlock()

	if f, ok := standardCache[key]; ok {
		return f, nil
	}
	if !isStandardKey(key) {
		return nil, fmt.Errorf("unknown standard focus %q", key)
	}

	data, err := standardFS.ReadFile("standard/" + key + ".focus.json")
	if err != nil {
		return nil, fmt.Errorf("%w: loading standard focus %q: %v", models.ErrInternal, key, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: loading standard focus %q: %v", models.ErrInternal, key, err)
	}
	standardCache[key] = f
	return f, nil
}

func isStandardKey(key string) bool {
	for _, s := range standardFocuses {
		if s.Key == key {
			return true
		}
	}
	return false
}
