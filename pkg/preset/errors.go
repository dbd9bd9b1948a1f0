package preset

import (
	"fmt"
	"strings"
)

// PresetError reports an unrecognized preset name passed to Resolve.
type PresetError struct {
	Name string
}

func (e *PresetError) Error() string {
	return fmt.Sprintf("unknown preset %q (want one of: %s)", e.Name, strings.Join(Names(), ", "))
}
