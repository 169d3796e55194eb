package version

import (
	"cmp"
	"fmt"
	"strings"
)

// Semver is a major.minor.patch release number.
type Semver struct {
	Major, Minor, Patch int
}

// Parse reads a release number with an optional leading "v". Anything after the
// patch number, such as "-rc.1", is ignored.
func Parse(s string) (Semver, error) {
	var v Semver
	if _, err := fmt.Sscanf(strings.TrimPrefix(s, "v"), "%d.%d.%d", &v.Major, &v.Minor, &v.Patch); err != nil {
		return Semver{}, fmt.Errorf("version %q: %w", s, err)
	}
	return v, nil
}

// Compare returns -1, 0 or 1 as v is older, equal to or newer than other.
func (v Semver) Compare(other Semver) int {
	return cmp.Or(
		cmp.Compare(v.Major, other.Major),
		cmp.Compare(v.Minor, other.Minor),
		cmp.Compare(v.Patch, other.Patch),
	)
}

func (v Semver) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare parses both release numbers and compares them.
func Compare(a, b string) (int, error) {
	av, err := Parse(a)
	if err != nil {
		return 0, err
	}

	bv, err := Parse(b)
	if err != nil {
		return 0, err
	}

	return av.Compare(bv), nil
}
