package toolchain

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/Masterminds/semver/v3"
)

// ToolsABIMajor is the MSVC tools major version shipped with Visual Studio 2017.
const ToolsABIMajor = 14

// toolsDirName matches VC/Tools/MSVC/<14.minor.patch> directory names. Names
// with leading zeros are also rejected after parsing.
var toolsDirName = regexp.MustCompile(`^14\.\d+\.\d+$`)

// ToolsRoot returns the directory that holds the versioned MSVC tools.
func ToolsRoot(toolchainRoot string) string {
	return filepath.Join(toolchainRoot, "VC", "Tools", "MSVC")
}

// LocateToolsDir returns <toolchainRoot>/VC/Tools/MSVC/<14.x.y>/bin.
//
// Exactly one versioned directory must qualify. pin, when non-empty, is a
// semver constraint (e.g. "14.16.27023" or "~14.16") narrowing the
// candidates. Several qualifying directories yield an *AmbiguousToolsDirError
// rather than a choice based on directory listing order.
func LocateToolsDir(toolchainRoot, pin string) (string, error) {
	root := ToolsRoot(toolchainRoot)

	var constraint *semver.Constraints
	if pin != "" {
		c, err := semver.NewConstraint(pin)
		if err != nil {
			return "", fmt.Errorf("parsing MSVC tools version %q: %w", pin, err)
		}
		constraint = c
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &ToolsDirNotFoundError{Dir: root, Constraint: pin}
		}
		return "", fmt.Errorf("reading %s: %w", root, err)
	}

	var matches []*semver.Version
	names := make(map[*semver.Version]string)
	for _, entry := range entries {
		name := entry.Name()
		if !toolsDirName.MatchString(name) || !isDir(filepath.Join(root, name)) {
			continue
		}
		v, err := semver.NewVersion(name)
		if err != nil || v.String() != name || v.Major() != ToolsABIMajor {
			continue
		}
		if constraint != nil && !constraint.Check(v) {
			continue
		}
		matches = append(matches, v)
		names[v] = name
	}

	switch len(matches) {
	case 0:
		return "", &ToolsDirNotFoundError{Dir: root, Constraint: pin}
	case 1:
		return filepath.Join(root, names[matches[0]], "bin"), nil
	}

	sort.Sort(semver.Collection(matches))
	found := make([]string, len(matches))
	for i, v := range matches {
		found[i] = names[v]
	}
	return "", &AmbiguousToolsDirError{Dir: root, Matches: found}
}
