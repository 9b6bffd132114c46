package paths

import (
	"flag"
	"strings"
)

// StringList is a repeatable string flag value. Every occurrence of
// the flag appends one entry, so -include 'a/*' -include 'b/*'
// collects both patterns.
type StringList []string

func (s *StringList) String() string {
	return strings.Join(*s, ",")
}

func (s *StringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// SetupGlobListFlag registers a repeatable glob pattern flag with the
// passed name, collecting every occurrence into target.
func SetupGlobListFlag(flagName string, target *StringList, usage string) {
	flag.Var(target, flagName, usage)
}
