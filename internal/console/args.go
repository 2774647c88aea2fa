package console

import (
	"fmt"
	"strings"
)

// Args holds the name=value parameters parsed from a command line. Values
// have underscores decoded to spaces except for the parameter literally
// named "key", which is passed through verbatim (keys may contain
// underscores and are never free text).
type Args map[string]string

// Get returns the value for name, or "" when absent.
func (a Args) Get(name string) string { return a[name] }

// ParseError marks one malformed token. The whole parse fails with it;
// no partial mapping is ever returned.
type ParseError struct {
	Token string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed parameter %q (expected name=value)", e.Token)
}

// ParseArgs tokenizes a raw argument string into Args. Tokens are
// whitespace-separated and split on the first "=" only, so values may
// themselves contain "=". A token without "=" or with an empty name fails
// the parse atomically. Duplicate names keep the last occurrence. An empty
// input yields an empty, valid Args.
func ParseArgs(raw string) (Args, error) {
	args := Args{}
	for _, token := range strings.Fields(raw) {
		name, value, ok := strings.Cut(token, "=")
		if !ok || name == "" {
			return nil, &ParseError{Token: token}
		}
		if name != "key" {
			value = strings.ReplaceAll(value, "_", " ")
		}
		args[name] = value
	}
	return args, nil
}
