package console

import (
	"sort"
	"strings"
)

// usage holds the one-line grammar shown for a command when it is invoked
// with missing or malformed arguments, and dumped in full by `help`.
var usage = map[string]string{
	"login":                   "login key=<secret> | login email=<addr> password=<pw>",
	"logout":                  "logout",
	"create":                  "create <kind> name=<n> [field=value ...]",
	"list":                    "list <kind> [field=value ...]",
	"delete":                  "delete <kind> id=<id> | delete <kind> all [field=value ...]",
	"assign_role":             "assign_role user_id=<id>|user_email=<addr> role_id=<id>|role_name=<name>",
	"check_user_role":         "check_user_role email=<addr>",
	"update_role_permissions": "update_role_permissions role_id=<id>|role_name=<name> permissions=<p1,p2,...>",
	"clear":                   "clear",
	"help":                    "help",
	"exit":                    "exit",
}

// helpText renders the full command reference, one command per line.
func helpText(kinds []string) string {
	names := make([]string, 0, len(usage))
	for name := range usage {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, name := range names {
		b.WriteString("  ")
		b.WriteString(usage[name])
		b.WriteString("\n")
	}
	b.WriteString("Entity kinds: ")
	b.WriteString(strings.Join(kinds, ", "))
	b.WriteString("\nValues with spaces: replace each space with `_` (decoded on parse).\n")
	return b.String()
}
