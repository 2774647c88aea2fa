// Package console implements the operator-facing command loop: one line of
// input is parsed into a verb plus key=value parameters, gated on the
// session's privilege level, and routed to the matching service call. Every
// error is recovered at the command boundary; only store or cache
// connectivity failures abort the loop.
package console

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/itfy/evoting-admin/internal/core/domain"
	"github.com/itfy/evoting-admin/internal/core/ports"
	"github.com/itfy/evoting-admin/internal/core/registry"
)

const welcome = "Welcome to the E-voting User Management CLI. Please login to begin."

// ErrLoginRequiredFirst is returned when piped input does not start with a
// login command; the process exits non-zero in that case.
var ErrLoginRequiredFirst = errors.New("non-interactive input must begin with a login command")

// Options configures the console's I/O.
type Options struct {
	Input  io.Reader // defaults to os.Stdin
	Output io.Writer // defaults to os.Stdout
	// Interactive enables the identity-bearing prompt. Non-interactive runs
	// additionally require the first command to be login.
	Interactive bool
}

// Console is the command dispatcher. It is single-threaded: one command is
// fully processed, including any confirmation prompt, before the next line
// is read.
type Console struct {
	auth     ports.AuthService
	entities ports.EntityService
	roles    ports.RoleAdminService
	session  Session

	in          *bufio.Scanner
	out         io.Writer
	interactive bool
	log         zerolog.Logger
}

func New(auth ports.AuthService, entities ports.EntityService, roles ports.RoleAdminService, log zerolog.Logger, opts Options) *Console {
	input := opts.Input
	if input == nil {
		input = os.Stdin
	}
	output := opts.Output
	if output == nil {
		output = os.Stdout
	}
	return &Console{
		auth:        auth,
		entities:    entities,
		roles:       roles,
		in:          bufio.NewScanner(input),
		out:         output,
		interactive: opts.Interactive,
		log:         log,
	}
}

// Run reads and dispatches commands until exit or end of input.
func (c *Console) Run(ctx context.Context) error {
	c.println(welcome)

	first := true
	for {
		if c.interactive {
			c.print(c.session.Prompt())
		}
		line, ok := c.readLine()
		if !ok {
			if err := c.in.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		verb, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		if first && !c.interactive && verb != "login" && verb != "exit" {
			return ErrLoginRequiredFirst
		}
		first = false

		quit, err := c.dispatch(ctx, verb, rest)
		if err != nil {
			c.log.Error().Err(err).Str("command", verb).Msg("command failed")
			return err
		}
		if quit {
			return nil
		}
	}
}

func (c *Console) dispatch(ctx context.Context, verb, rest string) (quit bool, err error) {
	switch verb {
	case "exit":
		c.println("Goodbye!")
		return true, nil
	case "help":
		c.print(helpText(registry.Kinds()))
		return false, nil
	case "clear":
		c.print("\x1b[2J\x1b[H")
		return false, nil
	case "login":
		return false, c.cmdLogin(ctx, rest)
	case "logout":
		return false, c.cmdLogout()
	case "create":
		return false, c.cmdCreate(ctx, rest)
	case "list":
		return false, c.cmdList(ctx, rest)
	case "delete":
		return false, c.cmdDelete(ctx, rest)
	case "assign_role":
		return false, c.cmdAssignRole(ctx, rest)
	case "check_user_role":
		return false, c.cmdCheckUserRole(ctx, rest)
	case "update_role_permissions":
		return false, c.cmdUpdateRolePermissions(ctx, rest)
	default:
		c.printf("Unknown command: %s. Type `help` for the command list.\n", verb)
		return false, nil
	}
}

func (c *Console) cmdLogin(ctx context.Context, rest string) error {
	args, err := ParseArgs(rest)
	if err != nil {
		return c.report(err)
	}
	if len(args) == 0 {
		c.println("Please provide login credentials.")
		c.printUsage("login")
		return nil
	}

	if key, ok := args["key"]; ok {
		if err := c.auth.LoginWithKey(key); err != nil {
			return c.report(err)
		}
		c.session.LoginKeyHolder()
		c.println("Logged in as superuser with full privileges.")
		return nil
	}

	email, password := args.Get("email"), args.Get("password")
	if email == "" || password == "" {
		c.println("Please provide email and password.")
		c.printUsage("login")
		return nil
	}
	user, role, err := c.auth.LoginWithCredentials(ctx, email, password)
	if err != nil {
		return c.report(err)
	}
	c.session.LoginUser(user, role)
	c.printf("Logged in as %s.\n", user.Name)
	return nil
}

func (c *Console) cmdLogout() error {
	c.session.Clear()
	c.println("Logged out.")
	return nil
}

func (c *Console) cmdCreate(ctx context.Context, rest string) error {
	if !c.requireLogin() {
		return nil
	}
	kind, params, _ := strings.Cut(rest, " ")
	if kind == "" {
		c.println("Please provide the entity to create.")
		c.printUsage("create")
		return nil
	}
	args, err := ParseArgs(params)
	if err != nil {
		return c.report(err)
	}

	created, err := c.entities.Create(ctx, kind, args)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidParams) {
			c.printf("Error: %s.\n", err)
			c.printUsage("create")
			return nil
		}
		return c.report(err)
	}
	c.printf("%s created:\n", kind)
	c.printJSON(created)
	return nil
}

func (c *Console) cmdList(ctx context.Context, rest string) error {
	if !c.requireLogin() {
		return nil
	}
	kind, params, _ := strings.Cut(rest, " ")
	if kind == "" {
		c.println("Please provide the entity to list.")
		c.printUsage("list")
		return nil
	}
	args, err := ParseArgs(params)
	if err != nil {
		return c.report(err)
	}

	docs, err := c.entities.List(ctx, kind, args)
	if err != nil {
		return c.report(err)
	}
	if len(docs) == 0 {
		c.printf("No %ss found.\n", kind)
		return nil
	}
	c.printf("Listing all %ss:\n", kind)
	for _, doc := range docs {
		c.printJSON(doc)
	}
	return nil
}

func (c *Console) cmdDelete(ctx context.Context, rest string) error {
	if !c.requireLogin() || !c.requireKeyHolder() {
		return nil
	}
	kind, params, _ := strings.Cut(rest, " ")
	if kind == "" {
		c.println("Please provide the entity to delete.")
		c.printUsage("delete")
		return nil
	}

	all := false
	tokens := strings.Fields(params)
	remaining := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token == "all" {
			all = true
			continue
		}
		remaining = append(remaining, token)
	}
	args, err := ParseArgs(strings.Join(remaining, " "))
	if err != nil {
		return c.report(err)
	}

	if all {
		prompt := fmt.Sprintf("Are you sure you want to delete all %ss? This action cannot be undone. (yes/no): ", kind)
		if !c.confirm(prompt) {
			c.println("Action canceled.")
			return nil
		}
		n, err := c.entities.DeleteAll(ctx, kind, args)
		if err != nil {
			return c.report(err)
		}
		c.printf("Deleted %d %s record(s).\n", n, kind)
		return nil
	}

	if len(args) == 0 {
		c.println("Provide a query like `id=<id>`, or `all`.")
		c.printUsage("delete")
		return nil
	}

	// Fetch and display the target before asking for confirmation.
	doc, err := c.entities.Find(ctx, kind, args)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.printf("%s matching %s not found.\n", kind, formatQuery(args))
			return nil
		}
		return c.report(err)
	}
	c.printf("%s to delete:\n", kind)
	c.printJSON(doc)

	if !c.confirm(fmt.Sprintf("Are you sure you want to delete this %s? (yes/no): ", kind)) {
		c.println("Action canceled.")
		return nil
	}
	if err := c.entities.DeleteOne(ctx, kind, args); err != nil {
		return c.report(err)
	}
	c.printf("%s deleted.\n", kind)
	return nil
}

func (c *Console) cmdAssignRole(ctx context.Context, rest string) error {
	if !c.requireLogin() || !c.requireKeyHolder() {
		return nil
	}
	args, err := ParseArgs(rest)
	if err != nil {
		return c.report(err)
	}
	userSel := ports.UserSelector{ID: args.Get("user_id"), Email: args.Get("user_email")}
	roleSel := ports.RoleSelector{ID: args.Get("role_id"), Name: args.Get("role_name")}
	if userSel.String() == "" || roleSel.String() == "" {
		c.println("Provide a user (user_id or user_email) and a role (role_id or role_name).")
		c.printUsage("assign_role")
		return nil
	}

	user, role, err := c.roles.AssignRole(ctx, userSel, roleSel)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.printf("Error: User with %s not found.\n", userSel)
		case errors.Is(err, domain.ErrRoleNotFound):
			c.printf("Error: Role %s not found.\n", roleSel)
		default:
			return c.report(err)
		}
		return nil
	}
	c.printf("Role %s assigned to user %s.\n", role.Name, user.Name)
	return nil
}

func (c *Console) cmdCheckUserRole(ctx context.Context, rest string) error {
	if !c.requireLogin() {
		return nil
	}
	args, err := ParseArgs(rest)
	if err != nil {
		return c.report(err)
	}
	email := args.Get("email")
	if email == "" {
		c.println("Please provide the user's email.")
		c.printUsage("check_user_role")
		return nil
	}

	user, role, err := c.roles.CheckUserRole(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.printf("Error: User with %s not found.\n", email)
			return nil
		}
		return c.report(err)
	}
	if role == nil {
		c.printf("User %s has no role assigned.\n", user.Email)
		return nil
	}
	c.printf("User %s has role: %s.\n", user.Email, role.Name)
	return nil
}

func (c *Console) cmdUpdateRolePermissions(ctx context.Context, rest string) error {
	if !c.requireLogin() || !c.requireKeyHolder() {
		return nil
	}
	args, err := ParseArgs(rest)
	if err != nil {
		return c.report(err)
	}
	roleSel := ports.RoleSelector{ID: args.Get("role_id"), Name: args.Get("role_name")}
	if roleSel.String() == "" {
		c.println("Provide a role (role_id or role_name).")
		c.printUsage("update_role_permissions")
		return nil
	}
	permissions := splitPermissions(args.Get("permissions"))
	if len(permissions) == 0 {
		c.println("Provide at least one permission in permissions=<p1,p2,...>.")
		c.printUsage("update_role_permissions")
		return nil
	}

	role, err := c.roles.UpdateRolePermissions(ctx, roleSel, permissions)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			c.printf("Error: Role %s not found.\n", roleSel)
			return nil
		}
		return c.report(err)
	}
	c.printf("Permissions for role %s updated: %s.\n", role.Name, strings.Join(role.Permissions, ", "))
	return nil
}

// report maps a recognized error to its user-facing diagnostic and returns
// nil; anything else is treated as fatal and returned unchanged.
func (c *Console) report(err error) error {
	var pe *ParseError
	switch {
	case errors.As(err, &pe):
		c.printf("%s\nDid you use spaces in a value? Replace each space with `_`.\n", pe.Error())
	case errors.Is(err, domain.ErrInvalidKey):
		c.println("Invalid key.")
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.println("Invalid credentials. Please try again.")
	case errors.Is(err, domain.ErrUserExists):
		c.println("Error: user already exists.")
	case errors.Is(err, domain.ErrUserNotFound):
		c.println("Error: user not found.")
	case errors.Is(err, domain.ErrRoleNotFound):
		c.println("Error: role not found.")
	case errors.Is(err, domain.ErrUnknownKind),
		errors.Is(err, domain.ErrInvalidParams),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrCodeExhausted),
		errors.Is(err, domain.ErrNoPermissions):
		c.printf("Error: %s.\n", err)
	case errors.Is(err, domain.ErrNotFound):
		c.println("No matching record found.")
	default:
		return err
	}
	return nil
}

func (c *Console) requireLogin() bool {
	if !c.session.LoggedIn() {
		c.println("Please login first to perform this action.")
		return false
	}
	return true
}

func (c *Console) requireKeyHolder() bool {
	if !c.session.IsKeyHolder() {
		c.println("Only the key-holder can perform this action.")
		return false
	}
	return true
}

// confirm blocks on the next input line and returns true only for an
// explicit "yes".
func (c *Console) confirm(prompt string) bool {
	c.print(prompt)
	line, ok := c.readLine()
	if !ok {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "yes")
}

func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}

func (c *Console) printUsage(command string) {
	c.printf("Usage: %s\n", usage[command])
}

func (c *Console) printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		c.printf("%v\n", v)
		return
	}
	c.printf("%s\n", data)
}

func (c *Console) print(s string)   { fmt.Fprint(c.out, s) }
func (c *Console) println(s string) { fmt.Fprintln(c.out, s) }

func (c *Console) printf(format string, a ...any) { fmt.Fprintf(c.out, format, a...) }

func formatQuery(args Args) string {
	pairs := make([]string, 0, len(args))
	for name, value := range args {
		pairs = append(pairs, name+"="+value)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, " ")
}

// splitPermissions parses a comma-separated permission list, discarding
// blank entries.
func splitPermissions(raw string) []string {
	out := make([]string, 0, 4)
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
