package console

import (
	"errors"
	"testing"
)

func TestParseArgs_Basic(t *testing.T) {
	args, err := ParseArgs("name=John email=john@example.com password=secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 parameters, got %d", len(args))
	}
	if args.Get("name") != "John" || args.Get("email") != "john@example.com" {
		t.Errorf("unexpected values: %v", args)
	}
}

func TestParseArgs_UnderscoresDecodeToSpaces(t *testing.T) {
	args, err := ParseArgs("name=John_Smith description=a_long_text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if args.Get("name") != "John Smith" {
		t.Errorf("expected underscores decoded, got %q", args.Get("name"))
	}
	if args.Get("description") != "a long text" {
		t.Errorf("expected underscores decoded, got %q", args.Get("description"))
	}
}

func TestParseArgs_KeyParameterIsVerbatim(t *testing.T) {
	args, err := ParseArgs("key=STRONG_DEFAULT_KEY")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if args.Get("key") != "STRONG_DEFAULT_KEY" {
		t.Errorf("key value must pass through verbatim, got %q", args.Get("key"))
	}
}

func TestParseArgs_SplitsOnFirstEqualsOnly(t *testing.T) {
	// A Base64-ish value containing "=" must survive intact.
	args, err := ParseArgs("blob=YWJjZA==")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if args.Get("blob") != "YWJjZA==" {
		t.Errorf("value with '=' mangled: %q", args.Get("blob"))
	}
}

func TestParseArgs_EmptyInputIsValid(t *testing.T) {
	args, err := ParseArgs("")
	if err != nil {
		t.Fatalf("empty input must not error, got: %v", err)
	}
	if len(args) != 0 {
		t.Errorf("expected empty mapping, got %v", args)
	}
}

func TestParseArgs_MalformedTokenFailsWholeParse(t *testing.T) {
	args, err := ParseArgs("a=1 b")
	if err == nil {
		t.Fatal("expected error for token without '='")
	}
	if args != nil {
		t.Errorf("no partial mapping may be returned, got %v", args)
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Token != "b" {
		t.Errorf("expected offending token %q, got %q", "b", pe.Token)
	}
}

func TestParseArgs_EmptyNameIsMalformed(t *testing.T) {
	if _, err := ParseArgs("=value"); err == nil {
		t.Fatal("expected error for empty parameter name")
	}
}

func TestParseArgs_DuplicateNameLastWins(t *testing.T) {
	args, err := ParseArgs("name=first name=second")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if args.Get("name") != "second" {
		t.Errorf("expected last occurrence to win, got %q", args.Get("name"))
	}
}
