package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/itfy/evoting-admin/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

// stubReservations is a cache double whose Reserve honours set-if-absent
// semantics under a mutex, so concurrent generators racing on one code see
// exactly one success.
type stubReservations struct {
	mu          sync.Mutex
	reserved    map[string]bool
	rejectFirst int // reject this many Reserve calls outright
	calls       int
	collisions  int64
	err         error
}

func newStubReservations() *stubReservations {
	return &stubReservations{reserved: map[string]bool{}}
}

func (s *stubReservations) Reserve(_ context.Context, code string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	s.calls++
	if s.calls <= s.rejectFirst {
		return false, nil
	}
	if s.reserved[code] {
		return false, nil
	}
	s.reserved[code] = true
	return true, nil
}

func (s *stubReservations) IncrCollisions(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collisions++
	return s.collisions, nil
}

func newGenerator(res *stubReservations, suffix int) *CodeGenerator {
	g := NewCodeGenerator(res, time.Hour, zerolog.Nop())
	g.randSuffix = func() int { return suffix }
	return g
}

// ---------------------------------------------------------------------------
// Derivation
// ---------------------------------------------------------------------------

func TestCodeGenerator_Format(t *testing.T) {
	res := newStubReservations()
	g := newGenerator(res, 123)

	// "Jane": prefix JA, rune sum 74+97+110+101 = 382.
	code, err := g.Generate(context.Background(), "Jane")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != "JA382123" {
		t.Errorf("unexpected code: %q", code)
	}
	if !res.reserved[code] {
		t.Error("generated code must be reserved in the cache")
	}
}

func TestCodeGenerator_LongSumIsTruncatedToThreeDigits(t *testing.T) {
	g := newGenerator(newStubReservations(), 500)

	// A long name pushes the rune sum past three digits.
	code, err := g.Generate(context.Background(), "Maximiliano Montgomery")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(code) != 8 {
		t.Errorf("expected 2+3+3 characters, got %q (len %d)", code, len(code))
	}
}

func TestRandomSuffix_StaysWithinRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		if s := randomSuffix(); s < randomSuffixMin || s > randomSuffixMax {
			t.Fatalf("suffix %d outside [%d, %d]", s, randomSuffixMin, randomSuffixMax)
		}
	}
}

func TestCodeGenerator_NameShorterThanTwoRunes(t *testing.T) {
	g := newGenerator(newStubReservations(), 123)

	if _, err := g.Generate(context.Background(), "J"); !errors.Is(err, domain.ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got: %v", err)
	}
	if _, err := g.Generate(context.Background(), "  J  "); !errors.Is(err, domain.ErrInvalidName) {
		t.Errorf("whitespace must not count towards the minimum, got: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Collision handling
// ---------------------------------------------------------------------------

func TestCodeGenerator_RetriesWithinBoundOnCollisions(t *testing.T) {
	res := newStubReservations()
	res.rejectFirst = 3
	g := newGenerator(res, 123)

	code, err := g.Generate(context.Background(), "Jane")
	if err != nil {
		t.Fatalf("expected success within retry bound, got: %v", err)
	}
	if code == "" {
		t.Fatal("expected a code")
	}
	if res.calls != 4 {
		t.Errorf("expected 4 reservation attempts, got %d", res.calls)
	}
	if res.collisions != 3 {
		t.Errorf("expected 3 collision increments, got %d", res.collisions)
	}
}

func TestCodeGenerator_ExhaustsAfterBoundedAttempts(t *testing.T) {
	res := newStubReservations()
	res.rejectFirst = 1000 // every attempt collides
	g := newGenerator(res, 123)

	_, err := g.Generate(context.Background(), "Jane")
	if !errors.Is(err, domain.ErrCodeExhausted) {
		t.Fatalf("expected ErrCodeExhausted, got: %v", err)
	}
	if res.calls != maxAttempts {
		t.Errorf("expected exactly %d attempts, got %d", maxAttempts, res.calls)
	}
}

func TestCodeGenerator_ReservationErrorIsFatal(t *testing.T) {
	res := newStubReservations()
	res.err = errors.New("redis unavailable")
	g := newGenerator(res, 123)

	if _, err := g.Generate(context.Background(), "Jane"); err == nil {
		t.Fatal("cache failure must propagate")
	}
}

// ---------------------------------------------------------------------------
// Concurrency: the cache's set-if-absent is the only arbiter
// ---------------------------------------------------------------------------

func TestCodeGenerator_ConcurrentGenerationSingleWinnerPerCode(t *testing.T) {
	res := newStubReservations()
	// Fixed suffix: both goroutines derive the identical first candidate
	// code, so exactly one Reserve succeeds and the loser must retry with
	// the reversed name.
	g := newGenerator(res, 123)

	var wg sync.WaitGroup
	codes := make([]string, 2)
	errs := make([]error, 2)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i], errs[i] = g.Generate(context.Background(), "Jane")
		}(i)
	}
	wg.Wait()

	if errs[0] != nil || errs[1] != nil {
		t.Fatalf("both generations must succeed, got: %v / %v", errs[0], errs[1])
	}
	if codes[0] == codes[1] {
		t.Errorf("concurrent generations must never share a code, both got %q", codes[0])
	}
	for _, code := range codes {
		if !res.reserved[code] {
			t.Errorf("code %q missing from reservations", code)
		}
	}
	if res.collisions < 1 {
		t.Error("the losing generator must have observed a collision")
	}
}
