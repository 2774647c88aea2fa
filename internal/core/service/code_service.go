package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/itfy/evoting-admin/internal/core/domain"
	"github.com/itfy/evoting-admin/internal/core/ports"
)

const (
	// DefaultCodeTTL bounds how long a voting code stays reserved.
	DefaultCodeTTL = 60 * 24 * time.Hour

	// maxAttempts bounds the collision-retry loop.
	maxAttempts = 8

	randomSuffixMin = 100
	randomSuffixMax = 999
)

// CodeGenerator mints short human-legible voting codes for candidates,
// guaranteed unique among currently-reserved codes.
//
// A code is built from the upper-cased first two runes of the candidate
// name, the first three digits of the name's rune-sum, and a random
// three-digit suffix. Uniqueness is enforced entirely by the reservation
// cache: Reserve is an atomic set-if-absent, so when two generators race on
// the same derived code exactly one wins and the other retries with the
// name reversed.
type CodeGenerator struct {
	reservations ports.CodeReservations
	ttl          time.Duration
	log          zerolog.Logger

	// randSuffix is swapped out by tests to force collisions.
	randSuffix func() int
}

func NewCodeGenerator(reservations ports.CodeReservations, ttl time.Duration, log zerolog.Logger) *CodeGenerator {
	if ttl <= 0 {
		ttl = DefaultCodeTTL
	}
	return &CodeGenerator{
		reservations: reservations,
		ttl:          ttl,
		log:          log,
		randSuffix:   randomSuffix,
	}
}

// Generate derives and reserves a voting code for name. It fails with
// domain.ErrInvalidName for names shorter than two runes and with
// domain.ErrCodeExhausted when every attempt within the retry bound
// collides.
func (g *CodeGenerator) Generate(ctx context.Context, name string) (string, error) {
	runes := []rune(strings.TrimSpace(name))
	if len(runes) < 2 {
		return "", domain.ErrInvalidName
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		code := g.derive(runes)

		ok, err := g.reservations.Reserve(ctx, code, g.ttl)
		if err != nil {
			return "", fmt.Errorf("reserve voting code: %w", err)
		}
		if ok {
			g.log.Debug().Str("code", code).Int("attempt", attempt).Msg("voting code reserved")
			return code, nil
		}

		if n, cntErr := g.reservations.IncrCollisions(ctx); cntErr == nil {
			g.log.Debug().Str("code", code).Int64("collisions", n).Msg("voting code collision")
		}

		// Reversing the name changes the derived prefix and digit block on
		// the next attempt, so repeated collisions cannot loop on one code.
		runes = reverseRunes(runes)
	}

	return "", domain.ErrCodeExhausted
}

func (g *CodeGenerator) derive(runes []rune) string {
	prefix := strings.ToUpper(string(runes[:2]))

	sum := 0
	for _, r := range runes {
		sum += int(r)
	}
	digits := strconv.Itoa(sum)
	if len(digits) > 3 {
		digits = digits[:3]
	}

	return prefix + digits + strconv.Itoa(g.randSuffix())
}

// randomSuffix draws an unbiased random integer in
// [randomSuffixMin, randomSuffixMax].
func randomSuffix() int {
	span := int64(randomSuffixMax - randomSuffixMin + 1)
	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return randomSuffixMin + int(time.Now().UnixNano()%span)
	}
	return randomSuffixMin + int(n.Int64())
}

func reverseRunes(in []rune) []rune {
	out := make([]rune, len(in))
	for i, r := range in {
		out[len(in)-1-i] = r
	}
	return out
}
