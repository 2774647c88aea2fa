package registry

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/itfy/evoting-admin/internal/core/domain"
)

const dateLayout = "2006-01-02"

type userParams struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"omitempty,min=4"`
}

func newUser(p Params) (any, error) {
	in := userParams{
		Name:     p.Get("name"),
		Email:    p.Get("email"),
		Password: p.Get("password"),
	}
	if err := checkParams(in); err != nil {
		return nil, err
	}

	user := &domain.User{
		Base:  domain.NewBase(time.Now().UTC()),
		Name:  in.Name,
		Email: strings.ToLower(in.Email),
	}

	// Accounts created without a password get a generated one, surfaced to
	// the operator exactly once in the create output.
	password := in.Password
	if password == "" {
		password = domain.GeneratePassword()
		user.GeneratedPassword = password
	}
	hash, err := domain.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.Password = hash
	return user, nil
}

type roleParams struct {
	Name        string `validate:"required"`
	Description string `validate:"required"`
}

func newRole(p Params) (any, error) {
	in := roleParams{Name: p.Get("name"), Description: p.Get("description")}
	if err := checkParams(in); err != nil {
		return nil, err
	}
	return &domain.Role{
		Base:        domain.NewBase(time.Now().UTC()),
		Name:        in.Name,
		Description: in.Description,
	}, nil
}

type eventParams struct {
	Name        string `validate:"required"`
	Description string `validate:"required"`
	StartDate   string `validate:"required,datetime=2006-01-02"`
	EndDate     string `validate:"required,datetime=2006-01-02"`
}

func newEvent(p Params) (any, error) {
	in := eventParams{
		Name:        p.Get("name"),
		Description: p.Get("description"),
		StartDate:   p.Get("start_date"),
		EndDate:     p.Get("end_date"),
	}
	if err := checkParams(in); err != nil {
		return nil, err
	}
	start, _ := time.Parse(dateLayout, in.StartDate)
	end, _ := time.Parse(dateLayout, in.EndDate)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date precedes start_date", domain.ErrInvalidParams)
	}
	return &domain.Event{
		Base:        domain.NewBase(time.Now().UTC()),
		Name:        in.Name,
		Description: in.Description,
		StartDate:   start,
		EndDate:     end,
	}, nil
}

type categoryParams struct {
	Name        string `validate:"required"`
	Description string `validate:"required"`
	EventID     string `validate:"required"`
}

func newCategory(p Params) (any, error) {
	in := categoryParams{
		Name:        p.Get("name"),
		Description: p.Get("description"),
		EventID:     p.Get("event_id"),
	}
	if err := checkParams(in); err != nil {
		return nil, err
	}
	return &domain.Category{
		Base:         domain.NewBase(time.Now().UTC()),
		Name:         in.Name,
		Description:  in.Description,
		EventID:      in.EventID,
		ThumbnailURI: p.Get("thumbnail_uri"),
	}, nil
}

type candidateParams struct {
	Name    string `validate:"required,min=2"`
	EventID string `validate:"required"`
}

// newCandidate builds a candidate without a voting code; the code is minted
// and attached by the entity service once validation has passed.
func newCandidate(p Params) (any, error) {
	in := candidateParams{
		Name:    p.Get("name"),
		EventID: p.Get("event_id"),
	}
	if err := checkParams(in); err != nil {
		return nil, err
	}
	return &domain.Candidate{
		Base:        domain.NewBase(time.Now().UTC()),
		Name:        in.Name,
		EventID:     in.EventID,
		CategoryIDs: splitList(p.Get("category_ids")),
	}, nil
}

type nominationParams struct {
	CandidateID string `validate:"required"`
	EventID     string `validate:"required"`
	CategoryID  string `validate:"required"`
}

func newNomination(p Params) (any, error) {
	in := nominationParams{
		CandidateID: p.Get("candidate_id"),
		EventID:     p.Get("event_id"),
		CategoryID:  p.Get("category_id"),
	}
	if err := checkParams(in); err != nil {
		return nil, err
	}
	return &domain.Nomination{
		Base:        domain.NewBase(time.Now().UTC()),
		CandidateID: in.CandidateID,
		EventID:     in.EventID,
		CategoryID:  in.CategoryID,
	}, nil
}

type voteParams struct {
	CandidateID   string `validate:"required"`
	EventID       string `validate:"required"`
	CategoryID    string `validate:"required"`
	VoterIP       string `validate:"required,ip"`
	NumberOfVotes int    `validate:"gt=0"`
}

func newVote(p Params) (any, error) {
	count := 1
	if raw := p.Get("number_of_votes"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: number_of_votes must be an integer", domain.ErrInvalidParams)
		}
		count = n
	}
	in := voteParams{
		CandidateID:   p.Get("candidate_id"),
		EventID:       p.Get("event_id"),
		CategoryID:    p.Get("category_id"),
		VoterIP:       p.Get("voter_ip"),
		NumberOfVotes: count,
	}
	if err := checkParams(in); err != nil {
		return nil, err
	}
	return &domain.Vote{
		Base:          domain.NewBase(time.Now().UTC()),
		CandidateID:   in.CandidateID,
		EventID:       in.EventID,
		CategoryID:    in.CategoryID,
		VoterIP:       in.VoterIP,
		NumberOfVotes: in.NumberOfVotes,
	}, nil
}

// splitList parses a comma-separated list, discarding blank entries.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
