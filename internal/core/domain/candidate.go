package domain

// Candidate is a person or entry that can be voted for. The voting code is a
// short cache-reserved identifier minted at creation time.
type Candidate struct {
	Base        `bson:",inline"`
	Name        string   `json:"name" bson:"name"`
	EventID     string   `json:"event_id" bson:"event_id"`
	CategoryIDs []string `json:"category_ids,omitempty" bson:"category_ids,omitempty"`
	VotingCode  string   `json:"voting_code" bson:"voting_code"`
}

// Nomination links a candidate to a category within an event.
type Nomination struct {
	Base        `bson:",inline"`
	CandidateID string `json:"candidate_id" bson:"candidate_id"`
	EventID     string `json:"event_id" bson:"event_id"`
	CategoryID  string `json:"category_id" bson:"category_id"`
}

// Vote records a number of votes cast for a candidate from one voter address.
type Vote struct {
	Base          `bson:",inline"`
	CandidateID   string `json:"candidate_id" bson:"candidate_id"`
	EventID       string `json:"event_id" bson:"event_id"`
	CategoryID    string `json:"category_id" bson:"category_id"`
	VoterIP       string `json:"voter_ip" bson:"voter_ip"`
	NumberOfVotes int    `json:"number_of_votes" bson:"number_of_votes"`
}
