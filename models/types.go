package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// DeadlineFormat is the textual timestamp format used in poll files (UTC).
const DeadlineFormat = "2006-01-02 15:04:05"

// Voting algorithm tags as they appear in poll files
const (
	AlgorithmMax                   VotingAlgorithm = "max"
	AlgorithmBinary                VotingAlgorithm = "binary"
	AlgorithmBordat                VotingAlgorithm = "bordat"
	AlgorithmCondorcet             VotingAlgorithm = "condorcet"
	AlgorithmFirstChoice           VotingAlgorithm = "first-choice"
	AlgorithmFrenchSystem          VotingAlgorithm = "french-system"
	AlgorithmSuccessiveElimination VotingAlgorithm = "successive-elimination"
)

type VotingAlgorithm string

// Valid reports whether the tag is one of the seven known algorithms.
func (a VotingAlgorithm) Valid() bool {
	switch a {
	case AlgorithmMax, AlgorithmBinary, AlgorithmBordat, AlgorithmCondorcet,
		AlgorithmFirstChoice, AlgorithmFrenchSystem, AlgorithmSuccessiveElimination:
		return true
	}
	return false
}

// Deadline is a UTC timestamp stored as "2006-01-02 15:04:05" in YAML
type Deadline struct {
	time.Time
}

func NewDeadline(t time.Time) Deadline {
	return Deadline{t.UTC().Truncate(time.Second)}
}

func (d Deadline) MarshalYAML() (interface{}, error) {
	return d.UTC().Format(DeadlineFormat), nil
}

func (d *Deadline) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	t, err := time.ParseInLocation(DeadlineFormat, s, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid deadline %q: %w", s, err)
	}
	d.Time = t
	return nil
}

func (d Deadline) String() string {
	return d.UTC().Format(DeadlineFormat)
}

// The JSON form matches the YAML form, so API payloads and poll files show
// the same timestamps.

func (d Deadline) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Deadline) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.ParseInLocation(DeadlineFormat, s, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid deadline %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// Domain types

type PollOptions struct {
	AllowMissingChoice     bool `yaml:"allow-missing-choice,omitempty" json:"allow_missing_choice"`
	AllowLateVote          bool `yaml:"allow-late-vote,omitempty" json:"allow_late_vote"`
	ShowOnlyCompleteResult bool `yaml:"show-only-complete-result,omitempty" json:"show_only_complete_result"`
}

// Choice holds the per-choice vote state as two parallel arrays:
// Voters[i] gave Votes[i] points to this choice.
type Choice struct {
	Name         string   `yaml:"name" json:"name"`
	Description  string   `yaml:"description,omitempty" json:"description,omitempty"`
	DescMarkdown string   `yaml:"desc_markdown,omitempty" json:"-"`
	Votes        []int    `yaml:"vote" json:"vote"`
	Voters       []string `yaml:"voter" json:"voter"`
}

// VoterIndex returns the position of voter in the parallel arrays, or -1.
func (c *Choice) VoterIndex(voter string) int {
	for i, v := range c.Voters {
		if v == voter {
			return i
		}
	}
	return -1
}

// SetVote overwrites the voter's existing score or appends a new pair.
func (c *Choice) SetVote(voter string, score int) {
	if i := c.VoterIndex(voter); i >= 0 {
		c.Votes[i] = score
		return
	}
	c.Voters = append(c.Voters, voter)
	c.Votes = append(c.Votes, score)
}

type Poll struct {
	// ID is the file stem of the backing record, set by the store.
	ID string `yaml:"-" json:"id"`

	Name                string          `yaml:"name" json:"name"`
	Description         string          `yaml:"description,omitempty" json:"description,omitempty"`
	DescMarkdown        string          `yaml:"desc_markdown,omitempty" json:"-"`
	AllowedParticipants []string        `yaml:"allowed_participant" json:"allowed_participant"`
	Deadline            Deadline        `yaml:"deadline_date" json:"deadline_date"`
	Choices             []Choice        `yaml:"choices" json:"choices"`
	Algorithm           VotingAlgorithm `yaml:"voting_algorithm,omitempty" json:"voting_algorithm"`
	Options             PollOptions     `yaml:"options,omitempty" json:"options"`
}

// Allowed reports whether voter is in the allowed-participant list.
func (p *Poll) Allowed(voter string) bool {
	for _, v := range p.AllowedParticipants {
		if v == voter {
			return true
		}
	}
	return false
}

// HasVotes reports whether any choice has at least one recorded vote.
func (p *Poll) HasVotes() bool {
	for _, c := range p.Choices {
		if len(c.Voters) > 0 {
			return true
		}
	}
	return false
}

// Clone returns a deep copy, so a candidate new state can be built and
// validated without touching the loaded record.
func (p *Poll) Clone() *Poll {
	out := *p
	out.AllowedParticipants = append([]string(nil), p.AllowedParticipants...)
	out.Choices = make([]Choice, len(p.Choices))
	for i, c := range p.Choices {
		cc := c
		cc.Votes = append([]int(nil), c.Votes...)
		cc.Voters = append([]string(nil), c.Voters...)
		out.Choices[i] = cc
	}
	return &out
}

// Validate enforces the record invariants. It is applied on load and before
// every save.
func (p *Poll) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: poll has no name", ErrInvalidInput)
	}
	if p.Algorithm != "" && !p.Algorithm.Valid() {
		return fmt.Errorf("%w: unknown voting algorithm %q", ErrInvalidInput, p.Algorithm)
	}
	seen := make(map[string]bool, len(p.AllowedParticipants))
	for _, v := range p.AllowedParticipants {
		if seen[v] {
			return fmt.Errorf("%w: duplicate allowed participant %q", ErrInvalidInput, v)
		}
		seen[v] = true
	}
	for _, c := range p.Choices {
		if len(c.Votes) != len(c.Voters) {
			return fmt.Errorf("%w: choice %q has %d votes for %d voters",
				ErrInvalidInput, c.Name, len(c.Votes), len(c.Voters))
		}
		voted := make(map[string]bool, len(c.Voters))
		for _, v := range c.Voters {
			if voted[v] {
				return fmt.Errorf("%w: choice %q lists voter %q twice", ErrInvalidInput, c.Name, v)
			}
			voted[v] = true
		}
		for _, s := range c.Votes {
			if s < 0 {
				return fmt.Errorf("%w: choice %q has negative score %d", ErrInvalidInput, c.Name, s)
			}
		}
	}
	return nil
}

// Ballot is one voter's submission: choice name -> score. The voter identity
// always comes from the authenticated session, never from client form data.
type Ballot struct {
	Voter  string
	Scores map[string]int
}

type ChoiceScore struct {
	Choice string  `json:"choice"`
	Score  float64 `json:"score"`
}

// TallyResult is either a ranked list or a pending marker when the poll
// requires completeness that is not yet met.
type TallyResult struct {
	Poll      string          `json:"poll"`
	Algorithm VotingAlgorithm `json:"algorithm"`
	Pending   bool            `json:"pending"`
	Ranking   []ChoiceScore   `json:"ranking,omitempty"`
	ScoreMax  float64         `json:"score_max"`
}

type Voter struct {
	// ID is the file stem of the backing record, set by the store.
	ID string `yaml:"-" json:"id"`

	Username     string `yaml:"username" json:"username"`
	Email        string `yaml:"email,omitempty" json:"email,omitempty"`
	Fullname     string `yaml:"fullname,omitempty" json:"fullname,omitempty"`
	Presentation string `yaml:"presentation" json:"presentation"`
	Password     string `yaml:"password" json:"-"`
	Admin        bool   `yaml:"admin" json:"admin"`
}

// Invitation binds a voter to a signed token for one poll.
type Invitation struct {
	Voter string `json:"voter"`
	Token string `json:"token"`
}

// Request/response types

type SubmitVoteRequest struct {
	Scores map[string]int `json:"scores"`
}

// UpsertVoterRequest is the admin payload for creating or replacing a voter
// record. The username comes from the URL, and unlike Voter the password is
// accepted from the body here.
type UpsertVoterRequest struct {
	Email        string `json:"email"`
	Fullname     string `json:"fullname"`
	Presentation string `json:"presentation"`
	Password     string `json:"password"`
	Admin        bool   `json:"admin"`
}

type PollSummary struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	Deadline       string      `json:"deadline_date"`
	DeadlineIn     string      `json:"deadline_in"`
	DeadlineNear   bool        `json:"deadline_near"`
	DeadlinePassed bool        `json:"deadline_passed"`
	Complete       bool        `json:"complete"`
	Options        PollOptions `json:"options"`
}

type ValidateTokenResponse struct {
	Poll  string `json:"poll"`
	Voter string `json:"voter"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
