package models

import "time"

// Poll is a multiple-choice question, optionally scoped to a college
type Poll struct {
	ID        string       `json:"id" db:"id"`
	CollegeID string       `json:"collegeId,omitempty" db:"college_id"`
	Question  string       `json:"question" db:"question"`
	Options   []PollOption `json:"options"`
	CreatedAt time.Time    `json:"createdAt" db:"created_at"`
	ExpiresAt time.Time    `json:"expiresAt" db:"expires_at"`
}

// PollOption is one answer of a poll with its running vote count
type PollOption struct {
	ID    string `json:"id" db:"id"`
	Text  string `json:"text" db:"text"`
	Votes int    `json:"votes" db:"votes"`
}

// Vote records a user's single choice in a poll
type Vote struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	PollID    string    `json:"pollId" db:"poll_id"`
	OptionID  string    `json:"optionId" db:"option_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Clone returns a deep copy of the poll
func (p *Poll) Clone() *Poll {
	if p == nil {
		return nil
	}
	c := *p
	c.Options = append([]PollOption(nil), p.Options...)
	return &c
}

// Option returns the option with the given id, or nil
func (p *Poll) Option(optionID string) *PollOption {
	for i := range p.Options {
		if p.Options[i].ID == optionID {
			return &p.Options[i]
		}
	}
	return nil
}

// IsExpired reports whether the poll no longer accepts votes at now.
// A zero ExpiresAt never expires.
func (p *Poll) IsExpired(now time.Time) bool {
	return !p.ExpiresAt.IsZero() && now.After(p.ExpiresAt)
}

// TotalVotes sums the votes across options
func (p *Poll) TotalVotes() int {
	total := 0
	for _, o := range p.Options {
		total += o.Votes
	}
	return total
}

// Notification informs a user about activity on their content
type Notification struct {
	ID        string           `json:"id" db:"id"`
	UserID    string           `json:"userId" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Message   string           `json:"message" db:"message"`
	Read      bool             `json:"read" db:"read"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
	RelatedID string           `json:"relatedId,omitempty" db:"related_id"`
}
