package models

import "time"

// Review is a user's rating and write-up of a college
type Review struct {
	ID           string         `json:"id" db:"id"`
	UserID       string         `json:"userId" db:"user_id"`
	CollegeID    string         `json:"collegeId" db:"college_id"`
	DepartmentID string         `json:"departmentId,omitempty" db:"department_id"`
	Content      string         `json:"content" db:"content"`
	Rating       float64        `json:"rating" db:"rating" example:"4.5"`
	CreatedAt    time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time      `json:"updatedAt" db:"updated_at"`
	IsAnonymous  bool           `json:"isAnonymous" db:"is_anonymous"`
	Tags         []string       `json:"tags" db:"tags"`
	Reactions    map[string]int `json:"reactions" db:"reactions"`
}

// Clone returns a deep copy of the review
func (r *Review) Clone() *Review {
	if r == nil {
		return nil
	}
	c := *r
	c.Tags = append([]string(nil), r.Tags...)
	c.Reactions = make(map[string]int, len(r.Reactions))
	for emoji, count := range r.Reactions {
		c.Reactions[emoji] = count
	}
	return &c
}

// TotalReactions sums all emoji counters
func (r *Review) TotalReactions() int {
	total := 0
	for _, count := range r.Reactions {
		total += count
	}
	return total
}

// HasTag reports whether the review carries tag
func (r *Review) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ReviewUpdate is a partial update of a review. Nil fields are left untouched.
type ReviewUpdate struct {
	Content     *string
	Rating      *float64
	IsAnonymous *bool
	Tags        *[]string
}

// Apply shallow-merges the set fields of the update onto r
func (up ReviewUpdate) Apply(r *Review) {
	if up.Content != nil {
		r.Content = *up.Content
	}
	if up.Rating != nil {
		r.Rating = *up.Rating
	}
	if up.IsAnonymous != nil {
		r.IsAnonymous = *up.IsAnonymous
	}
	if up.Tags != nil {
		r.Tags = append([]string(nil), (*up.Tags)...)
	}
}

// Comment is an append-only reply to a review
type Comment struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	ReviewID  string    `json:"reviewId" db:"review_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Reaction is one user's emoji on a review. (UserID, ReviewID, Emoji) is unique.
type Reaction struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	ReviewID  string    `json:"reviewId" db:"review_id"`
	Emoji     string    `json:"emoji" db:"emoji"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Bookmark marks a review as saved by a user. (UserID, ReviewID) is unique.
type Bookmark struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	ReviewID  string    `json:"reviewId" db:"review_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
