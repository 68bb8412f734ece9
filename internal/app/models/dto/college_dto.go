package dto

import "github.com/campuscope/campuscope/internal/app/models"

// CollegeListQuery holds the search, filter and sort parameters of the college listing
type CollegeListQuery struct {
	Query      string `form:"q"`
	Country    string `form:"country"`
	Type       string `form:"type"`
	MinRanking int    `form:"minRanking" binding:"omitempty,min=0"`
	MaxRanking int    `form:"maxRanking" binding:"omitempty,min=0"`
	Sort       string `form:"sort" binding:"omitempty,oneof=ranking rating reviews name"`
}

// CollegeListResponse is a page of colleges
type CollegeListResponse struct {
	Colleges   []*models.College `json:"colleges"`
	Pagination PaginationInfo    `json:"pagination"`
}

// ReviewListResponse is a page of reviews
type ReviewListResponse struct {
	Reviews    []*ReviewResponse `json:"reviews"`
	Pagination PaginationInfo    `json:"pagination"`
}

// VoteRequest represents a vote for one poll option
type VoteRequest struct {
	OptionID string `json:"optionId" binding:"required"`
}

// PollResponse is a poll with its tallies and the caller's vote, when known
type PollResponse struct {
	*models.Poll
	TotalVotes    int    `json:"totalVotes"`
	Expired       bool   `json:"expired"`
	VotedOptionID string `json:"votedOptionId,omitempty"`
}

// VoteResponse reports a successful vote
type VoteResponse struct {
	Voted bool          `json:"voted"`
	Poll  *PollResponse `json:"poll"`
}
