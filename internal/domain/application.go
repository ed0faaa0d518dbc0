package domain

import "time"

type ApplicationStatus string

const (
	ApplicationApplied     ApplicationStatus = "applied"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationAccepted    ApplicationStatus = "accepted"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationWithdrawn   ApplicationStatus = "withdrawn"
)

type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type ApplicationCreationData struct {
	PostId          string
	ApplicantId     string
	AppliedForSkill string
	Resume          string
	CoverLetter     string
	Answers         []Answer
}

type Application struct {
	Id              string
	PostId          string
	ApplicantId     string
	Post            PostSnapshot
	Applicant       UserSnapshot
	AppliedForSkill string
	Resume          string
	CoverLetter     string
	Answers         []Answer
	Status          ApplicationStatus
	AppliedAt       time.Time
	ReviewedAt      *time.Time
	UpdatedAt       time.Time
}

// Active reports whether the application still counts against the
// one-application-per-post rule. Only withdrawal frees the slot.
func (a *Application) Active() bool {
	return a.Status != ApplicationWithdrawn
}

// ApplicationStats is a pure aggregate, one counter per status.
type ApplicationStats struct {
	Total       int `json:"total"`
	Applied     int `json:"applied"`
	Shortlisted int `json:"shortlisted"`
	Accepted    int `json:"accepted"`
	Rejected    int `json:"rejected"`
	Withdrawn   int `json:"withdrawn"`
}
