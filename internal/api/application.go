package api

import (
	"github.com/campuslink-dev/campuslink/internal/domain"
)

// Request DTOs

type CreateApplicationRequest struct {
	AppliedForSkill string          `json:"applied_for_skill,omitempty"`
	Resume          string          `json:"resume,omitempty"`
	CoverLetter     string          `json:"cover_letter,omitempty"`
	Answers         []domain.Answer `json:"answers,omitempty"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Response DTOs

type ApplicationResponse struct {
	domain.Application
}

type ApplicationListResponse struct {
	Applications []domain.Application `json:"applications"`
}

type ApplicationStatsResponse struct {
	domain.ApplicationStats
}
