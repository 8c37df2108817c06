package dto

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var ErrMissingTargetRole = errors.New("first target role is empty")

type PersonalInfo struct {
	UserID string `json:"userId" validate:"required"`
}

type CareerGoals struct {
	TargetRoles        []string `json:"targetRoles" validate:"required,min=1"`
	ExperienceLevel    string   `json:"experienceLevel"`
	DetailedAspiration string   `json:"detailedAspiration"`
	Objectives         string   `json:"objectives"`
}

// RoadmapRequest is the body of POST /api/roadmap. skillsEducation is
// accepted but not used.
type RoadmapRequest struct {
	PersonalInfo    PersonalInfo    `json:"personalInfo"`
	CareerGoals     CareerGoals     `json:"careerGoals"`
	SkillsEducation json.RawMessage `json:"skillsEducation,omitempty"`
}

func (r *RoadmapRequest) Normalize() {
	r.PersonalInfo.UserID = strings.TrimSpace(r.PersonalInfo.UserID)
	roles := r.CareerGoals.TargetRoles
	for i := range roles {
		roles[i] = strings.TrimSpace(roles[i])
	}
}

// Validate checks the userId and the first target role. Only the first
// role is used for generation.
func (r *RoadmapRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.TargetRole() == "" {
		return ErrMissingTargetRole
	}
	return nil
}

func (r *RoadmapRequest) TargetRole() string {
	if len(r.CareerGoals.TargetRoles) == 0 {
		return ""
	}
	return r.CareerGoals.TargetRoles[0]
}

type MilestoneRequest struct {
	Milestone string `json:"milestone" validate:"required"`
	Completed *bool  `json:"completed" validate:"required"`
}

func (r *MilestoneRequest) Validate() error {
	return validate.Struct(r)
}
