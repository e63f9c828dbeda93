package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WorkType string

const (
	WorkTypeFullTime  WorkType = "full-time"
	WorkTypePartTime  WorkType = "part-time"
	WorkTypeTemporary WorkType = "temporary"
)

func (w WorkType) Valid() bool {
	return w == WorkTypeFullTime || w == WorkTypePartTime || w == WorkTypeTemporary
}

type Job struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	Requirements StringList         `bson:"requirements" json:"requirements"`
	Salary       string             `bson:"salary,omitempty" json:"salary,omitempty"`
	WorkType     WorkType           `bson:"workType" json:"workType"`
	Location     string             `bson:"location" json:"location"`
	Active       bool               `bson:"active" json:"active"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type ApplicationStatus string

const (
	ApplicationStatusNew         ApplicationStatus = "new"
	ApplicationStatusReviewing   ApplicationStatus = "reviewing"
	ApplicationStatusInterviewed ApplicationStatus = "interviewed"
	ApplicationStatusAccepted    ApplicationStatus = "accepted"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusNew, ApplicationStatusReviewing, ApplicationStatusInterviewed,
		ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

// JobApplication keeps the job title as it was when the applicant applied.
type JobApplication struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	JobID          primitive.ObjectID `bson:"jobId" json:"jobId"`
	JobTitle       string             `bson:"jobTitle" json:"jobTitle"`
	ApplicantName  string             `bson:"applicantName" json:"applicantName"`
	ApplicantPhone string             `bson:"applicantPhone" json:"applicantPhone"`
	ApplicantEmail string             `bson:"applicantEmail,omitempty" json:"applicantEmail,omitempty"`
	CVURL          string             `bson:"cvUrl,omitempty" json:"cvUrl,omitempty"`
	Message        string             `bson:"message" json:"message"`
	Status         ApplicationStatus  `bson:"status" json:"status"`
	Read           bool               `bson:"read" json:"read"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
