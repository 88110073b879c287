package models

import "gorm.io/gorm"

type CaseStatus string

const (
	CaseOpen     CaseStatus = "open"
	CaseInReview CaseStatus = "in_review"
	CaseClosed   CaseStatus = "closed"
)

// CaseDetails is the registry card shared by all three court tiers.
type CaseDetails struct {
	CaseNumber string     `gorm:"size:50;not null" json:"case_number"`
	CaseYear   int        `json:"case_year"`
	Subject    string     `gorm:"size:255" json:"subject"`
	Plaintiff  string     `gorm:"size:255" json:"plaintiff"`
	Defendant  string     `gorm:"size:255" json:"defendant"`
	CourtName  string     `gorm:"size:255" json:"court_name"`
	JudgeName  string     `gorm:"size:255" json:"judge_name"`
	Status     CaseStatus `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	Notes      string     `gorm:"type:text" json:"notes"`
}

type PrimaryCase struct {
	gorm.Model
	CaseDetails
}

type AppealCase struct {
	gorm.Model
	CaseDetails

	// Primary case this appeal continues; lookup only, no cascade.
	PrimaryCaseID *uint        `json:"primary_case_id"`
	PrimaryCase   *PrimaryCase `json:"-"`
}

type SupremeCase struct {
	gorm.Model
	CaseDetails

	// Appeal case this continues; lookup only, no cascade.
	AppealCaseID *uint       `json:"appeal_case_id"`
	AppealCase   *AppealCase `json:"-"`
}
