package autoscope

import "time"

// Issue is one recorded defect on an inspection point.
type Issue struct {
	ID          string    `json:"id"`
	Type        IssueType `json:"type"`
	Severity    Severity  `json:"severity"`
	Description string    `json:"description"`
	Suggestion  string    `json:"suggestion,omitempty"`
	Cost        int       `json:"cost"`
	Images      []Image   `json:"images"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// IssueType is the defect category. TypeNormal is a control signal meaning
// "clear all issues on this point" and is never stored as an issue.
type IssueType string

const (
	TypeNormal    IssueType = "normal"
	TypeScratch   IssueType = "scratch"
	TypeDent      IssueType = "dent"
	TypePaintFade IssueType = "paint-fade"
	TypePaintPeel IssueType = "paint-peel"
	TypeRust      IssueType = "rust"
	TypeCrack     IssueType = "crack"
	TypeColorDiff IssueType = "color-diff"
	TypeOverspray IssueType = "overspray"
	TypeStoneChip IssueType = "stone-chip"
	TypeOther     IssueType = "other"
)

// IsNormal reports whether the type is the clear-all sentinel.
func (t IssueType) IsNormal() bool {
	return t == TypeNormal
}

// Severity grades how bad an issue is.
type Severity string

const (
	SeverityNormal   Severity = "normal"
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// IsValid returns true if the severity is a recognized value.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityNormal, SeverityMinor, SeverityModerate, SeveritySevere:
		return true
	}
	return false
}

// IssueInput is the operator input for recording a new issue.
type IssueInput struct {
	PointID     string    `json:"pointId"`
	Type        IssueType `json:"type"`
	Severity    Severity  `json:"severity"`
	Description string    `json:"description"`
	Suggestion  string    `json:"suggestion"`
	Cost        int       `json:"cost"`
	Images      []Image   `json:"images"`
}

// IssueRecord is an issue flattened together with the point it was found
// on. This is the shape report and export consumers read.
type IssueRecord struct {
	Issue
	PointID       string        `json:"pointId"`
	PointName     string        `json:"pointName"`
	PointCategory PointCategory `json:"pointCategory"`
	PointLocation Location      `json:"pointLocation"`
}

// IssueUpdate defines fields that can be changed on an existing issue.
// Nil fields are left untouched.
type IssueUpdate struct {
	Type        *IssueType `json:"type,omitempty"`
	Severity    *Severity  `json:"severity,omitempty"`
	Description *string    `json:"description,omitempty"`
	Suggestion  *string    `json:"suggestion,omitempty"`
	Cost        *int       `json:"cost,omitempty"`
	Images      *[]Image   `json:"images,omitempty"`
}
