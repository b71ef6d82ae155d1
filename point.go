package autoscope

// InspectionPoint is one physical checkpoint on the vehicle. The full set of
// points is fixed at startup from the catalog; only issues, status and (for
// structure points) judgment change during a session.
type InspectionPoint struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Category        PointCategory  `json:"category"`
	Detail          StructureDetail `json:"subCategory,omitempty"`
	Location        Location       `json:"location"`
	InspectionOrder int            `json:"inspectionOrder"`

	// Status is derived from Issues (and Judgment for structure points).
	// It is never set directly; callers go through PointStatusFor.
	Status PointStatus `json:"status"`
	Issues []Issue     `json:"issues"`

	// Paint points only.
	Thickness *ThicknessRange `json:"thickness,omitempty"`

	// Structure points only.
	Judgment StructureJudgment `json:"judgment,omitempty"`
}

// Clone returns a copy of the point with its own issue slice. Mutating code
// must clone before changing anything so committed state stays immutable.
func (p *InspectionPoint) Clone() *InspectionPoint {
	clone := *p
	clone.Issues = make([]Issue, len(p.Issues))
	copy(clone.Issues, p.Issues)
	if p.Thickness != nil {
		t := *p.Thickness
		clone.Thickness = &t
	}
	return &clone
}

// FindIssue returns the index of the issue with the given ID, or -1.
func (p *InspectionPoint) FindIssue(issueID string) int {
	for i := range p.Issues {
		if p.Issues[i].ID == issueID {
			return i
		}
	}
	return -1
}

// PointCategory distinguishes paint panels from structural members.
type PointCategory string

const (
	CategoryPaint     PointCategory = "paint"
	CategoryStructure PointCategory = "structure"
)

// IsValid returns true if the category is a recognized value.
func (c PointCategory) IsValid() bool {
	return c == CategoryPaint || c == CategoryStructure
}

// StructureDetail subdivides structure points.
type StructureDetail string

const (
	DetailSymmetry   StructureDetail = "symmetry"
	DetailFrame      StructureDetail = "frame"
	DetailSuspension StructureDetail = "suspension"
	DetailWeld       StructureDetail = "weld"
)

// Location is the logical zone a point belongs to.
type Location string

const (
	LocationFront   Location = "front"
	LocationRear    Location = "rear"
	LocationLeft    Location = "left"
	LocationRight   Location = "right"
	LocationTop     Location = "top"
	LocationOverall Location = "overall"
)

// PointStatus is the derived condition of a point.
type PointStatus string

const (
	StatusGood    PointStatus = "good"
	StatusWarning PointStatus = "warning"
	StatusDanger  PointStatus = "danger"
)

// PointStatusFor derives a point's status from its issue list: any severe
// issue means danger, else any moderate issue means warning, else good.
// Deterministic and independent of issue order.
func PointStatusFor(issues []Issue) PointStatus {
	if len(issues) == 0 {
		return StatusGood
	}
	status := StatusGood
	for _, issue := range issues {
		switch issue.Severity {
		case SeveritySevere:
			return StatusDanger
		case SeverityModerate:
			status = StatusWarning
		}
	}
	return status
}

// StructureJudgment is the inspector's call on a structural member.
type StructureJudgment string

const (
	JudgmentNormal   StructureJudgment = "normal"
	JudgmentAbnormal StructureJudgment = "abnormal"
	JudgmentRepaired StructureJudgment = "repaired"
)

// IsValid returns true if the judgment is a recognized value.
func (j StructureJudgment) IsValid() bool {
	switch j {
	case JudgmentNormal, JudgmentAbnormal, JudgmentRepaired:
		return true
	}
	return false
}

// Status maps a judgment to the point status it implies.
func (j StructureJudgment) Status() PointStatus {
	switch j {
	case JudgmentAbnormal:
		return StatusWarning
	case JudgmentRepaired:
		return StatusDanger
	default:
		return StatusGood
	}
}

// ThicknessRange is the acceptable paint thickness band for a paint point.
type ThicknessRange struct {
	Min  int    `json:"min"`
	Max  int    `json:"max"`
	Unit string `json:"unit"`
}
