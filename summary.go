package autoscope

import "math"

// Summary is the vehicle-level aggregate derived from all points' issues.
type Summary struct {
	Score          int              `json:"score"`
	Grade          Grade            `json:"grade"`
	TotalIssues    int              `json:"totalIssues"`
	TotalCost      int              `json:"totalCost"`
	SeverityCounts map[Severity]int `json:"severityCounts"`
}

// Grade is a discrete condition label looked up by score threshold.
type Grade struct {
	Label string `json:"grade"`
	Level int    `json:"level"`
	Min   int    `json:"min"`
}

// GradeTable is ordered highest threshold first; the first matching entry
// wins. The last entry is the catch-all lowest grade.
var GradeTable = []Grade{
	{Label: "excellent", Level: 1, Min: 90},
	{Label: "good", Level: 2, Min: 80},
	{Label: "fair", Level: 3, Min: 70},
	{Label: "poor", Level: 4, Min: 60},
	{Label: "bad", Level: 5, Min: 0},
}

// SeverityDeductions is the per-issue score deduction applied to a point.
var SeverityDeductions = map[Severity]int{
	SeverityNormal:   0,
	SeverityMinor:    3,
	SeverityModerate: 8,
	SeveritySevere:   15,
}

const (
	MaxScore = 100
	MinScore = 0
)

// ScorePoint scores a single point: start at 100, subtract the fixed
// deduction for each issue's severity, clamp at zero.
func ScorePoint(issues []Issue) int {
	score := MaxScore
	for _, issue := range issues {
		score -= SeverityDeductions[issue.Severity]
	}
	if score < MinScore {
		return MinScore
	}
	return score
}

// GradeFor looks up the grade for a score.
func GradeFor(score int) Grade {
	for _, g := range GradeTable {
		if score >= g.Min {
			return g
		}
	}
	return GradeTable[len(GradeTable)-1]
}

// Summarize computes the vehicle summary from the full point map. The
// vehicle score is the rounded arithmetic mean of per-point scores,
// clamped to [0, 100].
func Summarize(points map[string]*InspectionPoint) Summary {
	summary := Summary{
		Score:          MaxScore,
		SeverityCounts: map[Severity]int{},
	}

	total := 0
	for _, point := range points {
		total += ScorePoint(point.Issues)
		for _, issue := range point.Issues {
			summary.TotalIssues++
			summary.TotalCost += issue.Cost
			summary.SeverityCounts[issue.Severity]++
		}
	}

	if len(points) > 0 {
		summary.Score = int(math.Round(float64(total) / float64(len(points))))
	}
	if summary.Score > MaxScore {
		summary.Score = MaxScore
	}
	if summary.Score < MinScore {
		summary.Score = MinScore
	}
	summary.Grade = GradeFor(summary.Score)
	return summary
}
