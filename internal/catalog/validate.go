package catalog

import "github.com/BiiZti/5GRecommendationTool/pkg/models"

// PlanIssues collects every constraint a single plan violates.
type PlanIssues struct {
	Index  int      `json:"index"`
	ID     string   `json:"id,omitempty"`
	Name   string   `json:"name,omitempty"`
	Issues []string `json:"issues"`
}

// ValidateAll checks every plan and reports the ones with problems. A nil
// result means the whole set is clean.
func ValidateAll(plans []models.Plan) []PlanIssues {
	var report []PlanIssues
	for i := range plans {
		violations := plans[i].Violations()
		if len(violations) == 0 {
			continue
		}
		issues := make([]string, 0, len(violations))
		for _, v := range violations {
			issues = append(issues, v.Error())
		}
		report = append(report, PlanIssues{
			Index:  i,
			ID:     plans[i].ID,
			Name:   plans[i].Name,
			Issues: issues,
		})
	}
	return report
}
