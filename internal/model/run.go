package model

import "time"

// Run is a persisted scoring pass over one comparison section.
type Run struct {
	ID            string      `json:"id"`
	SectionID     string      `json:"section_id"`
	PlanID        string      `json:"plan_id"`
	CompetitorIDs []string    `json:"competitor_ids"`
	Scorecards    []Scorecard `json:"scorecards"`
	CreatedAt     time.Time   `json:"created_at"`
}

// BestScorecard returns the scorecard with the highest overall score, or nil.
func (r *Run) BestScorecard() *Scorecard {
	var best *Scorecard
	for i := range r.Scorecards {
		if best == nil || r.Scorecards[i].Result.Overall > best.Result.Overall {
			best = &r.Scorecards[i]
		}
	}
	return best
}
