package applications

import "time"

type userView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type applicationView struct {
	ID        string    `json:"id"`
	JobID     string    `json:"job_id"`
	User      userView  `json:"user"`
	Scores    Scores    `json:"scores"`
	Status    string    `json:"status"`
	AppliedAt time.Time `json:"applied_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Error     string    `json:"error,omitempty"`
}

type listResponse struct {
	Applications []applicationView `json:"applications"`
	Total        int               `json:"total"`
	Warnings     []string          `json:"warnings,omitempty"`
}

type applyResponse struct {
	Message     string          `json:"message"`
	Application applicationView `json:"application"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type statusResponse struct {
	Message     string          `json:"message"`
	Application applicationView `json:"application"`
}

type removeResponse struct {
	Message string `json:"message"`
	Deleted int    `json:"deleted"`
}

type rescoreResponse struct {
	Queued   bool `json:"queued"`
	Rescored int  `json:"rescored"`
}

func toView(app Application, scores Scores, errMsg string) applicationView {
	return applicationView{
		ID:        app.ID,
		JobID:     app.JobID,
		User:      userView{ID: app.UserID, Email: app.UserEmail},
		Scores:    scores,
		Status:    app.Status,
		AppliedAt: app.AppliedAt,
		UpdatedAt: app.UpdatedAt,
		Error:     errMsg,
	}
}
