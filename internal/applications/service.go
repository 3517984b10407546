package applications

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"placement-backend/internal/jobs"
	"placement-backend/internal/matching"
	"placement-backend/internal/queue"
	"placement-backend/internal/resumes"
	"placement-backend/internal/shared/auth"
	"placement-backend/internal/shared/metrics"
	"placement-backend/internal/shared/storage/object"
	"placement-backend/internal/shared/telemetry"
)

// Service runs the application lifecycle.
type Service struct {
	Repo       Repo
	Jobs       jobs.Repo
	Ranker     *matching.Ranker
	Normalizer *resumes.Normalizer
	Store      object.ObjectStore
	Queue      queue.Client
	Now        func() time.Time
}

// Ranked is an application with scores from the applicant ranker.
type Ranked struct {
	Application Application
	Scores      Scores
	Error       string
}

// JobApplications is a job's applicants, best first.
type JobApplications struct {
	Job          jobs.Posting
	Applications []Ranked
	Warnings     []string
}

// RescoreOutcome reports how a rescore request was handled.
type RescoreOutcome struct {
	Queued   bool
	Rescored int
}

// Apply normalizes the uploaded resume, scores it against the job, stores the
// file and records a pending application.
func (s *Service) Apply(ctx context.Context, id auth.Identity, jobID, fileName, mimeType string, data []byte) (Application, error) {
	if !id.HasRole(auth.RoleStudent) {
		return Application{}, ErrForbidden
	}
	job, err := s.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return Application{}, err
	}
	exists, err := s.Repo.Exists(ctx, jobID, id.UserID)
	if err != nil {
		return Application{}, err
	}
	if exists {
		return Application{}, ErrConflict
	}

	doc, err := s.Normalizer.Normalize(ctx, fileName, mimeType, data)
	if err != nil {
		return Application{}, err
	}
	scores, _, err := s.Ranker.Score(ctx, doc, job)
	if err != nil {
		return Application{}, err
	}

	var key string
	if s.Store != nil {
		key, _, _, err = s.Store.Save(ctx, id.UserID, fileName, bytes.NewReader(data))
		if err != nil {
			return Application{}, fmt.Errorf("store resume: %w", err)
		}
	}

	now := s.now()
	app := Application{
		ID:         uuid.NewString(),
		JobID:      job.ID,
		UserID:     id.UserID,
		UserEmail:  id.Email,
		ResumeID:   doc.ID,
		ResumeKey:  key,
		ResumeText: doc.RawText,
		Scores:     ScoresFrom(scores),
		Status:     StatusPending,
		AppliedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Repo.Create(ctx, app); err != nil {
		s.deleteObject(ctx, key)
		return Application{}, err
	}

	metrics.IncApplicationsCreated()
	telemetry.Info("application.created", map[string]any{
		"application_id": app.ID,
		"job_id":         app.JobID,
		"user_id":        app.UserID,
		"overall_match":  app.Scores.Overall,
	})
	return app, nil
}

// ListForJob ranks a job's applicants. HR users may only see their own postings.
func (s *Service) ListForJob(ctx context.Context, id auth.Identity, jobID string) (JobApplications, error) {
	job, err := s.authorizeJob(ctx, id, jobID)
	if err != nil {
		return JobApplications{}, err
	}
	apps, err := s.Repo.ListByJob(ctx, jobID)
	if err != nil {
		return JobApplications{}, err
	}
	ranking, err := s.rank(ctx, job, apps)
	if err != nil {
		return JobApplications{}, err
	}

	out := JobApplications{Job: job, Applications: make([]Ranked, 0, len(ranking.Results)), Warnings: ranking.Warnings}
	byID := make(map[string]Application, len(apps))
	for _, app := range apps {
		byID[app.ID] = app
	}
	for _, m := range ranking.Results {
		out.Applications = append(out.Applications, Ranked{
			Application: byID[m.Applicant.ID],
			Scores:      ScoresFrom(m.Scores),
			Error:       m.Error,
		})
	}
	return out, nil
}

// UpdateStatus decides a pending application.
func (s *Service) UpdateStatus(ctx context.Context, id auth.Identity, appID, status string) (Application, error) {
	if !ValidStatus(status) {
		return Application{}, ErrInvalidStatus
	}
	app, err := s.Repo.GetByID(ctx, appID)
	if err != nil {
		return Application{}, err
	}
	if _, err := s.authorizeJob(ctx, id, app.JobID); err != nil {
		return Application{}, err
	}
	if err := CheckTransition(app.Status, status); err != nil {
		return Application{}, err
	}

	now := s.now()
	if err := s.Repo.UpdateStatus(ctx, appID, status, now); err != nil {
		return Application{}, err
	}
	metrics.IncStatusChanges()
	telemetry.Info("application.status_changed", map[string]any{
		"application_id":    appID,
		"job_id":            app.JobID,
		"user_id":           id.UserID,
		"status_transition": app.Status + "->" + status,
	})
	app.Status = status
	app.UpdatedAt = now
	return app, nil
}

// RemoveRejected deletes the rejected applications of the caller's postings
// together with their stored resume files.
func (s *Service) RemoveRejected(ctx context.Context, id auth.Identity) (int, error) {
	if !id.HasRole(auth.RoleHR) {
		return 0, ErrForbidden
	}
	if id.HRCode == "" {
		return 0, ErrMissingHRCode
	}
	postings, err := s.Jobs.ListByHRCode(ctx, id.HRCode)
	if err != nil {
		return 0, err
	}
	jobIDs := make([]string, 0, len(postings))
	for _, p := range postings {
		jobIDs = append(jobIDs, p.ID)
	}
	if len(jobIDs) == 0 {
		return 0, nil
	}

	removed, err := s.Repo.DeleteRejected(ctx, jobIDs)
	if err != nil {
		return 0, err
	}
	for _, app := range removed {
		s.deleteObject(ctx, app.ResumeKey)
	}
	metrics.AddRejectedRemoved(int64(len(removed)))
	telemetry.Info("application.rejected_removed", map[string]any{
		"user_id": id.UserID,
		"hr_code": id.HRCode,
		"count":   len(removed),
	})
	return len(removed), nil
}

// RequestRescore queues a rescore of the job when a queue is configured and
// runs it inline otherwise.
func (s *Service) RequestRescore(ctx context.Context, id auth.Identity, jobID, requestID string) (RescoreOutcome, error) {
	if _, err := s.authorizeJob(ctx, id, jobID); err != nil {
		return RescoreOutcome{}, err
	}
	if s.Queue != nil {
		msg := queue.NewRescoreMessage(jobID, requestID, s.now())
		if err := s.Queue.Send(ctx, msg); err != nil {
			return RescoreOutcome{}, fmt.Errorf("enqueue rescore: %w", err)
		}
		telemetry.Info("application.rescore_enqueued", map[string]any{
			"job_id":     jobID,
			"request_id": requestID,
		})
		return RescoreOutcome{Queued: true}, nil
	}
	n, err := s.Rescore(ctx, jobID)
	if err != nil {
		return RescoreOutcome{}, err
	}
	return RescoreOutcome{Rescored: n}, nil
}

// Rescore recomputes and stores the scores of every application of a job.
// Pairs that fail to score keep their previous scores.
func (s *Service) Rescore(ctx context.Context, jobID string) (int, error) {
	job, err := s.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return 0, err
	}
	apps, err := s.Repo.ListByJob(ctx, jobID)
	if err != nil {
		return 0, err
	}
	ranking, err := s.rank(ctx, job, apps)
	if err != nil {
		return 0, err
	}

	now := s.now()
	updated := 0
	for _, m := range ranking.Results {
		if m.Error != "" {
			continue
		}
		if err := s.Repo.UpdateScores(ctx, m.Applicant.ID, ScoresFrom(m.Scores), now); err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return updated, err
		}
		updated++
	}
	metrics.IncRescoreRuns()
	telemetry.Info("application.rescored", map[string]any{
		"job_id":  jobID,
		"updated": updated,
		"total":   len(apps),
	})
	return updated, nil
}

func (s *Service) rank(ctx context.Context, job jobs.Posting, apps []Application) (matching.Ranking[matching.ApplicantMatch], error) {
	now := s.now()
	applicants := make([]matching.Applicant, 0, len(apps))
	for _, app := range apps {
		resumeID := app.ResumeID
		if resumeID == "" {
			resumeID = app.ID
		}
		applicants = append(applicants, matching.Applicant{
			ID:        app.ID,
			Resume:    resumes.Build(resumeID, app.ResumeText, now),
			AppliedAt: app.AppliedAt,
		})
	}
	return s.Ranker.RankApplicants(ctx, job, applicants)
}

// ResumeFile is a stored resume opened for download.
type ResumeFile struct {
	Body     io.ReadCloser
	FileName string
}

// OpenResume opens the resume file an applicant uploaded. Callers must close Body.
func (s *Service) OpenResume(ctx context.Context, id auth.Identity, appID string) (ResumeFile, error) {
	app, err := s.Repo.GetByID(ctx, appID)
	if err != nil {
		return ResumeFile{}, err
	}
	if _, err := s.authorizeJob(ctx, id, app.JobID); err != nil {
		return ResumeFile{}, err
	}
	if s.Store == nil || app.ResumeKey == "" {
		return ResumeFile{}, ErrResumeNotStored
	}
	body, err := s.Store.Open(ctx, app.ResumeKey)
	if err != nil {
		return ResumeFile{}, fmt.Errorf("open resume: %w", err)
	}
	return ResumeFile{Body: body, FileName: storedFileName(app.ResumeKey)}, nil
}

// storedFileName strips the directory and random prefix the object store adds.
func storedFileName(key string) string {
	name := path.Base(strings.ReplaceAll(key, "\\", "/"))
	if _, rest, ok := strings.Cut(name, "_"); ok && rest != "" {
		return rest
	}
	return name
}

// authorizeJob loads the job and checks the caller may manage its applications.
func (s *Service) authorizeJob(ctx context.Context, id auth.Identity, jobID string) (jobs.Posting, error) {
	if !id.HasRole(auth.RoleHR, auth.RoleTPO) {
		return jobs.Posting{}, ErrForbidden
	}
	job, err := s.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return jobs.Posting{}, err
	}
	if id.Role == auth.RoleHR && (id.HRCode == "" || job.HRCode != id.HRCode) {
		return jobs.Posting{}, ErrForbidden
	}
	return job, nil
}

func (s *Service) deleteObject(ctx context.Context, key string) {
	if s.Store == nil || key == "" {
		return
	}
	if err := s.Store.Delete(ctx, key); err != nil {
		telemetry.Warn("application.resume_delete_failed", map[string]any{
			"resume_key": key,
			"error":      err,
		})
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
