package matching

import (
	"placement-backend/internal/jobs"
	"placement-backend/internal/resumes"
	"placement-backend/internal/textproc"
)

// technicalMatch is the share of the job's required skills the resume names.
// A job whose requirements name no known skill scores 0.
func technicalMatch(job jobs.Posting, resume resumes.Document) (score float64, matched, missing []string) {
	required := textproc.TechnicalSkills.Match(job.Requirements)
	score, matched, missing = overlap(required, resume.Skills)
	return score, matched, missing
}

// softSkillsMatch compares soft skills named anywhere in the job text.
func softSkillsMatch(job jobs.Posting, resume resumes.Document) float64 {
	required := textproc.SoftSkills.Match(job.Description + "\n" + job.Requirements)
	score, _, _ := overlap(required, resume.SoftSkills)
	return score
}

// experienceMatch compares candidate years with the minimum the job states.
func experienceMatch(job jobs.Posting, resume resumes.Document) float64 {
	need, ok := textproc.RequiredYears(job.Requirements, job.Description)
	if !ok || need <= 0 {
		return 1
	}
	have := resume.YearsOfExperience()
	if have >= need {
		return 1
	}
	return clamp01(have / need)
}

// overlap returns |required ∩ have| / |required| with the matched and missing
// names in required's order.
func overlap(required, have []string) (float64, []string, []string) {
	if len(required) == 0 {
		return 0, nil, nil
	}
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[h] = struct{}{}
	}
	var matched, missing []string
	for _, r := range required {
		if _, ok := set[r]; ok {
			matched = append(matched, r)
		} else {
			missing = append(missing, r)
		}
	}
	return float64(len(matched)) / float64(len(required)), matched, missing
}
