package resumes

// Document is the normalized, immutable form of one resume. ID is the sha256
// of the uploaded bytes, or of the text when built from text.
type Document struct {
	ID              string            `json:"id"`
	FileName        string            `json:"file_name,omitempty"`
	RawText         string            `json:"raw_text"`
	Skills          []string          `json:"skills"`
	SoftSkills      []string          `json:"soft_skills"`
	Experience      []ExperienceEntry `json:"experience"`
	Education       []string          `json:"education"`
	ExplicitYears   float64           `json:"explicit_years"`
	ExperienceYears float64           `json:"experience_years"`
}

// ExperienceEntry is one position found in the experience section.
type ExperienceEntry struct {
	Title       string `json:"title"`
	Duration    string `json:"duration"`
	Description string `json:"description,omitempty"`
	Months      int    `json:"months"`
}

// YearsOfExperience is the stronger of the stated years and the dated positions.
func (d Document) YearsOfExperience() float64 {
	if d.ExplicitYears > d.ExperienceYears {
		return d.ExplicitYears
	}
	return d.ExperienceYears
}
