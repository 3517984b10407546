package matching

// Weights of each dimension in the overall score. They sum to 1.
const (
	WeightTechnical  = 0.30
	WeightSemantic   = 0.25
	WeightTFIDF      = 0.15
	WeightBM25       = 0.10
	WeightExperience = 0.15
	WeightSoftSkills = 0.05
)

// Aggregate fills Overall from the dimension scores. Without a semantic score
// the TF-IDF cosine stands in for it.
func Aggregate(s Scores) Scores {
	semantic := s.TFIDF
	if s.Semantic != nil {
		semantic = *s.Semantic
	}
	s.Overall = clamp01(WeightTechnical*s.Technical +
		WeightSemantic*semantic +
		WeightTFIDF*s.TFIDF +
		WeightBM25*s.BM25 +
		WeightExperience*s.Experience +
		WeightSoftSkills*s.SoftSkills)
	return s
}
