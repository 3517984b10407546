package matching

import (
	"math"
	"sort"

	"placement-backend/internal/textproc"
)

const (
	bm25K1 = 1.2
	bm25B  = 0.75
)

// sparseVec is a term-sorted sparse vector. Keeping terms sorted makes every
// sum iterate in the same order, so scores are bit-for-bit reproducible.
type sparseVec struct {
	terms   []string
	weights []float64
}

type textDoc struct {
	length int
	counts map[string]int
	unique []string // sorted
	vec    sparseVec
}

func newTextDoc(text string) textDoc {
	terms := textproc.Terms(text)
	counts := make(map[string]int, len(terms))
	for _, t := range terms {
		counts[t]++
	}
	unique := make([]string, 0, len(counts))
	for t := range counts {
		unique = append(unique, t)
	}
	sort.Strings(unique)
	return textDoc{length: len(terms), counts: counts, unique: unique}
}

// Corpus holds the lexical statistics for one ranking request. TF-IDF weights
// are fit over every job and resume text; BM25 statistics over the job texts
// only, since jobs are the documents and resumes the queries.
// A Corpus is immutable after construction and safe for concurrent reads.
type Corpus struct {
	jobs    []textDoc
	resumes []textDoc
	bm25IDF map[string]float64
	avgdl   float64
	self    []float64
}

// NewCorpus tokenizes the texts once and precomputes both models.
func NewCorpus(jobTexts, resumeTexts []string) *Corpus {
	c := &Corpus{
		jobs:    make([]textDoc, len(jobTexts)),
		resumes: make([]textDoc, len(resumeTexts)),
	}
	for i, t := range jobTexts {
		c.jobs[i] = newTextDoc(t)
	}
	for i, t := range resumeTexts {
		c.resumes[i] = newTextDoc(t)
	}
	c.fitTFIDF()
	c.fitBM25()
	return c
}

// fitTFIDF uses smooth idf, ln((1+n)/(1+df)) + 1, raw counts and L2 normalization.
func (c *Corpus) fitTFIDF() {
	df := map[string]int{}
	n := 0
	for _, group := range [][]textDoc{c.jobs, c.resumes} {
		for _, d := range group {
			n++
			for _, t := range d.unique {
				df[t]++
			}
		}
	}
	idf := make(map[string]float64, len(df))
	for t, f := range df {
		idf[t] = math.Log(float64(1+n)/float64(1+f)) + 1
	}
	for _, group := range [][]textDoc{c.jobs, c.resumes} {
		for i := range group {
			d := &group[i]
			weights := make([]float64, len(d.unique))
			norm := 0.0
			for j, t := range d.unique {
				w := float64(d.counts[t]) * idf[t]
				weights[j] = w
				norm += w * w
			}
			if norm > 0 {
				norm = math.Sqrt(norm)
				for j := range weights {
					weights[j] /= norm
				}
			}
			d.vec = sparseVec{terms: d.unique, weights: weights}
		}
	}
}

func (c *Corpus) fitBM25() {
	n := len(c.jobs)
	df := map[string]int{}
	total := 0
	for _, d := range c.jobs {
		total += d.length
		for _, t := range d.unique {
			df[t]++
		}
	}
	if n > 0 {
		c.avgdl = float64(total) / float64(n)
	}
	c.bm25IDF = make(map[string]float64, len(df))
	for t, f := range df {
		c.bm25IDF[t] = math.Log((float64(n-f)+0.5)/(float64(f)+0.5) + 1)
	}
	c.self = make([]float64, n)
	for i := range c.jobs {
		c.self[i] = c.bm25(c.jobs[i].unique, i)
	}
}

// TFIDF returns the cosine between the job and resume vectors.
func (c *Corpus) TFIDF(job, resume int) float64 {
	return clamp01(cosineSparse(c.jobs[job].vec, c.resumes[resume].vec))
}

// BM25 scores the resume's distinct terms as a query against the job, divided
// by the job's score against its own terms. An empty job scores 0.
func (c *Corpus) BM25(job, resume int) float64 {
	self := c.self[job]
	if self <= 0 {
		return 0
	}
	return clamp01(c.bm25(c.resumes[resume].unique, job) / self)
}

func (c *Corpus) bm25(query []string, job int) float64 {
	d := c.jobs[job]
	if d.length == 0 || c.avgdl == 0 {
		return 0
	}
	norm := bm25K1 * (1 - bm25B + bm25B*float64(d.length)/c.avgdl)
	score := 0.0
	for _, t := range query {
		f := float64(d.counts[t])
		if f == 0 {
			continue
		}
		score += c.bm25IDF[t] * f * (bm25K1 + 1) / (f + norm)
	}
	return score
}

func cosineSparse(a, b sparseVec) float64 {
	dot := 0.0
	i, j := 0, 0
	for i < len(a.terms) && j < len(b.terms) {
		switch {
		case a.terms[i] == b.terms[j]:
			dot += a.weights[i] * b.weights[j]
			i++
			j++
		case a.terms[i] < b.terms[j]:
			i++
		default:
			j++
		}
	}
	return dot
}
