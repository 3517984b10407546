package textproc

import (
	"regexp"
	"sort"
	"strings"
)

// listSeparators split text into list items: commas, slashes, bullets,
// sentence ends and the conjunctions joining the last two items.
var listSeparators = regexp.MustCompile(`(?i)[,;/|:()\n\[\]•·]|\.(?:\s|$)|\s[-–]\s|\s(?:and|or|&)\s`)

// Lexicon maps canonical skill names to the phrases that mention them.
type Lexicon struct {
	phrases  map[string]string // tokenized phrase -> canonical
	listOnly map[string]string // ordinary English words, matched only as list items
}

// NewLexicon builds a lexicon from canonical -> aliases. The canonical name is
// always an alias of itself.
func NewLexicon(entries map[string][]string) *Lexicon {
	l := &Lexicon{phrases: make(map[string]string)}
	for canonical, aliases := range entries {
		for _, a := range append([]string{canonical}, aliases...) {
			key := strings.Join(Tokenize(a), " ")
			if key == "" {
				continue
			}
			l.phrases[key] = canonical
		}
	}
	return l
}

// ListOnly marks phrases that are also ordinary words ("go", "excel"). They
// match only when they make up a whole list item, as in "Python, Go, Docker".
func (l *Lexicon) ListOnly(phrases ...string) *Lexicon {
	if l.listOnly == nil {
		l.listOnly = make(map[string]string)
	}
	for _, p := range phrases {
		key := strings.Join(Tokenize(p), " ")
		canonical, ok := l.phrases[key]
		if !ok {
			continue
		}
		delete(l.phrases, key)
		l.listOnly[key] = canonical
	}
	return l
}

// Match returns the sorted canonical names mentioned in text. Phrases match on
// whole tokens only, so "java" does not match inside "javascript".
func (l *Lexicon) Match(text string) []string {
	if l == nil {
		return nil
	}
	haystack := " " + strings.Join(Tokenize(text), " ") + " "
	found := make(map[string]struct{})
	for phrase, canonical := range l.phrases {
		if strings.Contains(haystack, " "+phrase+" ") {
			found[canonical] = struct{}{}
		}
	}
	if len(l.listOnly) > 0 {
		for _, item := range listSeparators.Split(text, -1) {
			if canonical, ok := l.listOnly[strings.Join(Tokenize(item), " ")]; ok {
				found[canonical] = struct{}{}
			}
		}
	}
	return sortedKeys(found)
}

// Canonical maps a single free-form skill to its canonical name.
func (l *Lexicon) Canonical(skill string) (string, bool) {
	if l == nil {
		return "", false
	}
	key := strings.Join(Tokenize(skill), " ")
	if c, ok := l.phrases[key]; ok {
		return c, true
	}
	c, ok := l.listOnly[key]
	return c, ok
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// TechnicalSkills is the default technical skill lexicon.
var TechnicalSkills = NewLexicon(map[string][]string{
	"python":           {"python3"},
	"java":             {"java8", "java 11", "java 17"},
	"javascript":       {"js", "ecmascript", "es6"},
	"typescript":       {"ts"},
	"go":               {"golang"},
	"c":                {"ansi c"},
	"c++":              {"cpp"},
	"c#":               {"csharp", "c sharp"},
	"rust":             {},
	"ruby":             {},
	"php":              {},
	"kotlin":           {},
	"swift":            {},
	"scala":            {},
	"r programming":    {"rstudio"},
	"sql":              {"t-sql", "pl/sql", "plsql"},
	"html":             {"html5"},
	"css":              {"css3", "sass", "scss"},
	"react":            {"reactjs", "react.js"},
	"angular":          {"angularjs", "angular.js"},
	"vue":              {"vuejs", "vue.js"},
	"node.js":          {"nodejs", "node"},
	"express":          {"express.js", "expressjs"},
	"django":           {},
	"flask":            {},
	"fastapi":          {},
	"spring":           {"spring boot", "springboot"},
	"rails":            {"ruby on rails"},
	".net":             {"dotnet", "asp.net"},
	"rest api":         {"rest apis", "restful", "restful apis", "restful api"},
	"graphql":          {},
	"grpc":             {},
	"microservices":    {"microservice"},
	"postgresql":       {"postgres"},
	"mysql":            {},
	"mongodb":          {"mongo"},
	"redis":            {},
	"elasticsearch":    {"elastic search"},
	"kafka":            {"apache kafka"},
	"rabbitmq":         {},
	"docker":           {"containerization"},
	"kubernetes":       {"k8s"},
	"terraform":        {},
	"ansible":          {},
	"aws":              {"amazon web services"},
	"azure":            {"microsoft azure"},
	"gcp":              {"google cloud", "google cloud platform"},
	"linux":            {"unix"},
	"git":              {"github", "gitlab"},
	"ci/cd":            {"cicd", "continuous integration", "continuous delivery", "jenkins", "github actions"},
	"machine learning": {"ml"},
	"deep learning":    {"neural networks"},
	"nlp":              {"natural language processing"},
	"data analysis":    {"data analytics"},
	"pandas":           {},
	"numpy":            {},
	"tensorflow":       {},
	"pytorch":          {"torch"},
	"scikit-learn":     {"sklearn", "scikit learn"},
	"spark":            {"apache spark", "pyspark"},
	"hadoop":           {},
	"tableau":          {},
	"power bi":         {"powerbi"},
	"excel":            {"ms excel"},
	"testing":          {"unit testing", "tdd", "test driven development"},
	"agile":            {"scrum", "kanban"},
	"android":          {},
	"ios":              {},
	"figma":            {},
	"networking":       {"tcp/ip", "computer networks"},
	"security":         {"cybersecurity", "cyber security", "information security"},
}).ListOnly("go", "c", "excel", "express", "spring", "swift", "node", "torch", "testing", "security", "networking", "rust", "agile", "ml")

// SoftSkills is the default soft-skill lexicon.
var SoftSkills = NewLexicon(map[string][]string{
	"communication":       {"communication skills", "communicator", "verbal communication", "written communication"},
	"leadership":          {"leader", "led a team", "team lead"},
	"teamwork":            {"team player", "collaboration", "collaborative", "team work", "cross-functional"},
	"problem solving":     {"problem-solving", "problem solver", "analytical skills", "troubleshooting"},
	"critical thinking":   {"analytical thinking"},
	"time management":     {"prioritization", "meeting deadlines"},
	"adaptability":        {"adaptable", "flexible", "flexibility"},
	"creativity":          {"creative", "innovative"},
	"attention to detail": {"detail-oriented", "detail oriented"},
	"interpersonal":       {"interpersonal skills", "people skills"},
	"presentation":        {"presentation skills", "public speaking"},
	"mentoring":           {"mentor", "mentorship", "coaching"},
	"negotiation":         {},
	"ownership":           {"self-motivated", "self motivated", "proactive"},
}).ListOnly("leader", "flexible", "creative", "mentor")
