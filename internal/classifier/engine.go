package classifier

import (
	"strings"

	"github.com/civicsetu/resolver/internal/domain"
	"github.com/civicsetu/resolver/internal/logger"
)

// civicThreshold is the minimum civic-relevance score for a post to be
// treated as a complaint at all.
const civicThreshold = 2

// rejectionNoCivicKeywords is the rejection reason for sub-threshold posts.
const rejectionNoCivicKeywords = "No civic keywords detected"

// Urgency thresholds.
const (
	highUrgencyMin   = 2
	mediumHighMin    = 1
	mediumUrgencyMin = 2
)

// departmentScore holds one department's scored result during selection.
type departmentScore struct {
	rule  DepartmentRule
	score int
}

// Engine decides whether a post is a civic complaint, which department owns
// it, and how urgent it is. Classification is pure and deterministic: no
// I/O, same text always yields the same result.
type Engine struct {
	civic       *KeywordSet
	departments []DepartmentRule
	deptSets    []*KeywordSet
	high        *KeywordSet
	medium      *KeywordSet
	log         logger.Logger
}

// NewEngine builds an engine over the curated keyword catalogs.
func NewEngine(log logger.Logger) *Engine {
	e := &Engine{
		civic:       NewKeywordSet(civicKeywords),
		departments: departmentCatalog,
		deptSets:    make([]*KeywordSet, len(departmentCatalog)),
		high:        NewKeywordSet(highUrgencyKeywords),
		medium:      NewKeywordSet(mediumUrgencyKeywords),
		log:         log,
	}
	for i, rule := range departmentCatalog {
		e.deptSets[i] = NewKeywordSet(rule.Keywords)
	}

	log.Info("classification engine initialized",
		logger.Int("civic_keywords", e.civic.Size()),
		logger.Int("departments", len(e.departments)),
	)

	return e
}

// Classify scores title+body against the civic, department and urgency
// catalogs and returns the classification result.
func (e *Engine) Classify(title, body string) domain.ClassificationResult {
	text := strings.ToLower(strings.TrimSpace(title + " " + body))

	civicScore := e.civic.Score(text)
	if civicScore < civicThreshold {
		e.log.Debug("post rejected as non-civic", logger.Int("civic_score", civicScore))
		return domain.ClassificationResult{
			IsCivic:         false,
			RejectionReason: rejectionNoCivicKeywords,
		}
	}

	best := e.selectDepartment(text)
	urgency := e.scoreUrgency(text)

	result := domain.ClassificationResult{
		IsCivic:            true,
		Department:         best.rule.Code,
		DepartmentFullName: best.rule.FullName,
		Urgency:            urgency,
		Confidence:         confidenceForScore(best.score),
		KeywordScore:       best.score,
	}

	e.log.Debug("post classified",
		logger.Int("civic_score", civicScore),
		logger.String("department", result.Department),
		logger.String("urgency", result.Urgency),
		logger.Int("confidence", result.Confidence),
	)

	return result
}

// selectDepartment returns the strictly highest scoring department. Ties
// keep the first-seen department in catalog order; an all-zero scoreboard
// falls back to the General catch-all.
func (e *Engine) selectDepartment(text string) departmentScore {
	best := departmentScore{
		rule: DepartmentRule{Code: generalDepartmentCode, FullName: generalDepartmentFullName},
	}

	for i, rule := range e.departments {
		score := e.deptSets[i].Score(text)
		if score > best.score {
			best = departmentScore{rule: rule, score: score}
		}
	}

	return best
}

// scoreUrgency derives the urgency tier from the high and medium keyword
// catalogs.
func (e *Engine) scoreUrgency(text string) string {
	highScore := e.high.Score(text)
	if highScore >= highUrgencyMin {
		return domain.UrgencyHigh
	}
	if highScore >= mediumHighMin || e.medium.Score(text) >= mediumUrgencyMin {
		return domain.UrgencyMedium
	}
	return domain.UrgencyLow
}

// confidenceForScore maps the winning department score to a confidence
// tier. A fixed step function, not interpolated.
func confidenceForScore(score int) int {
	switch {
	case score >= 4:
		return 95
	case score == 3:
		return 85
	case score == 2:
		return 75
	case score == 1:
		return 60
	default:
		return 40
	}
}
