// Package inference turns signal text and company context into product
// recommendations, a lead score, and an urgency tier. All functions are
// pure: identical inputs always produce identical outputs, so re-scoring a
// lead on signal merge is idempotent.
package inference

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jonesrussell/goleads/internal/catalog"
	"github.com/jonesrussell/goleads/internal/models"
)

// Confidence accumulation constants.
const (
	directBase      = 0.6
	directPerMatch  = 0.1
	directCap       = 0.9
	industryInitial = 0.5
	equipmentBoost  = 0.15
	equipmentCap    = 0.95
	equipmentNew    = 0.65

	maxRecommendations = 3
)

// Engine evaluates the inference rules against a fixed catalog.
type Engine struct {
	catalog *catalog.Catalog
}

// New creates an engine over the given catalog.
func New(c *catalog.Catalog) *Engine {
	return &Engine{catalog: c}
}

// InferProducts runs the three inference passes over text and returns the
// top three recommendations by confidence.
//
// Pass order matters: direct keyword matches seed entries first, industry
// mappings only add products not already present, and equipment phrases
// boost existing entries rather than re-adding them. Ties keep catalog
// iteration order (the sort is stable).
func (e *Engine) InferProducts(text, industry string) []models.ProductRecommendation {
	var recs []models.ProductRecommendation
	normalized := strings.ToLower(text)

	// Pass 1: direct keyword mentions.
	for _, cat := range e.catalog.Categories {
		for _, p := range cat.Products {
			var matched []string
			for _, kw := range p.Keywords {
				if strings.Contains(normalized, strings.ToLower(kw)) {
					matched = append(matched, kw)
				}
			}
			if len(matched) == 0 {
				continue
			}
			confidence := math.Min(directCap, directBase+directPerMatch*float64(len(matched)))
			recs = append(recs, models.ProductRecommendation{
				Product:     p.Code,
				ProductName: p.Name,
				Category:    cat.Name,
				Confidence:  confidence,
				ReasonCodes: []string{"Direct mention: " + strings.Join(matched, ", ")},
				Keywords:    matched,
			})
		}
	}

	// Pass 2: industry mapping adds products not already recommended.
	if industry != "" {
		for _, code := range e.catalog.IndustryProducts(strings.ToLower(industry)) {
			if findRec(recs, code) != nil {
				continue
			}
			info, ok := e.catalog.Find(code)
			if !ok {
				continue
			}
			recs = append(recs, models.ProductRecommendation{
				Product:     info.Code,
				ProductName: info.Name,
				Category:    info.Category,
				Confidence:  industryInitial,
				ReasonCodes: []string{"Industry match: " + industry},
				Keywords:    []string{},
			})
		}
	}

	// Pass 3: equipment phrases boost existing entries or add new ones.
	for _, eq := range e.catalog.Equipment {
		if !strings.Contains(normalized, eq.Phrase) {
			continue
		}
		for _, code := range eq.Products {
			if existing := findRec(recs, code); existing != nil {
				existing.Confidence = math.Min(equipmentCap, existing.Confidence+equipmentBoost)
				existing.ReasonCodes = append(existing.ReasonCodes, "Equipment match: "+eq.Phrase)
				continue
			}
			info, ok := e.catalog.Find(code)
			if !ok {
				continue
			}
			recs = append(recs, models.ProductRecommendation{
				Product:     info.Code,
				ProductName: info.Name,
				Category:    info.Category,
				Confidence:  equipmentNew,
				ReasonCodes: []string{"Equipment match: " + eq.Phrase},
				Keywords:    []string{eq.Phrase},
			})
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Confidence > recs[j].Confidence
	})
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

func findRec(recs []models.ProductRecommendation, code string) *models.ProductRecommendation {
	for i := range recs {
		if recs[i].Product == code {
			return &recs[i]
		}
	}
	return nil
}

// Scoring constants.
const (
	intentTender    = 30
	intentMultiple  = 20
	intentSingle    = 10
	freshnessBase   = 25
	freshnessDecay  = 2 // points lost per day since the latest signal
	sizeLarge       = 25
	sizeMedium      = 20
	sizeSmall       = 15
	sizeUnknown     = 10
	proximityFixed  = 15 // placeholder until geospatial scoring lands
	turnoverLarge   = 1000
	turnoverMedium  = 100
	urgencyHighMin  = 70
	urgencyMedMin   = 50
	recentSignalAge = 7 * 24 * time.Hour
)

// CalculateLeadScore computes the four sub-scores and their total at the
// given point in time. The score is always rebuilt from the full signal
// history, never patched incrementally.
func CalculateLeadScore(details models.CompanyDetails, signals []models.Signal, now time.Time) models.LeadScore {
	score := models.LeadScore{Proximity: proximityFixed}

	switch {
	case hasTender(signals):
		score.IntentStrength = intentTender
	case len(signals) > 1:
		score.IntentStrength = intentMultiple
	default:
		score.IntentStrength = intentSingle
	}

	if latest := latestSignal(signals); latest != nil {
		days := now.Sub(latest.Timestamp).Hours() / 24
		score.Freshness = math.Max(0, freshnessBase-freshnessDecay*days)
	}

	if turnover, err := strconv.ParseFloat(strings.TrimSpace(details.Turnover), 64); err == nil {
		switch {
		case turnover > turnoverLarge:
			score.CompanySize = sizeLarge
		case turnover > turnoverMedium:
			score.CompanySize = sizeMedium
		default:
			score.CompanySize = sizeSmall
		}
	} else {
		score.CompanySize = sizeUnknown
	}

	score.Total = score.IntentStrength + score.Freshness + score.CompanySize + score.Proximity
	return score
}

// DetermineUrgency maps a score and signal set to a priority tier. A tender
// signal combined with any signal younger than seven days is critical
// regardless of the total; the two conditions are evaluated independently.
func DetermineUrgency(score models.LeadScore, signals []models.Signal, now time.Time) models.Urgency {
	if hasTender(signals) && hasRecent(signals, now) {
		return models.UrgencyCritical
	}
	switch {
	case score.Total > urgencyHighMin:
		return models.UrgencyHigh
	case score.Total > urgencyMedMin:
		return models.UrgencyMedium
	default:
		return models.UrgencyLow
	}
}

func hasTender(signals []models.Signal) bool {
	for _, s := range signals {
		if s.SourceType == models.SourceTypeTender {
			return true
		}
	}
	return false
}

func hasRecent(signals []models.Signal, now time.Time) bool {
	for _, s := range signals {
		if now.Sub(s.Timestamp) < recentSignalAge {
			return true
		}
	}
	return false
}

func latestSignal(signals []models.Signal) *models.Signal {
	if len(signals) == 0 {
		return nil
	}
	latest := &signals[0]
	for i := range signals[1:] {
		if signals[i+1].Timestamp.After(latest.Timestamp) {
			latest = &signals[i+1]
		}
	}
	return latest
}

// CombinedSignalText joins every historical signal text for re-inference
// after a merge, so keywords seen in older signals keep influencing the
// recommendations.
func CombinedSignalText(signals []models.Signal) string {
	parts := make([]string, 0, len(signals))
	for _, s := range signals {
		parts = append(parts, s.ExtractedText)
	}
	return strings.Join(parts, " ")
}

// DescribeScore renders a short human-readable score summary for
// notification bodies.
func DescribeScore(score models.LeadScore) string {
	return fmt.Sprintf("%d/100", int(math.Round(score.Total)))
}
