// Package service implements the derived metric calculators, the narrative
// report generator and the composite diagnosis orchestrator over the
// regional wall motion model.
package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/ecoreport-engine/internal/domain"
)

// MetricsCalculator derives hemodynamic indices from a motility snapshot.
// All methods are pure reads; nothing here mutates the state store.
type MetricsCalculator struct {
	logger *logrus.Logger
}

// NewMetricsCalculator creates a new calculator.
func NewMetricsCalculator(logger *logrus.Logger) *MetricsCalculator {
	return &MetricsCalculator{logger: logger}
}

// AbnormalGroups partitions the segments with severity above Normal, in
// ascending id order per tier.
type AbnormalGroups struct {
	Hypokinetic []int
	Akinetic    []int
	Dyskinetic  []int
}

// Total returns the number of abnormal segments across all tiers.
func (g AbnormalGroups) Total() int {
	return len(g.Hypokinetic) + len(g.Akinetic) + len(g.Dyskinetic)
}

// WMSI computes the Wall Motion Score Index: the mean severity score over
// the 17 segments, rounded to two decimals. Range [1.00, 4.00].
func (m *MetricsCalculator) WMSI(snap domain.MotilitySnapshot) float64 {
	sum := 0
	for id := 1; id <= domain.NumSegments; id++ {
		sum += snap.Severity(id).Score()
	}
	return math.Round(float64(sum)/float64(domain.NumSegments)*100) / 100
}

// GroupAbnormal partitions the abnormal segments by severity tier.
func (m *MetricsCalculator) GroupAbnormal(snap domain.MotilitySnapshot) AbnormalGroups {
	var g AbnormalGroups
	for id := 1; id <= domain.NumSegments; id++ {
		switch snap.Severity(id) {
		case domain.SeverityHypokinetic:
			g.Hypokinetic = append(g.Hypokinetic, id)
		case domain.SeverityAkinetic:
			g.Akinetic = append(g.Akinetic, id)
		case domain.SeverityDyskinetic:
			g.Dyskinetic = append(g.Dyskinetic, id)
		}
	}
	sort.Ints(g.Hypokinetic)
	sort.Ints(g.Akinetic)
	sort.Ints(g.Dyskinetic)
	return g
}

// TerritoryCounts returns the abnormal segment count per coronary
// territory, summed across all severity tiers.
func (m *MetricsCalculator) TerritoryCounts(snap domain.MotilitySnapshot) map[domain.Artery]int {
	counts := map[domain.Artery]int{
		domain.ArteryDA: 0,
		domain.ArteryCD: 0,
		domain.ArteryCx: 0,
	}
	for id := 1; id <= domain.NumSegments; id++ {
		if snap.Severity(id) > domain.SeverityNormal {
			seg, err := domain.SegmentInfo(id)
			if err != nil {
				continue
			}
			counts[seg.Artery]++
		}
	}
	return counts
}

// DominantTerritory infers the likely culprit territory: the artery with
// the maximum abnormal count. Ties resolve to the first territory in the
// fixed DA, CD, Cx order; nil when no segment is abnormal.
func (m *MetricsCalculator) DominantTerritory(snap domain.MotilitySnapshot) *domain.Artery {
	counts := m.TerritoryCounts(snap)
	var best *domain.Artery
	bestCount := 0
	for _, artery := range domain.Territories() {
		if counts[artery] > bestCount {
			a := artery
			best = &a
			bestCount = counts[artery]
		}
	}
	return best
}

// EFEstimate is the ejection fraction bucket inferred from the WMSI.
type EFEstimate struct {
	RangeLabel string
	Category   string
}

// EstimateEF maps the WMSI to an approximate ejection fraction range. This
// is a clinical heuristic, not a formula; the bands are coarse on purpose.
func (m *MetricsCalculator) EstimateEF(wmsi float64) EFEstimate {
	switch {
	case wmsi == 1.0:
		return EFEstimate{RangeLabel: "55-65%", Category: "normal"}
	case wmsi <= 1.2:
		return EFEstimate{RangeLabel: "45-55%", Category: "levemente reducida"}
	case wmsi <= 1.5:
		return EFEstimate{RangeLabel: "35-45%", Category: "moderadamente reducida"}
	case wmsi <= 2.0:
		return EFEstimate{RangeLabel: "25-30%", Category: "severamente reducida"}
	default:
		return EFEstimate{RangeLabel: "<25%", Category: "muy deprimida"}
	}
}

// CoherenceResult is the soft plausibility check of regional scoring
// against the measured global ejection fraction.
type CoherenceResult struct {
	Consistent bool
	Message    string
}

// CheckCoherence flags the two suspicious combinations: extensive regional
// dysfunction with preserved global function, and depressed global function
// with a clean segment map. Anything in between is accepted; with no
// measured EF the result is indeterminate-consistent.
func (m *MetricsCalculator) CheckCoherence(wmsi, measuredEF float64) CoherenceResult {
	if measuredEF <= 0 {
		return CoherenceResult{Consistent: true}
	}
	if wmsi > 1.5 && measuredEF > 55 {
		return CoherenceResult{
			Consistent: false,
			Message: fmt.Sprintf(
				"Discordancia: alteraciones segmentarias extensas (WMSI %.2f) con FEVI conservada (%.0f%%); revisar la puntuación segmentaria.",
				wmsi, measuredEF),
		}
	}
	if wmsi == 1.0 && measuredEF < 50 {
		return CoherenceResult{
			Consistent: false,
			Message: fmt.Sprintf(
				"Discordancia: FEVI deprimida (%.0f%%) sin alteraciones segmentarias registradas; revisar la puntuación segmentaria.",
				measuredEF),
		}
	}
	return CoherenceResult{Consistent: true}
}

// ecgPatternNotes are the fixed correlation texts for conduction- and
// stress-driven patterns, keyed by pattern id.
var ecgPatternNotes = map[domain.PatternID]string{
	domain.PatternLBBB:            "Correlacionar con morfología de bloqueo de rama izquierda en el ECG.",
	domain.PatternRBBB:            "Correlacionar con morfología de bloqueo de rama derecha en el ECG.",
	domain.PatternPacemaker:       "Correlacionar con espigas de estimulación y QRS estimulado en el ECG.",
	domain.PatternPostSurgical:    "Correlacionar con el antecedente quirúrgico; el ECG puede ser inespecífico.",
	domain.PatternPreexcitation:   "Correlacionar con onda delta y PR corto en el ECG.",
	domain.PatternTakotsuboApical: "Correlacionar con elevación difusa del ST e inversión de ondas T en precordiales.",
	domain.PatternTakotsuboMid:    "Correlacionar con cambios difusos de la repolarización en el ECG.",
	domain.PatternTakotsuboBasal:  "Correlacionar con cambios difusos de la repolarización en el ECG.",
	domain.PatternTakotsuboFocal:  "Correlacionar con cambios focales de la repolarización en el ECG.",
}

// ECGCorrelation suggests the ECG leads expected to reflect the regional
// findings. Dyssynchrony and stress patterns use fixed texts; otherwise the
// dominant territory drives a fixed lead map, with DA wording refined by
// septal or apical involvement. Empty when there is nothing to correlate.
func (m *MetricsCalculator) ECGCorrelation(snap domain.MotilitySnapshot) string {
	if pattern, ok := snap.Pattern(); ok {
		if note, ok := ecgPatternNotes[pattern.ID]; ok {
			return note
		}
	}

	dominant := m.DominantTerritory(snap)
	if dominant == nil {
		return ""
	}

	switch *dominant {
	case domain.ArteryDA:
		septal, apical := false, false
		for id := 1; id <= domain.NumSegments; id++ {
			if snap.Severity(id) <= domain.SeverityNormal {
				continue
			}
			seg, err := domain.SegmentInfo(id)
			if err != nil {
				continue
			}
			switch seg.Wall {
			case "anteroseptal", "inferoseptal", "septal":
				septal = true
			}
			if seg.Level == domain.LevelApical {
				apical = true
			}
		}
		if septal {
			return "Correlacionar con cambios en derivaciones precordiales, especialmente V1-V2 (septales)."
		}
		if apical {
			return "Correlacionar con cambios en derivaciones precordiales, especialmente V3-V4 (apicales)."
		}
		return "Correlacionar con cambios en derivaciones precordiales V1-V4."
	case domain.ArteryCD:
		return "Correlacionar con cambios en derivaciones II, III y aVF."
	case domain.ArteryCx:
		return "Correlacionar con cambios en derivaciones I, aVL y V5-V6."
	}
	return ""
}
