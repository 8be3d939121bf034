package service

import (
	"fmt"

	"github.com/ecoreport-engine/internal/domain"
	"github.com/ecoreport-engine/pkg/esptext"
)

// primaryConclusions bypass territory logic entirely for a handful of
// patterns whose diagnosis is the pattern itself.
var primaryConclusions = map[domain.PatternID]string{
	domain.PatternDilatedCM:    "Miocardiopatía dilatada con deterioro difuso de la contractilidad.",
	domain.PatternPostSurgical: "Movimiento septal paradójico postquirúrgico, sin otras alteraciones segmentarias.",
	domain.PatternLBBB:         "Asincronía septal por bloqueo de rama izquierda.",
	domain.PatternRBBB:         "Asincronía septal por bloqueo de rama derecha.",
	domain.PatternPacemaker:    "Asincronía ventricular por estimulación con marcapasos.",
}

// categoryConclusions supply the remaining canned sentences for the
// combined, dyssynchrony, cardiomyopathy and takotsubo categories, keyed by
// pattern id within the category. Ischemic and special patterns fall
// through to the territorial phrasing.
var categoryConclusions = map[domain.PatternID]string{
	domain.PatternTakotsuboApical:    "Balonamiento apical compatible con síndrome de takotsubo.",
	domain.PatternTakotsuboMid:       "Acinesia medioventricular compatible con variante de takotsubo.",
	domain.PatternTakotsuboBasal:     "Acinesia basal compatible con takotsubo invertido.",
	domain.PatternTakotsuboFocal:     "Alteración focal de la contractilidad compatible con variante focal de takotsubo.",
	domain.PatternHypertensiveCM:     "Deterioro contráctil de predominio basal y medio en contexto de cardiopatía hipertensiva.",
	domain.PatternIschemicCM:         "Deterioro difuso de la contractilidad de origen isquémico.",
	domain.PatternHypertrophicSeptal: "Hipocinesia septal en contexto de miocardiopatía hipertrófica.",
	domain.PatternDACDCombined:       "Alteración segmentaria de la motilidad en territorios de la DA y la CD.",
	domain.PatternMultivessel:        "Alteración segmentaria de la motilidad sugestiva de enfermedad multivaso.",
	domain.PatternPreexcitation:      "Asincronía segmentaria por preexcitación ventricular.",
}

// Conclusion renders the condensed diagnostic phrase for the wall motion
// findings. Empty when every segment is normal.
func (g *ReportGenerator) Conclusion(snap domain.MotilitySnapshot) string {
	groups := g.metrics.GroupAbnormal(snap)
	if groups.Total() == 0 {
		return ""
	}

	if pattern, ok := snap.Pattern(); ok {
		if s, ok := primaryConclusions[pattern.ID]; ok {
			return s
		}
		switch pattern.Category {
		case domain.CategoryCombined, domain.CategoryDyssynchrony,
			domain.CategoryCardiomyopathy, domain.CategoryTakotsubo:
			if s, ok := categoryConclusions[pattern.ID]; ok {
				return s
			}
		}
	}

	return g.territorialConclusion(snap)
}

// territorialConclusion phrases the conclusion from per-territory tier
// counts. A single affected territory gets the short form without tier
// wording; multiple territories enumerate the tiers present in each.
func (g *ReportGenerator) territorialConclusion(snap domain.MotilitySnapshot) string {
	type tiers struct{ hypo, aki, dys int }
	perTerritory := make(map[domain.Artery]*tiers)
	for _, a := range domain.Territories() {
		perTerritory[a] = &tiers{}
	}

	for id := 1; id <= domain.NumSegments; id++ {
		seg, err := domain.SegmentInfo(id)
		if err != nil {
			continue
		}
		t := perTerritory[seg.Artery]
		switch snap.Severity(id) {
		case domain.SeverityHypokinetic:
			t.hypo++
		case domain.SeverityAkinetic:
			t.aki++
		case domain.SeverityDyskinetic:
			t.dys++
		}
	}

	var affected []domain.Artery
	for _, a := range domain.Territories() {
		t := perTerritory[a]
		if t.hypo+t.aki+t.dys > 0 {
			affected = append(affected, a)
		}
	}

	if len(affected) == 0 {
		return ""
	}
	if len(affected) == 1 {
		return fmt.Sprintf("Alteración segmentaria de la motilidad en territorio de la %s.", affected[0])
	}

	var clauses []string
	for _, a := range affected {
		t := perTerritory[a]
		var nouns []string
		if t.aki > 0 {
			nouns = append(nouns, "acinesia")
		}
		if t.hypo > 0 {
			nouns = append(nouns, "hipocinesia")
		}
		if t.dys > 0 {
			nouns = append(nouns, "discinesia")
		}
		clauses = append(clauses, fmt.Sprintf("%s en territorio de la %s", esptext.Join(nouns), a))
	}

	out := clauses[0]
	for _, c := range clauses[1:] {
		out += ", " + c
	}
	return esptext.EnsurePeriod(esptext.UpperLead(out))
}
