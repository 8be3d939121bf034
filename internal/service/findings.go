package service

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/ecoreport-engine/internal/domain"
	"github.com/ecoreport-engine/pkg/esptext"
)

// ReportGenerator turns a motility snapshot into the two narrative
// fragments of the report: the detailed findings paragraph and the
// condensed diagnostic conclusion. Both are recomputed on every request and
// never cached.
type ReportGenerator struct {
	logger  *logrus.Logger
	metrics *MetricsCalculator
}

// NewReportGenerator creates a generator sharing the given calculator.
func NewReportGenerator(logger *logrus.Logger, metrics *MetricsCalculator) *ReportGenerator {
	return &ReportGenerator{logger: logger, metrics: metrics}
}

// diffuseAbnormalThreshold is the abnormal segment count above which a
// diffuse pattern is phrased globally instead of wall by wall.
const diffuseAbnormalThreshold = 12

// dyssynchronyFindings are the fixed findings sentences for
// conduction-driven patterns; patterns outside the map fall back to their
// own description.
var dyssynchronyFindings = map[domain.PatternID]string{
	domain.PatternLBBB:         "Movimiento septal paradójico compatible con bloqueo de rama izquierda.",
	domain.PatternRBBB:         "Retraso de la activación septal compatible con bloqueo de rama derecha.",
	domain.PatternPacemaker:    "Patrón de activación asincrónico compatible con estimulación por marcapasos.",
	domain.PatternPostSurgical: "Movimiento septal paradójico en relación con cirugía cardíaca previa.",
}

// Findings renders the detailed wall motion paragraph. Empty when every
// segment is normal; the caller decides whether the section appears.
func (g *ReportGenerator) Findings(snap domain.MotilitySnapshot) string {
	groups := g.metrics.GroupAbnormal(snap)
	if groups.Total() == 0 {
		return ""
	}

	pattern, hasPattern := snap.Pattern()

	var text string
	switch {
	case hasPattern && pattern.Diffuse && groups.Total() >= diffuseAbnormalThreshold:
		text = g.diffuseSentence(pattern, groups)
	case hasPattern && pattern.Category == domain.CategoryDyssynchrony:
		text = g.dyssynchronySentence(pattern)
	default:
		text = g.territorialSentence(snap, groups)
	}

	g.logger.WithFields(logrus.Fields{
		"abnormal_segments": groups.Total(),
		"pattern":           string(snap.ActivePattern),
	}).Debug("Findings text generated")

	return text + "\n"
}

// tierNames lists the tiers present in ordinal order, as lowercase nouns.
func tierNames(groups AbnormalGroups) []string {
	var names []string
	if len(groups.Hypokinetic) > 0 {
		names = append(names, "hipocinesia")
	}
	if len(groups.Akinetic) > 0 {
		names = append(names, "acinesia")
	}
	if len(groups.Dyskinetic) > 0 {
		names = append(names, "discinesia")
	}
	return names
}

// diffuseSentence phrases a broad non-territorial pattern globally. The
// wording depends on the pattern: dilated cardiomyopathy emphasizes that no
// coronary territory is respected, hypertensive disease its basal and mid
// predominance.
func (g *ReportGenerator) diffuseSentence(pattern domain.Pattern, groups AbnormalGroups) string {
	tiers := esptext.Join(tierNames(groups))
	adj := "difusa"
	if len(tierNames(groups)) > 1 {
		adj = "difusas"
	}

	var sentence string
	switch pattern.ID {
	case domain.PatternDilatedCM:
		sentence = fmt.Sprintf("%s %s del ventrículo izquierdo, que no respeta un territorio coronario", tiers, adj)
	case domain.PatternHypertensiveCM:
		sentence = fmt.Sprintf("%s del ventrículo izquierdo de predominio basal y medio", tiers)
	default:
		sentence = fmt.Sprintf("%s %s del ventrículo izquierdo", tiers, adj)
	}
	return esptext.EnsurePeriod(esptext.UpperLead(sentence))
}

func (g *ReportGenerator) dyssynchronySentence(pattern domain.Pattern) string {
	if s, ok := dyssynchronyFindings[pattern.ID]; ok {
		return s
	}
	return esptext.EnsurePeriod(pattern.Description)
}

// territorialSentence enumerates the abnormal segments grouped by wall and
// level, tier by tier (acinesia first, then hipocinesia, then discinesia),
// and closes with the WMSI.
func (g *ReportGenerator) territorialSentence(snap domain.MotilitySnapshot, groups AbnormalGroups) string {
	type tier struct {
		noun string
		ids  []int
	}
	tiers := []tier{
		{"acinesia", groups.Akinetic},
		{"hipocinesia", groups.Hypokinetic},
		{"discinesia", groups.Dyskinetic},
	}

	var clauses []string
	for _, t := range tiers {
		if len(t.ids) == 0 {
			continue
		}
		clauses = append(clauses, t.noun+" de "+esptext.Join(wallClauses(t.ids)))
	}

	sentence := esptext.UpperLead(joinSemicolon(clauses))
	sentence += fmt.Sprintf(" (WMSI %.2f)", g.metrics.WMSI(snap))
	return esptext.EnsurePeriod(sentence)
}

func joinSemicolon(clauses []string) string {
	out := ""
	for i, c := range clauses {
		if i > 0 {
			out += "; "
		}
		out += c
	}
	return out
}

// wallClauses groups abnormal segment ids by anatomical wall, rendering
// each as "pared <wall> (<levels>)" with levels ordered base to apex. The
// apex reduces to level "apical" on wall "apical" and is rendered "nivel
// apical" instead of repeating the word.
func wallClauses(ids []int) []string {
	type wallEntry struct {
		minID  int
		levels map[domain.SegmentLevel]bool
	}
	walls := make(map[string]*wallEntry)
	for _, id := range ids {
		seg, err := domain.SegmentInfo(id)
		if err != nil {
			continue
		}
		entry, ok := walls[seg.Wall]
		if !ok {
			entry = &wallEntry{minID: seg.ID, levels: make(map[domain.SegmentLevel]bool)}
			walls[seg.Wall] = entry
		}
		if seg.ID < entry.minID {
			entry.minID = seg.ID
		}
		entry.levels[seg.Level] = true
	}

	names := make([]string, 0, len(walls))
	for name := range walls {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return walls[names[i]].minID < walls[names[j]].minID
	})

	var clauses []string
	for _, name := range names {
		entry := walls[name]
		levels := make([]domain.SegmentLevel, 0, len(entry.levels))
		for l := range entry.levels {
			levels = append(levels, l)
		}
		sort.Slice(levels, func(i, j int) bool { return levels[i].Rank() < levels[j].Rank() })

		if name == "apical" && len(levels) == 1 && levels[0] == domain.LevelApical {
			clauses = append(clauses, "nivel apical")
			continue
		}
		levelNames := make([]string, len(levels))
		for i, l := range levels {
			levelNames[i] = string(l)
		}
		clauses = append(clauses, fmt.Sprintf("pared %s (%s)", name, esptext.Join(levelNames)))
	}
	return clauses
}
