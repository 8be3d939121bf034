package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ecoreport-engine/internal/domain"
	"github.com/ecoreport-engine/pkg/esptext"
)

// Indexed aortic diameter limits (cm/m²) above which dilation is reported,
// by sex, and the fixed band cutoffs shared by both segments.
const (
	rootLimitMale        = 2.15
	rootLimitFemale      = 2.11
	ascendingLimitMale   = 2.11
	ascendingLimitFemale = 2.03

	aortaModerateCutoff = 2.5
	aortaSevereCutoff   = 3.0
)

// Right chamber and systolic function thresholds.
const (
	raAreaDilated      = 18.0 // cm²
	raAreaSevere       = 25.0 // cm²
	rvDiameterMild     = 41.0 // mm
	rvDiameterModerate = 46.0 // mm
	rvDiameterSevere   = 50.0 // mm
	tapseDysfunction   = 16.0 // mm
	efPreserved        = 50.0 // %
	efMildlyDepressed  = 40.0 // %
	psapLowSuspicion   = 35.0 // mmHg
	psapIntermediate   = 45.0 // mmHg
	laVolumeMild       = 34.0 // ml/m²
	laVolumeModerate   = 42.0 // ml/m²
	laVolumeSevere     = 48.0 // ml/m²
)

// ComposedReport is the final assembly: findings paragraph, numbered
// conclusions, soft warnings and the ECG correlation note.
type ComposedReport struct {
	ID          string    `json:"id"`
	StudyID     string    `json:"study_id,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
	Findings    string    `json:"findings,omitempty"`
	Conclusions []string  `json:"conclusions"`
	Warnings    []string  `json:"warnings,omitempty"`
	ECGNote     string    `json:"ecg_note,omitempty"`
}

// Orchestrator merges the wall motion conclusion with the independently
// produced chamber, valve and aortic classifications into the final ordered
// conclusion list. It only reads the motility state, never mutates it.
type Orchestrator struct {
	logger    *logrus.Logger
	metrics   *MetricsCalculator
	generator *ReportGenerator
}

// NewOrchestrator creates an orchestrator over the shared calculator and
// generator.
func NewOrchestrator(logger *logrus.Logger, metrics *MetricsCalculator, generator *ReportGenerator) *Orchestrator {
	return &Orchestrator{logger: logger, metrics: metrics, generator: generator}
}

// Compose builds the full report for one study. Sentences with nothing to
// report are skipped and the numbering stays contiguous.
func (o *Orchestrator) Compose(study domain.StudyInput, snap domain.MotilitySnapshot) *ComposedReport {
	start := time.Now()

	var sentences []string
	appendIf := func(s string) {
		if s != "" {
			sentences = append(sentences, s)
		}
	}

	appendIf(o.rhythmSentence(study))
	appendIf(o.leftVentricleSentence(study, snap))
	appendIf(o.diastolicSentence(study))
	appendIf(o.leftAtriumSentence(study))
	appendIf(o.mitralSentence(study))
	appendIf(o.aorticValveSentence(study))
	appendIf(o.aortaSentence(study))
	appendIf(o.rightChamberSentence(study))
	appendIf(o.pulmonaryPressureSentence(study))
	appendIf(o.rightVentricleFunctionSentence(study))

	numbered := make([]string, len(sentences))
	for i, s := range sentences {
		numbered[i] = fmt.Sprintf("%d. %s", i+1, s)
	}

	report := &ComposedReport{
		ID:          uuid.NewString(),
		StudyID:     study.StudyID,
		GeneratedAt: time.Now(),
		Findings:    o.generator.Findings(snap),
		Conclusions: numbered,
		ECGNote:     o.metrics.ECGCorrelation(snap),
	}

	if coherence := o.metrics.CheckCoherence(o.metrics.WMSI(snap), study.EF); !coherence.Consistent {
		report.Warnings = append(report.Warnings, coherence.Message)
	}

	o.logger.WithFields(logrus.Fields{
		"report_id":       report.ID,
		"study_id":        study.StudyID,
		"conclusions":     len(report.Conclusions),
		"warnings":        len(report.Warnings),
		"processing_time": time.Since(start),
	}).Info("Report composed")

	return report
}

func (o *Orchestrator) rhythmSentence(study domain.StudyInput) string {
	if study.Rhythm == "" {
		return ""
	}
	return esptext.EnsurePeriod(esptext.UpperLead(study.Rhythm))
}

// leftVentricleSentence merges geometry, dilation, the wall motion
// conclusion and global systolic function into one numbered entry. The
// motility clause loses its period and leading capital (protected acronyms
// keep theirs) and the joining conjunction follows the euphonic rule.
func (o *Orchestrator) leftVentricleSentence(study domain.StudyInput, snap domain.MotilitySnapshot) string {
	base := "Ventrículo izquierdo de dimensiones y espesores parietales normales"
	if study.LVGeometry != "" {
		base = "Ventrículo izquierdo con " + esptext.LowerLead(study.LVGeometry)
	}
	if study.LVDilated {
		base += ", dilatado"
	}

	if motility := o.generator.Conclusion(snap); motility != "" {
		clause := esptext.RecaseAcronyms(esptext.LowerLead(esptext.StripPeriod(motility)))
		base += " " + esptext.Conjunction(esptext.FirstWord(clause)) + " " + clause
	}
	sentence := esptext.EnsurePeriod(base)

	if study.EF > 0 {
		switch {
		case study.EF >= efPreserved:
			sentence += " Función sistólica global conservada."
		case study.EF >= efMildlyDepressed:
			sentence += fmt.Sprintf(" Función sistólica global levemente deprimida (FEVI %.0f%%).", study.EF)
		default:
			sentence += fmt.Sprintf(" Función sistólica global severamente deprimida (FEVI %.0f%%).", study.EF)
		}
	}
	return sentence
}

func (o *Orchestrator) diastolicSentence(study domain.StudyInput) string {
	switch study.Diastolic.Grade {
	case domain.DiastolicNormal:
		return "Función diastólica normal."
	case domain.DiastolicGradeI:
		return "Disfunción diastólica grado I (alteración de la relajación)."
	case domain.DiastolicGradeII:
		return "Disfunción diastólica grado II (patrón pseudonormal)."
	case domain.DiastolicGradeIII:
		return "Disfunción diastólica grado III (patrón restrictivo)."
	case domain.DiastolicIndeterminate:
		return "Función diastólica indeterminada con los datos disponibles."
	case domain.DiastolicOther:
		if study.Diastolic.Description == "" {
			return ""
		}
		return esptext.EnsurePeriod(esptext.UpperLead(study.Diastolic.Description))
	default:
		return ""
	}
}

func (o *Orchestrator) leftAtriumSentence(study domain.StudyInput) string {
	vol := study.LAVolumeIndexed
	if vol <= 0 {
		return ""
	}
	switch {
	case vol > laVolumeSevere:
		return fmt.Sprintf("Aurícula izquierda severamente dilatada (volumen indexado %.0f ml/m²).", vol)
	case vol >= laVolumeModerate:
		return fmt.Sprintf("Aurícula izquierda moderadamente dilatada (volumen indexado %.0f ml/m²).", vol)
	case vol >= laVolumeMild:
		return fmt.Sprintf("Aurícula izquierda levemente dilatada (volumen indexado %.0f ml/m²).", vol)
	default:
		return "Aurícula izquierda de dimensiones normales."
	}
}

var mitralMorphologyText = map[domain.MitralMorphology]string{
	domain.MitralProlapse:      "prolapso valvular mitral",
	domain.MitralFlail:         "flail de valva mitral",
	domain.MitralCalcification: "calcificación del anillo mitral",
}

// mitralSentence is emitted only when there is a structural finding or a
// graded lesion. Morphology leads when present; otherwise the grades stand
// alone, with the euphonic contraction between lesions.
func (o *Orchestrator) mitralSentence(study domain.StudyInput) string {
	m := study.Mitral
	hasMorph := len(m.Morphology) > 0
	hasGrade := m.Stenosis.Present() || m.Regurgitation.Present()
	if !hasMorph && !hasGrade {
		return ""
	}

	var lesions []string
	if m.Stenosis.Present() {
		lesions = append(lesions, "estenosis "+string(m.Stenosis))
	}
	if m.Regurgitation.Present() {
		lesions = append(lesions, "insuficiencia "+string(m.Regurgitation))
	}

	if hasMorph {
		var parts []string
		for _, morph := range m.Morphology {
			if text, ok := mitralMorphologyText[morph]; ok {
				parts = append(parts, text)
			}
		}
		sentence := esptext.UpperLead(esptext.Join(parts))
		if hasGrade {
			sentence += ", con " + esptext.Join(lesions)
		}
		return esptext.EnsurePeriod(sentence)
	}

	// Grade-only phrasing names the valve on each lesion.
	var named []string
	if m.Stenosis.Present() {
		named = append(named, "estenosis mitral "+string(m.Stenosis))
	}
	if m.Regurgitation.Present() {
		named = append(named, "insuficiencia mitral "+string(m.Regurgitation))
	}
	return esptext.EnsurePeriod(esptext.UpperLead(esptext.Join(named)))
}

var aorticMorphologyText = map[domain.AorticMorphology]string{
	domain.AorticBicuspid:  "bicúspide",
	domain.AorticCalcified: "esclerocalcificada",
}

// aorticValveSentence parallels the mitral phrasing. The quantitative
// advanced regurgitation classification, when supplied, overrides the
// manually selected grade.
func (o *Orchestrator) aorticValveSentence(study domain.StudyInput) string {
	a := study.Aortic
	regurgitation := string(a.Regurgitation)
	hasRegurg := a.Regurgitation.Present()
	if a.AdvancedRegurgitation != "" {
		regurgitation = a.AdvancedRegurgitation
		hasRegurg = true
	}

	hasMorph := len(a.Morphology) > 0
	hasGrade := a.Stenosis.Present() || hasRegurg
	if !hasMorph && !hasGrade {
		return ""
	}

	var lesions []string
	if a.Stenosis.Present() {
		lesions = append(lesions, "estenosis "+string(a.Stenosis))
	}
	if hasRegurg {
		lesions = append(lesions, "insuficiencia "+regurgitation)
	}

	if hasMorph {
		var traits []string
		for _, morph := range a.Morphology {
			if text, ok := aorticMorphologyText[morph]; ok {
				traits = append(traits, text)
			}
		}
		sentence := "Válvula aórtica " + esptext.Join(traits)
		if hasGrade {
			sentence += ", con " + esptext.Join(lesions)
		}
		return esptext.EnsurePeriod(sentence)
	}

	var named []string
	if a.Stenosis.Present() {
		named = append(named, "estenosis aórtica "+string(a.Stenosis))
	}
	if hasRegurg {
		named = append(named, "insuficiencia aórtica "+regurgitation)
	}
	return esptext.EnsurePeriod(esptext.UpperLead(esptext.Join(named)))
}

// aortaSentence reports indexed root and ascending aorta dilation with
// sex-specific limits. When both segments exceed their own limit the worst
// band wins and both segments are named.
func (o *Orchestrator) aortaSentence(study domain.StudyInput) string {
	if study.BSA <= 0 || !study.Sex.IsValid() {
		return ""
	}

	rootLimit, ascLimit := rootLimitMale, ascendingLimitMale
	if study.Sex == domain.SexFemale {
		rootLimit, ascLimit = rootLimitFemale, ascendingLimitFemale
	}

	band := func(indexed, limit float64) int {
		switch {
		case indexed > aortaSevereCutoff:
			return 3
		case indexed >= aortaModerateCutoff:
			return 2
		case indexed > limit:
			return 1
		default:
			return 0
		}
	}
	bandName := [...]string{"", "leve", "moderada", "severa"}

	rootIdx, ascIdx := 0.0, 0.0
	if study.AorticRootDiameter > 0 {
		rootIdx = study.AorticRootDiameter / 10 / study.BSA
	}
	if study.AscendingAortaDiameter > 0 {
		ascIdx = study.AscendingAortaDiameter / 10 / study.BSA
	}

	rootBand := 0
	if rootIdx > 0 {
		rootBand = band(rootIdx, rootLimit)
	}
	ascBand := 0
	if ascIdx > 0 {
		ascBand = band(ascIdx, ascLimit)
	}

	switch {
	case rootBand > 0 && ascBand > 0:
		worst := rootBand
		if ascBand > worst {
			worst = ascBand
		}
		return fmt.Sprintf(
			"Dilatación %s de la raíz aórtica y la aorta ascendente (índices %.2f y %.2f cm/m²).",
			bandName[worst], rootIdx, ascIdx)
	case rootBand > 0:
		return fmt.Sprintf("Dilatación %s de la raíz aórtica (índice %.2f cm/m²).", bandName[rootBand], rootIdx)
	case ascBand > 0:
		return fmt.Sprintf("Dilatación %s de la aorta ascendente (índice %.2f cm/m²).", bandName[ascBand], ascIdx)
	default:
		return ""
	}
}

// rightChamberSentence is emitted only when a chamber's discrete dilated
// flag is set; the measurements refine the wording when available.
func (o *Orchestrator) rightChamberSentence(study domain.StudyInput) string {
	if !study.RADilated && !study.RVDilated {
		return ""
	}

	var parts []string
	if study.RADilated {
		desc := "aurícula derecha dilatada"
		if study.RightAtrialArea > raAreaSevere {
			desc = "aurícula derecha severamente dilatada"
		}
		if study.RightAtrialArea > raAreaDilated {
			desc += fmt.Sprintf(" (área %.0f cm²)", study.RightAtrialArea)
		}
		parts = append(parts, desc)
	}
	if study.RVDilated {
		grade := ""
		switch {
		case study.RVBasalDiameter > rvDiameterSevere:
			grade = "severamente "
		case study.RVBasalDiameter > rvDiameterModerate:
			grade = "moderadamente "
		case study.RVBasalDiameter > rvDiameterMild:
			grade = "levemente "
		}
		desc := "ventrículo derecho " + grade + "dilatado"
		if study.RVBasalDiameter > 0 {
			desc += fmt.Sprintf(" (diámetro basal %.0f mm)", study.RVBasalDiameter)
		}
		parts = append(parts, desc)
	}
	return esptext.EnsurePeriod(esptext.UpperLead(esptext.Join(parts)))
}

// pulmonaryPressureSentence is omitted entirely when PSAP was not
// computable; the conclusion numbering stays contiguous.
func (o *Orchestrator) pulmonaryPressureSentence(study domain.StudyInput) string {
	if study.PSAP <= 0 {
		return ""
	}
	switch {
	case study.PSAP <= psapLowSuspicion:
		return fmt.Sprintf("Baja probabilidad de hipertensión pulmonar (PSAP estimada %.0f mmHg).", study.PSAP)
	case study.PSAP <= psapIntermediate:
		return fmt.Sprintf("Probabilidad intermedia de hipertensión pulmonar (PSAP estimada %.0f mmHg).", study.PSAP)
	default:
		return fmt.Sprintf("Hipertensión pulmonar (PSAP estimada %.0f mmHg).", study.PSAP)
	}
}

func (o *Orchestrator) rightVentricleFunctionSentence(study domain.StudyInput) string {
	if study.TAPSE <= 0 || study.TAPSE >= tapseDysfunction {
		return ""
	}
	return fmt.Sprintf("Disfunción sistólica del ventrículo derecho (TAPSE %.0f mm).", study.TAPSE)
}
