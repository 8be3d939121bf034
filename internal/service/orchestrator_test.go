package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoreport-engine/internal/domain"
)

func newTestOrchestrator() *Orchestrator {
	logger := testLogger()
	metrics := NewMetricsCalculator(logger)
	return NewOrchestrator(logger, metrics, NewReportGenerator(logger, metrics))
}

func TestCompose_NumberingStaysContiguous(t *testing.T) {
	o := newTestOrchestrator()

	study := domain.StudyInput{
		StudyID:   "eco-001",
		Rhythm:    "ritmo sinusal",
		EF:        60,
		Diastolic: domain.DiastolicAssessment{Grade: domain.DiastolicNormal},
		// PSAP not computable; its sentence is skipped without a gap.
		TAPSE: 12,
	}
	report := o.Compose(study, domain.DefaultSnapshot())

	require.Len(t, report.Conclusions, 4)
	assert.Equal(t, "1. Ritmo sinusal.", report.Conclusions[0])
	assert.Equal(t,
		"2. Ventrículo izquierdo de dimensiones y espesores parietales normales. Función sistólica global conservada.",
		report.Conclusions[1])
	assert.Equal(t, "3. Función diastólica normal.", report.Conclusions[2])
	assert.Equal(t, "4. Disfunción sistólica del ventrículo derecho (TAPSE 12 mm).", report.Conclusions[3])

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "eco-001", report.StudyID)
	assert.Empty(t, report.Findings)
	assert.Empty(t, report.Warnings)
}

func TestCompose_CoherenceWarning(t *testing.T) {
	o := newTestOrchestrator()

	snap := patternSnapshot(t, domain.PatternDilatedCM)
	report := o.Compose(domain.StudyInput{EF: 60}, snap)

	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "Discordancia")
	assert.Contains(t, report.Warnings[0], "WMSI 1.94")
}

func TestCompose_ECGNoteCarriedThrough(t *testing.T) {
	o := newTestOrchestrator()

	snap := patternSnapshot(t, domain.PatternLBBB)
	report := o.Compose(domain.StudyInput{}, snap)
	assert.Equal(t,
		"Correlacionar con morfología de bloqueo de rama izquierda en el ECG.",
		report.ECGNote)
}

func TestLeftVentricleSentence_MotilityMerge(t *testing.T) {
	o := newTestOrchestrator()

	// Single affected territory: conjunction "y", acronym casing kept.
	snap := snapshotWith(map[int]domain.Severity{1: domain.SeverityAkinetic})
	s := o.leftVentricleSentence(domain.StudyInput{}, snap)
	assert.Equal(t,
		"Ventrículo izquierdo de dimensiones y espesores parietales normales y alteración segmentaria de la motilidad en territorio de la DA.",
		s)
}

func TestLeftVentricleSentence_GeometryAndDilation(t *testing.T) {
	o := newTestOrchestrator()

	study := domain.StudyInput{
		LVGeometry: "Hipertrofia concéntrica",
		LVDilated:  true,
		EF:         45,
	}
	s := o.leftVentricleSentence(study, domain.DefaultSnapshot())
	assert.Equal(t,
		"Ventrículo izquierdo con hipertrofia concéntrica, dilatado. Función sistólica global levemente deprimida (FEVI 45%).",
		s)
}

func TestLeftVentricleSentence_EFBands(t *testing.T) {
	o := newTestOrchestrator()
	snap := domain.DefaultSnapshot()

	assert.Contains(t, o.leftVentricleSentence(domain.StudyInput{EF: 55}, snap), "conservada")
	assert.Contains(t, o.leftVentricleSentence(domain.StudyInput{EF: 50}, snap), "conservada")
	assert.Contains(t, o.leftVentricleSentence(domain.StudyInput{EF: 42}, snap), "levemente deprimida (FEVI 42%)")
	assert.Contains(t, o.leftVentricleSentence(domain.StudyInput{EF: 30}, snap), "severamente deprimida (FEVI 30%)")
	// EF not measured: no function clause at all.
	assert.NotContains(t, o.leftVentricleSentence(domain.StudyInput{}, snap), "Función sistólica")
}

func TestDiastolicSentence(t *testing.T) {
	o := newTestOrchestrator()

	cases := []struct {
		grade domain.DiastolicGrade
		want  string
	}{
		{domain.DiastolicNormal, "Función diastólica normal."},
		{domain.DiastolicGradeI, "Disfunción diastólica grado I (alteración de la relajación)."},
		{domain.DiastolicGradeII, "Disfunción diastólica grado II (patrón pseudonormal)."},
		{domain.DiastolicGradeIII, "Disfunción diastólica grado III (patrón restrictivo)."},
		{domain.DiastolicIndeterminate, "Función diastólica indeterminada con los datos disponibles."},
	}
	for _, tc := range cases {
		study := domain.StudyInput{Diastolic: domain.DiastolicAssessment{Grade: tc.grade}}
		assert.Equal(t, tc.want, o.diastolicSentence(study), "grade %s", tc.grade)
	}

	other := domain.StudyInput{Diastolic: domain.DiastolicAssessment{
		Grade:       domain.DiastolicOther,
		Description: "patrón de llenado compatible con fibrilación auricular",
	}}
	assert.Equal(t,
		"Patrón de llenado compatible con fibrilación auricular.",
		o.diastolicSentence(other))

	// "Otro" without a description is skipped.
	empty := domain.StudyInput{Diastolic: domain.DiastolicAssessment{Grade: domain.DiastolicOther}}
	assert.Empty(t, o.diastolicSentence(empty))
}

func TestLeftAtriumSentence(t *testing.T) {
	o := newTestOrchestrator()

	assert.Empty(t, o.leftAtriumSentence(domain.StudyInput{}))
	assert.Equal(t, "Aurícula izquierda de dimensiones normales.",
		o.leftAtriumSentence(domain.StudyInput{LAVolumeIndexed: 28}))
	assert.Equal(t, "Aurícula izquierda levemente dilatada (volumen indexado 34 ml/m²).",
		o.leftAtriumSentence(domain.StudyInput{LAVolumeIndexed: 34}))
	assert.Equal(t, "Aurícula izquierda moderadamente dilatada (volumen indexado 42 ml/m²).",
		o.leftAtriumSentence(domain.StudyInput{LAVolumeIndexed: 42}))
	assert.Equal(t, "Aurícula izquierda severamente dilatada (volumen indexado 52 ml/m²).",
		o.leftAtriumSentence(domain.StudyInput{LAVolumeIndexed: 52}))
}

func TestMitralSentence(t *testing.T) {
	o := newTestOrchestrator()

	assert.Empty(t, o.mitralSentence(domain.StudyInput{}))

	gradeOnly := domain.StudyInput{Mitral: domain.MitralValve{Regurgitation: domain.GradeMild}}
	assert.Equal(t, "Insuficiencia mitral leve.", o.mitralSentence(gradeOnly))

	both := domain.StudyInput{Mitral: domain.MitralValve{
		Stenosis:      domain.GradeModerate,
		Regurgitation: domain.GradeSevere,
	}}
	assert.Equal(t,
		"Estenosis mitral moderada e insuficiencia mitral severa.",
		o.mitralSentence(both))

	morph := domain.StudyInput{Mitral: domain.MitralValve{
		Morphology:    []domain.MitralMorphology{domain.MitralProlapse},
		Regurgitation: domain.GradeModerate,
	}}
	assert.Equal(t,
		"Prolapso valvular mitral, con insuficiencia moderada.",
		o.mitralSentence(morph))

	morphOnly := domain.StudyInput{Mitral: domain.MitralValve{
		Morphology: []domain.MitralMorphology{domain.MitralCalcification},
	}}
	assert.Equal(t, "Calcificación del anillo mitral.", o.mitralSentence(morphOnly))
}

func TestAorticValveSentence(t *testing.T) {
	o := newTestOrchestrator()

	assert.Empty(t, o.aorticValveSentence(domain.StudyInput{}))

	morph := domain.StudyInput{Aortic: domain.AorticValve{
		Morphology: []domain.AorticMorphology{domain.AorticCalcified},
		Stenosis:   domain.GradeMild,
	}}
	assert.Equal(t,
		"Válvula aórtica esclerocalcificada, con estenosis leve.",
		o.aorticValveSentence(morph))

	gradeOnly := domain.StudyInput{Aortic: domain.AorticValve{Regurgitation: domain.GradeMild}}
	assert.Equal(t, "Insuficiencia aórtica leve.", o.aorticValveSentence(gradeOnly))
}

func TestAorticValveSentence_AdvancedRegurgitationOverrides(t *testing.T) {
	o := newTestOrchestrator()

	study := domain.StudyInput{Aortic: domain.AorticValve{
		Regurgitation:         domain.GradeMild,
		AdvancedRegurgitation: "moderada a severa",
	}}
	assert.Equal(t, "Insuficiencia aórtica moderada a severa.", o.aorticValveSentence(study))

	// The quantitative classification alone is enough to emit the sentence.
	alone := domain.StudyInput{Aortic: domain.AorticValve{AdvancedRegurgitation: "severa"}}
	assert.Equal(t, "Insuficiencia aórtica severa.", o.aorticValveSentence(alone))
}

func TestAortaSentence(t *testing.T) {
	o := newTestOrchestrator()

	// No BSA or sex: nothing to index against.
	assert.Empty(t, o.aortaSentence(domain.StudyInput{AorticRootDiameter: 45}))
	assert.Empty(t, o.aortaSentence(domain.StudyInput{AorticRootDiameter: 45, BSA: 2.0}))

	// 45 mm at BSA 2.0 indexes to 2.25 cm/m², above the male root limit.
	mild := domain.StudyInput{Sex: domain.SexMale, BSA: 2.0, AorticRootDiameter: 45}
	assert.Equal(t,
		"Dilatación leve de la raíz aórtica (índice 2.25 cm/m²).",
		o.aortaSentence(mild))

	// 70 mm at BSA 2.0 indexes to 3.50 cm/m².
	severe := domain.StudyInput{Sex: domain.SexMale, BSA: 2.0, AorticRootDiameter: 70}
	assert.Equal(t,
		"Dilatación severa de la raíz aórtica (índice 3.50 cm/m²).",
		o.aortaSentence(severe))

	// 43 mm at BSA 2.0 is 2.15, on the male limit but over the female one.
	border := domain.StudyInput{Sex: domain.SexMale, BSA: 2.0, AorticRootDiameter: 43}
	assert.Empty(t, o.aortaSentence(border))
	border.Sex = domain.SexFemale
	assert.Contains(t, o.aortaSentence(border), "Dilatación leve de la raíz aórtica")
}

func TestAortaSentence_BothSegmentsWorstBandWins(t *testing.T) {
	o := newTestOrchestrator()

	study := domain.StudyInput{
		Sex:                    domain.SexMale,
		BSA:                    2.0,
		AorticRootDiameter:     45, // 2.25, leve
		AscendingAortaDiameter: 52, // 2.60, moderada
	}
	assert.Equal(t,
		"Dilatación moderada de la raíz aórtica y la aorta ascendente (índices 2.25 y 2.60 cm/m²).",
		o.aortaSentence(study))
}

func TestRightChamberSentence(t *testing.T) {
	o := newTestOrchestrator()

	// Measurements alone never trigger the sentence; the flag gates it.
	assert.Empty(t, o.rightChamberSentence(domain.StudyInput{RightAtrialArea: 30}))

	ra := domain.StudyInput{RADilated: true, RightAtrialArea: 22}
	assert.Equal(t, "Aurícula derecha dilatada (área 22 cm²).", o.rightChamberSentence(ra))

	raSevere := domain.StudyInput{RADilated: true, RightAtrialArea: 27}
	assert.Equal(t, "Aurícula derecha severamente dilatada (área 27 cm²).", o.rightChamberSentence(raSevere))

	rv := domain.StudyInput{RVDilated: true, RVBasalDiameter: 48}
	assert.Equal(t, "Ventrículo derecho moderadamente dilatado (diámetro basal 48 mm).", o.rightChamberSentence(rv))

	both := domain.StudyInput{RADilated: true, RVDilated: true, RVBasalDiameter: 43}
	assert.Equal(t,
		"Aurícula derecha dilatada y ventrículo derecho levemente dilatado (diámetro basal 43 mm).",
		o.rightChamberSentence(both))
}

func TestPulmonaryPressureSentence(t *testing.T) {
	o := newTestOrchestrator()

	assert.Empty(t, o.pulmonaryPressureSentence(domain.StudyInput{}))
	assert.Equal(t, "Baja probabilidad de hipertensión pulmonar (PSAP estimada 30 mmHg).",
		o.pulmonaryPressureSentence(domain.StudyInput{PSAP: 30}))
	assert.Equal(t, "Probabilidad intermedia de hipertensión pulmonar (PSAP estimada 40 mmHg).",
		o.pulmonaryPressureSentence(domain.StudyInput{PSAP: 40}))
	assert.Equal(t, "Hipertensión pulmonar (PSAP estimada 60 mmHg).",
		o.pulmonaryPressureSentence(domain.StudyInput{PSAP: 60}))
}

func TestRightVentricleFunctionSentence(t *testing.T) {
	o := newTestOrchestrator()

	assert.Empty(t, o.rightVentricleFunctionSentence(domain.StudyInput{}))
	assert.Empty(t, o.rightVentricleFunctionSentence(domain.StudyInput{TAPSE: 16}))
	assert.Equal(t, "Disfunción sistólica del ventrículo derecho (TAPSE 14 mm).",
		o.rightVentricleFunctionSentence(domain.StudyInput{TAPSE: 14}))
}

func TestCompose_FullStudy(t *testing.T) {
	o := newTestOrchestrator()

	study := domain.StudyInput{
		StudyID:         "eco-002",
		Rhythm:          "ritmo sinusal",
		EF:              38,
		Diastolic:       domain.DiastolicAssessment{Grade: domain.DiastolicGradeII},
		LAVolumeIndexed: 44,
		Mitral:          domain.MitralValve{Regurgitation: domain.GradeModerate},
		PSAP:            48,
	}
	snap := patternSnapshot(t, domain.PatternCDInferior)
	report := o.Compose(study, snap)

	require.Len(t, report.Conclusions, 6)
	for i, c := range report.Conclusions {
		assert.True(t, strings.HasPrefix(c, string(rune('1'+i))+". "), "conclusion %d: %q", i, c)
	}
	assert.Contains(t, report.Conclusions[1], "en territorio de la CD")
	assert.Contains(t, report.Conclusions[1], "severamente deprimida (FEVI 38%)")
	assert.Equal(t, "3. Disfunción diastólica grado II (patrón pseudonormal).", report.Conclusions[2])
	assert.Contains(t, report.Conclusions[3], "moderadamente dilatada")
	assert.Equal(t, "5. Insuficiencia mitral moderada.", report.Conclusions[4])
	assert.Equal(t, "6. Hipertensión pulmonar (PSAP estimada 48 mmHg).", report.Conclusions[5])

	assert.NotEmpty(t, report.Findings)
	assert.Equal(t, "Correlacionar con cambios en derivaciones II, III y aVF.", report.ECGNote)
}
