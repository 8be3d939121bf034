package domain

// The types in this file carry the results of the collaborator calculators
// (valve classifiers, chamber quantification, diastolic grading, PSAP).
// The orchestrator treats them as opaque typed inputs: it phrases and ranks
// them but never recomputes them. A zero value means "not measured", and
// every consumer resolves missing data to an indeterminate output instead
// of an error.

// Sex of the patient, used only for indexed aortic diameter limits.
type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

// IsValid reports whether the sex field was filled in.
func (s Sex) IsValid() bool {
	return s == SexMale || s == SexFemale
}

// DiastolicGrade is the externally computed diastolic function grade.
type DiastolicGrade string

const (
	DiastolicNormal        DiastolicGrade = "Normal"
	DiastolicGradeI        DiastolicGrade = "Grado I"
	DiastolicGradeII       DiastolicGrade = "Grado II"
	DiastolicGradeIII      DiastolicGrade = "Grado III"
	DiastolicIndeterminate DiastolicGrade = "Indeterminado"
	DiastolicOther         DiastolicGrade = "Otro"
)

// ValveGrade is the severity grade of a stenosis or regurgitation lesion.
type ValveGrade string

const (
	GradeNone     ValveGrade = "none"
	GradeMild     ValveGrade = "leve"
	GradeModerate ValveGrade = "moderada"
	GradeSevere   ValveGrade = "severa"
)

// Present reports whether the lesion was graded above "none".
func (g ValveGrade) Present() bool {
	switch g {
	case GradeMild, GradeModerate, GradeSevere:
		return true
	default:
		return false
	}
}

func (g ValveGrade) String() string {
	return string(g)
}

// MitralMorphology flags structural findings on the mitral valve.
type MitralMorphology string

const (
	MitralProlapse      MitralMorphology = "prolapse"
	MitralFlail         MitralMorphology = "flail"
	MitralCalcification MitralMorphology = "calcification"
)

// AorticMorphology flags structural findings on the aortic valve.
type AorticMorphology string

const (
	AorticBicuspid  AorticMorphology = "bicuspid"
	AorticCalcified AorticMorphology = "calcified"
)

// DiastolicAssessment is the grade plus the grader's raw description,
// passed through verbatim when the grade falls outside the closed set.
type DiastolicAssessment struct {
	Grade       DiastolicGrade `json:"grade"`
	Description string         `json:"description,omitempty"`
}

// MitralValve carries the mitral classifier outputs.
type MitralValve struct {
	Morphology    []MitralMorphology `json:"morphology,omitempty"`
	Stenosis      ValveGrade         `json:"stenosis,omitempty"`
	Regurgitation ValveGrade         `json:"regurgitation,omitempty"`
}

// AorticValve carries the aortic classifier outputs. AdvancedRegurgitation
// is the quantitative regurgitation classification; when present it takes
// priority over the manually selected grade.
type AorticValve struct {
	Morphology            []AorticMorphology `json:"morphology,omitempty"`
	Stenosis              ValveGrade         `json:"stenosis,omitempty"`
	Regurgitation         ValveGrade         `json:"regurgitation,omitempty"`
	AdvancedRegurgitation string             `json:"advanced_regurgitation,omitempty"`
}

// StudyInput is the full set of collaborator results for one study.
// Linear dimensions are in mm, areas in cm², indexed volumes in ml/m²,
// pressures in mmHg. Zero means not measured throughout.
type StudyInput struct {
	StudyID string `json:"study_id,omitempty"`

	Rhythm string `json:"rhythm,omitempty"`

	LVGeometry string  `json:"lv_geometry,omitempty"`
	LVDilated  bool    `json:"lv_dilated,omitempty"`
	EF         float64 `json:"ef,omitempty"`

	Diastolic DiastolicAssessment `json:"diastolic"`

	LAVolumeIndexed float64 `json:"la_volume_indexed,omitempty"`

	Mitral MitralValve `json:"mitral"`
	Aortic AorticValve `json:"aortic"`

	AorticRootDiameter     float64 `json:"aortic_root_diameter,omitempty"`
	AscendingAortaDiameter float64 `json:"ascending_aorta_diameter,omitempty"`
	BSA                    float64 `json:"bsa,omitempty"`
	Sex                    Sex     `json:"sex,omitempty"`

	RightAtrialArea float64 `json:"right_atrial_area,omitempty"`
	RADilated       bool    `json:"ra_dilated,omitempty"`
	RVBasalDiameter float64 `json:"rv_basal_diameter,omitempty"`
	RVDilated       bool    `json:"rv_dilated,omitempty"`

	PSAP  float64 `json:"psap,omitempty"`
	TAPSE float64 `json:"tapse,omitempty"`
}
