package domain

import "fmt"

// PatternID is the closed identifier of a named wall motion pattern. All
// canned report sentences key on this identifier, never on rendered prose.
type PatternID string

// PatternNone is the sentinel for "no pattern selected". It is not an entry
// of the pattern library.
const PatternNone PatternID = "none"

const (
	// Ischemic (territorial) patterns.
	PatternDAApical        PatternID = "da_apical"
	PatternDAExtensive     PatternID = "da_extensive"
	PatternAnteroseptal    PatternID = "anteroseptal"
	PatternCDInferior      PatternID = "cd_inferior"
	PatternCDInferolateral PatternID = "cd_inferolateral"
	PatternCxLateral       PatternID = "cx_lateral"
	PatternSeptalDeep      PatternID = "septal_deep"

	// Takotsubo (stress) patterns.
	PatternTakotsuboApical PatternID = "takotsubo_apical"
	PatternTakotsuboMid    PatternID = "takotsubo_midventricular"
	PatternTakotsuboBasal  PatternID = "takotsubo_basal"
	PatternTakotsuboFocal  PatternID = "takotsubo_focal"

	// Cardiomyopathies.
	PatternDilatedCM          PatternID = "dilated_cm"
	PatternHypertensiveCM     PatternID = "hypertensive_cm"
	PatternIschemicCM         PatternID = "ischemic_cm"
	PatternHypertrophicSeptal PatternID = "hypertrophic_septal"

	// Combined / multivessel.
	PatternDACDCombined PatternID = "da_cd_combined"
	PatternMultivessel  PatternID = "multivessel"

	// Dyssynchrony (conduction-driven) patterns.
	PatternLBBB          PatternID = "lbbb"
	PatternRBBB          PatternID = "rbbb"
	PatternPacemaker     PatternID = "pacemaker"
	PatternPostSurgical  PatternID = "post_surgical"
	PatternPreexcitation PatternID = "preexcitation"

	// Special patterns.
	PatternMyocarditis  PatternID = "myocarditis"
	PatternChagasApical PatternID = "chagas_apical"
	PatternAmyloidBase  PatternID = "amyloid_base"
)

// PatternCategory groups patterns by etiology; the conclusion generator
// selects canned sentences per category.
type PatternCategory string

const (
	CategoryIschemic       PatternCategory = "ischemic"
	CategoryTakotsubo      PatternCategory = "takotsubo"
	CategoryCardiomyopathy PatternCategory = "cardiomyopathy"
	CategoryCombined       PatternCategory = "combined"
	CategoryDyssynchrony   PatternCategory = "dyssynchrony"
	CategorySpecial        PatternCategory = "special"
)

// IsValid reports whether the category is part of the closed set.
func (c PatternCategory) IsValid() bool {
	switch c {
	case CategoryIschemic, CategoryTakotsubo, CategoryCardiomyopathy,
		CategoryCombined, CategoryDyssynchrony, CategorySpecial:
		return true
	default:
		return false
	}
}

// Pattern is a named template of affected segments. Applying it resets the
// full model to Normal and sets every listed segment to Default.
type Pattern struct {
	ID          PatternID
	Name        string
	Description string
	Segments    []int
	Default     Severity
	Category    PatternCategory
	Diffuse     bool
}

func span(from, to int) []int {
	ids := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		ids = append(ids, i)
	}
	return ids
}

// patternOrder preserves the library's presentation order.
var patternOrder = []PatternID{
	PatternDAApical, PatternDAExtensive, PatternAnteroseptal,
	PatternCDInferior, PatternCDInferolateral, PatternCxLateral, PatternSeptalDeep,
	PatternTakotsuboApical, PatternTakotsuboMid, PatternTakotsuboBasal, PatternTakotsuboFocal,
	PatternDilatedCM, PatternHypertensiveCM, PatternIschemicCM, PatternHypertrophicSeptal,
	PatternDACDCombined, PatternMultivessel,
	PatternLBBB, PatternRBBB, PatternPacemaker, PatternPostSurgical, PatternPreexcitation,
	PatternMyocarditis, PatternChagasApical, PatternAmyloidBase,
}

var patterns = map[PatternID]Pattern{
	PatternDAApical: {
		ID: PatternDAApical, Name: "Infarto apical",
		Description: "Acinesia de los segmentos apicales por oclusión distal de la DA",
		Segments:    []int{13, 14, 15, 16, 17}, Default: SeverityAkinetic, Category: CategoryIschemic,
	},
	PatternDAExtensive: {
		ID: PatternDAExtensive, Name: "Infarto anterior extenso",
		Description: "Acinesia anterior, anteroseptal y apical por oclusión proximal de la DA",
		Segments:    []int{1, 2, 7, 8, 13, 14, 17}, Default: SeverityAkinetic, Category: CategoryIschemic,
	},
	PatternAnteroseptal: {
		ID: PatternAnteroseptal, Name: "Infarto anteroseptal",
		Description: "Acinesia limitada a la pared anteroseptal y el septo apical",
		Segments:    []int{2, 8, 14}, Default: SeverityAkinetic, Category: CategoryIschemic,
	},
	PatternCDInferior: {
		ID: PatternCDInferior, Name: "Infarto inferior",
		Description: "Acinesia de la pared inferior e inferoseptal por oclusión de la CD",
		Segments:    []int{3, 4, 9, 10, 15}, Default: SeverityAkinetic, Category: CategoryIschemic,
	},
	PatternCDInferolateral: {
		ID: PatternCDInferolateral, Name: "Infarto inferolateral",
		Description: "Acinesia inferior e inferolateral por CD dominante",
		Segments:    []int{4, 5, 10, 11, 15}, Default: SeverityAkinetic, Category: CategoryIschemic,
	},
	PatternCxLateral: {
		ID: PatternCxLateral, Name: "Infarto lateral",
		Description: "Acinesia de las paredes laterales por oclusión de la Cx",
		Segments:    []int{5, 6, 11, 12, 16}, Default: SeverityAkinetic, Category: CategoryIschemic,
	},
	PatternSeptalDeep: {
		ID: PatternSeptalDeep, Name: "Infarto septal profundo",
		Description: "Acinesia septal extensa con compromiso apical",
		Segments:    []int{2, 3, 8, 9, 14}, Default: SeverityAkinetic, Category: CategoryIschemic,
	},
	PatternTakotsuboApical: {
		ID: PatternTakotsuboApical, Name: "Takotsubo apical",
		Description: "Balonamiento apical y medioventricular con bases conservadas",
		Segments:    span(7, 17), Default: SeverityAkinetic, Category: CategoryTakotsubo,
	},
	PatternTakotsuboMid: {
		ID: PatternTakotsuboMid, Name: "Takotsubo medioventricular",
		Description: "Acinesia medioventricular con ápex y bases conservados",
		Segments:    span(7, 12), Default: SeverityAkinetic, Category: CategoryTakotsubo,
	},
	PatternTakotsuboBasal: {
		ID: PatternTakotsuboBasal, Name: "Takotsubo invertido",
		Description: "Acinesia basal con función apical conservada",
		Segments:    span(1, 6), Default: SeverityAkinetic, Category: CategoryTakotsubo,
	},
	PatternTakotsuboFocal: {
		ID: PatternTakotsuboFocal, Name: "Takotsubo focal",
		Description: "Alteración focal anterior-apical de tipo estrés",
		Segments:    []int{13, 14}, Default: SeverityHypokinetic, Category: CategoryTakotsubo,
	},
	PatternDilatedCM: {
		ID: PatternDilatedCM, Name: "Miocardiopatía dilatada",
		Description: "Hipocinesia difusa que no respeta un territorio coronario",
		Segments:    span(1, 16), Default: SeverityHypokinetic, Category: CategoryCardiomyopathy, Diffuse: true,
	},
	PatternHypertensiveCM: {
		ID: PatternHypertensiveCM, Name: "Cardiopatía hipertensiva",
		Description: "Hipocinesia de predominio basal y medio",
		Segments:    span(1, 12), Default: SeverityHypokinetic, Category: CategoryCardiomyopathy, Diffuse: true,
	},
	PatternIschemicCM: {
		ID: PatternIschemicCM, Name: "Miocardiopatía isquémica",
		Description: "Hipocinesia difusa de origen isquémico",
		Segments:    span(1, 17), Default: SeverityHypokinetic, Category: CategoryCardiomyopathy, Diffuse: true,
	},
	PatternHypertrophicSeptal: {
		ID: PatternHypertrophicSeptal, Name: "Miocardiopatía hipertrófica septal",
		Description: "Hipocinesia septal en septo hipertrófico",
		Segments:    []int{2, 3, 8, 9, 14}, Default: SeverityHypokinetic, Category: CategoryCardiomyopathy,
	},
	PatternDACDCombined: {
		ID: PatternDACDCombined, Name: "Infarto anterior e inferior",
		Description: "Compromiso combinado de los territorios de la DA y la CD",
		Segments:    []int{1, 2, 3, 4, 7, 8, 9, 10, 13, 14, 15, 17}, Default: SeverityAkinetic, Category: CategoryCombined,
	},
	PatternMultivessel: {
		ID: PatternMultivessel, Name: "Enfermedad multivaso",
		Description: "Hipocinesia parcheada en más de un territorio coronario",
		Segments:    []int{2, 4, 8, 10, 12, 14, 16}, Default: SeverityHypokinetic, Category: CategoryCombined,
	},
	PatternLBBB: {
		ID: PatternLBBB, Name: "Bloqueo de rama izquierda",
		Description: "Movimiento septal paradójico por bloqueo de rama izquierda",
		Segments:    []int{2, 3, 8, 9, 14}, Default: SeverityHypokinetic, Category: CategoryDyssynchrony,
	},
	PatternRBBB: {
		ID: PatternRBBB, Name: "Bloqueo de rama derecha",
		Description: "Retraso de la activación septal por bloqueo de rama derecha",
		Segments:    []int{3, 9}, Default: SeverityHypokinetic, Category: CategoryDyssynchrony,
	},
	PatternPacemaker: {
		ID: PatternPacemaker, Name: "Estimulación por marcapasos",
		Description: "Activación asincrónica por estimulación apical de marcapasos",
		Segments:    []int{3, 4, 9, 10, 15}, Default: SeverityHypokinetic, Category: CategoryDyssynchrony,
	},
	PatternPostSurgical: {
		ID: PatternPostSurgical, Name: "Movimiento septal postquirúrgico",
		Description: "Movimiento septal paradójico en relación con cirugía cardíaca previa",
		Segments:    []int{2, 3, 8, 9}, Default: SeverityHypokinetic, Category: CategoryDyssynchrony,
	},
	PatternPreexcitation: {
		ID: PatternPreexcitation, Name: "Preexcitación ventricular",
		Description: "Activación precoz segmentaria por vía accesoria",
		Segments:    []int{4, 10}, Default: SeverityHypokinetic, Category: CategoryDyssynchrony,
	},
	PatternMyocarditis: {
		ID: PatternMyocarditis, Name: "Miocarditis focal",
		Description: "Hipocinesia parcheada de predominio lateral",
		Segments:    []int{5, 6, 11, 12}, Default: SeverityHypokinetic, Category: CategorySpecial,
	},
	PatternChagasApical: {
		ID: PatternChagasApical, Name: "Aneurisma apical chagásico",
		Description: "Discinesia apical con aneurisma del ápex",
		Segments:    []int{13, 14, 15, 16, 17}, Default: SeverityDyskinetic, Category: CategorySpecial,
	},
	PatternAmyloidBase: {
		ID: PatternAmyloidBase, Name: "Infiltración amiloide basal",
		Description: "Hipocinesia basal difusa con respeto apical",
		Segments:    span(1, 6), Default: SeverityHypokinetic, Category: CategorySpecial,
	},
}

// PatternInfo returns the reference data for a pattern identifier.
// PatternNone is a valid store sentinel but not a library entry.
func PatternInfo(id PatternID) (Pattern, error) {
	p, ok := patterns[id]
	if !ok {
		return Pattern{}, fmt.Errorf("pattern %q: %w", id, ErrUnknownPattern)
	}
	return p, nil
}

// PatternIDs returns all library identifiers in presentation order.
func PatternIDs() []PatternID {
	out := make([]PatternID, len(patternOrder))
	copy(out, patternOrder)
	return out
}

// IsPattern reports whether id names a library entry.
func IsPattern(id PatternID) bool {
	_, ok := patterns[id]
	return ok
}
