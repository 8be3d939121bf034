// Package domain contains the static reference model for regional wall
// motion assessment on the AHA 17-segment left ventricular model, plus the
// typed clinical inputs consumed by the report pipeline.
//
// Reference: Lang et al. (2015) Recommendations for cardiac chamber
// quantification by echocardiography in adults. J Am Soc Echocardiogr.
// 28(1):1-39. doi: 10.1016/j.echo.2014.10.003
package domain

// Severity is the motility state of a single myocardial segment. The
// ordinal value doubles as the numeric score used for the Wall Motion Score
// Index, per the chamber quantification guidelines.
type Severity int

const (
	SeverityNormal      Severity = 1
	SeverityHypokinetic Severity = 2
	SeverityAkinetic    Severity = 3
	SeverityDyskinetic  Severity = 4
)

// IsValid reports whether the severity is one of the four guideline states.
// Writes with anything else are rejected before they reach the state store.
func (s Severity) IsValid() bool {
	return s >= SeverityNormal && s <= SeverityDyskinetic
}

// Score returns the WMSI contribution of the severity.
func (s Severity) Score() int {
	return int(s)
}

// Next advances the severity cyclically: Normal, Hipocinesia, Acinesia,
// Discinesia and back to Normal. Used by the segment toggle gesture.
func (s Severity) Next() Severity {
	if s >= SeverityDyskinetic || !s.IsValid() {
		return SeverityNormal
	}
	return s + 1
}

// Label returns the Spanish clinical label used in generated report text.
func (s Severity) Label() string {
	switch s {
	case SeverityNormal:
		return "Normal"
	case SeverityHypokinetic:
		return "Hipocinesia"
	case SeverityAkinetic:
		return "Acinesia"
	case SeverityDyskinetic:
		return "Discinesia"
	default:
		return "Desconocida"
	}
}

// ColorHint returns the presentation color associated with the severity.
// The core has no rendering; this is reference data for subscribing UIs.
func (s Severity) ColorHint() string {
	switch s {
	case SeverityNormal:
		return "green"
	case SeverityHypokinetic:
		return "yellow"
	case SeverityAkinetic:
		return "orange"
	case SeverityDyskinetic:
		return "red"
	default:
		return "gray"
	}
}

func (s Severity) String() string {
	return s.Label()
}

// LogFields returns structured logging fields for audit trails.
func (s Severity) LogFields() map[string]any {
	return map[string]any{
		"severity": s.Label(),
		"score":    s.Score(),
		"is_valid": s.IsValid(),
	}
}

// AllSeverities returns the four valid states in ordinal order.
func AllSeverities() []Severity {
	return []Severity{SeverityNormal, SeverityHypokinetic, SeverityAkinetic, SeverityDyskinetic}
}
