package domain

// MotilitySnapshot is an immutable copy of the state store taken at read
// time. All derived metric and report generation paths consume snapshots,
// so no reader can observe (or cause) a partial mutation.
type MotilitySnapshot struct {
	Severities    map[int]Severity
	ActivePattern PatternID
}

// DefaultSnapshot returns the freshly constructed state: every segment
// Normal and no active pattern.
func DefaultSnapshot() MotilitySnapshot {
	sev := make(map[int]Severity, NumSegments)
	for id := 1; id <= NumSegments; id++ {
		sev[id] = SeverityNormal
	}
	return MotilitySnapshot{Severities: sev, ActivePattern: PatternNone}
}

// Severity returns the state of a segment, defaulting to Normal. The store
// guarantees every id is present post-initialization; the default protects
// readers handed a hand-built snapshot.
func (s MotilitySnapshot) Severity(id int) Severity {
	if sev, ok := s.Severities[id]; ok && sev.IsValid() {
		return sev
	}
	return SeverityNormal
}

// AbnormalCount returns the number of segments above Normal.
func (s MotilitySnapshot) AbnormalCount() int {
	n := 0
	for id := 1; id <= NumSegments; id++ {
		if s.Severity(id) > SeverityNormal {
			n++
		}
	}
	return n
}

// Pattern returns the active library pattern, if one is selected.
func (s MotilitySnapshot) Pattern() (Pattern, bool) {
	if s.ActivePattern == PatternNone {
		return Pattern{}, false
	}
	p, err := PatternInfo(s.ActivePattern)
	if err != nil {
		return Pattern{}, false
	}
	return p, true
}
