package store

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/ecoreport-engine/internal/domain"
)

// Persistence keys. The severity map is stored as a JSON object of 17
// integer entries, the active pattern as a plain string.
const (
	KeySegments = "motility.segments"
	KeyPattern  = "motility.pattern"
)

// NotifyAll is the sentinel passed to listeners when a mutation touched the
// whole model (pattern application, reset).
const NotifyAll = 0

// Listener receives the changed segment id, or NotifyAll.
type Listener func(segmentID int)

// MotilityStore owns the segment → severity mapping and the selected named
// pattern. Every mutation is computed fully, persisted, then committed and
// broadcast, so a persistence failure leaves the in-memory state untouched.
type MotilityStore struct {
	kv       KV
	logger   *logrus.Logger
	sev      map[int]domain.Severity
	active   domain.PatternID
	watchers []Listener
}

// NewMotilityStore builds a store recovering previous state from kv.
// Absent or corrupt persisted data falls back to the all-Normal default; it
// is never surfaced as an error.
func NewMotilityStore(kv KV, logger *logrus.Logger) (*MotilityStore, error) {
	s := &MotilityStore{
		kv:     kv,
		logger: logger,
		sev:    make(map[int]domain.Severity, domain.NumSegments),
		active: domain.PatternNone,
	}
	for id := 1; id <= domain.NumSegments; id++ {
		s.sev[id] = domain.SeverityNormal
	}
	s.restore()
	return s, nil
}

// restore loads both persistence keys, tolerating anything malformed.
func (s *MotilityStore) restore() {
	raw, ok, err := s.kv.Load(KeySegments)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load persisted segment state, using defaults")
	} else if ok {
		var entries map[string]int
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			s.logger.WithError(err).Warn("Corrupt persisted segment state, using defaults")
		} else {
			for key, val := range entries {
				id, err := strconv.Atoi(key)
				if err != nil || id < 1 || id > domain.NumSegments {
					continue
				}
				if sev := domain.Severity(val); sev.IsValid() {
					s.sev[id] = sev
				}
			}
		}
	}

	name, ok, err := s.kv.Load(KeyPattern)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load persisted pattern, using none")
		return
	}
	if ok {
		id := domain.PatternID(name)
		if id == domain.PatternNone || domain.IsPattern(id) {
			s.active = id
		} else {
			s.logger.WithField("pattern", name).Warn("Unknown persisted pattern, using none")
		}
	}
}

// Severity returns the state of the segment, Normal if somehow unset.
func (s *MotilityStore) Severity(id int) domain.Severity {
	if sev, ok := s.sev[id]; ok {
		return sev
	}
	return domain.SeverityNormal
}

// ActivePattern returns the currently selected pattern id, or PatternNone.
func (s *MotilityStore) ActivePattern() domain.PatternID {
	return s.active
}

// Snapshot returns a defensive copy of the full state for the read paths.
func (s *MotilityStore) Snapshot() domain.MotilitySnapshot {
	sev := make(map[int]domain.Severity, domain.NumSegments)
	for id, v := range s.sev {
		sev[id] = v
	}
	return domain.MotilitySnapshot{Severities: sev, ActivePattern: s.active}
}

// Subscribe registers a listener notified after every committed mutation,
// in registration order. Listeners live for the whole session; there is no
// unsubscribe.
func (s *MotilityStore) Subscribe(l Listener) {
	s.watchers = append(s.watchers, l)
}

// Toggle advances the segment's severity cyclically and persists.
func (s *MotilityStore) Toggle(id int) error {
	if _, err := domain.SegmentInfo(id); err != nil {
		return err
	}
	next := s.cloneSeverities()
	next[id] = s.Severity(id).Next()

	if err := s.persist(next, s.active); err != nil {
		return err
	}
	s.sev = next
	s.logger.WithFields(logrus.Fields{
		"segment":  id,
		"severity": s.sev[id].Label(),
	}).Debug("Segment toggled")
	s.notify(id)
	return nil
}

// SetSeverity writes the severity directly. An out-of-range level is a
// silent no-op: UI layers may transiently hold stale values and that must
// not be treated as a fault. Unknown segment ids remain hard errors.
func (s *MotilityStore) SetSeverity(id int, level domain.Severity) error {
	if _, err := domain.SegmentInfo(id); err != nil {
		return err
	}
	if !level.IsValid() {
		s.logger.WithFields(logrus.Fields{
			"segment": id,
			"level":   int(level),
		}).Debug("Ignoring out-of-range severity write")
		return nil
	}
	next := s.cloneSeverities()
	next[id] = level

	if err := s.persist(next, s.active); err != nil {
		return err
	}
	s.sev = next
	s.notify(id)
	return nil
}

// ApplyPattern resets the model to Normal and applies the named pattern's
// default severity to its affected segments. The "none" sentinel clears the
// active pattern only, leaving segment states untouched.
func (s *MotilityStore) ApplyPattern(id domain.PatternID) error {
	if id == domain.PatternNone {
		if err := s.persist(s.sev, domain.PatternNone); err != nil {
			return err
		}
		s.active = domain.PatternNone
		s.notify(NotifyAll)
		return nil
	}

	pattern, err := domain.PatternInfo(id)
	if err != nil {
		return err
	}

	next := make(map[int]domain.Severity, domain.NumSegments)
	for sid := 1; sid <= domain.NumSegments; sid++ {
		next[sid] = domain.SeverityNormal
	}
	for _, sid := range pattern.Segments {
		next[sid] = pattern.Default
	}

	if err := s.persist(next, id); err != nil {
		return err
	}
	s.sev = next
	s.active = id
	s.logger.WithFields(logrus.Fields{
		"pattern":  string(id),
		"segments": len(pattern.Segments),
		"default":  pattern.Default.Label(),
	}).Info("Pattern applied")
	s.notify(NotifyAll)
	return nil
}

// Reset returns the store to the freshly constructed default.
func (s *MotilityStore) Reset() error {
	next := make(map[int]domain.Severity, domain.NumSegments)
	for sid := 1; sid <= domain.NumSegments; sid++ {
		next[sid] = domain.SeverityNormal
	}
	if err := s.persist(next, domain.PatternNone); err != nil {
		return err
	}
	s.sev = next
	s.active = domain.PatternNone
	s.logger.Info("Motility state reset")
	s.notify(NotifyAll)
	return nil
}

func (s *MotilityStore) cloneSeverities() map[int]domain.Severity {
	next := make(map[int]domain.Severity, domain.NumSegments)
	for id, v := range s.sev {
		next[id] = v
	}
	return next
}

// persist serializes the candidate state to both keys before it is
// committed to memory.
func (s *MotilityStore) persist(sev map[int]domain.Severity, active domain.PatternID) error {
	entries := make(map[string]int, domain.NumSegments)
	for id, v := range sev {
		entries[strconv.Itoa(id)] = v.Score()
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to serialize segment state: %w", err)
	}
	if err := s.kv.Save(KeySegments, string(raw)); err != nil {
		return fmt.Errorf("failed to persist segment state: %w", err)
	}
	if err := s.kv.Save(KeyPattern, string(active)); err != nil {
		return fmt.Errorf("failed to persist active pattern: %w", err)
	}
	return nil
}

func (s *MotilityStore) notify(id int) {
	for _, l := range s.watchers {
		l(id)
	}
}
