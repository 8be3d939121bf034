package service

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
)

// Archive keeps the most recently composed reports in a bounded in-memory
// LRU, keyed by study id. It is a convenience for the surrounding UI and is
// never consulted during generation; reports are always recomputed.
type Archive struct {
	logger *logrus.Logger
	cache  *lru.Cache[string, *ComposedReport]
}

// NewArchive creates an archive holding up to size reports.
func NewArchive(size int, logger *logrus.Logger) (*Archive, error) {
	cache, err := lru.New[string, *ComposedReport](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create report archive: %w", err)
	}
	return &Archive{logger: logger, cache: cache}, nil
}

// Put stores a composed report under its study id. Reports without a study
// id are not archived.
func (a *Archive) Put(report *ComposedReport) {
	if report == nil || report.StudyID == "" {
		return
	}
	evicted := a.cache.Add(report.StudyID, report)
	a.logger.WithFields(logrus.Fields{
		"study_id": report.StudyID,
		"evicted":  evicted,
		"size":     a.cache.Len(),
	}).Debug("Report archived")
}

// Get returns the archived report for a study id, if still resident.
func (a *Archive) Get(studyID string) (*ComposedReport, bool) {
	return a.cache.Get(studyID)
}

// Len returns the number of resident reports.
func (a *Archive) Len() int {
	return a.cache.Len()
}
