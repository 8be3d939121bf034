package domain

import "fmt"

// Artery identifies the coronary territory a segment's perfusion is
// attributed to: descendente anterior (DA), coronaria derecha (CD) and
// circunfleja (Cx).
type Artery string

const (
	ArteryDA Artery = "DA"
	ArteryCD Artery = "CD"
	ArteryCx Artery = "Cx"
)

// IsValid reports whether the artery is one of the three territories.
func (a Artery) IsValid() bool {
	switch a {
	case ArteryDA, ArteryCD, ArteryCx:
		return true
	default:
		return false
	}
}

func (a Artery) String() string {
	return string(a)
}

// Territories returns the three coronary territories in the fixed priority
// order used for dominant-territory tie-breaking and clause ordering.
func Territories() []Artery {
	return []Artery{ArteryDA, ArteryCD, ArteryCx}
}

// SegmentLevel is the longitudinal level of a segment. The apex carries the
// apical level even though its name has no level qualifier.
type SegmentLevel string

const (
	LevelBasal  SegmentLevel = "basal"
	LevelMid    SegmentLevel = "media"
	LevelApical SegmentLevel = "apical"
)

// Rank orders levels base to apex for findings-text level lists.
func (l SegmentLevel) Rank() int {
	switch l {
	case LevelBasal:
		return 0
	case LevelMid:
		return 1
	case LevelApical:
		return 2
	default:
		return 3
	}
}

// Segment is one of the 17 anatomical segments of the AHA model.
// Wall is the anatomical wall name with the level qualifier stripped; the
// report generator groups findings by it.
type Segment struct {
	ID     int
	Name   string
	Wall   string
	Level  SegmentLevel
	Artery Artery
}

// NumSegments is the size of the AHA left ventricular model.
const NumSegments = 17

// segments is the immutable 17-segment reference table. Territory
// assignment follows the standard distribution (anterior/septal/apex to DA,
// inferior to CD, lateral to Cx).
var segments = [NumSegments]Segment{
	{ID: 1, Name: "Basal anterior", Wall: "anterior", Level: LevelBasal, Artery: ArteryDA},
	{ID: 2, Name: "Basal anteroseptal", Wall: "anteroseptal", Level: LevelBasal, Artery: ArteryDA},
	{ID: 3, Name: "Basal inferoseptal", Wall: "inferoseptal", Level: LevelBasal, Artery: ArteryCD},
	{ID: 4, Name: "Basal inferior", Wall: "inferior", Level: LevelBasal, Artery: ArteryCD},
	{ID: 5, Name: "Basal inferolateral", Wall: "inferolateral", Level: LevelBasal, Artery: ArteryCx},
	{ID: 6, Name: "Basal anterolateral", Wall: "anterolateral", Level: LevelBasal, Artery: ArteryCx},
	{ID: 7, Name: "Medio anterior", Wall: "anterior", Level: LevelMid, Artery: ArteryDA},
	{ID: 8, Name: "Medio anteroseptal", Wall: "anteroseptal", Level: LevelMid, Artery: ArteryDA},
	{ID: 9, Name: "Medio inferoseptal", Wall: "inferoseptal", Level: LevelMid, Artery: ArteryCD},
	{ID: 10, Name: "Medio inferior", Wall: "inferior", Level: LevelMid, Artery: ArteryCD},
	{ID: 11, Name: "Medio inferolateral", Wall: "inferolateral", Level: LevelMid, Artery: ArteryCx},
	{ID: 12, Name: "Medio anterolateral", Wall: "anterolateral", Level: LevelMid, Artery: ArteryCx},
	{ID: 13, Name: "Apical anterior", Wall: "anterior", Level: LevelApical, Artery: ArteryDA},
	{ID: 14, Name: "Apical septal", Wall: "septal", Level: LevelApical, Artery: ArteryDA},
	{ID: 15, Name: "Apical inferior", Wall: "inferior", Level: LevelApical, Artery: ArteryCD},
	{ID: 16, Name: "Apical lateral", Wall: "lateral", Level: LevelApical, Artery: ArteryCx},
	{ID: 17, Name: "Ápex", Wall: "apical", Level: LevelApical, Artery: ArteryDA},
}

// SegmentInfo returns the reference data for a segment id (1-17).
func SegmentInfo(id int) (Segment, error) {
	if id < 1 || id > NumSegments {
		return Segment{}, fmt.Errorf("segment %d: %w", id, ErrUnknownSegment)
	}
	return segments[id-1], nil
}

// AllSegments returns the 17 segments in id order.
func AllSegments() []Segment {
	out := make([]Segment, NumSegments)
	copy(out[:], segments[:])
	return out
}

// TerritorySegments returns the ids of the segments perfused by the artery,
// in ascending id order.
func TerritorySegments(a Artery) ([]int, error) {
	if !a.IsValid() {
		return nil, fmt.Errorf("artery %q: %w", a, ErrUnknownArtery)
	}
	var ids []int
	for _, seg := range segments {
		if seg.Artery == a {
			ids = append(ids, seg.ID)
		}
	}
	return ids, nil
}
