package domain

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectArchived ProjectStatus = "archived"
)

// UtilizationBand is a display/alerting classification of a resource's
// aggregate allocation on a single day.
type UtilizationBand string

const (
	BandNone     UtilizationBand = "none"
	BandLight    UtilizationBand = "light"
	BandModerate UtilizationBand = "moderate"
	BandHeavy    UtilizationBand = "heavy"
	BandOver     UtilizationBand = "over"
)

// Bands lists every band from least to most loaded.
var Bands = []UtilizationBand{BandNone, BandLight, BandModerate, BandHeavy, BandOver}

// Label returns the human-readable range for the band.
func (b UtilizationBand) Label() string {
	switch b {
	case BandNone:
		return "None"
	case BandLight:
		return "Light (1-50%)"
	case BandModerate:
		return "Moderate (51-80%)"
	case BandHeavy:
		return "Heavy (81-100%)"
	case BandOver:
		return "Over (>100%)"
	}
	return string(b)
}
