package domain

// Climate row skip reasons.
const (
	SkipMalformed   = "malformed"
	SkipUnknownZone = "unknown_zone"
)

// SkippedRow describes a climate file row that was ignored without failing the load.
type SkippedRow struct {
	Line   int
	Text   string
	Reason string // SkipMalformed or SkipUnknownZone
	Detail string
}

// ClimateSnapshot is the fully materialized content of a climate file.
// Zones without a row keep the zero ClimateReading and Reported[z] == false.
type ClimateSnapshot struct {
	Readings ZoneMap[ClimateReading]
	Reported ZoneMap[bool]
	Skipped  []SkippedRow
}

// Missing returns the zones that had no climate row.
func (s ClimateSnapshot) Missing() []ZoneID {
	var missing []ZoneID
	for _, z := range Zones() {
		if !s.Reported[z] {
			missing = append(missing, z)
		}
	}
	return missing
}
