package domain

import (
	"fmt"
	"strings"
)

// ZoneCount is the number of monitored zones.
const ZoneCount = 5

// ZoneID identifies one of the fixed monitored zones.
type ZoneID int

const (
	Centro ZoneID = iota
	Norte
	Sur
	Valle
	Pintag
)

var zoneNames = [ZoneCount]string{"Centro", "Norte", "Sur", "Valle", "Pintag"}

// Zones returns every zone in display order.
func Zones() []ZoneID {
	return []ZoneID{Centro, Norte, Sur, Valle, Pintag}
}

// Valid reports whether z names a known zone.
func (z ZoneID) Valid() bool {
	return z >= 0 && z < ZoneCount
}

// Name returns the human-readable zone name, e.g. "Centro".
func (z ZoneID) Name() string {
	if !z.Valid() {
		return fmt.Sprintf("ZoneID(%d)", int(z))
	}
	return zoneNames[z]
}

// Number returns the 1-indexed zone number shown to operators.
func (z ZoneID) Number() int {
	return int(z) + 1
}

// Slug returns the lowercase zone name used in file names and message keys.
func (z ZoneID) Slug() string {
	return strings.ToLower(z.Name())
}

func (z ZoneID) String() string {
	return z.Name()
}

// ParseZoneName resolves an exact, case-sensitive zone name as written in the
// climate file.
func ParseZoneName(name string) (ZoneID, bool) {
	for _, z := range Zones() {
		if zoneNames[z] == name {
			return z, true
		}
	}
	return -1, false
}

// ZoneFromNumber resolves a 1-indexed zone number as typed by an operator.
func ZoneFromNumber(n int) (ZoneID, bool) {
	z := ZoneID(n - 1)
	if !z.Valid() {
		return -1, false
	}
	return z, true
}

// SearchZones returns the zones whose name contains term, ignoring case.
// An empty term matches every zone.
func SearchZones(term string) []ZoneID {
	needle := strings.ToLower(strings.TrimSpace(term))
	var matches []ZoneID
	for _, z := range Zones() {
		if strings.Contains(strings.ToLower(z.Name()), needle) {
			matches = append(matches, z)
		}
	}
	return matches
}

// ZoneMap holds one value per zone, indexed by ZoneID.
type ZoneMap[T any] [ZoneCount]T
