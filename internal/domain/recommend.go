package domain

import "fmt"

const (
	mitigationTemplate = "Reduce vehicle traffic, temporarily close industries, suspend outdoor activities in zone %d."
	acceptableTemplate = "Pollution levels acceptable in zone %d. Maintain constant monitoring."
)

// Recommend returns the advisory message for a zone given its fused alert flag.
func Recommend(zone ZoneID, alerted bool) string {
	if alerted {
		return fmt.Sprintf(mitigationTemplate, zone.Number())
	}
	return fmt.Sprintf(acceptableTemplate, zone.Number())
}
