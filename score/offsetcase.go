package score

import "fmt"

// OffsetCase selects the horizontal offset table the typesetting engine
// uses to attach a sign to a note. The names are part of the macro
// vocabulary.
type OffsetCase uint8

const (
	OffsetFinalPunctum OffsetCase = iota
	OffsetFinalDeminutus
	OffsetFinalInclinatum
	OffsetFinalInclinatumDeminutus
	OffsetFinalStropha
	OffsetFinalQuilisma
	OffsetFinalOriscus
	OffsetFinalPunctumCavum
	OffsetFinalLinea
	OffsetFinalLineaPunctum
	OffsetFinalVirga
	OffsetFinalAscendens
	OffsetFinalDescendens
	OffsetFinalConnectedPunctum
	OffsetFinalUpperPunctum
	OffsetInitialPunctum
	OffsetInitioDebilis
	OffsetLeadingPunctum
	OffsetLeadingQuilisma
	OffsetLeadingOriscus
	OffsetConnectedPunctum
	OffsetConnectedQuilisma
	OffsetConnectedOriscus
	OffsetInitialConnectedVirga
	OffsetInitialPorrectus
	OffsetSecondPorrectus

	numOffsetCases
)

var offsetCaseNames = [...]string{
	OffsetFinalPunctum:             "FinalPunctum",
	OffsetFinalDeminutus:           "FinalDeminutus",
	OffsetFinalInclinatum:          "FinalInclinatum",
	OffsetFinalInclinatumDeminutus: "FinalInclinatumDeminutus",
	OffsetFinalStropha:             "FinalStropha",
	OffsetFinalQuilisma:            "FinalQuilisma",
	OffsetFinalOriscus:             "FinalOriscus",
	OffsetFinalPunctumCavum:        "FinalPunctumCavum",
	OffsetFinalLinea:               "FinalLinea",
	OffsetFinalLineaPunctum:        "FinalLineaPunctum",
	OffsetFinalVirga:               "FinalVirga",
	OffsetFinalAscendens:           "FinalAscendens",
	OffsetFinalDescendens:          "FinalDescendens",
	OffsetFinalConnectedPunctum:    "FinalConnectedPunctum",
	OffsetFinalUpperPunctum:        "FinalUpperPunctum",
	OffsetInitialPunctum:           "InitialPunctum",
	OffsetInitioDebilis:            "InitioDebilis",
	OffsetLeadingPunctum:           "LeadingPunctum",
	OffsetLeadingQuilisma:          "LeadingQuilisma",
	OffsetLeadingOriscus:           "LeadingOriscus",
	OffsetConnectedPunctum:         "ConnectedPunctum",
	OffsetConnectedQuilisma:        "ConnectedQuilisma",
	OffsetConnectedOriscus:         "ConnectedOriscus",
	OffsetInitialConnectedVirga:    "InitialConnectedVirga",
	OffsetInitialPorrectus:         "InitialPorrectus",
	OffsetSecondPorrectus:          "SecondPorrectus",
}

func (c OffsetCase) String() string {
	if c < numOffsetCases {
		return offsetCaseNames[c]
	}
	return fmt.Sprintf("OffsetCase(%d)", uint8(c))
}
