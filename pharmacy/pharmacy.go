/*
Package pharmacy ships the Pharmacy Industry Award (MA000012).

PURPOSE:
  The award document is embedded in the binary so the engine works without
  any files on disk. A deployment can point award.file at its own document
  (for example next July's rates) and LoadCatalog will use that instead.

SCHEDULES:
  - current: Separate casual multipliers per band, Sunday day band carries
             the casual loading on top (default)
  - legacy:  Uniform Saturday/Sunday/holiday penalties and a flat weekday
             casual loading that above-award employees are exempt from

USAGE:
  catalog, err := pharmacy.LoadCatalog("")
  a, err := catalog.Latest(pharmacy.AwardCode)

SEE ALSO:
  - ma000012.yaml: The award document
  - factory/award.go: Document parsing
*/
package pharmacy

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/warp/award-engine/award"
	"github.com/warp/award-engine/factory"
)

//go:embed ma000012.yaml
var document []byte

// AwardCode is the Fair Work code of the pharmacy award.
const AwardCode = "MA000012"

// Schedule names.
const (
	ScheduleCurrent = "current"
	ScheduleLegacy  = "legacy"
)

// Classifications.
const (
	AssistantLevel1       award.Classification = "pharmacy-assistant-1"
	AssistantLevel2       award.Classification = "pharmacy-assistant-2"
	AssistantLevel3       award.Classification = "pharmacy-assistant-3"
	AssistantLevel4       award.Classification = "pharmacy-assistant-4"
	TechnicianLevel1      award.Classification = "pharmacy-technician-1"
	TechnicianLevel2      award.Classification = "pharmacy-technician-2"
	TechnicianLevel3      award.Classification = "pharmacy-technician-3"
	TechnicianLevel4      award.Classification = "pharmacy-technician-4"
	StudentYear1          award.Classification = "pharmacy-student-1"
	StudentYear2          award.Classification = "pharmacy-student-2"
	StudentYear3          award.Classification = "pharmacy-student-3"
	StudentYear4          award.Classification = "pharmacy-student-4"
	InternFirstHalf       award.Classification = "pharmacy-intern-1"
	InternSecondHalf      award.Classification = "pharmacy-intern-2"
	Pharmacist            award.Classification = "pharmacist"
	ExperiencedPharmacist award.Classification = "experienced-pharmacist"
	PharmacistInCharge    award.Classification = "pharmacist-in-charge"
	PharmacistManager     award.Classification = "pharmacist-manager"
)

// Age brackets.
const (
	AgeUnder16 award.Age = "under-16"
	Age16      award.Age = "16"
	Age17      award.Age = "17"
	Age18      award.Age = "18"
	Age19      award.Age = "19"
	Age20      award.Age = "20"
)

// Document returns a copy of the embedded award document.
func Document() []byte {
	return bytes.Clone(document)
}

// Award parses the embedded award.
func Award() (*award.Award, error) {
	a, err := factory.ParseYAML(document)
	if err != nil {
		return nil, fmt.Errorf("embedded %s document: %w", AwardCode, err)
	}
	return a, nil
}

// MustAward is Award for tests and package initialisation. It panics if the
// embedded document is broken.
func MustAward() *award.Award {
	a, err := Award()
	if err != nil {
		panic(err)
	}
	return a
}

// LoadCatalog builds the award catalog. An empty path uses the embedded
// document; otherwise every version in the file is loaded.
func LoadCatalog(path string) (*award.Catalog, error) {
	if path == "" {
		a, err := Award()
		if err != nil {
			return nil, err
		}
		return award.NewCatalog(a)
	}
	versions, err := factory.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return award.NewCatalog(versions...)
}
