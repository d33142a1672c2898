package models

import "fmt"

// Kind discriminates the bookable entity a CatalogItem describes.
type Kind string

const (
	KindTest    Kind = "test"
	KindScan    Kind = "scan"
	KindPackage Kind = "package"
	KindDoctor  Kind = "doctor"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindTest, KindScan, KindPackage, KindDoctor:
		return true
	default:
		return false
	}
}

// NeedsSampleCollection reports whether booking an item of this kind involves
// a specimen pickup.
func (k Kind) NeedsSampleCollection() bool {
	switch k {
	case KindTest, KindPackage:
		return true
	case KindScan, KindDoctor:
		return false
	default:
		return false
	}
}

// CenterOffer is one provider's price for a catalog item.
type CenterOffer struct {
	CenterName     string  `json:"centerName" validate:"required"`
	Price          int64   `json:"price" validate:"gte=0"`
	MRP            int64   `json:"mrp" validate:"gte=0"`
	Rating         float64 `json:"rating"`
	ReviewCount    int     `json:"reviewCount"`
	Accredited     bool    `json:"accredited"`
	TurnaroundTime string  `json:"turnaroundTime"`
	Location       string  `json:"location,omitempty"`
}

// LabDetails carries the fields only tests, scans and packages have.
type LabDetails struct {
	Preparation     string `json:"preparation,omitempty"`
	SampleType      string `json:"sampleType,omitempty"`
	ReportTime      string `json:"reportTime,omitempty"`
	ParametersCount int    `json:"parametersCount,omitempty"`
	NABL            bool   `json:"nabl,omitempty"`
}

// DoctorDetails carries the fields only doctor listings have.
type DoctorDetails struct {
	Specialty  string `json:"specialty,omitempty"`
	Experience string `json:"experience,omitempty"`
	About      string `json:"about,omitempty"`
}

// SearchMeta is optional metadata used by catalog filters.
type SearchMeta struct {
	Organ      string `json:"organ,omitempty"`
	Condition  string `json:"condition,omitempty"`
	RiskFactor string `json:"riskFactor,omitempty"`
}

// CatalogItem is a bookable test, scan, package or doctor.
// Exactly one of Lab or Doctor is set, depending on Kind.
type CatalogItem struct {
	ID               string         `json:"id" validate:"required"`
	Kind             Kind           `json:"kind" validate:"required,oneof=test scan package doctor"`
	Name             string         `json:"name" validate:"required"`
	Category         string         `json:"category"`
	Description      string         `json:"description"`
	ShortDescription string         `json:"shortDescription,omitempty"`
	ImageURL         string         `json:"imageUrl,omitempty"`
	Tags             []string       `json:"tags,omitempty"`
	CenterOffers     []CenterOffer  `json:"centerOffers" validate:"required,min=1,dive"`
	Lab              *LabDetails    `json:"lab,omitempty"`
	Doctor           *DoctorDetails `json:"doctor,omitempty"`
	Search           *SearchMeta    `json:"search,omitempty"`
}

// HasTag reports whether the item carries the given tag.
func (i CatalogItem) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Offer returns the center offer at index. It panics when the index is out of
// range.
func (i CatalogItem) Offer(index int) CenterOffer {
	if index < 0 || index >= len(i.CenterOffers) {
		panic(fmt.Sprintf("catalog item %s: center offer index %d out of range [0,%d)", i.ID, index, len(i.CenterOffers)))
	}
	return i.CenterOffers[index]
}

// CheckVariant verifies that the kind-specific payload matches Kind.
func (i CatalogItem) CheckVariant() error {
	switch i.Kind {
	case KindTest, KindScan, KindPackage:
		if i.Doctor != nil {
			return fmt.Errorf("catalog item %s: %s must not carry doctor details", i.ID, i.Kind)
		}
	case KindDoctor:
		if i.Lab != nil {
			return fmt.Errorf("catalog item %s: doctor must not carry lab details", i.ID)
		}
	default:
		return fmt.Errorf("catalog item %s: unknown kind %q", i.ID, i.Kind)
	}
	if len(i.CenterOffers) == 0 {
		return fmt.Errorf("catalog item %s: no center offers", i.ID)
	}
	return nil
}

// Clone returns a deep copy so snapshots never share slices with live state.
func (i CatalogItem) Clone() CatalogItem {
	out := i
	out.Tags = append([]string(nil), i.Tags...)
	out.CenterOffers = append([]CenterOffer(nil), i.CenterOffers...)
	if i.Lab != nil {
		lab := *i.Lab
		out.Lab = &lab
	}
	if i.Doctor != nil {
		doc := *i.Doctor
		out.Doctor = &doc
	}
	if i.Search != nil {
		meta := *i.Search
		out.Search = &meta
	}
	return out
}
