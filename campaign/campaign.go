// Package campaign holds the campaign snapshots read from the ledger
// and the repository that fetches and normalizes them.
package campaign

import (
	"math/big"
	"strings"

	"crowdfund-tui/contract"

	"github.com/ethereum/go-ethereum/common"
)

// PlaceholderImage is substituted when the ledger record carries no
// image URLs, so the gallery always has at least one entry.
const PlaceholderImage = "placeholder.jpg"

// Category is the normalized campaign category.
type Category string

const (
	CategoryMedical   Category = "medical"
	CategoryEducation Category = "education"
	CategoryEmergency Category = "emergency"
	CategoryCommunity Category = "community"
	CategoryOther     Category = "other"
)

var categoryDisplay = map[Category]string{
	CategoryMedical:   "🏥 Medical",
	CategoryEducation: "🎓 Education",
	CategoryEmergency: "🚨 Emergency",
	CategoryCommunity: "🏘️ Community",
	CategoryOther:     "💡 Other",
}

// ParseCategory case-folds a raw ledger category. Unrecognized or
// missing values map to CategoryOther.
func ParseCategory(raw string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := categoryDisplay[c]; ok {
		return c
	}
	return CategoryOther
}

// Display returns the user-facing label.
func (c Category) Display() string {
	if d, ok := categoryDisplay[c]; ok {
		return d
	}
	return categoryDisplay[CategoryOther]
}

// Campaign is a read-only snapshot of a ledger campaign record. A
// fresh fetch replaces it wholesale; nothing mutates it locally.
type Campaign struct {
	ID           *big.Int
	Title        string
	Description  string
	OwnerName    string
	OwnerContact string
	OwnerWallet  common.Address
	Category     Category
	ImageURLs    []string
	Goal         *big.Int
	TotalRaised  *big.Int
	PlatformFee  *big.Int
	Finished     bool
	EndTimestamp int64
}

// Donation is an immutable ledger donation record.
type Donation struct {
	Donor     common.Address
	Amount    *big.Int
	Timestamp int64
}

// NewestFirst returns a reversed copy for display; the ledger hands
// out donations in append order.
func NewestFirst(ds []Donation) []Donation {
	out := make([]Donation, len(ds))
	for i, d := range ds {
		out[len(ds)-1-i] = d
	}
	return out
}

func normalizeCampaign(raw contract.RawCampaign) Campaign {
	c := Campaign{
		ID:           orZero(raw.Id),
		Title:        raw.Title,
		Description:  raw.Description,
		OwnerName:    raw.OwnerName,
		OwnerContact: raw.OwnerContact,
		OwnerWallet:  raw.OwnerWallet,
		Category:     ParseCategory(raw.Category),
		ImageURLs:    raw.ImageURLs,
		Goal:         orZero(raw.Goal),
		TotalRaised:  orZero(raw.TotalRaised),
		PlatformFee:  orZero(raw.PlatformFee),
		Finished:     raw.Finished,
	}
	if raw.EndTimestamp != nil {
		c.EndTimestamp = raw.EndTimestamp.Int64()
	}
	if len(c.ImageURLs) == 0 {
		c.ImageURLs = []string{PlaceholderImage}
	}
	return c
}

func normalizeDonation(raw contract.RawDonation) Donation {
	d := Donation{
		Donor:  raw.Donor,
		Amount: orZero(raw.Amount),
	}
	if raw.Timestamp != nil {
		d.Timestamp = raw.Timestamp.Int64()
	}
	return d
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
