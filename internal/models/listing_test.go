// internal/models/listing_test.go
package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func buildListingWithOffers() (Listing, uuid.UUID, uuid.UUID, uuid.UUID, uuid.UUID) {
	sellerID := uuid.New()
	lawyerID := uuid.New()
	buyer1 := uuid.New()
	buyer2 := uuid.New()

	listing := Listing{
		SellerID:   sellerID,
		SellerName: "Alice",
		Title:      "Beach House",
		LawyerID:   &lawyerID,
		Offers: []Offer{
			{BuyerID: buyer1, BuyerName: "Bob", Amount: 450000, Message: "cash buyer", Status: OfferStatusPending},
			{BuyerID: buyer2, BuyerName: "Dana", Amount: 420000, Message: "flexible closing", Status: OfferStatusPending},
		},
	}
	return listing, sellerID, lawyerID, buyer1, buyer2
}

func TestRedactOffersForSeller(t *testing.T) {
	listing, sellerID, _, buyer1, _ := buildListingWithOffers()

	listing.RedactOffersFor(&sellerID)

	assert.Equal(t, buyer1, listing.Offers[0].BuyerID)
	assert.Equal(t, "Bob", listing.Offers[0].BuyerName)
	assert.Equal(t, "cash buyer", listing.Offers[0].Message)
}

func TestRedactOffersForAssignedLawyer(t *testing.T) {
	listing, _, lawyerID, _, buyer2 := buildListingWithOffers()

	listing.RedactOffersFor(&lawyerID)

	assert.Equal(t, buyer2, listing.Offers[1].BuyerID)
	assert.Equal(t, "Dana", listing.Offers[1].BuyerName)
}

func TestRedactOffersForOfferingBuyer(t *testing.T) {
	listing, _, _, buyer1, buyer2 := buildListingWithOffers()

	listing.RedactOffersFor(&buyer1)

	// The viewer's own offer stays intact
	assert.Equal(t, buyer1, listing.Offers[0].BuyerID)
	assert.Equal(t, "Bob", listing.Offers[0].BuyerName)

	// The competing buyer is redacted but amount and status remain visible
	assert.Equal(t, uuid.Nil, listing.Offers[1].BuyerID)
	assert.Empty(t, listing.Offers[1].BuyerName)
	assert.Empty(t, listing.Offers[1].Message)
	assert.NotEqual(t, buyer2, listing.Offers[1].BuyerID)
	assert.Equal(t, float64(420000), listing.Offers[1].Amount)
	assert.Equal(t, OfferStatusPending, listing.Offers[1].Status)
}

func TestRedactOffersForAnonymousViewer(t *testing.T) {
	listing, _, _, _, _ := buildListingWithOffers()

	listing.RedactOffersFor(nil)

	for _, offer := range listing.Offers {
		assert.Equal(t, uuid.Nil, offer.BuyerID)
		assert.Empty(t, offer.BuyerName)
		assert.Empty(t, offer.Message)
	}
}

func TestRedactOffersForUnrelatedLawyer(t *testing.T) {
	listing, _, _, _, _ := buildListingWithOffers()
	otherLawyer := uuid.New()

	listing.RedactOffersFor(&otherLawyer)

	for _, offer := range listing.Offers {
		assert.Equal(t, uuid.Nil, offer.BuyerID)
	}
}

func TestListingSummary(t *testing.T) {
	listing := Listing{
		Title:        "Downtown Loft",
		Location:     "Lisbon",
		Price:        320000,
		Currency:     "EUR",
		PropertyType: "apartment",
		SellerName:   "Alice",
		Images:       []string{"https://example.com/a.jpg"},
	}
	listing.ID = uuid.New()

	summary := listing.Summary()

	assert.Equal(t, listing.ID, summary.ID)
	assert.Equal(t, "Downtown Loft", summary.Title)
	assert.Equal(t, "EUR", summary.Currency)
	assert.Equal(t, "Alice", summary.SellerName)
	assert.Len(t, summary.Images, 1)
}
