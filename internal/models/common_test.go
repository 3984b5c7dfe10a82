// internal/models/common_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOfferStatusTransitions(t *testing.T) {
	assert.True(t, OfferStatusPending.CanTransitionTo(OfferStatusAccepted))
	assert.True(t, OfferStatusPending.CanTransitionTo(OfferStatusDeclined))

	// Terminal states never move
	assert.False(t, OfferStatusAccepted.CanTransitionTo(OfferStatusDeclined))
	assert.False(t, OfferStatusAccepted.CanTransitionTo(OfferStatusPending))
	assert.False(t, OfferStatusDeclined.CanTransitionTo(OfferStatusAccepted))
	assert.False(t, OfferStatusDeclined.CanTransitionTo(OfferStatusPending))

	// Pending is never a target
	assert.False(t, OfferStatusPending.CanTransitionTo(OfferStatusPending))
}

func TestContractStatusTransitions(t *testing.T) {
	assert.True(t, ContractStatusPendingReview.CanTransitionTo(ContractStatusApproved))
	assert.True(t, ContractStatusPendingReview.CanTransitionTo(ContractStatusRejected))

	assert.False(t, ContractStatusApproved.CanTransitionTo(ContractStatusRejected))
	assert.False(t, ContractStatusRejected.CanTransitionTo(ContractStatusApproved))
	assert.False(t, ContractStatusApproved.CanTransitionTo(ContractStatusPendingReview))
}

func TestUserRoleValid(t *testing.T) {
	assert.True(t, UserRoleSeller.Valid())
	assert.True(t, UserRoleBuyer.Valid())
	assert.True(t, UserRoleLawyer.Valid())
	assert.False(t, UserRole("admin").Valid())
	assert.False(t, UserRole("").Valid())
}

func TestVerificationStatusValid(t *testing.T) {
	assert.True(t, VerificationStatusPending.Valid())
	assert.True(t, VerificationStatusApproved.Valid())
	assert.True(t, VerificationStatusRejected.Valid())
	assert.False(t, VerificationStatus("verified").Valid())
}
