package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRoleOf(t *testing.T) {
	buyerID := primitive.NewObjectID()
	sellerID := primitive.NewObjectID()
	strangerID := primitive.NewObjectID()

	inq := &Inquiry{BuyerID: buyerID, SellerID: sellerID}

	assert.Equal(t, RoleBuyer, inq.RoleOf(buyerID))
	assert.Equal(t, RoleSeller, inq.RoleOf(sellerID))
	assert.Equal(t, RoleNone, inq.RoleOf(strangerID))
	assert.Equal(t, RoleNone, inq.RoleOf(primitive.ObjectID{}))
}

func TestRoleOther(t *testing.T) {
	assert.Equal(t, RoleSeller, RoleBuyer.Other())
	assert.Equal(t, RoleBuyer, RoleSeller.Other())
	assert.Equal(t, RoleNone, RoleNone.Other())
}

func TestRoleFields(t *testing.T) {
	assert.Equal(t, "unread_count.buyer", RoleBuyer.UnreadField())
	assert.Equal(t, "unread_count.seller", RoleSeller.UnreadField())
	assert.Equal(t, "buyer_last_read_at", RoleBuyer.LastReadField())
	assert.Equal(t, "seller_last_read_at", RoleSeller.LastReadField())
}

func TestStatusTransitions(t *testing.T) {
	// active -> completed: seller only
	assert.True(t, InquiryStatusActive.CanTransitionTo(InquiryStatusCompleted, RoleSeller))
	assert.False(t, InquiryStatusActive.CanTransitionTo(InquiryStatusCompleted, RoleBuyer))
	assert.False(t, InquiryStatusActive.CanTransitionTo(InquiryStatusCompleted, RoleNone))

	// active -> reported: either party
	assert.True(t, InquiryStatusActive.CanTransitionTo(InquiryStatusReported, RoleBuyer))
	assert.True(t, InquiryStatusActive.CanTransitionTo(InquiryStatusReported, RoleSeller))
	assert.False(t, InquiryStatusActive.CanTransitionTo(InquiryStatusReported, RoleNone))

	// no self transition, no reactivation
	assert.False(t, InquiryStatusActive.CanTransitionTo(InquiryStatusActive, RoleSeller))
	assert.False(t, InquiryStatusCompleted.CanTransitionTo(InquiryStatusActive, RoleSeller))
	assert.False(t, InquiryStatusReported.CanTransitionTo(InquiryStatusActive, RoleBuyer))

	// terminal states have no outgoing transitions at all
	for _, from := range []InquiryStatus{InquiryStatusCompleted, InquiryStatusReported} {
		for _, to := range []InquiryStatus{InquiryStatusActive, InquiryStatusCompleted, InquiryStatusReported} {
			for _, role := range []Role{RoleBuyer, RoleSeller} {
				assert.False(t, from.CanTransitionTo(to, role), "%s -> %s as %s should be rejected", from, to, role)
			}
		}
	}
}

func TestStatusMessaging(t *testing.T) {
	assert.True(t, InquiryStatusActive.CanAcceptMessages())
	assert.False(t, InquiryStatusCompleted.CanAcceptMessages())
	assert.False(t, InquiryStatusReported.CanAcceptMessages())

	assert.False(t, InquiryStatusActive.Terminal())
	assert.True(t, InquiryStatusCompleted.Terminal())
	assert.True(t, InquiryStatusReported.Terminal())
}

func TestUnreadCountFor(t *testing.T) {
	u := UnreadCount{Buyer: 2, Seller: 5}
	assert.Equal(t, 2, u.For(RoleBuyer))
	assert.Equal(t, 5, u.For(RoleSeller))
	assert.Equal(t, 0, u.For(RoleNone))
}

func TestMessageTypeValid(t *testing.T) {
	assert.True(t, MessageTypeText.Valid())
	assert.True(t, MessageTypeImage.Valid())
	assert.True(t, MessageTypeSystem.Valid())
	assert.False(t, MessageType("video").Valid())
	assert.False(t, MessageType("").Valid())
}

func TestStatusValid(t *testing.T) {
	assert.True(t, InquiryStatusActive.Valid())
	assert.True(t, InquiryStatusCompleted.Valid())
	assert.True(t, InquiryStatusReported.Valid())
	assert.False(t, InquiryStatus("archived").Valid())
}
