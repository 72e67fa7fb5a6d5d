package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/inventory-service/internal/apperr"
)

// ParseID converts a hex id from a URL or token into an ObjectID.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, apperr.ErrInvalidID
	}
	return id, nil
}

func ValidRole(r string) bool {
	switch r {
	case RoleUser, RoleManagement, RoleAdmin:
		return true
	}
	return false
}
