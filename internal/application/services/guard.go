package services

import (
	"github.com/zerobase/storereservation/internal/domain/entities"
	apperrors "github.com/zerobase/storereservation/pkg/errors"
)

// assertStoreOwner fails unless callerID owns the store.
func assertStoreOwner(store *entities.Store, callerID string) error {
	if store.OwnerID != callerID {
		return apperrors.NewUnauthorizedError("caller is not the store owner")
	}
	return nil
}

// assertRole fails unless the user holds the required role.
func assertRole(user *entities.User, required entities.Role) error {
	if user.Role != required {
		return apperrors.NewUnauthorizedError("caller does not hold the required role")
	}
	return nil
}
