// Package identity answers who a caller is and what position they hold:
// platform administrator, registered manufacturer, or neither.
package identity

import (
	"context"

	id "prodauth/pkg/domain"
)

// ManufacturerDirectory reports manufacturer registration state. The
// manufacturer stores satisfy it.
type ManufacturerDirectory interface {
	IsRegistered(ctx context.Context, account id.AccountID) (bool, error)
}

// AccessControl resolves caller positions. Pure reads; no side effects.
type AccessControl struct {
	admin         id.AccountID
	manufacturers ManufacturerDirectory
}

// NewAccessControl fixes the administrator identity for the deployment.
func NewAccessControl(admin id.AccountID, manufacturers ManufacturerDirectory) *AccessControl {
	return &AccessControl{admin: admin, manufacturers: manufacturers}
}

// IsAdministrator reports whether account is the deployment administrator.
// A deployment without an administrator configured has no administrator, so
// this never matches the zero account.
func (a *AccessControl) IsAdministrator(account id.AccountID) bool {
	return !a.admin.IsZero() && account == a.admin
}

// IsRegisteredManufacturer looks the account up in the manufacturer registry.
func (a *AccessControl) IsRegisteredManufacturer(ctx context.Context, account id.AccountID) (bool, error) {
	if account.IsZero() {
		return false, nil
	}
	return a.manufacturers.IsRegistered(ctx, account)
}
