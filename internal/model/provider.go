package model

import "time"

// Provider is a healthcare provider that can submit claims.  Providers are
// reference data from the validator's perspective: claims only check that
// the provider exists and is active.
//
// Fields:
//  ID        – external provider identifier (providers.id).
//  Name      – provider display name.
//  IsActive  – whether the provider may appear on new claims.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type Provider struct {
	ID        string    // providers.id
	Name      string    // providers.name
	IsActive  bool      // providers.is_active
	CreatedAt time.Time // providers.created_at
	UpdatedAt time.Time // providers.updated_at
}
