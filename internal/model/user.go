package model

import "time"

// User represents an application user record as stored in the `users`
// table.  Either email or phone number can serve as the login identifier.
// The json tags are omitted here because these structs are used by the
// repository layer; handlers define separate response types with
// appropriate JSON tags.
//
// Fields:
//  ID           – UUID primary key.
//  Email        – unique email address.
//  PhoneNumber  – optional unique phone number.
//  FirstName    – optional given name.
//  LastName     – optional family name.
//  PasswordHash – bcrypt hashed password.
//  Role         – authorization role (ADMIN or USER).
//  Status       – lifecycle state (ACTIVE, INACTIVE, SUSPENDED).
//  IsVerified   – whether initial verification completed.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
//  LastLoginAt  – when the user last authenticated (null until first login).
type User struct {
	ID           string     // users.id (UUID)
	Email        string     // users.email
	PhoneNumber  *string    // users.phone_number (nullable)
	FirstName    *string    // users.first_name (nullable)
	LastName     *string    // users.last_name (nullable)
	PasswordHash string     // users.password_hash
	Role         UserRole   // users.role
	Status       UserStatus // users.status
	IsVerified   bool       // users.is_verified
	CreatedAt    time.Time  // users.created_at
	UpdatedAt    time.Time  // users.updated_at
	LastLoginAt  *time.Time // users.last_login_at (nullable)
}
