// Package model defines the persistence-level entities and the closed status
// enumerations they carry.  Statuses are typed strings so that decision code
// can switch exhaustively over them; parse helpers reject anything outside
// the closed set before it reaches the database.
package model

import "fmt"

// ClaimStatus is the adjudication state of a claim.  PENDING exists only as
// the in-flight value while a submission is being processed; a stored claim
// always carries one of the other three.
type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "PENDING"
	ClaimApproved ClaimStatus = "APPROVED"
	ClaimPartial  ClaimStatus = "PARTIAL"
	ClaimRejected ClaimStatus = "REJECTED"
)

// ParseClaimStatus converts a string into a ClaimStatus, rejecting values
// outside the closed set.
func ParseClaimStatus(s string) (ClaimStatus, error) {
	switch ClaimStatus(s) {
	case ClaimPending, ClaimApproved, ClaimPartial, ClaimRejected:
		return ClaimStatus(s), nil
	}
	return "", fmt.Errorf("unknown claim status %q", s)
}

// MemberStatus is the lifecycle state of an insurance member.
type MemberStatus string

const (
	MemberActive    MemberStatus = "ACTIVE"
	MemberInactive  MemberStatus = "INACTIVE"
	MemberSuspended MemberStatus = "SUSPENDED"
)

// UserStatus is the lifecycle state of an application user account.
type UserStatus string

const (
	UserActive    UserStatus = "ACTIVE"
	UserInactive  UserStatus = "INACTIVE"
	UserSuspended UserStatus = "SUSPENDED"
)

// UserRole names the authorization role of a user.
type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleUser  UserRole = "USER"
)

// ParseUserRole converts a string into a UserRole.
func ParseUserRole(s string) (UserRole, error) {
	switch UserRole(s) {
	case RoleAdmin, RoleUser:
		return UserRole(s), nil
	}
	return "", fmt.Errorf("unknown user role %q", s)
}

// VerificationType tags the purpose of a verification token.
type VerificationType string

const (
	VerificationLogin         VerificationType = "LOGIN"
	VerificationInitial       VerificationType = "INITIAL_VERIFICATION"
	VerificationPasswordReset VerificationType = "PASSWORD_RESET"
)

// ParseVerificationType converts a string into a VerificationType.
func ParseVerificationType(s string) (VerificationType, error) {
	switch VerificationType(s) {
	case VerificationLogin, VerificationInitial, VerificationPasswordReset:
		return VerificationType(s), nil
	}
	return "", fmt.Errorf("unknown verification type %q", s)
}
