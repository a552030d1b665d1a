// Package model contains the gorm models of the procurement domain
package model

import (
	"time"
)

// Role is the account role resolved by the authentication collaborator
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleSupplier Role = "supplier"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSupplier
}

// Actor is the resolved caller identity every operation receives
type Actor struct {
	ID   uint
	Role Role
}

// IsAdmin reports whether the actor is an administrator
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsSupplier reports whether the actor is a supplier
func (a Actor) IsSupplier() bool {
	return a.Role == RoleSupplier
}

// User is a login account. Accounts are managed elsewhere; the procurement
// service only reads them to resolve suppliers and notification recipients.
type User struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"type:varchar(255);not null"`
	Email string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Phone string `gorm:"type:varchar(50)"`
	Role  Role   `gorm:"type:varchar(20);not null;check:role IN ('admin','supplier')"`
	// AdditionalEmails are secondary notification recipients
	AdditionalEmails []string  `gorm:"serializer:json"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

// IsSupplier reports whether the account has the supplier role
func (u *User) IsSupplier() bool {
	return u.Role == RoleSupplier
}

// NotificationEmails returns the primary email followed by the secondary ones
func (u *User) NotificationEmails() []string {
	emails := make([]string, 0, 1+len(u.AdditionalEmails))
	if u.Email != "" {
		emails = append(emails, u.Email)
	}
	return append(emails, u.AdditionalEmails...)
}
