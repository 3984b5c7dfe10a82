// internal/models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Name         string   `json:"name" gorm:"size:255;not null"`
	Email        string   `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string   `json:"-" gorm:"size:255;not null"`
	Role         UserRole `json:"role" gorm:"type:varchar(20);not null"`

	// Lawyer-only credentials
	LicenseNumber  string `json:"license_number,omitempty" gorm:"size:100"`
	BarAssociation string `json:"bar_association,omitempty" gorm:"size:255"`
	Verified       bool   `json:"verified" gorm:"default:false"`

	// Relationships
	Listings []Listing `json:"listings,omitempty" gorm:"foreignKey:SellerID"`
	Offers   []Offer   `json:"offers,omitempty" gorm:"foreignKey:BuyerID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// LawyerProfile is the public directory entry returned by the lawyer listing.
type LawyerProfile struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	LicenseNumber  string `json:"license_number"`
	BarAssociation string `json:"bar_association"`
	Verified       bool   `json:"verified"`
}

func (u *User) LawyerProfile() LawyerProfile {
	return LawyerProfile{
		ID:             u.ID.String(),
		Name:           u.Name,
		Email:          u.Email,
		LicenseNumber:  u.LicenseNumber,
		BarAssociation: u.BarAssociation,
		Verified:       u.Verified,
	}
}
