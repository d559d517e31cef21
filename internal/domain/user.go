package domain

import "time"

// User is an account holder.
type User struct {
	ID              string
	Name            string
	Email           string
	Phone           string
	PasswordHash    string
	DOB             time.Time
	Gender          string
	Pronouns        string
	Location        string
	Bio             string
	Interests       []string
	ProfilePhotos   []string
	ModeDefault     string
	IsEmailVerified bool
	IsPhoneVerified bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}

// Validate validates the user
func (u *User) Validate() error {
	var errs ValidationErrors
	if u.Name == "" {
		errs = append(errs, NewMissingFieldError("name"))
	}
	if u.Email == "" {
		errs = append(errs, NewMissingFieldError("email"))
	}
	if u.Phone == "" {
		errs = append(errs, NewMissingFieldError("phone"))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PublicUser carries the identity fields visible to other users, e.g. when
// resolving quiz sharers or event participants.
type PublicUser struct {
	ID            string
	Name          string
	ProfilePhotos []string
}

// Public projects the user's public identity fields.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, ProfilePhotos: u.ProfilePhotos}
}
