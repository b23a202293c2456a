// Package auth implements the mock sign-in flow: any non-empty credentials
// are accepted after a fixed delay and yield the static administrator profile.
package auth

import (
	"context"
	"time"

	"github.com/trezcool/masomo-dashboard/core"
)

type Role string

const RoleAdmin Role = "admin"

// ProfileName is the display name of the static profile.
const ProfileName = "School Administrator"

type Profile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Credentials are the login form fields.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Credentials) Validate() error {
	c.Email = core.CleanString(c.Email, true /* lower */)
	var flds []core.FieldError
	if c.Email == "" {
		flds = append(flds, core.FieldError{Field: "email", Error: "email is a required field"})
	}
	if core.CleanString(c.Password) == "" {
		flds = append(flds, core.FieldError{Field: "password", Error: "password is a required field"})
	}
	if len(flds) > 0 {
		return core.NewValidationError(nil, flds...)
	}
	return nil
}

type Authenticator struct {
	delay time.Duration
}

func NewAuthenticator(conf *core.Config) *Authenticator {
	return &Authenticator{delay: conf.Auth.LoginDelay}
}

// Login waits out the sign-in delay then returns the static profile for email.
func (a *Authenticator) Login(ctx context.Context, creds Credentials) (Profile, error) {
	if err := creds.Validate(); err != nil {
		return Profile{}, err
	}
	if err := core.Wait(ctx, a.delay); err != nil {
		return Profile{}, err
	}
	return StaticProfile(creds.Email), nil
}

func StaticProfile(email string) Profile {
	return Profile{Email: email, Name: ProfileName, Role: RoleAdmin}
}
