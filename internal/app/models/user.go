package models

import (
	"time"
)

// User is an account of the review platform
type User struct {
	ID           string       `json:"id" db:"id" example:"1"`
	Name         string       `json:"name" db:"name" example:"John Doe"`
	Email        string       `json:"email" db:"email" example:"john@example.com"`
	PasswordHash string       `json:"-" db:"password_hash"` // bcrypt hash, never serialized
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
	Role         RoleType     `json:"role" db:"role" example:"USER"`
	IsAnonymous  bool         `json:"isAnonymous" db:"is_anonymous"`
	Username     string       `json:"username,omitempty" db:"username" example:"quietfox"`
	AvatarStyle  AvatarStyle  `json:"avatarStyle,omitempty" db:"avatar_style" example:"gradient"`
	AvatarColor  AvatarColor  `json:"avatarColor,omitempty" db:"avatar_color" example:"blue"`
	Bio          string       `json:"bio,omitempty" db:"bio"`
	Location     string       `json:"location,omitempty" db:"location"`
	Website      string       `json:"website,omitempty" db:"website"`
	SocialLinks  []SocialLink `json:"socialLinks,omitempty" db:"social_links"`
	Skills       []string     `json:"skills,omitempty" db:"skills"`
	Education    []Education  `json:"education,omitempty" db:"education"`
}

// SocialLink is a link to one of the user's external profiles
type SocialLink struct {
	Platform string `json:"platform" example:"GitHub"`
	URL      string `json:"url" example:"https://github.com/johndoe"`
}

// Education is one entry of the user's education history
type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartYear   int    `json:"startYear"`
	EndYear     *int   `json:"endYear"` // nil while current
	Current     bool   `json:"current"`
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Clone returns a deep copy so callers cannot alias stored slices
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.SocialLinks = append([]SocialLink(nil), u.SocialLinks...)
	c.Skills = append([]string(nil), u.Skills...)
	if u.Education != nil {
		c.Education = make([]Education, len(u.Education))
		for i, e := range u.Education {
			c.Education[i] = e
			if e.EndYear != nil {
				year := *e.EndYear
				c.Education[i].EndYear = &year
			}
		}
	}
	return &c
}

// UserUpdate is a partial update of a user. Nil fields are left untouched.
type UserUpdate struct {
	Name        *string
	IsAnonymous *bool
	Username    *string
	AvatarStyle *AvatarStyle
	AvatarColor *AvatarColor
	Bio         *string
	Location    *string
	Website     *string
	SocialLinks *[]SocialLink
	Skills      *[]string
	Education   *[]Education
}

// Apply shallow-merges the set fields of the update onto u
func (up UserUpdate) Apply(u *User) {
	if up.Name != nil {
		u.Name = *up.Name
	}
	if up.IsAnonymous != nil {
		u.IsAnonymous = *up.IsAnonymous
	}
	if up.Username != nil {
		u.Username = *up.Username
	}
	if up.AvatarStyle != nil {
		u.AvatarStyle = *up.AvatarStyle
	}
	if up.AvatarColor != nil {
		u.AvatarColor = *up.AvatarColor
	}
	if up.Bio != nil {
		u.Bio = *up.Bio
	}
	if up.Location != nil {
		u.Location = *up.Location
	}
	if up.Website != nil {
		u.Website = *up.Website
	}
	if up.SocialLinks != nil {
		u.SocialLinks = append([]SocialLink(nil), (*up.SocialLinks)...)
	}
	if up.Skills != nil {
		u.Skills = append([]string(nil), (*up.Skills)...)
	}
	if up.Education != nil {
		u.Education = append([]Education(nil), (*up.Education)...)
	}
}
