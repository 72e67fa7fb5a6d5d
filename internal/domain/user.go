package domain

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser       = "user"
	RoleManagement = "management"
	RoleAdmin      = "admin"

	ProviderLocal  = "local"
	ProviderGoogle = "google"
	ProviderSocial = "social"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"       json:"id"`
	Name         string             `bson:"name"                json:"name"`
	Email        string             `bson:"email"               json:"email"`
	PasswordHash string             `bson:"password_hash"       json:"-"`
	Avatar       *Asset             `bson:"avatar,omitempty"    json:"avatar,omitempty"`
	Role         string             `bson:"role"                json:"role"`
	Verified     bool               `bson:"verified"            json:"verified"`
	Provider     string             `bson:"provider"            json:"provider"`              // "local" | "google" | "social"
	ExternalID   string             `bson:"external_id"         json:"external_id,omitempty"` // Google sub
	Courses      []CourseRef        `bson:"courses,omitempty"   json:"courses"`
	CreatedAt    time.Time          `bson:"created_at"          json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"          json:"updated_at"`
}

type CourseRef struct {
	CourseID string `bson:"course_id" json:"course_id"`
}

// MarshalJSON renders a missing course list as [].
func (u User) MarshalJSON() ([]byte, error) {
	type plain User
	p := plain(u)
	if p.Courses == nil {
		p.Courses = []CourseRef{}
	}
	return json.Marshal(p)
}

func (u *User) HasRole(roles ...string) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// UserDraft is a registration that has not been activated yet; it travels inside the activation token.
type UserDraft struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
