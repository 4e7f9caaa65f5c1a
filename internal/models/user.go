package models

import (
	"encoding/json"
	"strings"
	"time"
)

// User is a platform customer as the admin API returns it.
type User struct {
	ID            string         `json:"_id"`
	FirstName     string         `json:"firstName"`
	LastName      string         `json:"lastName"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone,omitempty"`
	Address       string         `json:"address,omitempty"`
	ProfileImage  string         `json:"profileImage,omitempty"`
	Appointments  []Appointment  `json:"appointments,omitempty"`
	Orders        []Order        `json:"orders,omitempty"`
	Prescriptions []Prescription `json:"prescriptions,omitempty"`
	Favorites     []Product      `json:"favorites,omitempty"`
	EyeTests      []EyeTest      `json:"eyeTests,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type Appointment struct {
	ID          string    `json:"_id"`
	ServiceType string    `json:"serviceType,omitempty"`
	Date        time.Time `json:"date"`
	Slot        string    `json:"slot,omitempty"`
	Status      string    `json:"status,omitempty"`
}

type EyeTest struct {
	ID        string    `json:"_id"`
	Result    string    `json:"result,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserRef is a user reference that the API sends either as a bare id or as a
// populated document.
type UserRef struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
}

func (r *UserRef) UnmarshalJSON(data []byte) error {
	type plain UserRef
	var p plain
	id, err := decodeRef(data, &p)
	if err != nil {
		return err
	}
	if id != "" {
		*r = UserRef{ID: id}
		return nil
	}
	*r = UserRef(p)
	return nil
}

// decodeRef decodes a reference that is either a JSON string (returned as id)
// or an object (decoded into populated). null leaves populated untouched.
func decodeRef(data []byte, populated any) (string, error) {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case trimmed == "null":
		return "", nil
	case strings.HasPrefix(trimmed, "\""):
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return "", err
		}
		return id, nil
	default:
		return "", json.Unmarshal(data, populated)
	}
}

func (r UserRef) Display() string {
	name := strings.TrimSpace(r.FirstName + " " + r.LastName)
	if name != "" {
		return name
	}
	if r.Email != "" {
		return r.Email
	}
	return r.ID
}
