package user

import "time"

// Type classifies an account. The set is closed; anything else is rejected
// before it reaches storage.
type Type string

const (
	TypeAdmin   Type = "admin"
	TypeTrainer Type = "trainer"
	TypeMember  Type = "member"
)

func (t Type) Valid() bool {
	switch t {
	case TypeAdmin, TypeTrainer, TypeMember:
		return true
	}

	return false
}

type User struct {
	ID           int64     `json:"userId"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	Type         Type      `json:"type"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ListFilter narrows a listing; nil fields mean "no constraint".
// Conditions combine with AND.
type ListFilter struct {
	Type   *Type
	Active *bool
}

type TypeCount struct {
	Type  Type  `json:"type"`
	Count int64 `json:"count"`
}

type Stats struct {
	TotalUsers  int64       `json:"totalUsers"`
	ActiveUsers int64       `json:"activeUsers"`
	UsersByType []TypeCount `json:"usersByType"`
}
