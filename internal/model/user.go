package model

import "time"

// User is the authoritative account record persisted in the users collection.
type User struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	Username         string     `json:"username"`
	PasswordHash     string     `json:"password"`
	Balance          int        `json:"balance"`
	Inventory        []Item     `json:"inventory"`
	CasesOpened      int        `json:"casesOpened"`
	Avatar           string     `json:"avatar,omitempty"`
	RegistrationDate time.Time  `json:"registrationDate"`
	IsAdmin          bool       `json:"isAdmin"`
	Achievements     []string   `json:"achievements,omitempty"`
	LastBonusDate    *time.Time `json:"lastBonusDate,omitempty"`
}

// Item is a granted inventory entry. ID is unique per grant and distinct
// from the catalog template id, so repeated draws of the same template
// remain distinguishable.
type Item struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Value int    `json:"value"`
}

// HasAchievement reports whether the achievement id is already unlocked.
func (u *User) HasAchievement(id string) bool {
	for _, a := range u.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// PublicUser is the sanitized projection returned over HTTP.
// It never carries the credential hash.
type PublicUser struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Balance     int    `json:"balance"`
	Inventory   []Item `json:"inventory"`
	CasesOpened int    `json:"casesOpened"`
	Avatar      string `json:"avatar,omitempty"`
	IsAdmin     bool   `json:"isAdmin"`
}

// Public returns the sanitized projection of the user.
func (u *User) Public() PublicUser {
	inv := u.Inventory
	if inv == nil {
		inv = []Item{}
	}
	return PublicUser{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Balance:     u.Balance,
		Inventory:   inv,
		CasesOpened: u.CasesOpened,
		Avatar:      u.Avatar,
		IsAdmin:     u.IsAdmin,
	}
}
