package model

// Identity is the authenticated principal attached to a request after
// token verification. IsAdmin is whatever was embedded at issuance time;
// it is not re-resolved against the live user record.
type Identity struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}
