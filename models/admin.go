package models

import "encoding/json"

// AdminLogin is the body of POST /admin/login. Raw keeps the full response
// so it can be handed to the dashboard untouched.
type AdminLogin struct {
	Token string          `json:"token"`
	Admin json.RawMessage `json:"admin,omitempty"`
	Raw   json.RawMessage `json:"-"`
}
