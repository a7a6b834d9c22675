package entity

// Identity is the authenticated caller as reported by the auth backend.
// An empty ID is the legacy anonymous identity.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (i Identity) Anonymous() bool {
	return i.ID == ""
}
