package model

// Lead holds the captured prospect. Empty strings mean "unset".
type Lead struct {
	BusinessName string `json:"businessName"`
	Industry     string `json:"industry"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Website      string `json:"website"`
	Address      string `json:"address"`
	Notes        string `json:"notes"`
}

// IsZero reports whether no lead field is set.
func (l Lead) IsZero() bool {
	return l == Lead{}
}

// Find holds the last place search query.
type Find struct {
	Query string `json:"query"`
}
