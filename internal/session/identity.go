package session

import "github.com/google/uuid"

// Identity is the authenticated user's profile held client-side after sign-in.
// The JSON keys match the payload the mobile app decodes from the access token.
type Identity struct {
	UserID          uuid.UUID `json:"userId"`
	FullName        string    `json:"fullName"`
	Email           string    `json:"email"`
	ImageURL        string    `json:"imageUrl"`
	PhoneNumber     string    `json:"phoneNumber"`
	DeliveryAddress string    `json:"deliveryAddress"`
}

// CartKey returns the cart keyspace entry for this identity.
func (i Identity) CartKey() string {
	return i.UserID.String()
}
