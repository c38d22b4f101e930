package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID          uuid.UUID
	FullName        string
	Email           string
	ImageURL        string
	PhoneNumber     string
	DeliveryAddress string
	JTI             string
}

// AccessTokenClaims is the typed JWT issued to the mobile client. The client
// decodes the identity straight out of these claims, so the JSON keys are part
// of the wire contract.
type AccessTokenClaims struct {
	UserID          uuid.UUID `json:"userId"`
	FullName        string    `json:"fullName"`
	Email           string    `json:"email"`
	ImageURL        string    `json:"imageUrl"`
	PhoneNumber     string    `json:"phoneNumber"`
	DeliveryAddress string    `json:"deliveryAddress"`
	jwt.RegisteredClaims
}
