package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the only accepted authorization scheme.
const BearerScheme = "Bearer"

// AuthInvalidMessage is the single client-visible message for every token
// failure.
const AuthInvalidMessage = "Authentication invalid"
