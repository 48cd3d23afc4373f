// Package common contains shared constants and sentinel errors used across
// seedstock components.
package common

// AccessTokenHeaderName is the request header carrying the raw access token.
// The value is the token itself, without a "Bearer " prefix.
const AccessTokenHeaderName = "Auth"
