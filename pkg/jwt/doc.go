// Package jwt signs and validates the RS256 access tokens issued by Gigbook.
//
// # Token Generation
//
//	svc, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "keys/private.pem",
//	    Issuer:         "gigbook-api",
//	    ExpirationMins: 15,
//	})
//
//	token, err := svc.Sign(jwt.Claims{
//	    RegisteredClaims: gojwt.RegisteredClaims{Subject: identityID},
//	    Email:            email,
//	})
//
// # Token Validation
//
//	claims, err := svc.Validate(token)
//	if errors.Is(err, jwt.ErrTokenExpired) {
//	    // ask the client to refresh
//	}
//	identityID := claims.IdentityID()
//
// A service built with only PublicKeyPath can validate but not sign.
package jwt
