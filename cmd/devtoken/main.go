// Command devtoken creates the RSA key pair the server signs with and mints
// access tokens for local testing.
//
//	devtoken -generate
//	devtoken -identity 6f1c... -type professional
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/forgo/gigbook/pkg/jwt"
)

func main() {
	privateKeyPath := flag.String("key", "./keys/private.pem", "Path to JWT private key")
	publicKeyPath := flag.String("pub", "./keys/public.pem", "Path to JWT public key (with -generate)")
	generate := flag.Bool("generate", false, "Generate a new key pair and exit")
	identityID := flag.String("identity", "", "Identity id the token is issued to")
	email := flag.String("email", "dev@gigbook.local", "Email claim")
	userType := flag.String("type", "client", "User type claim: client or professional")
	issuer := flag.String("issuer", "api.gigbook.app", "JWT issuer")
	expMins := flag.Int("exp", 60, "Token expiration in minutes")
	outputJSON := flag.Bool("json", false, "Output as JSON")

	flag.Parse()

	if *generate {
		if err := jwt.GenerateKeyPair(*privateKeyPath, *publicKeyPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating keys: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s and %s\n", *privateKeyPath, *publicKeyPath)
		return
	}

	if *identityID == "" {
		fmt.Fprintln(os.Stderr, "-identity is required")
		flag.Usage()
		os.Exit(2)
	}

	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: *privateKeyPath,
		Issuer:         *issuer,
		ExpirationMins: *expMins,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating JWT service: %v\n", err)
		fmt.Fprintf(os.Stderr, "\nGenerate keys first with: devtoken -generate\n")
		os.Exit(1)
	}

	token, err := jwtService.Sign(jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: *identityID},
		Email:            *email,
		UserType:         *userType,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	if *outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(map[string]any{
			"access_token": token,
			"token_type":   "Bearer",
			"expires_in":   *expMins * 60,
			"identity_id":  *identityID,
			"user_type":    *userType,
		})
		return
	}

	fmt.Printf("Identity: %s (%s)\n", *identityID, *userType)
	fmt.Printf("Expires:  %s\n", time.Now().Add(time.Duration(*expMins)*time.Minute).Format(time.RFC3339))
	fmt.Println()
	fmt.Println(token)
	fmt.Println()
	fmt.Printf("  curl -H 'Authorization: Bearer %s...' http://localhost:8080/v1/auth/me\n", token[:min(len(token), 40)])
}
