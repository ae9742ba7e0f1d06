// Command totpsetup generates a fresh admin TOTP seed and prints the
// provisioning URI for authenticator apps. Put the printed secret in
// ADMIN_TOTP_SECRET.
package main

import (
	"fmt"
	"log"

	"github.com/pquerna/otp/totp"
)

func main() {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "prompt doc",
		AccountName: "Admin",
	})
	if err != nil {
		log.Fatalf("failed to generate TOTP key: %v", err)
	}

	fmt.Printf("Admin secret: %s\n", key.Secret())
	fmt.Printf("Provisioning URI: %s\n", key.URL())
}
