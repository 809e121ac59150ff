// Generates the RS256 keypair the API signs access tokens with.
// Writes jwt_private.pem and jwt_public.pem into the given directory
// (default "."), matching JWT_PRIVATE_KEY_PATH / JWT_PUBLIC_KEY_PATH.
package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	outDir := "."
	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		panic(err)
	}

	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	publicBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		panic(err)
	}
	publicPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: publicBytes,
	})

	privatePath := filepath.Join(outDir, "jwt_private.pem")
	publicPath := filepath.Join(outDir, "jwt_public.pem")

	if err := os.WriteFile(privatePath, privatePEM, 0600); err != nil {
		panic(err)
	}
	if err := os.WriteFile(publicPath, publicPEM, 0644); err != nil {
		panic(err)
	}

	fmt.Println("Wrote", privatePath)
	fmt.Println("Wrote", publicPath)
}
