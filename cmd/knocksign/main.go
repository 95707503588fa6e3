// knocksign prints a fresh trusted-knock nonce and its HMAC tag for a given
// secret, for exercising the /trustedknock endpoint:
//
//	knocksign -secret <shared-secret>
//	curl -X POST -H "Authorization: <tag>" -d "<nonce>" https://door.example/trustedknock
package main

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"time"
)

func main() {
	secret := flag.String("secret", "", "trusted knocker shared secret")
	flag.Parse()

	if *secret == "" {
		log.Fatal("Usage: knocksign -secret <shared-secret>")
	}

	suffix := make([]byte, 8)
	if _, err := rand.Read(suffix); err != nil {
		log.Fatalf("Failed to generate nonce suffix: %v", err)
	}

	nonce := fmt.Sprintf("%d_%s", time.Now().Unix(), hex.EncodeToString(suffix))

	mac := hmac.New(sha256.New, []byte(*secret))
	mac.Write([]byte(nonce))
	tag := hex.EncodeToString(mac.Sum(nil))

	fmt.Printf("nonce: %s\ntag:   %s\n", nonce, tag)
}
