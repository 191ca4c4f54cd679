package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"
)

const referenceCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789" // no 0/O/1/I

// EnvOrDefault returns the ENV value or the fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// GenerateSecureToken returns a hex token of the given byte length.
func GenerateSecureToken(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid token length")
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func randomCode(n int) (string, error) {
	var sb strings.Builder
	max := big.NewInt(int64(len(referenceCharset)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(referenceCharset[idx.Int64()])
	}
	return sb.String(), nil
}

// GenerateReferenceCode returns a guest-shareable booking reference like
// "RES-7K2MQX4B". The charset drops look-alike characters because guests
// read these back over the phone.
func GenerateReferenceCode() (string, error) {
	code, err := randomCode(8)
	if err != nil {
		return "", err
	}
	return "RES-" + code, nil
}

// GenerateInvoiceNumber returns e.g. "INV-20260901-4F7Q".
func GenerateInvoiceNumber(at time.Time) (string, error) {
	code, err := randomCode(4)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%s-%s", at.Format("20060102"), code), nil
}

// BuildQRPayload composes the string rendered as a QR code on the status
// page. The merchant id comes from QRIS_MERCHANT_ID so the payload works
// against whatever static QRIS the restaurant registered.
func BuildQRPayload(referenceCode string, amount int64) string {
	merchant := EnvOrDefault("QRIS_MERCHANT_ID", "WATEEBAROESA")
	return fmt.Sprintf("QRIS|%s|%s|%d", merchant, referenceCode, amount)
}
