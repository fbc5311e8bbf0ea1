package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const randomAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateSecureRandomString crypto/rand ile harf ve rakamlardan oluşan n karakterlik dize üretir.
func GenerateSecureRandomString(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("geçersiz uzunluk: %d", n)
	}
	max := big.NewInt(int64(len(randomAlphabet)))
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("rastgele sayı üretilemedi: %w", err)
		}
		buf[i] = randomAlphabet[idx.Int64()]
	}
	return string(buf), nil
}
