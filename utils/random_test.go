package utils

import (
	"regexp"
	"testing"
)

func TestGenerateSecureRandomString(t *testing.T) {
	re := regexp.MustCompile(`^[A-Za-z0-9]{20}$`)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		s, err := GenerateSecureRandomString(20)
		if err != nil {
			t.Fatal(err)
		}
		if !re.MatchString(s) {
			t.Fatalf("beklenmeyen biçim: %q", s)
		}
		if seen[s] {
			t.Fatalf("tekrar eden değer: %q", s)
		}
		seen[s] = true
	}
	if _, err := GenerateSecureRandomString(0); err == nil {
		t.Error("sıfır uzunluk hata vermeli")
	}
}
