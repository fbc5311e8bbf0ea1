package compose

import (
	"fmt"
	"image/color"
	"regexp"
	"strconv"

	"kartvizit.link/pkg/layout"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ParseHexColor sadece "#RRGGBB" biçimini kabul eder. Kısaltılmış (#FFF),
// önek eksik veya isimli renkler doğrulama hatasıdır.
func ParseHexColor(s string) (color.NRGBA, error) {
	if !hexColorPattern.MatchString(s) {
		return color.NRGBA{}, fmt.Errorf("%w: renk %q #RRGGBB biçiminde olmalı", layout.ErrInvalidParameter, s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: renk %q: %v", layout.ErrInvalidParameter, s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
