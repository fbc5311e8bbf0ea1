package encode

import (
	"bytes"
	"strings"
)

// VCardValue tipli bir iletişim değeri (TYPE=work,pref gibi).
type VCardValue struct {
	Type    string
	Value   string
	Primary bool
}

// VCard 3.0 kartının alanları.
type VCard struct {
	Prefix     string
	FirstName  string
	LastName   string
	Suffix     string
	FullName   string
	Org        string
	Department string
	Title      string
	Emails     []VCardValue
	Phones     []VCardValue
	URLs       []VCardValue
	Address    string
	Note       string
	Source     string // public kart adresi
}

var vcardEscaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\r\n", `\n`, "\n", `\n`)

func vcardEscape(s string) string {
	return vcardEscaper.Replace(strings.TrimSpace(s))
}

// writeFolded satırı 75 oktette katlar (RFC 2425 §5.8.1), UTF-8 dizilerini bölmez.
func writeFolded(buf *bytes.Buffer, line string) {
	const limit = 75
	first := true
	for len(line) > 0 {
		max := limit
		if !first {
			max = limit - 1
			buf.WriteByte(' ')
		}
		if len(line) <= max {
			buf.WriteString(line)
			break
		}
		cut := max
		for cut > 0 && (line[cut]&0xC0) == 0x80 {
			cut--
		}
		buf.WriteString(line[:cut])
		buf.WriteString("\r\n")
		line = line[cut:]
		first = false
	}
	buf.WriteString("\r\n")
}

func typeParam(v VCardValue, kind string) string {
	types := []string{}
	if kind != "" {
		types = append(types, kind)
	}
	if t := strings.ToLower(strings.TrimSpace(v.Type)); t != "" && t != "other" {
		types = append(types, t)
	}
	if v.Primary {
		types = append(types, "pref")
	}
	if len(types) == 0 {
		return ""
	}
	return ";TYPE=" + strings.Join(types, ",")
}

// EncodeVCard kartı text/vcard olarak kodlar. Birincil değerler ilk sırada yazılır.
func EncodeVCard(v VCard, filename string) *Artifact {
	var buf bytes.Buffer
	writeFolded(&buf, "BEGIN:VCARD")
	writeFolded(&buf, "VERSION:3.0")

	fn := v.FullName
	if strings.TrimSpace(fn) == "" {
		fn = strings.TrimSpace(strings.Join([]string{v.Prefix, v.FirstName, v.LastName, v.Suffix}, " "))
	}
	writeFolded(&buf, "N:"+strings.Join([]string{
		vcardEscape(v.LastName), vcardEscape(v.FirstName), "", vcardEscape(v.Prefix), vcardEscape(v.Suffix),
	}, ";"))
	writeFolded(&buf, "FN:"+vcardEscape(fn))

	if v.Org != "" {
		org := vcardEscape(v.Org)
		if v.Department != "" {
			org += ";" + vcardEscape(v.Department)
		}
		writeFolded(&buf, "ORG:"+org)
	}
	if v.Title != "" {
		writeFolded(&buf, "TITLE:"+vcardEscape(v.Title))
	}
	for _, e := range primaryFirst(v.Emails) {
		writeFolded(&buf, "EMAIL"+typeParam(e, "internet")+":"+vcardEscape(e.Value))
	}
	for _, p := range primaryFirst(v.Phones) {
		writeFolded(&buf, "TEL"+typeParam(p, "")+":"+vcardEscape(p.Value))
	}
	for _, u := range primaryFirst(v.URLs) {
		writeFolded(&buf, "URL"+typeParam(u, "")+":"+vcardEscape(u.Value))
	}
	if v.Address != "" {
		writeFolded(&buf, "ADR;TYPE=work:;;"+vcardEscape(v.Address)+";;;;")
	}
	if v.Note != "" {
		writeFolded(&buf, "NOTE:"+vcardEscape(v.Note))
	}
	if v.Source != "" {
		writeFolded(&buf, "SOURCE:"+v.Source)
	}
	writeFolded(&buf, "END:VCARD")

	return &Artifact{ContentType: FormatVCard.ContentType(), Filename: filename, Body: buf.Bytes()}
}

func primaryFirst(values []VCardValue) []VCardValue {
	out := make([]VCardValue, 0, len(values))
	for _, v := range values {
		if v.Primary && strings.TrimSpace(v.Value) != "" {
			out = append(out, v)
		}
	}
	for _, v := range values {
		if !v.Primary && strings.TrimSpace(v.Value) != "" {
			out = append(out, v)
		}
	}
	return out
}
