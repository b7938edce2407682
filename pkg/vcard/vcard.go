// Package vcard renders a profile's public contact fields as a vCard 3.0
// document suitable for download.
package vcard

import (
	"strings"

	"tapfolio.app/backend/internal/model"
)

func Generate(profile *model.Profile) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCARD\n")
	b.WriteString("VERSION:3.0\n")

	if name := deref(profile.DisplayName); name != "" {
		parts := strings.Fields(name)
		firstName := parts[0]
		lastName := strings.Join(parts[1:], " ")

		b.WriteString("FN:" + name + "\n")
		// N format: Last;First;Middle;Prefix;Suffix
		b.WriteString("N:" + lastName + ";" + firstName + ";;;\n")
	}

	if company := deref(profile.Company); company != "" {
		b.WriteString("ORG:" + company + "\n")
	}
	if title := deref(profile.JobTitle); title != "" {
		b.WriteString("TITLE:" + title + "\n")
	}

	if email := deref(profile.Email); email != "" {
		b.WriteString("EMAIL;TYPE=INTERNET:" + email + "\n")
	}
	if phone := deref(profile.Phone); phone != "" {
		b.WriteString("TEL;TYPE=CELL:" + phone + "\n")
	}
	if website := deref(profile.Website); website != "" {
		b.WriteString("URL:" + website + "\n")
	}

	if address := deref(profile.Address); address != "" {
		b.WriteString("ADR;TYPE=WORK:;;" + address + ";;;;\n")
	}

	b.WriteString("END:VCARD")

	return b.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
