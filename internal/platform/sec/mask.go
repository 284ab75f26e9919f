// Copyright (c) 2026 Atimus. All rights reserved.

package sec

import "strings"

// MaskEmail redacts an email address for logging: the first two characters of
// the local part survive, the rest is starred, the domain stays visible.
//
//	MaskEmail("joao.silva@example.com") == "jo***@example.com"
//
// Masking is owned by this codebase, not by the mailer — every log line that
// carries a recipient address must pass through here first.
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return "***"
	}

	local, domain := email[:at], email[at+1:]
	visible := 2
	if len(local) < visible {
		visible = len(local)
	}

	return local[:visible] + "***@" + domain
}
