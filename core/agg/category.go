package agg

import "strings"

// OtherCategory is the fallback label when no rule matches.
const OtherCategory = "Other"

// CategoryRule maps a keyword set to an issue-type label. Matching is
// case-insensitive substring search.
type CategoryRule struct {
	Label    string
	Keywords []string
}

// CategoryRules is the fixed, ordered rule list. The first matching
// rule wins, so the order here is a deliberate tie-break for
// descriptions that trigger several keyword sets. Labels appear
// verbatim in charts, narratives and documents.
var CategoryRules = []CategoryRule{
	{Label: "Citrix", Keywords: []string{"citrix", "vdi"}},
	{Label: "MFA", Keywords: []string{"mfa", "otp", "authenticator", "notification"}},
	{Label: "Endpoint Compliance", Keywords: []string{
		"endpoint", "compliance", "dlp", "edr", "tanium", "pmc",
		"encryption", "bitlocker", "hostname", "sensor", "sense",
	}},
	{Label: "Access/Password", Keywords: []string{"password", "access", "unlock", "reset", "sspr", "credential"}},
	{Label: "Network/VPN", Keywords: []string{"vpn", "zscaler", "network", "anyconnect", "proxy", "isp"}},
}

// Classify infers the issue type for a free-text description by
// evaluating CategoryRules in order.
func Classify(description string) string {
	text := strings.ToLower(description)
	if text == "" {
		return OtherCategory
	}
	for _, rule := range CategoryRules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(text, keyword) {
				return rule.Label
			}
		}
	}
	return OtherCategory
}
