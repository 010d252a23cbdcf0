package intel

import "strings"

// secretMarkers are substrings that suggest an identifier names a credential.
// Quoted variants ('api"') match keys captured out of JSON/plist/XML source;
// snake_case variants match resource and constant names.
var secretMarkers = []string{
	`api"`, `key"`, "api_", "key_", `secret"`,
	`password"`, "aws", "gcp", "s3_", "_s3", "secret_",
	`token"`, `username"`, `user_name"`, `user"`,
	"bearer", "jwt", `certificate"`, "credential",
	"azure", "webhook", "twilio_", "bitcoin",
	"_auth", "firebase", "oauth", "authorization",
	"private", "pwd", "session", "token_",
}

// secretStopwords veto identifiers that are common UI/string-resource names.
// A single stopword hit overrides any number of marker hits.
var secretStopwords = []string{
	"label_", "text", "hint", "msg_", "create_",
	"message", "new", "confirm", "activity_",
	"forgot", "dashboard_", "current_", "signup",
	"sign_in", "signin", "title_", "welcome_",
	"change_", "this_", "the_", "placeholder",
	"invalid_", "btn_", "action_", "prompt_",
	"lable", "hide_", "old", "update", "error",
	"empty", "txt_", "lbl_",
}

// LooksLikeSecret reports whether a captured string key likely names a
// hardcoded secret.
func LooksLikeSecret(key string) bool {
	key = strings.ToLower(key)
	for _, stop := range secretStopwords {
		if strings.Contains(key, stop) {
			return false
		}
	}
	for _, marker := range secretMarkers {
		if strings.Contains(key, marker) {
			return true
		}
	}
	return false
}
