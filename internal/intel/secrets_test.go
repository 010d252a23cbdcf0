package intel

import "testing"

func TestLooksLikeSecret(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"api_key", true},
		{"API_KEY", true},
		{`"aws_secret"`, true},
		{"firebase_url", true},
		{"oauth_client", true},
		{"session_id", true},
		{"private_rsa", true},
		{"db_pwd", true},

		// Stopword veto beats any number of markers.
		{"label_api_key", false},
		{"hint_password", false},
		{"btn_login_token_", false},
		{"error_invalid_api_key", false},

		// No marker at all.
		{"welcome_message", false},
		{"app_name", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := LooksLikeSecret(tt.key); got != tt.want {
				t.Fatalf("LooksLikeSecret(%q)=%v want=%v", tt.key, got, tt.want)
			}
		})
	}
}
