package output

import "testing"

func TestSanitizeURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "token param redacted",
			in:   "https://x.firebaseio.com/.json?auth=supersecret",
			want: "https://x.firebaseio.com/.json?auth=%3Credacted%3E",
		},
		{
			name: "plain url untouched",
			in:   "https://example.com/path?page=2",
			want: "https://example.com/path?page=2",
		},
		{
			name: "unparsable input returned as-is",
			in:   "::not-a-url",
			want: "::not-a-url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeURL(tt.in); got != tt.want {
				t.Fatalf("SanitizeURL(%q)=%q want=%q", tt.in, got, tt.want)
			}
		})
	}
}
