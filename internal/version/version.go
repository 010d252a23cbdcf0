package version

const Value = "0.4.0"

func ClientUserAgent() string {
	return "MAS/" + Value + " (mobile app scan reporting)"
}
