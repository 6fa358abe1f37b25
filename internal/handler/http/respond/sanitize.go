package respond

import "regexp"

var (
	dsnPasswordPattern = regexp.MustCompile(`://([^:/@]+):([^@]+)@`)
	kvPasswordPattern  = regexp.MustCompile(`(?i)(password=)(\S+)`)
	bearerPattern      = regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9\-_.]+`)
	jwtPattern         = regexp.MustCompile(`eyJ[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+`)
)

// SanitizeError masks credentials that may appear in driver or auth errors.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = dsnPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = kvPasswordPattern.ReplaceAllString(msg, "${1}****")
	msg = bearerPattern.ReplaceAllString(msg, "${1}****")
	msg = jwtPattern.ReplaceAllString(msg, "****")
	return msg
}
