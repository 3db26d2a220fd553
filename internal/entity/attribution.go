package entity

import "net/url"

// ParseAttribution pulls the UTM tags and inbound referral code out of the
// landing URL. The page reads these once on load and never again, so the
// parse happens exactly once per submission here too.
func ParseAttribution(rawURL string) (Attribution, string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Attribution{}, ""
	}

	q := u.Query()
	attr := Attribution{
		UTMSource:   q.Get("utm_source"),
		UTMMedium:   q.Get("utm_medium"),
		UTMCampaign: q.Get("utm_campaign"),
	}

	return attr, q.Get("ref")
}
