package formrelay

// Submission is the full form payload, metadata included, exactly as the
// page would POST it to the relay.
type Submission struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	IsCoach bool   `json:"is_coach,omitempty"`

	Goal      string `json:"goal,omitempty"`
	Equipment string `json:"equipment,omitempty"`
	Schedule  string `json:"schedule,omitempty"`

	UTMSource   string `json:"utm_source,omitempty"`
	UTMMedium   string `json:"utm_medium,omitempty"`
	UTMCampaign string `json:"utm_campaign,omitempty"`
	Referrer    string `json:"referrer,omitempty"`
	UserAgent   string `json:"user_agent,omitempty"`

	SessionID  string `json:"session_id,omitempty"`
	RefCode    string `json:"ref_code,omitempty"`
	ReferredBy string `json:"referred_by,omitempty"`

	Source string `json:"source,omitempty"`
	Site   string `json:"site,omitempty"`
}

type relayResponse struct {
	OK     bool `json:"ok"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
	Error string `json:"error"`
}
