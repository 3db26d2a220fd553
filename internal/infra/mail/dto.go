package mail

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string // team inbox that gets the new-lead alerts
}
