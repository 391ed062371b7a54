package domain

// Claims carries the verified fields extracted from an identity token.
// Subject is externally asserted and never generated by this service.
type Claims struct {
	Subject string
	Email   string
}
