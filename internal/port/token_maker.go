package port

// TokenMaker issues and verifies signed, time-limited bearer tokens
// binding a customer id as subject.
type TokenMaker interface {
	CreateToken(customerID int64) (string, error)

	// VerifyToken returns the customer id bound to a valid token and an
	// error for anything malformed, forged or expired.
	VerifyToken(token string) (int64, error)
}
