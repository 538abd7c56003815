package domain

type Customer struct {
	ID    int64
	Name  string
	Email string
	// PasswordHash is empty for seeded accounts that never registered
	// credentials; such accounts cannot log in.
	PasswordHash string
}

type CustomerPatch struct {
	Name  *string
	Email *string
}
