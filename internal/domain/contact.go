package domain

// Contact is a pass-through record with no lifecycle invariants of its own.
type Contact struct {
	ID    string
	Name  string
	Email string
	Phone string
}
