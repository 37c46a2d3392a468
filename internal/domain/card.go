package domain

import "time"

// Card is a shared photo card owned by exactly one user.
// Likes holds the ids of users who liked the card, without duplicates.
type Card struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Link      string    `json:"link"`
	OwnerID   string    `json:"owner"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewCard creates a Card owned by ownerID with no likes.
// Returns an error if validation fails.
func NewCard(ownerID, name, link string) (*Card, error) {
	card := &Card{
		ID:        NewID(),
		Name:      name,
		Link:      link,
		OwnerID:   ownerID,
		Likes:     []string{},
		CreatedAt: time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if !IsValidID(c.ID) {
		return NewValidationError("_id", "must be a 24-character hex string", ErrInvalidID)
	}
	if !IsValidID(c.OwnerID) {
		return NewValidationError("owner", "must be a 24-character hex string", ErrInvalidID)
	}
	if err := checkLength("name", c.Name); err != nil {
		return err
	}
	if !isValidURL(c.Link) {
		return NewValidationError("link", "must be a valid http(s) URL", ErrValidation)
	}
	return nil
}

// IsOwnedBy reports whether userID owns the card.
func (c *Card) IsOwnedBy(userID string) bool {
	return c.OwnerID == userID
}
