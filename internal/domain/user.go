package domain

// Profile values applied when a user signs up without them.
const (
	DefaultUserName   = "Жак-Ив Кусто"
	DefaultUserAbout  = "Исследователь"
	DefaultUserAvatar = "https://pictures.s3.yandex.net/resources/jacques-cousteau_1604399756.png"
)

// User represents a registered user of the application.
// The password is only ever held as a one-way hash.
type User struct {
	ID             string `json:"_id"`
	Name           string `json:"name"`
	About          string `json:"about"`
	Avatar         string `json:"avatar"`
	Email          string `json:"email"`
	HashedPassword string `json:"-"` // Never expose password hash in JSON
}

// NewUser creates a User with a fresh identifier. Empty profile fields are
// replaced with their defaults and the email is normalized.
// Returns an error if validation fails.
//
// The caller is responsible for hashing the password before calling NewUser.
func NewUser(email, hashedPassword, name, about, avatar string) (*User, error) {
	if name == "" {
		name = DefaultUserName
	}
	if about == "" {
		about = DefaultUserAbout
	}
	if avatar == "" {
		avatar = DefaultUserAvatar
	}

	user := &User{
		ID:             NewID(),
		Name:           name,
		About:          about,
		Avatar:         avatar,
		Email:          NormalizeEmail(email),
		HashedPassword: hashedPassword,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if !IsValidID(u.ID) {
		return NewValidationError("_id", "must be a 24-character hex string", ErrInvalidID)
	}
	if !isValidEmail(u.Email) {
		return NewValidationError("email", "must be a valid email address", ErrValidation)
	}
	if u.HashedPassword == "" {
		return NewValidationError("password", "hash cannot be empty", ErrValidation)
	}
	if err := ValidateProfile(u.Name, u.About); err != nil {
		return err
	}
	return ValidateAvatar(u.Avatar)
}

// ValidateProfile checks a name/about pair as accepted by profile updates.
func ValidateProfile(name, about string) error {
	if err := checkLength("name", name); err != nil {
		return err
	}
	return checkLength("about", about)
}

// ValidateAvatar checks that avatar is an absolute http(s) URL.
func ValidateAvatar(avatar string) error {
	if !isValidURL(avatar) {
		return NewValidationError("avatar", "must be a valid http(s) URL", ErrValidation)
	}
	return nil
}
