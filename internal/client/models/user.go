package models

// Credentials is the body of the login call.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the body of the register call. Code is the e-mailed
// verification code obtained through RequestRegisterCode.
type Registration struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Code     string `json:"code"`
}

// ProfileUpdate is a partial profile change made by the owner. Nil fields
// are left untouched by the backend.
type ProfileUpdate struct {
	Sex       *string `json:"sex,omitempty"`
	Status    *string `json:"status,omitempty"`
	StudentID *string `json:"stuID,omitempty"`
	College   *string `json:"college,omitempty"`
	Major     *string `json:"major,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"`
	Address   *string `json:"address,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// AdminProfileUpdate is a profile change made by an administrator.
type AdminProfileUpdate struct {
	ProfileUpdate
	Avatar   *string `json:"avatar,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
	Password *string `json:"password,omitempty"`
}

type PasswordChange struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type PasswordReset struct {
	NewPassword string `json:"new_password"`
	Code        string `json:"code"`
}
