package identity

// User ответ провайдера на GET /auth/v1/user
type User struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	AppMetadata  Metadata `json:"app_metadata"`
	UserMetadata Metadata `json:"user_metadata"`
}

// Metadata дополнительные атрибуты пользователя; роль хранится здесь
type Metadata struct {
	Role string `json:"role"`
}

// role возвращает роль, выданную провайдером. app_metadata редактирует только сервер,
// поэтому она приоритетнее user_metadata.
func (u *User) role() string {
	if u.AppMetadata.Role != "" {
		return u.AppMetadata.Role
	}
	return u.UserMetadata.Role
}
