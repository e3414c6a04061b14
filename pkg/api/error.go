package api

// ErrorResponse представляет тело ошибки от сервера RoomOS.
// Сервер всегда кладет описание в поле "error".
type ErrorResponse struct {
	Error string `json:"error"` // описание ошибки для пользователя
}

// InvalidCredentialsMessage — текст, которым сервер отвечает на неверный
// логин/пароль. 401 с любым другим текстом означает истекшую сессию.
const InvalidCredentialsMessage = "Invalid credentials"
