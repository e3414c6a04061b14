package api

// Member представляет участника группы (crew)
type Member struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MembersResponse представляет ответ GET /group/members
type MembersResponse struct {
	Members []Member `json:"members"`
}
