package api

// Task представляет микро-задачу, разыгранную лотереей на сегодня
type Task struct {
	TaskName       string `json:"task_name"`        // название задачи (Brooming, Water, ...)
	AssignedToName string `json:"assigned_to_name"` // кому выпала задача
}

// TasksResponse представляет ответ GET /tasks/today
type TasksResponse struct {
	Tasks []Task `json:"tasks"`
}

// AssignTasksResponse представляет ответ POST /tasks/assign
type AssignTasksResponse struct {
	Tasks []Task `json:"tasks"`
}
