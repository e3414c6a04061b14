package api

import (
	"encoding/json"
	"fmt"
)

// Assignment представляет одного участника смены.
// Сервер исторически отдает либо строку "Имя", либо объект {"n": "Имя", "t": "18:00"}.
type Assignment struct {
	Name    string `json:"n"` // имя участника
	LeaveAt string `json:"t"` // время выхода (HH:MM), может быть пустым
}

// UnmarshalJSON принимает обе исторические формы записи участника
func (a *Assignment) UnmarshalJSON(data []byte) error {
	// Новая форма: объект
	type alias Assignment
	var obj alias
	if err := json.Unmarshal(data, &obj); err == nil {
		*a = Assignment(obj)
		return nil
	}

	// Старая форма: голая строка с именем
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("assignment is neither object nor string: %w", err)
	}
	*a = Assignment{Name: name}
	return nil
}

// DaySchedule представляет личное расписание участника на день
type DaySchedule struct {
	Name    string `json:"name"`    // имя участника
	LeaveAt string `json:"leaveAt"` // время ухода на занятия (HH:MM)
	IsOff   bool   `json:"isOff"`   // выходной день
}

// RosterDay представляет один день недельного плана.
// Поля morning/night приходят как JSON-строки внутри JSON (наследие схемы БД).
type RosterDay struct {
	DayIndex   int           `json:"day_index"`   // 0 = понедельник
	Morning    string        `json:"morning"`     // JSON-массив Assignment
	Night      string        `json:"night"`       // JSON-массив Assignment
	PassengerM string        `json:"passenger_m"` // освобожденный утром
	PassengerN string        `json:"passenger_n"` // освобожденный вечером
	Schedules  []DaySchedule `json:"schedules"`   // расписания участников
}

// MorningTeam декодирует утреннюю смену
func (d *RosterDay) MorningTeam() ([]Assignment, error) {
	return decodeTeam(d.Morning)
}

// NightTeam декодирует вечернюю смену
func (d *RosterDay) NightTeam() ([]Assignment, error) {
	return decodeTeam(d.Night)
}

func decodeTeam(raw string) ([]Assignment, error) {
	if raw == "" {
		return nil, nil
	}
	var team []Assignment
	if err := json.Unmarshal([]byte(raw), &team); err != nil {
		return nil, fmt.Errorf("failed to decode shift team: %w", err)
	}
	return team, nil
}

// WeekRosterResponse представляет ответ GET /roster/week
type WeekRosterResponse struct {
	Roster []RosterDay `json:"roster"`
	Role   string      `json:"role"` // роль текущего пользователя в группе
}

// TodayRosterResponse представляет ответ GET /roster/today
type TodayRosterResponse struct {
	Day *RosterDay `json:"day"` // nil, если план на сегодня не сгенерирован
}
