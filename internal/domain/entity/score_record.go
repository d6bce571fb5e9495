package entity

import "time"

// ScoreRecord представляет агрегированный счёт пользователя в лидерборде.
// На пользователя существует не более одной записи: первая отправка ответа
// создаёт её, последующие меняют TotalScore на дельту вопроса.
// Запись мутируется исключительно потоком квиза внутри одной транзакции
// с обработкой ответа.
type ScoreRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	Name       string    `gorm:"size:100;not null" json:"name"` // Снимок отображаемого имени на момент первого ответа
	Department string    `gorm:"size:50;not null;default:''" json:"department"`
	TotalScore int       `gorm:"not null;default:0" json:"total_score"`
	AnsweredAt time.Time `gorm:"not null" json:"answered_at"` // Время последней отправки ответа
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (ScoreRecord) TableName() string {
	return "score_records"
}

// LeaderboardEntry представляет строку лидерборда
type LeaderboardEntry struct {
	Name       string `json:"name"`
	Department string `json:"department"`
	TotalScore int    `json:"total_score"`
}
