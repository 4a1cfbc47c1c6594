package model

import "time"

// Slot кандидат на запись: интервал длительности услуги внутри рабочего окна салона
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Day день для записи: подпись для кнопки и машиночитаемый ключ
type Day struct {
	Label string `json:"label"` // "Пн 02.01"
	Key   string `json:"key"`   // "2006-01-02"
}
