package calendar

import "time"

// Navigator хранит якорь отображаемой недели и листает его по неделям
type Navigator struct {
	anchor time.Time
}

// NewNavigator создаёт навигатор с якорем в now
func NewNavigator(now time.Time) *Navigator {
	return &Navigator{anchor: now}
}

// Anchor возвращает текущий якорь (любая дата внутри недели)
func (n *Navigator) Anchor() time.Time {
	return n.anchor
}

// Week возвращает отображаемую неделю
func (n *Navigator) Week() Week {
	return WeekOf(n.anchor)
}

// Next сдвигает якорь на 7 дней вперёд, без ограничения
func (n *Navigator) Next() time.Time {
	n.anchor = n.anchor.AddDate(0, 0, DaysInWeek)
	return n.anchor
}

// Prev сдвигает якорь на 7 дней назад, без ограничения
func (n *Navigator) Prev() time.Time {
	n.anchor = n.anchor.AddDate(0, 0, -DaysInWeek)
	return n.anchor
}

// Reset возвращает якорь к текущей неделе
func (n *Navigator) Reset(now time.Time) {
	n.anchor = now
}
