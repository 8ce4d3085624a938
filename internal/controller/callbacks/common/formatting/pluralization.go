package formatting

// pluralize выбирает форму слова для числа: one (1, 21), few (2-4, 22-24), many (остальные)
func pluralize(count int, one, few, many string) string {
	if count < 0 {
		count = -count
	}
	if count%10 == 1 && count%100 != 11 {
		return one
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return few
	}
	return many
}

func PluralizeAppointments(count int) string {
	return pluralize(count, "приём", "приёма", "приёмов")
}

func PluralizePatients(count int) string {
	return pluralize(count, "пациент", "пациента", "пациентов")
}

func PluralizeYears(count int) string {
	return pluralize(count, "год", "года", "лет")
}

func PluralizeStories(count int) string {
	return pluralize(count, "сказка", "сказки", "сказок")
}

func PluralizeHistories(count int) string {
	return pluralize(count, "справка", "справки", "справок")
}
