package keyboard

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-telegram/bot/models"
)

// PageSize строк списка на одной странице. Вместе со служебными рядами
// клавиатура остаётся намного ниже лимита Telegram в 100 кнопок.
const PageSize = 20

// CallbackLimit максимальная длина callback data в байтах
const CallbackLimit = 64

// pageSuffixRoom место под ":<номер страницы>"
const pageSuffixRoom = 4

// Paginate элементы страницы page, номер страницы после прижатия к
// диапазону и число страниц (не меньше одной)
func Paginate[T any](items []T, page int) ([]T, int, int) {
	pages := max(1, (len(items)+PageSize-1)/PageSize)
	page = min(max(page, 0), pages-1)

	from := page * PageSize
	to := min(from+PageSize, len(items))
	return items[from:to], page, pages
}

// PaginationButtons создаёт ряд кнопок пагинации
// prefix - префикс callback, к нему дописывается номер страницы (0-based)
func PaginationButtons(prefix string, currentPage, totalPages int) []models.InlineKeyboardButton {
	if totalPages <= 1 {
		return nil
	}

	var buttons []models.InlineKeyboardButton
	if currentPage > 0 {
		buttons = append(buttons, Button("⬅️", fmt.Sprintf("%s%d", prefix, currentPage-1)))
	}
	buttons = append(buttons, Button(fmt.Sprintf("📄 %d/%d", currentPage+1, totalPages), Noop))
	if currentPage < totalPages-1 {
		buttons = append(buttons, Button("➡️", fmt.Sprintf("%s%d", prefix, currentPage+1)))
	}
	return buttons
}

// AddPagination добавляет пагинацию к builder
func (b *Builder) AddPagination(prefix string, currentPage, totalPages int) *Builder {
	return b.Row(PaginationButtons(prefix, currentPage, totalPages)...)
}

// SplitPage отделяет номер страницы с конца: "<rest>:<page>".
// Без номера страница нулевая.
func SplitPage(arg string) (string, int) {
	i := strings.LastIndex(arg, ":")
	if i < 0 {
		return arg, 0
	}
	page, err := strconv.Atoi(arg[i+1:])
	if err != nil || page < 0 {
		return arg, 0
	}
	return arg[:i], page
}

// AppointmentsPageData префикс страниц общего списка с поиском term
func AppointmentsPageData(term string) string {
	return AppointmentsPagePrefix + clip(term, CallbackLimit-len(AppointmentsPagePrefix)-pageSuffixRoom) + ":"
}

func DayPageData(day string) string {
	return DayPrefix + day + ":"
}

func PatientAppointmentsPageData(patientID string) string {
	return PatientAppointmentsPrefix + patientID + ":"
}

// PatientsPageData префикс страниц списка пациентов: поле, направление и поиск
func PatientsPageData(field string, ascending bool, term string) string {
	head := PatientsPagePrefix + field + ":" + Direction(ascending) + ":"
	return head + clip(term, CallbackLimit-len(head)-pageSuffixRoom) + ":"
}

// Direction asc или desc
func Direction(ascending bool) string {
	if ascending {
		return "asc"
	}
	return "desc"
}

// clip обрезает строку до room байт, не разрывая руну
func clip(s string, room int) string {
	if room <= 0 {
		return ""
	}
	if len(s) <= room {
		return s
	}
	s = s[:room]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
