package render

import (
	"bytes"
	"fmt"
	"image/color"
	"sort"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/calendar"
	"github.com/Freeeeeet/psy_practice_bot/internal/model"
	"github.com/fogleman/gg"
)

// Размеры и отступы
const (
	imageWidth       = 1400
	imageHeight      = 900
	headerHeight     = 100
	leftLabelsWidth  = 80
	legendWidth      = 140
	dayPaddingX      = 6
	minSlotHeight    = 8.0
	slotBorderRadius = 6.0
	shadowOffset     = 3.0
	maxLegendItems   = 12
	scheduledAlpha   = 215
	completedAlpha   = 120
)

// Размеры шрифтов
const (
	titleFontSize      = 25.0
	dayFontSize        = 27.0
	hourLabelFontSize  = 18.0
	slotTimeFontSize   = 16.0
	legendItemFontSize = 13.0
)

var (
	bgColor          = color.RGBA{245, 246, 248, 255}
	textColor        = color.RGBA{80, 85, 90, 220}
	hourLabelColor   = color.RGBA{110, 115, 120, 200}
	hourLineColor    = color.NRGBA{150, 150, 150, 255}
	todayBgColor     = color.NRGBA{191, 219, 254, 160}
	evenDayColor     = color.NRGBA{240, 240, 240, 255}
	oddDayColor      = color.NRGBA{228, 228, 228, 255}
	currentTimeColor = color.NRGBA{255, 80, 80, 200}
	slotShadowColor  = color.RGBA{0, 0, 0, 20}
	legendTextColor  = color.RGBA{70, 74, 78, 220}
)

// WeekImage рисует недельную сетку в PNG.
// now нужен для подсветки сегодняшнего дня и линии текущего времени.
func WeekImage(grid calendar.Grid, now time.Time) ([]byte, error) {
	loc := grid.Week.Start.Location()
	now = now.In(loc)
	today := grid.TodayIndex(now)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()

	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / calendar.DaysInWeek
	dayHeight := imageHeight - headerHeight
	pxPerMinute := float64(dayHeight) / float64(calendar.BandMinutes)

	drawHeader(dc, grid.Week)
	drawHourLabels(dc, pxPerMinute)

	for i, day := range grid.Week.Days {
		x := float64(leftLabelsWidth + i*dayWidth)
		y := float64(headerHeight)

		drawDayBackground(dc, x, y, dayWidth, dayHeight, i, i == today)
		drawDayHeader(dc, day, x, y, dayWidth)
		drawHourLines(dc, x, y, dayWidth, pxPerMinute)
		for _, p := range grid.Day(i) {
			drawPlacement(dc, p, loc, x, y, dayWidth, pxPerMinute)
		}
	}

	if today >= 0 {
		drawCurrentTimeLine(dc, now, pxPerMinute, dayWidth)
	}
	drawLegend(dc, grid, dayWidth)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode week image: %w", err)
	}
	return buf.Bytes(), nil
}

func drawHeader(dc *gg.Context, week calendar.Week) {
	startMonth := week.Start.Month()
	endMonth := week.Days[calendar.DaysInWeek-1].Month()

	title := MonthName(startMonth)
	if startMonth != endMonth {
		title += " - " + MonthName(endMonth)
	}
	title += fmt.Sprintf(" %d", week.Start.Year())

	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(textColor)
	w, h := dc.MeasureString(title)
	dc.DrawStringAnchored(title, w/2+10, float64(headerHeight)/8+h/2, 0, 0)
}

func drawHourLabels(dc *gg.Context, pxPerMinute float64) {
	loadFont(dc, hourLabelFontSize, FontStyleMedium)
	dc.SetColor(hourLabelColor)

	for h := calendar.BandStartHour; h <= calendar.BandEndHour; h++ {
		y := float64(headerHeight) + float64((h-calendar.BandStartHour)*60)*pxPerMinute
		dc.DrawStringAnchored(fmt.Sprintf("%02d:00", h), float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int, isToday bool) {
	switch {
	case isToday:
		dc.SetColor(todayBgColor)
	case dayIndex%2 == 0:
		dc.SetColor(evenDayColor)
	default:
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

func drawDayHeader(dc *gg.Context, date time.Time, x, y float64, dayWidth int) {
	loadFont(dc, dayFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(date.Format("02.01"), x+float64(dayWidth)/2, y, 0.5, -1)
	dc.DrawStringAnchored(WeekdayShort(date.Weekday()), x+float64(dayWidth)/2, y, 0.5, -0.2)
}

func drawHourLines(dc *gg.Context, x, y float64, dayWidth int, pxPerMinute float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)

	for m := 0; m <= calendar.BandMinutes; m += 60 {
		hy := y + float64(m)*pxPerMinute
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

// drawPlacement рисует приём, обрезая его по рабочей полосе
func drawPlacement(dc *gg.Context, p calendar.Placement, loc *time.Location, x, y float64, dayWidth int, pxPerMinute float64) {
	if !p.Visible() {
		return
	}

	top := p.TopOffsetMinutes
	bottom := p.TopOffsetMinutes + p.HeightMinutes
	if top < 0 {
		top = 0
	}
	if bottom > calendar.BandMinutes {
		bottom = calendar.BandMinutes
	}

	slotY := y + float64(top)*pxPerMinute
	slotHeight := float64(bottom-top) * pxPerMinute
	if slotHeight < minSlotHeight {
		slotHeight = minSlotHeight
	}
	slotWidth := float64(dayWidth) - float64(dayPaddingX*2)
	slotX := x + float64(dayPaddingX)

	code := calendar.DisplayCode(p.Appointment.PatientCode)
	swatch := calendar.ColorFor(code)
	fill := slotFill(swatch, p.Appointment.Status)

	dc.SetColor(slotShadowColor)
	dc.DrawRoundedRectangle(slotX+shadowOffset, slotY+1+shadowOffset, slotWidth, slotHeight-2, slotBorderRadius)
	dc.Fill()

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(slotX, slotY+1, slotWidth, slotHeight-2, slotBorderRadius)
	dc.Fill()

	dc.SetColor(swatch.Border)
	dc.SetLineWidth(1.5)
	dc.DrawRoundedRectangle(slotX, slotY+1, slotWidth, slotHeight-2, slotBorderRadius)
	dc.Stroke()

	if slotHeight < 18 {
		return
	}

	loadFont(dc, slotTimeFontSize, FontStyleMedium)
	dc.SetColor(swatch.Text)
	txtX := slotX + 6
	txtY := slotY + 17
	dc.DrawStringAnchored(p.Appointment.Date.In(loc).Format("15:04")+" #"+code, txtX, txtY, 0, 0)

	if slotHeight > 36 {
		loadFont(dc, slotTimeFontSize-3, FontStyleDefault)
		dc.DrawStringAnchored(fmt.Sprintf("%d мин", p.Appointment.Duration), txtX, txtY+17, 0, 0)
	}
}

// slotFill полупрозрачная заливка приёма: пересекающиеся приёмы видны
// друг под другом, закрытые бледнее запланированных
func slotFill(swatch calendar.Swatch, status model.AppointmentStatus) color.NRGBA {
	alpha := uint8(scheduledAlpha)
	if status == model.AppointmentStatusCompleted {
		alpha = completedAlpha
	}
	bg := swatch.Background
	return color.NRGBA{R: bg.R, G: bg.G, B: bg.B, A: alpha}
}

func drawCurrentTimeLine(dc *gg.Context, now time.Time, pxPerMinute float64, dayWidth int) {
	offset := calendar.TopOffset(now)
	if offset < 0 || offset > calendar.BandMinutes {
		return
	}

	lineY := float64(headerHeight) + float64(offset)*pxPerMinute
	dc.SetColor(currentTimeColor)
	dc.SetLineWidth(2.0)
	dc.DrawLine(float64(leftLabelsWidth), lineY, float64(leftLabelsWidth+calendar.DaysInWeek*dayWidth), lineY)
	dc.Stroke()
}

// drawLegend коды пациентов недели с их цветами
func drawLegend(dc *gg.Context, grid calendar.Grid, dayWidth int) {
	codes := LegendCodes(grid)
	if len(codes) > maxLegendItems {
		codes = codes[:maxLegendItems]
	}

	legendX := float64(leftLabelsWidth + calendar.DaysInWeek*dayWidth + 12)
	itemY := float64(headerHeight) + 10
	boxW, boxH := 20.0, 14.0

	loadFont(dc, legendItemFontSize, FontStyleDefault)
	for _, code := range codes {
		swatch := calendar.ColorFor(code)
		dc.SetColor(swatch.Background)
		dc.DrawRoundedRectangle(legendX, itemY, boxW, boxH, 3)
		dc.Fill()
		dc.SetColor(swatch.Border)
		dc.SetLineWidth(1)
		dc.DrawRoundedRectangle(legendX, itemY, boxW, boxH, 3)
		dc.Stroke()

		dc.SetColor(legendTextColor)
		dc.DrawStringAnchored("#"+code, legendX+boxW+8, itemY+boxH/2+1, 0, 0.2)
		itemY += boxH + 14
	}
}

// LegendCodes отсортированные уникальные коды пациентов недели
func LegendCodes(grid calendar.Grid) []string {
	seen := make(map[string]bool)
	codes := make([]string, 0)
	for _, p := range grid.Placements {
		code := calendar.DisplayCode(p.Appointment.PatientCode)
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}

// WeekdayShort короткое название дня недели
func WeekdayShort(weekday time.Weekday) string {
	return [...]string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}[weekday]
}

// MonthName название месяца на русском
func MonthName(month time.Month) string {
	return [...]string{
		"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
		"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
	}[month-1]
}
