package calendar

import (
	"image/color"
	"unicode/utf16"
)

// FallbackCode подставляется вызывающей стороной вместо пустого кода пациента
const FallbackCode = "000000"

// Swatch тройка цветов для отображения приёма
type Swatch struct {
	Name       string
	Background color.RGBA
	Border     color.RGBA
	Text       color.RGBA
}

// Palette фиксированная палитра, порядок важен для стабильности цветов
var Palette = [8]Swatch{
	{"blue", color.RGBA{219, 234, 254, 255}, color.RGBA{147, 197, 253, 255}, color.RGBA{30, 64, 175, 255}},
	{"green", color.RGBA{220, 252, 231, 255}, color.RGBA{134, 239, 172, 255}, color.RGBA{22, 101, 52, 255}},
	{"purple", color.RGBA{243, 232, 255, 255}, color.RGBA{216, 180, 254, 255}, color.RGBA{107, 33, 168, 255}},
	{"yellow", color.RGBA{254, 249, 195, 255}, color.RGBA{253, 224, 71, 255}, color.RGBA{133, 77, 14, 255}},
	{"pink", color.RGBA{252, 231, 243, 255}, color.RGBA{249, 168, 212, 255}, color.RGBA{157, 23, 77, 255}},
	{"indigo", color.RGBA{224, 231, 255, 255}, color.RGBA{165, 180, 252, 255}, color.RGBA{55, 48, 163, 255}},
	{"red", color.RGBA{254, 226, 226, 255}, color.RGBA{252, 165, 165, 255}, color.RGBA{153, 27, 27, 255}},
	{"orange", color.RGBA{255, 237, 213, 255}, color.RGBA{253, 186, 116, 255}, color.RGBA{154, 52, 18, 255}},
}

// CodeHash скользящий хеш acc = c + ((acc << 5) - acc) по UTF-16 единицам кода.
// Сдвиг выполняется в 32 битах со знаком, сам аккумулятор не обрезается.
func CodeHash(code string) int64 {
	var acc int64
	for _, c := range utf16.Encode([]rune(code)) {
		shifted := int64(int32(acc) << 5)
		acc = int64(c) + (shifted - acc)
	}
	return acc
}

// ColorIndex индекс цвета в палитре для кода пациента
func ColorIndex(code string) int {
	hash := CodeHash(code)
	if hash < 0 {
		hash = -hash
	}
	return int(hash % int64(len(Palette)))
}

// ColorFor возвращает цвета для кода пациента
func ColorFor(code string) Swatch {
	return Palette[ColorIndex(code)]
}

// DisplayCode возвращает код для отображения с подстановкой по умолчанию
func DisplayCode(code string) string {
	if code == "" {
		return FallbackCode
	}
	return code
}
