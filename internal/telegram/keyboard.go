package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Vovarama1992/voice_calc/internal/calc"
)

const aboutButton = "ℹ️ About"

var surfaceLabels = map[calc.Surface]string{
	calc.SurfaceBasic:         "🎤 Basic Operations",
	calc.SurfaceExpression:    "🧮 Mathematical Expressions",
	calc.SurfaceIntegration:   "∫ Integration",
	calc.SurfaceDifferentiate: "d/dx Differentiation",
	calc.SurfaceTrigonometry:  "📐 Trigonometry",
}

func buttonFor(s calc.Surface) string {
	if label, ok := surfaceLabels[s]; ok {
		return label
	}
	return string(s)
}

// surfaceFor maps a pressed button (or a typed surface name) to its surface.
func surfaceFor(text string) (calc.Surface, bool) {
	for s, label := range surfaceLabels {
		if text == label || strings.EqualFold(text, string(s)) {
			return s, true
		}
	}
	return "", false
}

func BuildMainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	row1 := tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(buttonFor(calc.SurfaceBasic)),
		tgbotapi.NewKeyboardButton(buttonFor(calc.SurfaceExpression)),
	)

	row2 := tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(buttonFor(calc.SurfaceIntegration)),
		tgbotapi.NewKeyboardButton(buttonFor(calc.SurfaceDifferentiate)),
	)

	row3 := tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(buttonFor(calc.SurfaceTrigonometry)),
		tgbotapi.NewKeyboardButton(aboutButton),
	)

	kb := tgbotapi.NewReplyKeyboard(row1, row2, row3)
	kb.ResizeKeyboard = true
	return kb
}

// hint is sent after a surface is selected.
func hint(s calc.Surface) string {
	switch s {
	case calc.SurfaceBasic:
		return "Send a voice message, e.g. \"two plus three\"."
	case calc.SurfaceExpression:
		return "Enter a mathematical expression, e.g. 2 plus 3 x 4."
	case calc.SurfaceIntegration:
		return "Enter an expression to integrate with respect to x.\nFor a definite integral: expression; lower; upper"
	case calc.SurfaceDifferentiate:
		return "Enter an expression to differentiate with respect to x."
	case calc.SurfaceTrigonometry:
		return "Enter a trigonometric expression to simplify."
	}
	return ""
}
