package questiongen

import (
	"github.com/abhisek/quizbit/internal/llm"
	"github.com/abhisek/quizbit/internal/quiz"
)

// QuestionSetSchema is the response contract for question generation: an
// array of question objects whose fields appear in a fixed order.
var QuestionSetSchema = &llm.Schema{
	Name:        "quiz-question-set",
	Description: "A list of multiple-choice quiz questions with answers and explanations",
	Definition: map[string]any{
		"type":     "array",
		"minItems": 1,
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{
					"type":        "string",
					"description": "The question shown to the player",
				},
				"options": map[string]any{
					"type":        "array",
					"minItems":    quiz.OptionCount,
					"maxItems":    quiz.OptionCount,
					"items":       map[string]any{"type": "string"},
					"description": "Exactly 4 distinct answer options",
				},
				"correctAnswer": map[string]any{
					"type":        "string",
					"description": "The text of the correct option, copied exactly",
				},
				"description": map[string]any{
					"type":        "string",
					"description": "A concise justification of the correct answer",
				},
			},
			"required":             []any{"question", "options", "correctAnswer", "description"},
			"propertyOrdering":     []any{"question", "options", "correctAnswer", "description"},
			"additionalProperties": false,
		},
	},
}
