package quizzes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StudyVillage/src/core/helpers"
	"StudyVillage/src/core/models"
	"StudyVillage/src/core/quizengine"
)

func validQuestions() []models.Question {
	return []models.Question{
		{
			Text: "What is 2 + 2?",
			Options: []models.Option{
				{Text: "3"},
				{Text: "4", IsCorrect: true},
			},
		},
	}
}

func TestQuizInputValidation(t *testing.T) {
	input := quizInput{
		Title:     "Fractions basics",
		Grade:     "grade-5",
		Subject:   "Mathematics",
		Questions: validQuestions(),
	}
	require.NoError(t, helpers.Validate(input))
	assert.Equal(t, -1, quizengine.ValidateQuestions(input.Questions))
}

func TestQuizInputRejectsMissingFields(t *testing.T) {
	input := quizInput{Title: "x"}
	assert.Error(t, helpers.Validate(input))
}

func TestQuizInputRejectsBadQuestions(t *testing.T) {
	questions := validQuestions()
	questions[0].Options[1].IsCorrect = false

	assert.Equal(t, 0, quizengine.ValidateQuestions(questions))

	questions[0].Options[0].IsCorrect = true
	questions[0].Options[1].IsCorrect = true
	assert.Equal(t, 0, quizengine.ValidateQuestions(questions))
}
