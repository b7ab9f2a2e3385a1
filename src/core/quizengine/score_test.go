package quizengine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"StudyVillage/src/core/models"
)

// fourQuestions has correct option indices [0, 1, 2, 3].
func fourQuestions() []models.Question {
	questions := make([]models.Question, 4)
	for i := range questions {
		options := make([]models.Option, 4)
		for j := range options {
			options[j] = models.Option{Text: "option", IsCorrect: j == i}
		}
		questions[i] = models.Question{Text: "question", Options: options}
	}
	return questions
}

func TestScoreAttempt(t *testing.T) {
	questions := fourQuestions()

	// index 9 does not match any option
	result := ScoreAttempt(questions, map[int]int{0: 0, 1: 1, 2: 9, 3: 3})
	assert.Equal(t, 3, result.CorrectCount)
	assert.Equal(t, 75, result.Score)
}

func TestScoreAttemptEmptyAnswers(t *testing.T) {
	result := ScoreAttempt(fourQuestions(), map[int]int{})
	assert.Equal(t, 0, result.CorrectCount)
	assert.Equal(t, 0, result.Score)

	result = ScoreAttempt(fourQuestions(), nil)
	assert.Equal(t, 0, result.Score)
}

func TestScoreAttemptAllCorrect(t *testing.T) {
	result := ScoreAttempt(fourQuestions(), map[int]int{0: 0, 1: 1, 2: 2, 3: 3})
	assert.Equal(t, 4, result.CorrectCount)
	assert.Equal(t, 100, result.Score)
}

func TestScoreAttemptRoundsHalfUp(t *testing.T) {
	// 1 of 8 correct = 12.5% -> 13
	questions := make([]models.Question, 8)
	for i := range questions {
		questions[i] = models.Question{
			Text:    "question",
			Options: []models.Option{{Text: "a", IsCorrect: true}, {Text: "b"}},
		}
	}
	result := ScoreAttempt(questions, map[int]int{0: 0})
	assert.Equal(t, 13, result.Score)
}

func TestScoreAttemptNoQuestions(t *testing.T) {
	result := ScoreAttempt(nil, map[int]int{0: 0})
	assert.Equal(t, Result{}, result)
}

func TestResumeIndex(t *testing.T) {
	// answers for {0,1,2} on a 5-question quiz resume at 3
	assert.Equal(t, 3, ResumeIndex(map[int]int{0: 1, 1: 0, 2: 2}, 5))

	// empty answers resume at the first question
	assert.Equal(t, 0, ResumeIndex(map[int]int{}, 5))

	// fully answered quiz caps at the last question
	assert.Equal(t, 4, ResumeIndex(map[int]int{0: 0, 1: 0, 2: 0, 3: 0, 4: 0}, 5))

	// sparse answers follow the highest answered index
	assert.Equal(t, 4, ResumeIndex(map[int]int{3: 1}, 5))
}

func TestSummarizeAttempts(t *testing.T) {
	attempts := []models.QuizAttempt{
		{Score: 80, Completed: true},
		{Score: 90, Completed: true},
		{Score: 40}, // in progress, ignored
	}
	stats := SummarizeAttempts(attempts)
	assert.Equal(t, 2, stats.QuizzesTaken)
	assert.Equal(t, 85, stats.AverageScore)
}

func TestSummarizeAttemptsRoundsHalfUp(t *testing.T) {
	attempts := []models.QuizAttempt{
		{Score: 80, Completed: true},
		{Score: 85, Completed: true},
	}
	// 82.5 -> 83
	assert.Equal(t, 83, SummarizeAttempts(attempts).AverageScore)
}

func TestSummarizeAttemptsEmpty(t *testing.T) {
	assert.Equal(t, StudyStats{}, SummarizeAttempts(nil))
	assert.Equal(t, StudyStats{}, SummarizeAttempts([]models.QuizAttempt{{Score: 50}}))
}

func TestValidateQuestions(t *testing.T) {
	valid := fourQuestions()
	assert.Equal(t, -1, ValidateQuestions(valid))

	assert.Equal(t, 0, ValidateQuestions(nil))

	noCorrect := fourQuestions()
	noCorrect[2].Options[2].IsCorrect = false
	assert.Equal(t, 2, ValidateQuestions(noCorrect))

	twoCorrect := fourQuestions()
	twoCorrect[1].Options[3].IsCorrect = true
	assert.Equal(t, 1, ValidateQuestions(twoCorrect))

	missingText := fourQuestions()
	missingText[3].Text = ""
	assert.Equal(t, 3, ValidateQuestions(missingText))
}
