// Package quizengine scores quiz attempts and ranks per-quiz leaderboards.
// Everything here is deterministic and side-effect free; handlers own the
// persistence around it.
package quizengine

import (
	"math"

	"StudyVillage/src/core/models"
)

// Result of scoring a submitted attempt.
type Result struct {
	Score        int `json:"score"`
	CorrectCount int `json:"correct_count"`
}

// CorrectOptionIndex returns the index of the option marked correct,
// or -1 if none is (malformed question).
func CorrectOptionIndex(q models.Question) int {
	for i, opt := range q.Options {
		if opt.IsCorrect {
			return i
		}
	}
	return -1
}

// ScoreAttempt compares the chosen option index per question against the
// correct one. An absent answer never matches. Score is the percentage of
// correct answers rounded half-up to an integer.
func ScoreAttempt(questions []models.Question, answers map[int]int) Result {
	if len(questions) == 0 {
		return Result{}
	}

	correct := 0
	for i, q := range questions {
		chosen, answered := answers[i]
		if answered && chosen == CorrectOptionIndex(q) {
			correct++
		}
	}

	score := int(math.Round(float64(correct) / float64(len(questions)) * 100))
	return Result{Score: score, CorrectCount: correct}
}

// StudyStats summarizes a user's quiz history for their profile page.
type StudyStats struct {
	QuizzesTaken int `json:"quizzes_taken"`
	AverageScore int `json:"average_score"`
}

// SummarizeAttempts counts completed attempts and averages their scores,
// rounded half-up. In-progress attempts do not count.
func SummarizeAttempts(attempts []models.QuizAttempt) StudyStats {
	taken := 0
	total := 0
	for _, attempt := range attempts {
		if !attempt.Completed {
			continue
		}
		taken++
		total += attempt.Score
	}
	if taken == 0 {
		return StudyStats{}
	}
	return StudyStats{
		QuizzesTaken: taken,
		AverageScore: int(math.Round(float64(total) / float64(taken))),
	}
}

// ResumeIndex is the question a user resumes an in-progress attempt at:
// one past the highest answered index, capped at the last question.
func ResumeIndex(answers map[int]int, questionCount int) int {
	if questionCount <= 0 {
		return 0
	}

	lastAnswered := -1
	for i := range answers {
		if i > lastAnswered {
			lastAnswered = i
		}
	}

	next := lastAnswered + 1
	if next > questionCount-1 {
		next = questionCount - 1
	}
	return next
}

// ValidateQuestions checks the create/edit-time invariants: at least one
// question, each with at least two options and exactly one marked correct.
// Returns the offending question index, or -1 when valid.
func ValidateQuestions(questions []models.Question) int {
	if len(questions) == 0 {
		return 0
	}
	for i, q := range questions {
		if q.Text == "" || len(q.Options) < 2 {
			return i
		}
		correct := 0
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return i
		}
	}
	return -1
}
