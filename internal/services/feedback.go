package services

import (
	"fmt"

	"placement-panic/internal/models"
)

const fewQuestionsThreshold = 5

// ComputeFeedback builds the session report for one interview. The result
// depends only on the interview, so repeated calls return identical values.
func ComputeFeedback(iv *models.Interview) *models.Feedback {
	category, difficulty := iv.Category, iv.Difficulty
	rating := float64(iv.AverageRating)

	fb := &models.Feedback{}
	switch {
	case rating >= 4:
		fb.OverallMessage = fmt.Sprintf("Excellent performance! You demonstrated strong confidence throughout this %s session. Your consistent high ratings show you're well-prepared for %s level questions. Keep up the great work!", category, difficulty)
		fb.Strengths = []string{
			"Strong overall confidence in your answers",
			fmt.Sprintf("Good grasp of %s concepts at %s level", category, difficulty),
			"Maintained composure throughout the session",
		}
		fb.Improvements = []string{
			"Consider challenging yourself with harder difficulty levels",
			"Practice explaining your thought process out loud",
			"Try to reduce time spent on simpler questions",
		}
	case rating >= 3:
		fb.OverallMessage = fmt.Sprintf("Good job! You showed solid understanding of %s concepts. While there's room for improvement, your performance indicates you're on the right track. Focus on building confidence in areas where you rated yourself lower.", category)
		fb.Strengths = []string{
			"Demonstrated understanding of core concepts",
			"Completed a reasonable number of questions",
			"Showed persistence throughout the session",
		}
		fb.Improvements = []string{
			"Work on building confidence for lower-rated topics",
			fmt.Sprintf("Practice more %s level %s questions", difficulty, category),
			"Review concepts that felt challenging during the session",
		}
	case rating >= 2:
		fb.OverallMessage = fmt.Sprintf("You're making progress! This %s session highlighted some areas that need more practice. Don't be discouraged - every interview is a learning opportunity. Focus on the fundamentals and gradually build up.", category)
		fb.Strengths = []string{
			"Showed courage by attempting challenging questions",
			"Completed the session despite difficulties",
			"Identified areas that need improvement",
		}
		fb.Improvements = []string{
			"Review fundamental concepts before attempting harder questions",
			"Consider starting with easier difficulty levels",
			fmt.Sprintf("Dedicate more time to practicing %s basics", category),
		}
	default:
		fb.OverallMessage = "This session was challenging, but that's okay! Everyone starts somewhere. The key is to identify gaps in your knowledge and work on them systematically. Consider reviewing the basics and practicing more frequently."
		fb.Strengths = []string{
			"Showed initiative by taking this practice session",
			"Identified areas that need significant improvement",
			"Took the first step toward interview preparation",
		}
		fb.Improvements = []string{
			"Start with foundational concepts before complex problems",
			"Try easier difficulty levels to build confidence",
			"Break down study sessions into smaller, focused blocks",
		}
	}

	fb.Tips = []string{
		fmt.Sprintf("Practice %s questions for at least 30 minutes daily", category),
		"Mock interviews help reduce anxiety — do them regularly",
		"Review your answers after each session to identify patterns",
	}

	if len(iv.Ratings) > 0 {
		low, high := 0, 0
		for _, r := range iv.Ratings {
			if r <= 2 {
				low++
			}
			if r >= 4 {
				high++
			}
		}
		if low > high {
			fb.Tips = append(fb.Tips, "Focus on understanding why you felt less confident on certain questions")
		} else {
			fb.Tips = append(fb.Tips, "Your confidence pattern shows good progress - maintain this momentum")
		}
	}

	if iv.QuestionsAnswered < fewQuestionsThreshold {
		fb.Improvements = append(fb.Improvements, "Try to answer more questions to get better practice")
	}

	return fb
}
