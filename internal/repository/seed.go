package repository

import (
	"context"
	"fmt"

	"placement-panic/internal/models"
)

// DefaultQuestions is the bank every fresh database starts with.
var DefaultQuestions = []models.Question{
	{Text: "Explain the difference between an array and a linked list. When would you use each?", Category: models.CategoryDSA, Difficulty: models.DifficultyEasy},
	{Text: "What is the time complexity of binary search and why?", Category: models.CategoryDSA, Difficulty: models.DifficultyEasy},
	{Text: "Describe how a hash table works and its average time complexities.", Category: models.CategoryDSA, Difficulty: models.DifficultyEasy},
	{Text: "What is the difference between a stack and a queue?", Category: models.CategoryDSA, Difficulty: models.DifficultyEasy},
	{Text: "Explain Big O notation and why it matters.", Category: models.CategoryDSA, Difficulty: models.DifficultyEasy},
	{Text: "How would you reverse a linked list? Explain your approach.", Category: models.CategoryDSA, Difficulty: models.DifficultyMedium},
	{Text: "Explain how you would detect a cycle in a linked list.", Category: models.CategoryDSA, Difficulty: models.DifficultyMedium},
	{Text: "What is dynamic programming? Give an example.", Category: models.CategoryDSA, Difficulty: models.DifficultyMedium},
	{Text: "How would you find the kth largest element in an unsorted array?", Category: models.CategoryDSA, Difficulty: models.DifficultyMedium},
	{Text: "Explain the difference between BFS and DFS traversals.", Category: models.CategoryDSA, Difficulty: models.DifficultyMedium},
	{Text: "Design an LRU cache. What data structures would you use?", Category: models.CategoryDSA, Difficulty: models.DifficultyHard},
	{Text: "How would you find the shortest path in a weighted graph?", Category: models.CategoryDSA, Difficulty: models.DifficultyHard},
	{Text: "Explain how you would solve the N-Queens problem.", Category: models.CategoryDSA, Difficulty: models.DifficultyHard},
	{Text: "What is the difference between HTTP and HTTPS?", Category: models.CategoryWebDev, Difficulty: models.DifficultyEasy},
	{Text: "Explain the concept of responsive design.", Category: models.CategoryWebDev, Difficulty: models.DifficultyEasy},
	{Text: "What is the difference between GET and POST requests?", Category: models.CategoryWebDev, Difficulty: models.DifficultyEasy},
	{Text: "What is the DOM and how does it work?", Category: models.CategoryWebDev, Difficulty: models.DifficultyEasy},
	{Text: "Explain the difference between cookies and local storage.", Category: models.CategoryWebDev, Difficulty: models.DifficultyEasy},
	{Text: "What is CORS and why is it important?", Category: models.CategoryWebDev, Difficulty: models.DifficultyMedium},
	{Text: "Explain the concept of RESTful APIs.", Category: models.CategoryWebDev, Difficulty: models.DifficultyMedium},
	{Text: "What is the Virtual DOM and how does React use it?", Category: models.CategoryWebDev, Difficulty: models.DifficultyMedium},
	{Text: "Explain the concept of JWT authentication.", Category: models.CategoryWebDev, Difficulty: models.DifficultyMedium},
	{Text: "What is server-side rendering vs client-side rendering?", Category: models.CategoryWebDev, Difficulty: models.DifficultyMedium},
	{Text: "How would you optimize a slow-loading website?", Category: models.CategoryWebDev, Difficulty: models.DifficultyHard},
	{Text: "Explain WebSockets and when you would use them over HTTP.", Category: models.CategoryWebDev, Difficulty: models.DifficultyHard},
	{Text: "What are the four pillars of OOP?", Category: models.CategoryJava, Difficulty: models.DifficultyEasy},
	{Text: "Explain the difference between abstract classes and interfaces in Java.", Category: models.CategoryJava, Difficulty: models.DifficultyEasy},
	{Text: "What is the difference between == and .equals() in Java?", Category: models.CategoryJava, Difficulty: models.DifficultyEasy},
	{Text: "Explain the concept of garbage collection in Java.", Category: models.CategoryJava, Difficulty: models.DifficultyEasy},
	{Text: "What are Java collections? Name the main interfaces.", Category: models.CategoryJava, Difficulty: models.DifficultyEasy},
	{Text: "Explain the difference between HashMap and TreeMap.", Category: models.CategoryJava, Difficulty: models.DifficultyMedium},
	{Text: "What is multithreading? How do you achieve it in Java?", Category: models.CategoryJava, Difficulty: models.DifficultyMedium},
	{Text: "Explain the synchronized keyword and its use cases.", Category: models.CategoryJava, Difficulty: models.DifficultyMedium},
	{Text: "What are Java streams and lambda expressions?", Category: models.CategoryJava, Difficulty: models.DifficultyMedium},
	{Text: "Explain the SOLID principles with examples.", Category: models.CategoryJava, Difficulty: models.DifficultyHard},
	{Text: "How would you design a thread-safe singleton pattern?", Category: models.CategoryJava, Difficulty: models.DifficultyHard},
	{Text: "What is horizontal vs vertical scaling?", Category: models.CategorySystemDesign, Difficulty: models.DifficultyEasy},
	{Text: "Explain the concept of load balancing.", Category: models.CategorySystemDesign, Difficulty: models.DifficultyEasy},
	{Text: "What is caching and why is it important?", Category: models.CategorySystemDesign, Difficulty: models.DifficultyEasy},
	{Text: "Explain the CAP theorem.", Category: models.CategorySystemDesign, Difficulty: models.DifficultyMedium},
	{Text: "How would you design a URL shortening service?", Category: models.CategorySystemDesign, Difficulty: models.DifficultyMedium},
	{Text: "Explain microservices architecture and its benefits.", Category: models.CategorySystemDesign, Difficulty: models.DifficultyMedium},
	{Text: "What is database sharding and when would you use it?", Category: models.CategorySystemDesign, Difficulty: models.DifficultyMedium},
	{Text: "How would you design Twitter's trending topics feature?", Category: models.CategorySystemDesign, Difficulty: models.DifficultyHard},
	{Text: "Design a distributed message queue system.", Category: models.CategorySystemDesign, Difficulty: models.DifficultyHard},
	{Text: "Tell me about yourself.", Category: models.CategoryHR, Difficulty: models.DifficultyEasy},
	{Text: "Why do you want to work for our company?", Category: models.CategoryHR, Difficulty: models.DifficultyEasy},
	{Text: "What are your strengths and weaknesses?", Category: models.CategoryHR, Difficulty: models.DifficultyEasy},
	{Text: "Where do you see yourself in 5 years?", Category: models.CategoryHR, Difficulty: models.DifficultyEasy},
	{Text: "Describe a challenging project you worked on.", Category: models.CategoryHR, Difficulty: models.DifficultyMedium},
	{Text: "Tell me about a time you had a conflict with a team member.", Category: models.CategoryHR, Difficulty: models.DifficultyMedium},
	{Text: "How do you handle tight deadlines?", Category: models.CategoryHR, Difficulty: models.DifficultyMedium},
	{Text: "Describe a time you failed and what you learned.", Category: models.CategoryHR, Difficulty: models.DifficultyHard},
	{Text: "How would you handle a situation where you disagree with your manager?", Category: models.CategoryHR, Difficulty: models.DifficultyHard},
}

// SeedQuestions inserts DefaultQuestions when the question table is empty.
// It returns the number of questions inserted.
func SeedQuestions(ctx context.Context, repo QuestionRepository) (int, error) {
	n, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	for i := range DefaultQuestions {
		q := DefaultQuestions[i]
		if err := repo.Create(ctx, &q); err != nil {
			return i, fmt.Errorf("failed to seed question %d: %w", i+1, err)
		}
	}
	return len(DefaultQuestions), nil
}
