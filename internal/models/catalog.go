package models

const (
	CategoryDSA          = "DSA"
	CategoryWebDev       = "Web Development"
	CategoryJava         = "Java"
	CategorySystemDesign = "System Design"
	CategoryHR           = "HR"
	DifficultyEasy       = "easy"
	DifficultyMedium     = "medium"
	DifficultyHard       = "hard"
	MinRating            = 1
	MaxRating            = 5
)

var (
	Categories   = []string{CategoryDSA, CategoryWebDev, CategoryJava, CategorySystemDesign, CategoryHR}
	Difficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}
	Durations    = []int{5, 10, 15}
)

func IsValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

func IsValidDifficulty(d string) bool {
	for _, v := range Difficulties {
		if v == d {
			return true
		}
	}
	return false
}

func IsValidDuration(minutes int) bool {
	for _, v := range Durations {
		if v == minutes {
			return true
		}
	}
	return false
}

type Catalog struct {
	Categories   []string `json:"categories"`
	Difficulties []string `json:"difficulties"`
	Durations    []int    `json:"durations"`
}
