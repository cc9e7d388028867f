package cli

import "globe-quiz-service/internal/domain"

// sampleCountries and sampleQuestions back the in-memory mode so the API
// and quiz play work without a database.
func sampleCountries() []domain.Country {
	return []domain.Country{
		{ID: "france", Name: "France", Capital: "Paris", Continent: "Europe", Difficulty: domain.DifficultyEasy},
		{ID: "japan", Name: "Japan", Capital: "Tokyo", Continent: "Asia", Difficulty: domain.DifficultyMedium},
	}
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:            "france-seine",
			Text:          "Which river flows through Paris, the capital of France?",
			OptionA:       "The Seine River",
			OptionB:       "The Loire River",
			OptionC:       "The Rhone River",
			OptionD:       "The Garonne River",
			CorrectAnswer: "The Seine River",
			Explanation:   "The Seine crosses Paris on its way to the English Channel.",
			Category:      "Geography",
			Difficulty:    domain.DifficultyEasy,
			CountryID:     "france",
		},
		{
			ID:            "france-bastille",
			Text:          "In which year was the Bastille stormed in France?",
			OptionA:       "In the year 1789",
			OptionB:       "In the year 1815",
			OptionC:       "In the year 1848",
			OptionD:       "In the year 1871",
			CorrectAnswer: "In the year 1789",
			Explanation:   "The storming of the Bastille on 14 July 1789 opened the French Revolution.",
			Category:      "History",
			Difficulty:    domain.DifficultyEasy,
			CountryID:     "france",
		},
		{
			ID:            "japan-fuji",
			Text:          "Which mountain is the highest peak in Japan?",
			OptionA:       "Mount Fuji",
			OptionB:       "Mount Kita",
			OptionC:       "Mount Hotaka",
			OptionD:       "Mount Yari",
			CorrectAnswer: "Mount Fuji",
			Explanation:   "Mount Fuji rises to 3,776 metres.",
			Category:      "Geography",
			Difficulty:    domain.DifficultyMedium,
			CountryID:     "japan",
		},
	}
}
