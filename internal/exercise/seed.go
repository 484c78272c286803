package exercise

import "github.com/abhisek/wellnest/internal/store"

// DefaultSeed is the catalog written into an empty store.
var DefaultSeed = []store.CategorySeed{
	{
		Category: store.ExerciseCategory{ID: 1, Name: Beginner, Description: "Gentle movement to build a habit"},
		Exercises: []store.Exercise{
			{
				Title:           "Morning Stretch",
				Description:     "A slow full-body stretch from neck to ankles.",
				DurationMinutes: 10,
				Benefits:        []string{"Improves flexibility", "Eases stiffness"},
			},
			{
				Title:           "Brisk Walk",
				Description:     "Walk at a pace that raises your breathing but still lets you talk.",
				DurationMinutes: 20,
				Benefits:        []string{"Supports heart health", "Lifts mood"},
			},
			{
				Title:           "Box Breathing",
				Description:     "Inhale for 4 counts, hold for 4, exhale for 4, hold for 4.",
				DurationMinutes: 5,
				Benefits:        []string{"Reduces stress", "Improves focus"},
			},
		},
	},
	{
		Category: store.ExerciseCategory{ID: 2, Name: Intermediate, Description: "Steady strength and stamina work"},
		Exercises: []store.Exercise{
			{
				Title:           "Bodyweight Circuit",
				Description:     "Squats, push-ups and lunges, three rounds of ten.",
				DurationMinutes: 25,
				Benefits:        []string{"Builds strength", "Raises endurance"},
			},
			{
				Title:           "Vinyasa Flow",
				Description:     "A linked sequence of yoga poses paced with the breath.",
				DurationMinutes: 30,
				Benefits:        []string{"Improves balance", "Calms the mind"},
			},
			{
				Title:           "Jog Intervals",
				Description:     "Alternate two minutes of jogging with one minute of walking.",
				DurationMinutes: 20,
				Benefits:        []string{"Improves cardio fitness"},
			},
		},
	},
	{
		Category: store.ExerciseCategory{ID: 3, Name: Advanced, Description: "High-intensity training for experienced movers"},
		Exercises: []store.Exercise{
			{
				Title:           "HIIT Session",
				Description:     "Forty seconds of burpees, mountain climbers and jump squats with twenty seconds rest.",
				DurationMinutes: 25,
				Benefits:        []string{"Burns calories", "Boosts metabolism"},
			},
			{
				Title:           "Tempo Run",
				Description:     "A sustained run at a comfortably hard pace.",
				DurationMinutes: 40,
				Benefits:        []string{"Raises lactate threshold", "Builds mental toughness"},
			},
			{
				Title:           "Power Yoga",
				Description:     "Vigorous yoga with long holds and arm balances.",
				DurationMinutes: 45,
				Benefits:        []string{"Builds core strength", "Improves flexibility"},
			},
		},
	},
}
