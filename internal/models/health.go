package models

import "time"

// Workout is a single logged workout session.
type Workout struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Type           string    `json:"type"`
	Duration       int64     `json:"duration"`
	Intensity      string    `json:"intensity"`
	CaloriesBurned int64     `json:"calories_burned"`
	Notes          *string   `json:"notes"`
	Date           string    `json:"date"`
	CreatedAt      time.Time `json:"created_at"`
}

// NutritionEntry is a single logged meal or snack.
type NutritionEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	MealType  string    `json:"meal_type"`
	FoodItem  string    `json:"food_item"`
	Calories  int64     `json:"calories"`
	Protein   float64   `json:"protein"`
	Carbs     float64   `json:"carbs"`
	Fats      float64   `json:"fats"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// HealthMetric is a daily vital-signs snapshot. Every field except the
// date is optional.
type HealthMetric struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Weight        *float64  `json:"weight"`
	Height        *float64  `json:"height"`
	BloodPressure *string   `json:"blood_pressure"`
	HeartRate     *int64    `json:"heart_rate"`
	SleepHours    *float64  `json:"sleep_hours"`
	WaterIntake   *int64    `json:"water_intake"`
	Mood          *string   `json:"mood"`
	Notes         *string   `json:"notes"`
	Date          string    `json:"date"`
	CreatedAt     time.Time `json:"created_at"`
}

// Medication is a tracked prescription or supplement.
type Medication struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Dosage    string    `json:"dosage"`
	Frequency string    `json:"frequency"`
	Purpose   *string   `json:"purpose"`
	StartDate string    `json:"start_date"`
	EndDate   *string   `json:"end_date"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// WorkoutsToday aggregates today's workouts for the dashboard.
type WorkoutsToday struct {
	Count    int64 `json:"count"`
	Calories int64 `json:"calories"`
}

// NutritionToday aggregates today's calorie intake for the dashboard.
type NutritionToday struct {
	Calories int64 `json:"calories"`
}

// SummaryResponse is the dashboard rollup. Missing data is reported as
// zero, never null, so clients can render without null-checking.
type SummaryResponse struct {
	WorkoutsToday     WorkoutsToday  `json:"workouts_today"`
	NutritionToday    NutritionToday `json:"nutrition_today"`
	ActiveMedications int64          `json:"active_medications"`
}

// RecordCreatedResponse confirms an insert and echoes the new id.
type RecordCreatedResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}
