package records

import (
	"database/sql"

	"github.com/yourorg/healthflow/internal/models"
	"github.com/yourorg/healthflow/internal/validation"
)

// ============================================================================
// KIND REGISTRY
// ============================================================================
// The four record kinds share one CRUD shape and differ only in table,
// validation rules and list ordering. Handlers dispatch through this table
// instead of branching on the URL, so adding a kind means adding an entry.

// Kind describes one record category: its table, insert columns, list
// ordering and per-field validation.
type Kind struct {
	// Name is the URL segment, e.g. "workouts" in /api/health/workouts.
	Name  string
	Table string

	// Columns are the insert columns after user_id, in the order the
	// Validate result is produced.
	Columns []string

	// Required lists the field names enumerated in the missing-field error.
	Required []string
	// MissingMessage is returned whenever any required field is absent.
	MissingMessage string

	// SelectColumns and OrderBy drive the owner-scoped list query.
	SelectColumns string
	OrderBy       string

	// Validate coerces the decoded JSON body into insert values matching
	// Columns. It runs before any SQL and fails closed on bad input.
	Validate func(body map[string]interface{}) ([]interface{}, error)
	// Scan reads one list row into the kind's model.
	Scan func(rows *sql.Rows) (interface{}, error)

	CreatedMessage string
	DeletedMessage string
	// SaveFailMessage is the client-facing message for a failed insert; it
	// never carries store internals.
	SaveFailMessage string
}

var kinds map[string]*Kind

// The registry is populated in init rather than a var initializer because
// the validators read kinds, which would otherwise be an initialization cycle.
func init() {
	kinds = map[string]*Kind{
		"workouts": {
			Name:            "workouts",
			Table:           "workouts",
			Columns:         []string{"type", "duration", "intensity", "calories_burned", "notes", "date"},
			Required:        []string{"type", "duration", "intensity", "date"},
			MissingMessage:  "Missing required fields: type, duration, intensity, and date are required",
			SelectColumns:   "id, user_id, type, duration, intensity, calories_burned, notes, DATE_FORMAT(date, '%Y-%m-%d'), created_at",
			OrderBy:         "date DESC, created_at DESC",
			Validate:        validateWorkout,
			Scan:            scanWorkout,
			CreatedMessage:  "Workout saved successfully!",
			DeletedMessage:  "Workout deleted successfully",
			SaveFailMessage: "Failed to save workout",
		},
		"nutrition": {
			Name:            "nutrition",
			Table:           "nutrition",
			Columns:         []string{"meal_type", "food_item", "calories", "protein", "carbs", "fats", "date"},
			Required:        []string{"meal_type", "food_item", "calories", "date"},
			MissingMessage:  "Missing required fields: meal_type, food_item, calories, and date are required",
			SelectColumns:   "id, user_id, meal_type, food_item, calories, protein, carbs, fats, DATE_FORMAT(date, '%Y-%m-%d'), created_at",
			OrderBy:         "date DESC, created_at DESC",
			Validate:        validateNutrition,
			Scan:            scanNutrition,
			CreatedMessage:  "Nutrition entry saved successfully!",
			DeletedMessage:  "Nutrition entry deleted successfully",
			SaveFailMessage: "Failed to save nutrition entry",
		},
		"metrics": {
			Name:            "metrics",
			Table:           "health_metrics",
			Columns:         []string{"weight", "height", "blood_pressure", "heart_rate", "sleep_hours", "water_intake", "mood", "notes", "date"},
			Required:        []string{"date"},
			MissingMessage:  "Date is required",
			SelectColumns:   "id, user_id, weight, height, blood_pressure, heart_rate, sleep_hours, water_intake, mood, notes, DATE_FORMAT(date, '%Y-%m-%d'), created_at",
			OrderBy:         "date DESC, created_at DESC",
			Validate:        validateMetric,
			Scan:            scanMetric,
			CreatedMessage:  "Health metrics saved successfully!",
			DeletedMessage:  "Health metrics deleted successfully",
			SaveFailMessage: "Failed to save health metrics",
		},
		"medications": {
			Name:            "medications",
			Table:           "medications",
			Columns:         []string{"name", "dosage", "frequency", "purpose", "start_date", "end_date", "is_active"},
			Required:        []string{"name", "dosage", "frequency", "start_date"},
			MissingMessage:  "Missing required fields: name, dosage, frequency, and start_date are required",
			SelectColumns:   "id, user_id, name, dosage, frequency, purpose, DATE_FORMAT(start_date, '%Y-%m-%d'), DATE_FORMAT(end_date, '%Y-%m-%d'), is_active, created_at",
			OrderBy:         "is_active DESC, start_date DESC",
			Validate:        validateMedication,
			Scan:            scanMedication,
			CreatedMessage:  "Medication added successfully!",
			DeletedMessage:  "Medication deleted successfully",
			SaveFailMessage: "Failed to save medication",
		},
	}
}

// Lookup resolves a URL kind segment to its registry entry.
// Returns nil for unknown kinds.
func Lookup(name string) *Kind {
	return kinds[name]
}

func missingRequired(kind *Kind, body map[string]interface{}) *validation.Error {
	for _, field := range kind.Required {
		if !validation.Present(body, field) {
			return &validation.Error{Field: field, Message: kind.MissingMessage}
		}
	}
	return nil
}

func validateWorkout(body map[string]interface{}) ([]interface{}, error) {
	kind := kinds["workouts"]
	if verr := missingRequired(kind, body); verr != nil {
		return nil, verr
	}

	workoutType, verr := validation.Str(body["type"], "type")
	if verr != nil {
		return nil, verr
	}
	duration, verr := validation.PositiveInt(body["duration"], "duration")
	if verr != nil {
		return nil, verr
	}
	intensity, verr := validation.OneOf(body["intensity"], "intensity", "low", "medium", "high")
	if verr != nil {
		return nil, verr
	}
	calories := int64(0)
	if validation.Present(body, "calories_burned") {
		calories, verr = validation.NonNegativeInt(body["calories_burned"], "calories_burned")
		if verr != nil {
			return nil, verr
		}
	}
	notes := optionalText(body, "notes")
	date, verr := validation.Date(body["date"], "date")
	if verr != nil {
		return nil, verr
	}

	return []interface{}{workoutType, duration, intensity, calories, notes, date}, nil
}

func validateNutrition(body map[string]interface{}) ([]interface{}, error) {
	kind := kinds["nutrition"]
	if verr := missingRequired(kind, body); verr != nil {
		return nil, verr
	}

	mealType, verr := validation.OneOf(body["meal_type"], "meal_type", "breakfast", "lunch", "dinner", "snack")
	if verr != nil {
		return nil, verr
	}
	foodItem, verr := validation.Str(body["food_item"], "food_item")
	if verr != nil {
		return nil, verr
	}
	calories, verr := validation.NonNegativeInt(body["calories"], "calories")
	if verr != nil {
		return nil, verr
	}

	// Macros default to zero grams when omitted
	macros := make([]interface{}, 0, 3)
	for _, field := range []string{"protein", "carbs", "fats"} {
		grams := float64(0)
		if validation.Present(body, field) {
			grams, verr = validation.NonNegativeFloat(body[field], field)
			if verr != nil {
				return nil, verr
			}
		}
		macros = append(macros, grams)
	}

	date, verr := validation.Date(body["date"], "date")
	if verr != nil {
		return nil, verr
	}

	return []interface{}{mealType, foodItem, calories, macros[0], macros[1], macros[2], date}, nil
}

func validateMetric(body map[string]interface{}) ([]interface{}, error) {
	kind := kinds["metrics"]
	if verr := missingRequired(kind, body); verr != nil {
		return nil, verr
	}

	var verr *validation.Error

	// Every metric is optional; missing numerics are stored as zero
	weight := float64(0)
	if validation.Present(body, "weight") {
		weight, verr = validation.NonNegativeFloat(body["weight"], "weight")
		if verr != nil {
			return nil, verr
		}
	}
	height := float64(0)
	if validation.Present(body, "height") {
		height, verr = validation.NonNegativeFloat(body["height"], "height")
		if verr != nil {
			return nil, verr
		}
	}
	bloodPressure := optionalText(body, "blood_pressure")
	heartRate := int64(0)
	if validation.Present(body, "heart_rate") {
		heartRate, verr = validation.NonNegativeInt(body["heart_rate"], "heart_rate")
		if verr != nil {
			return nil, verr
		}
	}
	sleepHours := float64(0)
	if validation.Present(body, "sleep_hours") {
		sleepHours, verr = validation.NonNegativeFloat(body["sleep_hours"], "sleep_hours")
		if verr != nil {
			return nil, verr
		}
	}
	waterIntake := int64(0)
	if validation.Present(body, "water_intake") {
		waterIntake, verr = validation.NonNegativeInt(body["water_intake"], "water_intake")
		if verr != nil {
			return nil, verr
		}
	}
	var mood interface{}
	if validation.Present(body, "mood") {
		value, verr := validation.OneOf(body["mood"], "mood", "excellent", "good", "fair", "poor", "terrible")
		if verr != nil {
			return nil, verr
		}
		mood = value
	}
	notes := optionalText(body, "notes")
	date, verr := validation.Date(body["date"], "date")
	if verr != nil {
		return nil, verr
	}

	return []interface{}{weight, height, bloodPressure, heartRate, sleepHours, waterIntake, mood, notes, date}, nil
}

func validateMedication(body map[string]interface{}) ([]interface{}, error) {
	kind := kinds["medications"]
	if verr := missingRequired(kind, body); verr != nil {
		return nil, verr
	}

	name, verr := validation.Str(body["name"], "name")
	if verr != nil {
		return nil, verr
	}
	dosage, verr := validation.Str(body["dosage"], "dosage")
	if verr != nil {
		return nil, verr
	}
	frequency, verr := validation.Str(body["frequency"], "frequency")
	if verr != nil {
		return nil, verr
	}
	purpose := optionalText(body, "purpose")
	startDate, verr := validation.Date(body["start_date"], "start_date")
	if verr != nil {
		return nil, verr
	}
	var endDate interface{}
	if validation.Present(body, "end_date") {
		value, verr := validation.Date(body["end_date"], "end_date")
		if verr != nil {
			return nil, verr
		}
		endDate = value
	}
	// A medication is active unless the client says otherwise
	isActive := true
	if validation.Present(body, "is_active") {
		isActive, verr = validation.Bool(body["is_active"], "is_active")
		if verr != nil {
			return nil, verr
		}
	}

	return []interface{}{name, dosage, frequency, purpose, startDate, endDate, isActive}, nil
}

// optionalText returns the trimmed string for a free-text field, or nil
// (stored as NULL) when absent or blank.
func optionalText(body map[string]interface{}, field string) interface{} {
	if !validation.Present(body, field) {
		return nil
	}
	s, verr := validation.Str(body[field], field)
	if verr != nil {
		return nil
	}
	return s
}

func scanWorkout(rows *sql.Rows) (interface{}, error) {
	var w models.Workout
	var notes sql.NullString
	if err := rows.Scan(&w.ID, &w.UserID, &w.Type, &w.Duration, &w.Intensity, &w.CaloriesBurned, &notes, &w.Date, &w.CreatedAt); err != nil {
		return nil, err
	}
	if notes.Valid {
		w.Notes = &notes.String
	}
	return w, nil
}

func scanNutrition(rows *sql.Rows) (interface{}, error) {
	var n models.NutritionEntry
	if err := rows.Scan(&n.ID, &n.UserID, &n.MealType, &n.FoodItem, &n.Calories, &n.Protein, &n.Carbs, &n.Fats, &n.Date, &n.CreatedAt); err != nil {
		return nil, err
	}
	return n, nil
}

func scanMetric(rows *sql.Rows) (interface{}, error) {
	var m models.HealthMetric
	var (
		weight        sql.NullFloat64
		height        sql.NullFloat64
		bloodPressure sql.NullString
		heartRate     sql.NullInt64
		sleepHours    sql.NullFloat64
		waterIntake   sql.NullInt64
		mood          sql.NullString
		notes         sql.NullString
	)
	if err := rows.Scan(&m.ID, &m.UserID, &weight, &height, &bloodPressure, &heartRate, &sleepHours, &waterIntake, &mood, &notes, &m.Date, &m.CreatedAt); err != nil {
		return nil, err
	}
	if weight.Valid {
		m.Weight = &weight.Float64
	}
	if height.Valid {
		m.Height = &height.Float64
	}
	if bloodPressure.Valid {
		m.BloodPressure = &bloodPressure.String
	}
	if heartRate.Valid {
		m.HeartRate = &heartRate.Int64
	}
	if sleepHours.Valid {
		m.SleepHours = &sleepHours.Float64
	}
	if waterIntake.Valid {
		m.WaterIntake = &waterIntake.Int64
	}
	if mood.Valid {
		m.Mood = &mood.String
	}
	if notes.Valid {
		m.Notes = &notes.String
	}
	return m, nil
}

func scanMedication(rows *sql.Rows) (interface{}, error) {
	var med models.Medication
	var (
		purpose sql.NullString
		endDate sql.NullString
	)
	if err := rows.Scan(&med.ID, &med.UserID, &med.Name, &med.Dosage, &med.Frequency, &purpose, &med.StartDate, &endDate, &med.IsActive, &med.CreatedAt); err != nil {
		return nil, err
	}
	if purpose.Valid {
		med.Purpose = &purpose.String
	}
	if endDate.Valid {
		med.EndDate = &endDate.String
	}
	return med, nil
}
