package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
)

// Connect returns a MariaDB connection using env vars.
func Connect() (*sql.DB, error) {
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASS")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	name := os.Getenv("DB_NAME")
	if host == "" {
		host = "127.0.0.1"
	}
	if port == "" {
		port = "3306"
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4,utf8", user, pass, host, port, name)
	return sql.Open("mysql", dsn)
}

// EnsureSchema creates required tables if not exist.
func EnsureSchema(db *sql.DB) error {
	if skip := strings.TrimSpace(os.Getenv("DB_SKIP_SCHEMA")); strings.EqualFold(skip, "true") || skip == "1" {
		log.Printf("EnsureSchema: skipped (DB_SKIP_SCHEMA=%q)", skip)
		return nil
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(50) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			age INT NULL,
			gender VARCHAR(32) NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`); err != nil {
		return err
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS workouts (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			type VARCHAR(100) NOT NULL,
			duration INT NOT NULL,
			intensity ENUM('low', 'medium', 'high') NOT NULL,
			calories_burned INT NOT NULL DEFAULT 0,
			notes TEXT NULL,
			date DATE NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_workouts_user_date (user_id, date),
			FOREIGN KEY (user_id) REFERENCES users(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`); err != nil {
		return err
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS nutrition (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			meal_type ENUM('breakfast', 'lunch', 'dinner', 'snack') NOT NULL,
			food_item VARCHAR(255) NOT NULL,
			calories INT NOT NULL,
			protein DECIMAL(5,2) NOT NULL DEFAULT 0,
			carbs DECIMAL(5,2) NOT NULL DEFAULT 0,
			fats DECIMAL(5,2) NOT NULL DEFAULT 0,
			date DATE NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_nutrition_user_date (user_id, date),
			FOREIGN KEY (user_id) REFERENCES users(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`); err != nil {
		return err
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS health_metrics (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			weight DECIMAL(5,2) NULL,
			height DECIMAL(5,2) NULL,
			blood_pressure VARCHAR(20) NULL,
			heart_rate INT NULL,
			sleep_hours DECIMAL(3,1) NULL,
			water_intake INT NULL,
			mood ENUM('excellent', 'good', 'fair', 'poor', 'terrible') NULL,
			notes TEXT NULL,
			date DATE NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_health_metrics_user_date (user_id, date),
			FOREIGN KEY (user_id) REFERENCES users(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`); err != nil {
		return err
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS medications (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			name VARCHAR(255) NOT NULL,
			dosage VARCHAR(100) NOT NULL,
			frequency VARCHAR(100) NOT NULL,
			purpose VARCHAR(255) NULL,
			start_date DATE NOT NULL,
			end_date DATE NULL,
			is_active TINYINT(1) NOT NULL DEFAULT 1,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_medications_user_active (user_id, is_active),
			FOREIGN KEY (user_id) REFERENCES users(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`); err != nil {
		return err
	}

	return nil
}

// SeedTestUser inserts the development test account (testuser/password123)
// if it does not exist yet. Gated behind SEED_TEST_USER by the caller.
func SeedTestUser(db *sql.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), 12)
	if err != nil {
		return err
	}

	result, err := db.Exec(`
		INSERT IGNORE INTO users (username, password_hash, email, age, gender)
		VALUES (?, ?, ?, ?, ?)
	`, "testuser", string(hash), "test@example.com", 30, "prefer-not-to-say")
	if err != nil {
		return err
	}

	if rows, _ := result.RowsAffected(); rows > 0 {
		log.Println("👤 Test user created: testuser / password123")
	} else {
		log.Println("👤 Test user already exists: testuser / password123")
	}
	return nil
}
