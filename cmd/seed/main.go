package main

import (
	"log"
	"os"
	"time"

	"farewell-wall-be/internal/model"
	"farewell-wall-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	sessionId := getEnv("FIXED_SESSION_ID", "martin-isi")
	sessionName := getEnv("FIXED_SESSION_NAME", "Martin & Isi - USA Farewell")

	color.Cyan("Seeding farewell wall data...")

	var existing model.Session
	if err := db.Where("id = ?", sessionId).First(&existing).Error; err == nil {
		color.Yellow("Session '%s' already exists, skipping session seed", sessionId)
	} else {
		session := model.Session{Id: sessionId, Name: sessionName, Active: true}
		if err := db.Create(&session).Error; err != nil {
			log.Fatal("Error: Failed to seed session:", err)
		}
		color.Green("Created session '%s' (%s)", sessionId, sessionName)
	}

	messages := []model.Message{
		{Id: uuid.New(), SessionId: sessionId, Author: "Sofía", Text: "¡Buen viaje! Los vamos a extrañar muchísimo.", Tip: "Un cafecito"},
		{Id: uuid.New(), SessionId: sessionId, Author: "Anónimo", Text: "Suerte en esta nueva etapa.", Tip: "Sin propina"},
		{Id: uuid.New(), SessionId: sessionId, Author: "Diego", Text: "Nos vemos del otro lado del charco. Abrazo grande.", Tip: "Una cerveza"},
	}

	var count int64
	db.Model(&model.Message{}).Where("session_id = ?", sessionId).Count(&count)
	if count > 0 {
		color.Yellow("Session already has %d messages, skipping message seed", count)
	} else {
		for i := range messages {
			messages[i].CreatedAt = time.Now().Add(-time.Duration(len(messages)-i) * time.Hour)
			if err := db.Create(&messages[i]).Error; err != nil {
				log.Fatal("Error: Failed to seed message:", err)
			}
		}
		color.Green("Seeded %d sample messages", len(messages))
	}

	color.Cyan("Done.")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
