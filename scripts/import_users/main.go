package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/nikitavr/sociable/internal/models"
	"github.com/nikitavr/sociable/internal/security"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Bulk-registers accounts from a spreadsheet. Expected columns per row:
// username, password, about. The first row is a header.
func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	if len(os.Args) < 2 {
		log.Fatal("usage: import_users <accounts.xlsx>")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect database:", err)
	}

	f, err := excelize.OpenFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()

	totalImported := 0

	for _, sheetName := range sheets {
		fmt.Printf("Importing sheet: %s\n", sheetName)
		rows, err := f.GetRows(sheetName)
		if err != nil {
			fmt.Printf("Error reading sheet %s: %v\n", sheetName, err)
			continue
		}

		for i, row := range rows {
			if i == 0 || len(row) < 2 { // Skip header or invalid rows
				continue
			}

			username := row[0]
			password := row[1]
			about := ""
			if len(row) > 2 {
				about = row[2]
			}

			hash, err := security.HashPassword(password)
			if err != nil {
				fmt.Printf("Error hashing password in row %d: %v\n", i, err)
				continue
			}

			user := models.User{
				Username:     username,
				PasswordHash: hash,
				About:        about,
			}

			if err := db.Create(&user).Error; err != nil {
				fmt.Printf("Error creating user in row %d: %v\n", i, err)
			} else {
				totalImported++
			}
		}
	}

	fmt.Printf("Successfully imported %d users.\n", totalImported)
}
