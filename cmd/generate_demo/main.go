// Command generate_demo creates a demo catalog database with sample authors,
// books, and copies from public domain works.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"locallibrary/internal/database"
	instancerepo "locallibrary/internal/database/instances"
	"locallibrary/internal/entities"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	genres := loadGenres(db)
	instances := instancerepo.NewRepository(db.DB)

	for _, cfg := range demoBooks() {
		author := cfg.Author
		if err := db.DB.Where("first_name = ? AND last_name = ?", author.FirstName, author.LastName).
			FirstOrCreate(&author).Error; err != nil {
			log.Printf("Failed to save author %s: %v", author.Name(), err)
			continue
		}

		book := entities.Book{
			Title:    cfg.Title,
			AuthorID: author.ID,
			Summary:  cfg.Summary,
			ISBN:     cfg.ISBN,
		}
		for _, name := range cfg.GenreNames {
			if g, ok := genres[name]; ok {
				book.Genres = append(book.Genres, g)
			}
		}
		if err := db.DB.Create(&book).Error; err != nil {
			log.Printf("Failed to save book %s: %v", cfg.Title, err)
			continue
		}
		log.Printf("Saved: %s by %s (%d copies)", book.Title, author.Name(), cfg.Copies)

		for i := 0; i < cfg.Copies; i++ {
			status := entities.StatusAvailable
			if i == 0 && cfg.FirstCopyOnLoan {
				status = entities.StatusOnLoan
			}
			instance, err := instances.CreateInstance(book.ID, cfg.Imprint, status)
			if err != nil {
				log.Printf("Failed to create copy of %s: %v", book.Title, err)
				continue
			}
			if status == entities.StatusOnLoan {
				due := time.Now().AddDate(0, 0, 14)
				if err := db.DB.Model(&entities.BookInstance{}).
					Where("id = ?", instance.ID).
					Update("due_back", due).Error; err != nil {
					log.Printf("Failed to set due date on copy %s: %v", instance.ID, err)
				}
			}
		}
	}

	log.Println("Demo database generated successfully!")
}

func loadGenres(db *database.Database) map[string]entities.Genre {
	var all []entities.Genre
	if err := db.DB.Find(&all).Error; err != nil {
		log.Printf("Failed to load genres: %v", err)
	}
	genres := make(map[string]entities.Genre, len(all))
	for _, g := range all {
		genres[g.Name] = g
	}
	return genres
}

type demoBook struct {
	Title           string
	Author          entities.Author
	Summary         string
	ISBN            string
	GenreNames      []string
	Imprint         string
	Copies          int
	FirstCopyOnLoan bool
}

func demoBooks() []demoBook {
	date := func(year, month, day int) *time.Time {
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		return &t
	}

	return []demoBook{
		{
			Title:           "Pride and Prejudice",
			Author:          entities.Author{FirstName: "Jane", LastName: "Austen", DateOfBirth: date(1775, 12, 16), DateOfDeath: date(1817, 7, 18)},
			Summary:         "The turbulent courtship of Elizabeth Bennet and Fitzwilliam Darcy.",
			ISBN:            "9780141439518",
			GenreNames:      []string{"Fiction", "Romance"},
			Imprint:         "Penguin Classics, 2003",
			Copies:          3,
			FirstCopyOnLoan: true,
		},
		{
			Title:      "Moby-Dick",
			Author:     entities.Author{FirstName: "Herman", LastName: "Melville", DateOfBirth: date(1819, 8, 1), DateOfDeath: date(1891, 9, 28)},
			Summary:    "Captain Ahab's obsessive hunt for the white whale.",
			ISBN:       "9780142437247",
			GenreNames: []string{"Fiction"},
			Imprint:    "Penguin Classics, 2002",
			Copies:     2,
		},
		{
			Title:           "Frankenstein",
			Author:          entities.Author{FirstName: "Mary", LastName: "Shelley", DateOfBirth: date(1797, 8, 30), DateOfDeath: date(1851, 2, 1)},
			Summary:         "Victor Frankenstein creates a sapient creature in an unorthodox experiment.",
			ISBN:            "9780486282114",
			GenreNames:      []string{"Science Fiction", "Fiction"},
			Imprint:         "Dover Thrift Editions, 1994",
			Copies:          2,
			FirstCopyOnLoan: true,
		},
		{
			Title:      "The Adventures of Sherlock Holmes",
			Author:     entities.Author{FirstName: "Arthur Conan", LastName: "Doyle", DateOfBirth: date(1859, 5, 22), DateOfDeath: date(1930, 7, 7)},
			Summary:    "Twelve short stories featuring the consulting detective of Baker Street.",
			ISBN:       "9780486474915",
			GenreNames: []string{"Mystery", "Fiction"},
			Imprint:    "Dover Thrift Editions, 2009",
			Copies:     4,
		},
		{
			Title:      "A Room of One's Own",
			Author:     entities.Author{FirstName: "Virginia", LastName: "Woolf", DateOfBirth: date(1882, 1, 25), DateOfDeath: date(1941, 3, 28)},
			Summary:    "An extended essay on women and fiction.",
			ISBN:       "9780156787338",
			GenreNames: []string{"Non-fiction"},
			Imprint:    "Harvest Books, 1989",
			Copies:     1,
		},
	}
}
