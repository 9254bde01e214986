// Package main seeds a PageTurn database with a demo user, library, and
// reading logs, and prints an access token for exercising the API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/pageturnapp/pageturn-server/internal/auth"
	"github.com/pageturnapp/pageturn-server/internal/domain"
	"github.com/pageturnapp/pageturn-server/internal/logger"
	"github.com/pageturnapp/pageturn-server/internal/service"
	"github.com/pageturnapp/pageturn-server/internal/store"
)

func main() {
	dbPath := flag.String("db", defaultDBPath(), "Path to the SQLite database file")
	userID := flag.String("user", "", "User ID to seed for (default: a fresh UUID)")
	flag.Parse()

	if err := run(*dbPath, *userID); err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "pageturn.db"
	}
	return filepath.Join(home, "PageTurn", "pageturn.db")
}

func run(dbPath, userID string) error {
	log := logger.New(logger.Config{Environment: "development"})

	if userID == "" {
		userID = uuid.NewString()
	}

	s, err := store.Open(dbPath, log.Logger)
	if err != nil {
		return err
	}
	defer s.Close()

	books := service.NewBookService(s, log.Logger)
	logs := service.NewLogService(s, log.Logger)

	ctx := context.Background()

	rating := func(v float64) *float64 { return &v }
	library := []*domain.Book{
		{UserID: userID, Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593", Genre: "Science Fiction", UserRating: rating(5)},
		{UserID: userID, Title: "The Name of the Wind", Author: "Patrick Rothfuss", ISBN: "9780756404741", Genre: "Fantasy", UserRating: rating(4.5)},
		{UserID: userID, Title: "Gone Girl", Author: "Gillian Flynn", ISBN: "9780307588371", Genre: "Thriller", UserRating: rating(4)},
		{UserID: userID, Title: "Dune Messiah", Author: "Frank Herbert", ISBN: "9780593098233", Genre: "Science Fiction"},
		{UserID: userID, Title: "Educated", Author: "Tara Westover", ISBN: "9780399590504", Genre: "Memoir", UserRating: rating(4.5)},
	}
	for _, b := range library {
		if err := books.AddBook(ctx, b); err != nil {
			return fmt.Errorf("seed book %q: %w", b.Title, err)
		}
	}

	now := time.Now()
	entries := []*domain.ReadingLog{
		{UserID: userID, BookID: library[0].ID, PagesRead: 120, CreatedAt: now.AddDate(0, 0, -6)},
		{UserID: userID, BookID: library[0].ID, PagesRead: 95, CreatedAt: now.AddDate(0, 0, -5)},
		{UserID: userID, BookID: library[1].ID, PagesRead: 210, CreatedAt: now.AddDate(0, 0, -3)},
		{UserID: userID, BookID: library[2].ID, PagesRead: 60, CreatedAt: now.AddDate(0, 0, -2)},
		{UserID: userID, PagesRead: 40, CreatedAt: now.AddDate(0, 0, -1)},
	}
	for _, l := range entries {
		if err := logs.AddLog(ctx, l); err != nil {
			return fmt.Errorf("seed log: %w", err)
		}
	}

	keyHex, err := auth.LoadOrGenerateKey(filepath.Dir(dbPath))
	if err != nil {
		return err
	}
	tokens, err := auth.NewTokenService(keyHex, 24*time.Hour)
	if err != nil {
		return err
	}
	token, err := tokens.GenerateAccessToken(userID)
	if err != nil {
		return err
	}

	log.Info("Seeded demo library",
		"user_id", userID,
		"books", len(library),
		"logs", len(entries),
	)
	fmt.Printf("user:  %s\ntoken: %s\n", userID, token)

	return nil
}
