// Command review is a line-oriented client for reviewing flashcards
// against a running vocadeck store. It holds no scheduling logic of its
// own: every state change goes through the session coordinator and the
// store's acknowledged responses.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lcampos/vocadeck/internal/config"
	"github.com/lcampos/vocadeck/internal/logger"
	"github.com/lcampos/vocadeck/internal/models"
	"github.com/lcampos/vocadeck/internal/session"
	"github.com/lcampos/vocadeck/internal/store"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(false),
		logger.WithOutput(os.Stderr),
	)
	logger.SetDefault(log)

	client := store.New(cfg.StoreBaseURL, store.WithTimeout(cfg.StoreTimeout()))
	coord := session.New(client)
	ctx := context.Background()

	if err := coord.Load(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "could not load deck from %s: %v\n", cfg.StoreBaseURL, err)
		os.Exit(1)
	}
	fmt.Printf("loaded %d cards from %s\n", coord.Deck().Len(), cfg.StoreBaseURL)
	printCurrent(coord)

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Print("> ")
			continue
		}
		cmd, rest, _ := strings.Cut(line, " ")

		switch cmd {
		case "help":
			printHelp()
		case "show":
			printCurrent(coord)
		case "flip":
			if card := coord.Deck().Current(); card != nil {
				fmt.Printf("  %s\n", card.Definition)
				if card.ExampleSentence != "" {
					fmt.Printf("  e.g. %s\n", card.ExampleSentence)
				}
			}
		case "next":
			coord.Deck().Advance(1)
			printCurrent(coord)
		case "prev":
			coord.Deck().Advance(-1)
			printCurrent(coord)
		case "y", "n":
			if card := coord.Deck().Current(); card != nil {
				if err := coord.Review(ctx, card.ID, cmd == "y"); err != nil {
					fmt.Printf("review failed: %s\n", coord.LastError())
				} else {
					printCurrent(coord)
				}
			}
		case "add":
			handleAdd(ctx, coord, rest)
		case "del":
			if card := coord.Deck().Current(); card != nil {
				if err := coord.Remove(ctx, card.ID); err != nil {
					fmt.Printf("delete failed: %s\n", coord.LastError())
				} else {
					fmt.Println("deleted")
					printCurrent(coord)
				}
			}
		case "list":
			for i, card := range coord.Deck().Cards() {
				marker := " "
				if i == coord.Deck().Cursor() {
					marker = "*"
				}
				fmt.Printf("%s %-20s due %s interval %.2gd\n", marker, card.Word, formatDue(card.DueDate), card.Interval)
			}
		case "reload":
			if err := coord.Load(ctx); err != nil {
				fmt.Printf("reload failed: %s\n", coord.LastError())
			} else {
				fmt.Printf("reloaded %d cards\n", coord.Deck().Len())
				printCurrent(coord)
			}
		case "quit", "exit":
			return
		default:
			fmt.Printf("unknown command %q, try help\n", cmd)
		}
		fmt.Print("> ")
	}
}

// handleAdd parses "add word | definition | example sentence".
func handleAdd(ctx context.Context, coord *session.Coordinator, rest string) {
	parts := strings.SplitN(rest, "|", 3)
	draft := models.FlashcardDraft{}
	draft.Word = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		draft.Definition = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		draft.ExampleSentence = strings.TrimSpace(parts[2])
	}

	if draft.Word == "" || draft.Definition == "" {
		fmt.Println("usage: add word | definition [| example sentence]")
		return
	}
	if err := coord.Add(ctx, draft); err != nil {
		fmt.Printf("add failed: %s\n", coord.LastError())
		return
	}
	fmt.Printf("added %q, deck now holds %d cards\n", draft.Word, coord.Deck().Len())
}

func printCurrent(coord *session.Coordinator) {
	card := coord.Deck().Current()
	if card == nil {
		fmt.Println("deck is empty; use add to create a card")
		return
	}
	fmt.Printf("[%d/%d] %s  (due %s)\n",
		coord.Deck().Cursor()+1, coord.Deck().Len(), card.Word, formatDue(card.DueDate))
}

func formatDue(ms int64) string {
	if ms == 0 {
		return "now"
	}
	due := time.UnixMilli(ms)
	if !due.After(time.Now()) {
		return "now"
	}
	return due.Format("2006-01-02 15:04")
}

func printHelp() {
	fmt.Println(`commands:
  show           show the current card
  flip           reveal definition and example
  y / n          mark current card reviewed (success / failure)
  next / prev    move through the deck
  add w | d | e  create a card (example optional)
  del            delete the current card
  list           list the deck in due order
  reload         refetch the deck from the store
  quit           exit`)
}
