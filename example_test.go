package memo_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aretw0/memo"
)

// Example_basic creates a note, updates it and reads it back after a flush.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "memo-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	ctx := context.Background()
	path := filepath.Join(tmpDir, "memos.json")

	svc, err := memo.New(ctx, path)
	if err != nil {
		log.Fatal(err)
	}

	if _, err := svc.Create(ctx, memo.Note{ID: "a1", Title: "Groceries", Color: "green"}); err != nil {
		log.Fatal(err)
	}

	content := "milk, eggs"
	if _, err := svc.Update(ctx, "a1", memo.NoteUpdate{Content: &content}); err != nil {
		log.Fatal(err)
	}

	// Quit writes whatever the debounce window still holds.
	if err := svc.Quit(ctx); err != nil {
		log.Fatal(err)
	}

	reopened, err := memo.New(ctx, path)
	if err != nil {
		log.Fatal(err)
	}
	n, _ := reopened.Get(ctx, "a1")
	fmt.Printf("%s: %s\n", n.Title, n.Content)
	// Output:
	// Groceries: milk, eggs
}
