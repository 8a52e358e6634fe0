package cmd

import (
	"fmt"
	"os"
	"time"
)

// List shows all records in the database. No password required.
func List(dbPath string) {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Printf("No record database found at %s\n", dbPath)
		fmt.Println("Run 'kdfkit enroll <name>' to create one")
		return
	}

	store := openStore(dbPath, false)
	defer store.Close()

	records, err := store.List()
	if err != nil {
		HandleError(err)
	}

	if len(records) == 0 {
		fmt.Println("No records enrolled")
		return
	}

	fmt.Printf("Records in %s:\n", dbPath)
	for _, r := range records {
		fmt.Printf("  %-20s %s, %d iterations, %d bytes (created %s)\n",
			r.Name, r.Hash, r.Iterations, r.Length, r.Created.Format(time.RFC3339))
	}
}
