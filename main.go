package main

import (
	"flag"
	"fmt"
	"os"

	"getpetback/app"

	_ "github.com/mattn/go-sqlite3"
	"github.com/umakantv/go-utils/db/migrations"
)

func main() {
	commandFlag := flag.String("command", "", "Command to run (home, search, quicksearch, pet, add, edit, delete, register, login, logout, profile, orders, set-phone, set-email, subscribe, create-migration)")
	nameFlag := flag.String("name", "", "Migration name (alphanum+underscore only)")
	dirFlag := flag.String("dir", "./database/migrations", "Target directory for the new .sql file")
	flag.Parse()

	if *commandFlag == "" {
		fmt.Println("Usage: getpetback --command <command-name> [-- command options]")
		fmt.Println("Example: getpetback --command search -- -kind кот -page 2")
		os.Exit(1)
	}

	switch *commandFlag {
	case "create-migration":
		migrations.CreateMigration(nameFlag, dirFlag)
	default:
		os.Exit(app.Run(*commandFlag, flag.Args()))
	}
}
