package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"prize_wheel/internal/app"
)

func main() {
	name := flag.String("name", "", "display name")
	login := flag.String("login", "", "login")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "password (defaults to $ADMIN_PASSWORD)")
	flag.Parse()

	if *login == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	id, err := app.NewApp().CreateAdmin(context.Background(), *name, *login, *password)
	if err != nil {
		log.Fatalf("create admin: %v", err)
	}
	fmt.Printf("admin %q created with id %d\n", *login, id)
}
