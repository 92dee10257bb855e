// Command hashpw generates the bcrypt hash expected in ADMIN_PASSWORD_HASH.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	var (
		password string
		cost     int
	)

	flag.StringVar(&password, "password", "", "Password to hash (reads stdin when empty)")
	flag.IntVar(&cost, "cost", bcrypt.DefaultCost, "Bcrypt cost factor")
	flag.Parse()

	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			log.Fatalf("failed to read password: %v", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		log.Fatal("password must not be empty")
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		log.Fatalf("cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	fmt.Println(string(hash))
}
