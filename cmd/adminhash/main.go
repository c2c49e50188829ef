package main

import (
	"bufio"
	"flag"
	"fmt"
	passwordhasher "kedilabs/internal/implementations/password_hasher"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Reads the admin password from stdin and prints the value for
// ADMIN_PASSWORD_HASH.
func main() {
	useSHA256 := flag.Bool("sha256", false, "print a hex SHA-256 digest instead of a bcrypt hash")
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	flag.Parse()

	password, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && password == "" {
		fmt.Fprintf(os.Stderr, "error: could not read password: %v\n", err)
		os.Exit(1)
	}
	password = strings.TrimRight(password, "\r\n")
	if password == "" {
		fmt.Fprintln(os.Stderr, "error: password is empty")
		os.Exit(1)
	}

	if *useSHA256 {
		fmt.Println(passwordhasher.HashSHA256(password))
		return
	}

	hash, err := passwordhasher.HashBcrypt(password, *cost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
