// Command hashpassword prints the bcrypt hash of the admin password for
// use in ADMIN_PASSWORD_HASH.
package main

import (
	"fmt"
	"os"

	"timeclock.app/timeclock/security"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: hashpassword <password>")
		os.Exit(1)
	}

	hash, err := security.HashPassword(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
