// Command staffhash prints the bcrypt hash to put in STAFF_PASSWORD_HASH.
//
//	staffhash 'the password'
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/lunchly/internal/utils"
)

func main() {
	if len(os.Args) != 2 || os.Args[1] == "" {
		fmt.Fprintln(os.Stderr, "usage: staffhash <password>")
		os.Exit(2)
	}
	hash, err := utils.HashPassword(os.Args[1], utils.PasswordCost)
	if err != nil {
		logrus.WithError(err).Fatal("hash password")
	}
	fmt.Println(hash)
}
