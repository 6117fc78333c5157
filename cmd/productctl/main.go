// Command productctl drives the products API from a terminal, running the
// same actions as the web console's buttons.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	app := newApp(os.Stdout)
	if err := app.Run(os.Args); err != nil {
		// the flash message has already been printed
		if !errors.Is(err, errActionFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
