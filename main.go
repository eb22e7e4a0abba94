package main

import (
	"log"

	"github.com/elp-logistics/market-radar/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
