package main

import (
	"log"

	"github.com/gmllt/bboard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
