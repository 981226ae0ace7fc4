package main

import (
	"log"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("nvicctl: ")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
