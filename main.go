package main

import (
	"log"

	"github.com/artfolio/gallery-backend/cmd"
	"github.com/artfolio/gallery-backend/config"
)

func main() {
	log.Printf("gallery backend %s (%s)", config.Version, config.CommitHash)
	cmd.Execute()
}
