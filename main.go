package main

import (
	"log"

	"github.com/vmaltsev/resume-ranker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
