package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/SanteonNL/welfare/cmd/welfare/parser"
	"github.com/rs/zerolog"
)

// Reads a saved list response and prints the mapped records as JSON.
func main() {
	log := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) { w.Out = os.Stderr })).With().Timestamp().Caller().Logger()

	if len(os.Args) != 2 {
		log.Fatal().Msgf("usage: %s <response.xml>", os.Args[0])
	}

	body, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read response file")
	}

	records, err := parser.Parse(body)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse response")
	}
	log.Debug().Int("records", len(records)).Msg("Parsed response")

	jsonBytes, err := json.Marshal(records)
	if err != nil {
		log.Fatal().Err(err).Msg("Error marshaling JSON")
	}

	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, jsonBytes, "", "\t"); err != nil {
		log.Fatal().Err(err).Msg("Error formatting JSON")
	}

	fmt.Println(prettyJSON.String())
}
