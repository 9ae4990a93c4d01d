//	@title			Image Platform API
//	@version		1.0
//	@description	Uploads images to S3-compatible object storage and returns public and optimizer URLs.
//
//	@host		localhost:8080
//	@BasePath	/api

package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/imageplatform/api/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		log.Error().Err(err).Msg("imageplatform exited with error")
		os.Exit(1)
	}
}
