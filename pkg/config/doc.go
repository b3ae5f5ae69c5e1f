// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv (.env files) and
// github.com/caarlos0/env/v11 (struct tag parsing). Every package that needs
// settings declares its own tagged struct; the binary loads each of them:
//
//	var srv httpserver.Config
//	config.MustLoad(&srv)
//
// Parsed structs are cached per type, so repeated loads are cheap and return
// the same values. Tests that change the environment call Reset first.
//
// Errors can be compared with errors.Is against ErrParsingConfig,
// ErrLoadingEnvFile and ErrNilPointer.
package config
