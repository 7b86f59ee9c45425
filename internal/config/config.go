package config

import (
	"os"
	"strings"
)

// Config holds runtime configuration loaded from env.
type Config struct {
	Port               string
	Env                string
	AWSRegion          string
	AWSEndpoint        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	MoviesTable        string
	MovieDetailsTable  string
	CognitoUserPoolID  string
	CognitoJWKSURL     string
	CognitoEndpoint    string
	SwapiBaseURL       string
	ValkeyAddr         string
	ValkeyPassword     string
	CORSAllowedOrigins []string
}

func FromEnv() Config {
	c := Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSEndpoint:        os.Getenv("AWS_ENDPOINT"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		MoviesTable:        getEnv("MOVIES_TABLE", "movies"),
		MovieDetailsTable:  getEnv("MOVIE_DETAILS_TABLE", "movie_details"),
		CognitoUserPoolID:  os.Getenv("COGNITO_USER_POOL_ID"),
		CognitoJWKSURL:     os.Getenv("COGNITO_JWKS_URL"),
		CognitoEndpoint:    os.Getenv("COGNITO_ENDPOINT"),
		SwapiBaseURL:       getEnv("SWAPI_BASE_URL", "https://swapi.dev/api"),
		ValkeyAddr:         getEnv("VALKEY_ADDR", "localhost:6379"),
		ValkeyPassword:     os.Getenv("VALKEY_PASSWORD"),
	}
	if s := os.Getenv("CORS_ALLOWED_ORIGINS"); s != "" {
		for _, p := range strings.Split(s, ",") {
			if v := strings.TrimSpace(p); v != "" {
				c.CORSAllowedOrigins = append(c.CORSAllowedOrigins, v)
			}
		}
	}
	return c
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
