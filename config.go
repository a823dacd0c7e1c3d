package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Secret string
	Port   string
	DBPath string
}

func loadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := Config{
		Secret: os.Getenv("SERVERKEY"),
		Port:   getEnv("SERVERPORT", "5000"),
		DBPath: getEnv("DBPATH", "./agrobill.db3"),
	}
	if len(cfg.Secret) < 2 {
		log.Fatal("ERROR: Environment variable SERVERKEY is not defined")
	}
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
