package main

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"

	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/config"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/repository/postgres"
)

// Creates the target database if it does not exist, then applies all
// pending migrations. The server also applies migrations at startup;
// this tool is for running them ahead of a deploy.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	dbCfg := cfg.Database

	// Connect to the maintenance database to create the target one.
	postgresDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=%s",
		dbCfg.User, dbCfg.Password, dbCfg.Host, dbCfg.Port, dbCfg.SSLMode)

	maintDB, err := sql.Open("postgres", postgresDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to postgres database: %v\n", err)
		os.Exit(1)
	}
	defer maintDB.Close()

	var exists bool
	err = maintDB.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", dbCfg.DBName,
	).Scan(&exists)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to check database existence: %v\n", err)
		os.Exit(1)
	}

	if !exists {
		fmt.Printf("Database '%s' does not exist. Creating...\n", dbCfg.DBName)
		if _, err := maintDB.Exec(fmt.Sprintf("CREATE DATABASE %s", dbCfg.DBName)); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create database: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Database '%s' created successfully.\n", dbCfg.DBName)
	}

	if err := postgres.RunMigrations(dbCfg, "migrations"); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to apply migrations: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Migrations applied.")
}
