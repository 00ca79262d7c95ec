// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// ratesDBPath overrides the cache location in tests.
var ratesDBPath string

func defaultRatesDBPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".calc")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %v", err)
	}

	return filepath.Join(dataDir, "rates.sqlite3"), nil
}

// openRatesDB opens the rate cache and ensures its schema exists.
func openRatesDB() (*sql.DB, error) {
	path := ratesDBPath
	if path == "" {
		var err error
		if path, err = defaultRatesDBPath(); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS rates (
		code TEXT PRIMARY KEY,
		usd_per_unit REAL NOT NULL,
		fetched_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %v", err)
	}

	return db, nil
}

// loadCachedRates reads every cached rate; an absent or empty cache is
// not an error.
func loadCachedRates() (map[string]float64, error) {
	db, err := openRatesDB()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(`SELECT code, usd_per_unit FROM rates`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rates := make(map[string]float64)
	for rows.Next() {
		var code string
		var rate float64
		if err := rows.Scan(&code, &rate); err != nil {
			return nil, err
		}
		rates[code] = rate
	}

	return rates, rows.Err()
}

// saveCachedRates upserts the given rates, keeping one row per code.
func saveCachedRates(rates map[string]float64) error {
	db, err := openRatesDB()
	if err != nil {
		return err
	}
	defer db.Close()

	query := `
	INSERT OR REPLACE INTO rates (code, usd_per_unit, fetched_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	`

	for code, rate := range rates {
		if _, err := db.Exec(query, code, rate); err != nil {
			return err
		}
	}

	return nil
}
