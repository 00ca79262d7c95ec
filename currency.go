// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/spf13/cobra"
)

// Currency units are ordinary linear units over the Currency dimension
// with USD as the base, so '100 USD EUR into' and compounds like
// 'USD hr /' need no special cases. Rates come from the sqlite cache
// when one exists; these seeds keep the calculator working offline.
var seedRates = map[string]float64{
	"EUR": 1.0868,
	"GBP": 1.2712,
	"JPY": 0.0067,
}

// frankfurter.app latest-rates schema; rates are units per USD
type exchangeRates struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

const ratesURL = "https://api.frankfurter.app/latest?base=USD&symbols=EUR,GBP,JPY"

// loadRates returns USD-per-unit for each supported currency, never
// failing: cached rates if the database has them, seeds otherwise.
func loadRates() map[string]float64 {
	cached, err := loadCachedRates()
	if err != nil || len(cached) == 0 {
		return seedRates
	}

	rates := make(map[string]float64, len(seedRates))
	for code, seed := range seedRates {
		if rate, ok := cached[code]; ok {
			rates[code] = rate
		} else {
			rates[code] = seed
		}
	}
	return rates
}

func httpGetRates(url string) (*exchangeRates, error) {
	client := &http.Client{Timeout: 30 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP failure '%d' from '%s'", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var rates exchangeRates
	if err := json.Unmarshal(body, &rates); err != nil {
		return nil, err
	}

	return &rates, nil
}

// fetchRates retrieves current rates and inverts them to USD-per-unit.
func fetchRates(url string) (map[string]float64, error) {
	fetched, err := httpGetRates(url)
	if err != nil {
		return nil, err
	}

	rates := make(map[string]float64, len(fetched.Rates))
	for code, perUSD := range fetched.Rates {
		if perUSD > 0 {
			rates[code] = 1 / perUSD
		}
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("no usable rates in response from '%s'", url)
	}
	return rates, nil
}

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Refresh and show cached currency exchange rates",
	Long: `Fetch current exchange rates, store them in the local cache and print
them. The refreshed rates are used by every later run; without a cache
the calculator falls back to built-in approximate rates.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rates, err := fetchRates(ratesURL)
		if err != nil {
			return fmt.Errorf("failed to fetch rates: %w", err)
		}
		if err := saveCachedRates(rates); err != nil {
			return fmt.Errorf("failed to cache rates: %w", err)
		}

		codes := make([]string, 0, len(rates))
		for code := range rates {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			fmt.Printf("%s = %.6f USD\n", code, rates[code])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ratesCmd)
}
