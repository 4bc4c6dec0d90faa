package main

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// maxCampaignImages caps the gallery size accepted at creation
const maxCampaignImages = 5

// parseAmount converts a user-typed display amount into smallest
// units. Rejects zero, negatives, and garbage before anything touches
// the network.
func parseAmount(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("amount is required")
	}
	f, ok := new(big.Float).SetString(s)
	if !ok {
		return nil, fmt.Errorf("%q is not a number", s)
	}
	if f.Sign() <= 0 {
		return nil, errors.New("amount must be positive")
	}
	wei := new(big.Float).Mul(f, big.NewFloat(1e18))
	out, _ := wei.Int(nil)
	if out.Sign() <= 0 {
		return nil, errors.New("amount too small")
	}
	return out, nil
}

// splitImageURLs turns the comma-separated form field into a clean
// slice. An empty field is fine; the ledger record then normalizes to
// the placeholder.
func splitImageURLs(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func requireNonEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateAmount(s string) error {
	_, err := parseAmount(s)
	return err
}

func validateImages(s string) error {
	if len(splitImageURLs(s)) > maxCampaignImages {
		return fmt.Errorf("at most %d images", maxCampaignImages)
	}
	return nil
}

func requireURL(s string) error {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") && !strings.HasPrefix(s, "ws") {
		return errors.New("must be an http(s) or ws(s) url")
	}
	return nil
}
